package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/inspiringsource/shellpomodoro/app"
	"github.com/inspiringsource/shellpomodoro/config"
	"github.com/inspiringsource/shellpomodoro/log"
)

var (
	version = "1.2.0"

	workFlag        int
	breakFlag       int
	iterationsFlag  int
	beepsFlag       int
	displayFlag     string
	dotIntervalFlag int

	rootCmd = &cobra.Command{
		Use:   "shellpomodoro",
		Short: "shellpomodoro - a terminal Pomodoro session timer",
		Long: "shellpomodoro runs work/break phases with a live countdown.\n" +
			"Hotkeys: Ctrl+C aborts, Ctrl+E ends the current phase, Ctrl+O detaches\n" +
			"the UI from the still-running session (reconnect with 'shellpomodoro attach').",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()
			applyFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			deps, err := app.InitializeDependencies(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Cleanup()

			return app.Run(ctx, deps)
		},
	}

	attachCmd = &cobra.Command{
		Use:   "attach",
		Short: "Reattach the UI to an in-progress session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize(true)
			defer log.Close()

			deps, err := app.InitializeDependencies(config.LoadConfig())
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Cleanup()

			return app.Attach(ctx, deps)
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Remove a stale session record",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			deps, err := app.InitializeDependencies(config.LoadConfig())
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer deps.Cleanup()

			if err := deps.Storage.Clear(); err != nil {
				return fmt.Errorf("failed to reset session state: %w", err)
			}
			fmt.Println("Session state has been reset")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			if path := log.Path(); path != "" {
				fmt.Printf("Log: %s\n", path)
			}
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of shellpomodoro",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shellpomodoro version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().IntVarP(&workFlag, "work", "w", 25, "Work phase length in minutes")
	rootCmd.Flags().IntVarP(&breakFlag, "break", "b", 5, "Break phase length in minutes")
	rootCmd.Flags().IntVarP(&iterationsFlag, "iterations", "i", 4, "Number of work/break cycles")
	rootCmd.Flags().IntVar(&beepsFlag, "beeps", 2, "Beeps played at phase transitions")
	rootCmd.Flags().StringVar(&displayFlag, "display", config.DisplayTimerBack,
		"Display mode: timer-back, timer-forward, bar or dots")
	rootCmd.Flags().IntVar(&dotIntervalFlag, "dot-interval", 0,
		"Seconds between dots in dots mode (0 picks a default per phase)")

	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyFlags overlays explicitly set flags on top of the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("work") {
		cfg.WorkMinutes = workFlag
	}
	if cmd.Flags().Changed("break") {
		cfg.BreakMinutes = breakFlag
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterationsFlag
	}
	if cmd.Flags().Changed("beeps") {
		cfg.Beeps = beepsFlag
	}
	if cmd.Flags().Changed("display") {
		cfg.Display = displayFlag
	}
	if cmd.Flags().Changed("dot-interval") {
		cfg.DotInterval = dotIntervalFlag
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		switch {
		case errors.Is(err, app.ErrAborted):
			// Expected control flow: exit 1, no completion banner, no noise.
			os.Exit(1)
		case errors.Is(err, app.ErrNoActiveSession):
			fmt.Println("No active shellpomodoro session to attach.")
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
