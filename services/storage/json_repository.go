package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/inspiringsource/shellpomodoro/services/types"
)

const (
	recordFileName  = "session.json"
	controlFileName = "control"
)

// jsonRepository is a JSON file-based implementation of RecordRepository.
// One record per machine, stored in the shellpomodoro config directory.
type jsonRepository struct {
	basePath string
	mu       sync.Mutex
}

// NewJSONRepository creates a file-backed repository rooted at basePath.
func NewJSONRepository(basePath string) (RecordRepository, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &jsonRepository{basePath: basePath}, nil
}

func (r *jsonRepository) recordPath() string {
	return filepath.Join(r.basePath, recordFileName)
}

func (r *jsonRepository) controlPath() string {
	return filepath.Join(r.basePath, controlFileName)
}

func (r *jsonRepository) Save(record *SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}

	// Write-then-rename so a concurrent reader never sees a torn record.
	tmp, err := os.CreateTemp(r.basePath, recordFileName+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp record file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write session record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp record file: %w", err)
	}
	if err := os.Rename(tmpPath, r.recordPath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to publish session record: %w", err)
	}
	return nil
}

func (r *jsonRepository) Load() (*SessionRecord, error) {
	data, err := os.ReadFile(r.recordPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	var record SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}

	// A record left behind by a crashed process is not an active session.
	if record.PID != os.Getpid() && !pidAlive(record.PID) {
		return nil, ErrNoActiveSession
	}

	return &record, nil
}

func (r *jsonRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, path := range []string{r.recordPath(), r.controlPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

func (r *jsonRepository) RequestControl(req types.ControlRequest) error {
	if req == types.ControlNone {
		return nil
	}
	data := []byte(strconv.Itoa(int(req)) + "\n")

	// Same write-then-rename as Save: the owner's TakeControl read must
	// never see a torn value.
	tmp, err := os.CreateTemp(r.basePath, controlFileName+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp control file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write control request: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp control file: %w", err)
	}
	if err := os.Rename(tmpPath, r.controlPath()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to publish control request: %w", err)
	}
	return nil
}

func (r *jsonRepository) TakeControl() (types.ControlRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.controlPath())
	if err != nil {
		if os.IsNotExist(err) {
			return types.ControlNone, nil
		}
		return types.ControlNone, fmt.Errorf("failed to read control request: %w", err)
	}

	if err := os.Remove(r.controlPath()); err != nil && !os.IsNotExist(err) {
		return types.ControlNone, fmt.Errorf("failed to consume control request: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return types.ControlNone, nil
	}
	switch req := types.ControlRequest(n); req {
	case types.ControlEndPhase, types.ControlAbort:
		return req, nil
	default:
		return types.ControlNone, nil
	}
}
