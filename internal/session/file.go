package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/madhurinidan/clinic-web/pkg/logger"
	"go.uber.org/zap"
)

// FileStore persists the session mapping as a JSON object in a file.
// Every Read goes to disk, so a Write from another process is seen on the
// next Read; there is no change notification.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path. The file is created on first Write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns the per-user session file location
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "clinicctl", "session.json"), nil
}

// Path returns the backing file path
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Read() Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FromValues(f.load())
}

func (f *FileStore) load() map[string]string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to read session file", zap.String("path", f.path), zap.Error(err))
		}
		return map[string]string{}
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		logger.Warn("Ignoring unreadable session file", zap.String("path", f.path), zap.Error(err))
		return map[string]string{}
	}
	return values
}

func (f *FileStore) Write(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := f.load()
	for _, key := range Keys {
		delete(values, key)
	}
	for key, value := range s.Values() {
		values[key] = value
	}
	return f.save(values)
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values := f.load()
	for _, key := range Keys {
		delete(values, key)
	}
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	return f.save(values)
}

// save writes through a temp file and rename so readers never see a torn file
func (f *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
