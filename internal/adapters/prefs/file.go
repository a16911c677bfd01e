// Package prefs persists user preferences for the CLI.
package prefs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the preferences file inside the user config directory.
const FileName = "preferences.toml"

// DefaultPath returns <user config dir>/alaqidah/preferences.toml, or a path
// under the temp dir when the config dir is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	return filepath.Join(dir, "alaqidah", FileName)
}

// FileStore is a ports.PreferenceStore backed by a flat TOML table. Readers
// take a shared lock and writers an exclusive one on <path>.lock, so two CLI
// processes never interleave a read-modify-write. Failures are logged and
// absorbed.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a store at path. An empty path means DefaultPath.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FileStore{
		path:   path,
		logger: logger.With(slog.String("component", "prefs"), slog.String("path", path)),
	}
}

// Path returns the preferences file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the stored value for key.
func (s *FileStore) Get(key string) (string, bool) {
	lock := flock.New(s.path + ".lock")
	if err := lock.RLock(); err != nil {
		s.logger.Debug("preferences unreadable", slog.Any("error", err))
		return "", false
	}
	defer func() { _ = lock.Unlock() }()

	values, err := s.read()
	if err != nil {
		s.logger.Warn("reading preferences", slog.Any("error", err))
		return "", false
	}

	v, ok := values[key]

	return v, ok
}

// Set stores value under key.
func (s *FileStore) Set(key, value string) {
	s.update(func(values map[string]string) { values[key] = value })
}

// Remove deletes key.
func (s *FileStore) Remove(key string) {
	s.update(func(values map[string]string) { delete(values, key) })
}

// All returns every stored preference.
func (s *FileStore) All() map[string]string {
	lock := flock.New(s.path + ".lock")
	if err := lock.RLock(); err != nil {
		return map[string]string{}
	}
	defer func() { _ = lock.Unlock() }()

	values, err := s.read()
	if err != nil {
		return map[string]string{}
	}

	return values
}

func (s *FileStore) update(mutate func(map[string]string)) {
	if err := s.write(mutate); err != nil {
		s.logger.Warn("writing preferences", slog.Any("error", err))
	}
}

func (s *FileStore) write(mutate func(map[string]string)) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	values, err := s.read()
	if err != nil {
		// A corrupt file is replaced rather than blocking every write.
		s.logger.Warn("discarding unreadable preferences", slog.Any("error", err))
		values = map[string]string{}
	}

	mutate(values)

	data, err := toml.Marshal(values)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}

// read loads the file; a missing file is an empty table. Callers hold the
// lock.
func (s *FileStore) read() (map[string]string, error) {
	values := map[string]string{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	return values, nil
}
