package defaults

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"memmet/internal/logging"
	"memmet/internal/services"
)

// FileName is the record's file name inside the configuration directory.
const FileName = "config"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "MEMMET_CONFIG_DIR"

// DefaultDir returns $MEMMET_CONFIG_DIR or <user config dir>/memmet.
func DefaultDir() (string, error) {
	if dir, ok := os.LookupEnv(EnvConfigDir); ok && strings.TrimSpace(dir) != "" {
		return filepath.Clean(dir), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", services.Wrap(services.ErrConfigIO, "defaults", "locate", "user config directory", err)
	}
	return filepath.Join(base, "memmet"), nil
}

// Store owns the in-memory record and its backing file.
type Store struct {
	dir    string
	path   string
	record Record
	logger *slog.Logger
}

// Open ensures dir exists and loads the record file, creating it when absent.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, services.Wrap(services.ErrConfigIO, "defaults", "open", "empty configuration directory", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return nil, services.Wrap(services.ErrConfigIO, "defaults", "create directory", dir, err)
	}

	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, services.Wrap(services.ErrConfigIO, "defaults", "open", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, services.Wrap(services.ErrConfigIO, "defaults", "read", path, err)
	}

	var record Record
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, services.Wrap(services.ErrConfigParse, "defaults", "decode", path, err)
		}
	}

	store := &Store{
		dir:    dir,
		path:   path,
		record: record,
		logger: logging.NewComponentLogger(logger, "defaults"),
	}
	store.logger.Debug("defaults loaded", logging.String("path", path), logging.Bool("empty", record.Empty()))
	return store, nil
}

// Dir returns the configuration directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the record file path.
func (s *Store) Path() string { return s.path }

// Record returns a copy of the current record.
func (s *Store) Record() Record {
	var out Record
	out.Merge(s.record)
	return out
}

// Set merges update into the record and rewrites the file.
func (s *Store) Set(update Record) error {
	next := s.Record()
	next.Merge(update)
	if err := s.write(next); err != nil {
		return err
	}
	s.record = next
	s.logger.Info("defaults updated", logging.String("path", s.path))
	return nil
}

// Reset clears every field and truncates the file.
func (s *Store) Reset() error {
	if err := os.Truncate(s.path, 0); err != nil {
		return services.Wrap(services.ErrConfigIO, "defaults", "reset", s.path, err)
	}
	s.record = Record{}
	s.logger.Info("defaults cleared", logging.String("path", s.path))
	return nil
}

func (s *Store) write(record Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	data = append(data, '\n')

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return services.Wrap(services.ErrConfigIO, "defaults", "write", s.path, err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return services.Wrap(services.ErrConfigIO, "defaults", "write", s.path, err)
	}
	if err := file.Close(); err != nil {
		return services.Wrap(services.ErrConfigIO, "defaults", "close", s.path, err)
	}
	return nil
}
