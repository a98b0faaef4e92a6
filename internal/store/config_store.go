package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"hposconfig/internal/config"
	"hposconfig/internal/domain"
)

// ConfigFileName is the conventional name of a host config.
const ConfigFileName = "hpos-config.json"

// ErrNotFound is returned when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

// ConfigFileStore persists one host config as JSON. The file holds a raw
// seed for V1 configs, so it is written with mode 0600.
type ConfigFileStore struct {
	path string
	mu   sync.Mutex
}

// NewConfigFileStore returns a store for the config at path.
func NewConfigFileStore(path string) *ConfigFileStore {
	return &ConfigFileStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *ConfigFileStore) Path() string { return s.path }

// SaveConfig replaces the config file with cfg.
func (s *ConfigFileStore) SaveConfig(cfg config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	return writeFile(s.path, append(b, '\n'), 0o600)
}

// LoadConfig reads and decodes the config file.
func (s *ConfigFileStore) LoadConfig() (config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
	}
	if err != nil {
		return nil, err
	}
	cfg, err := config.Unmarshal(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return cfg, nil
}

// ReadConfig decodes a config from r, typically standard input.
func ReadConfig(r io.Reader) (config.Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return config.Unmarshal(b)
}

// Compile-time assertion that ConfigFileStore implements domain.ConfigStore.
var _ domain.ConfigStore = (*ConfigFileStore)(nil)
