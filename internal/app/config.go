package app

import (
	"path/filepath"

	"hposconfig/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string // data directory, e.g. $HOME/.hpos-config
	ConfigPath string // host config file; defaults to Home/hpos-config.json
}

func (c Config) configPath() string {
	if c.ConfigPath != "" {
		return c.ConfigPath
	}
	return filepath.Join(c.Home, store.ConfigFileName)
}
