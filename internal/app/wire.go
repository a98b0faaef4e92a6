package app

import (
	"hposconfig/internal/domain"
	"hposconfig/internal/services/inspect"
	"hposconfig/internal/services/provision"
	"hposconfig/internal/store"
)

// Wire bundles the stores and services the CLI uses.
type Wire struct {
	Config    domain.ConfigStore
	Profiles  domain.ProfileStore
	Provision domain.ProvisionService
	Inspect   domain.InspectService
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	// File-based stores
	configStore := store.NewConfigFileStore(cfg.configPath())
	profileStore := store.NewProfileFileStore()

	return &Wire{
		Config:    configStore,
		Profiles:  profileStore,
		Provision: provision.New(configStore),
		Inspect:   inspect.New(),
	}, nil
}
