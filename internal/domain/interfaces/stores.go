package interfaces

import (
	"hposconfig/internal/config"
	domaintypes "hposconfig/internal/domain/types"
)

// ConfigStore reads and writes config documents.
type ConfigStore interface {
	SaveConfig(cfg config.Config) error
	LoadConfig() (config.Config, error)
}

// ProfileStore reads provisioning profiles.
type ProfileStore interface {
	LoadProfile(path string) (domaintypes.ProvisionProfile, error)
}
