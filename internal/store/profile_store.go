package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hposconfig/internal/domain"
)

// ProfileFileStore reads YAML provisioning profiles.
type ProfileFileStore struct{}

// NewProfileFileStore returns a ProfileFileStore.
func NewProfileFileStore() *ProfileFileStore { return &ProfileFileStore{} }

// LoadProfile reads the profile at path. Unknown keys are rejected so a
// misspelt field is not silently ignored.
func (ProfileFileStore) LoadProfile(path string) (domain.ProvisionProfile, error) {
	var p domain.ProvisionProfile

	f, err := os.Open(path)
	if err != nil {
		return p, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// SaveProfile writes p to path as YAML.
func SaveProfile(path string, p domain.ProvisionProfile) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return writeFile(path, b, 0o644)
}

// Compile-time assertion that ProfileFileStore implements domain.ProfileStore.
var _ domain.ProfileStore = ProfileFileStore{}
