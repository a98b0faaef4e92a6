package provision

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"hposconfig/internal/config"
	"hposconfig/internal/domain"
	"hposconfig/internal/seedbundle"
	"hposconfig/internal/services/worker"
)

// GenerateBy is written into the app data of bundles this service locks.
const GenerateBy = "hpos-config"

var (
	// ErrMissingCredentials is returned when the admin email or password is empty.
	ErrMissingCredentials = errors.New("admin email and password are required")
	// ErrPassphraseRequired is returned for V2 and V3 requests without a
	// device bundle passphrase.
	ErrPassphraseRequired = fmt.Errorf("device bundle passphrase: %w", seedbundle.ErrPasswordRequired)
)

// Service builds configs and optionally persists them.
type Service struct {
	store domain.ConfigStore
}

// New returns a provisioning service. A nil store disables saving.
func New(store domain.ConfigStore) *Service { return &Service{store: store} }

type built struct {
	cfg  config.Config
	host domain.Ed25519Public
}

// Provision builds the config described by req and returns it with the
// host public key.
func (s *Service) Provision(
	ctx context.Context,
	req domain.ProvisionRequest,
) (config.Config, domain.Ed25519Public, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.Ed25519Public{}, ErrMissingCredentials
	}
	if req.Version != domain.V1 && len(req.Passphrase) == 0 {
		return nil, domain.Ed25519Public{}, ErrPassphraseRequired
	}

	logger := log.WithFields(log.Fields{
		"version":         req.Version,
		"derivation_path": req.DevicePath,
	})
	logger.Debug("provisioning host config")

	b, err := worker.Do(ctx, func() (built, error) { return build(req) })
	if err != nil {
		return nil, domain.Ed25519Public{}, err
	}
	logger.WithField("host", fmt.Sprintf("%x", b.host[:4])).Debug("host config built")

	if s.store != nil {
		if err := s.store.SaveConfig(b.cfg); err != nil {
			return nil, domain.Ed25519Public{}, err
		}
	}
	return b.cfg, b.host, nil
}

func build(req domain.ProvisionRequest) (built, error) {
	switch req.Version {
	case domain.V1:
		cfg, host, err := config.NewV1(req.Email, req.Password, req.Seed)
		return built{cfg, host}, err
	case domain.V2:
		return buildV2(req)
	case domain.V3:
		return buildV3(req)
	}
	return built{}, fmt.Errorf("%w: %q", config.ErrUnknownVersion, req.Version)
}

func buildV2(req domain.ProvisionRequest) (built, error) {
	master, err := masterBundle(req)
	if err != nil {
		return built{}, err
	}
	defer master.Wipe()

	device, locked, err := deviceBundle(req, master)
	if err != nil {
		return built{}, err
	}
	defer device.Wipe()

	cfg, host, err := config.NewV2(
		req.Email, req.Password, req.RegistrationCode,
		req.DevicePath.String(), locked, device.SignPublicKey(),
	)
	return built{cfg, host}, err
}

func buildV3(req domain.ProvisionRequest) (built, error) {
	if req.DevicePath == domain.RevocationPath {
		return built{}, fmt.Errorf("device path %s: %w", req.DevicePath, config.ErrReservedPath)
	}
	master, err := masterBundle(req)
	if err != nil {
		return built{}, err
	}
	defer master.Wipe()

	var revocation domain.Ed25519Public
	if req.RevocationKey != nil {
		revocation = *req.RevocationKey
	} else {
		r, err := master.Derive(domain.RevocationPath)
		if err != nil {
			return built{}, err
		}
		revocation = r.SignPublicKey()
		r.Wipe()
	}

	device, locked, err := deviceBundle(req, master)
	if err != nil {
		return built{}, err
	}
	defer device.Wipe()

	holoport, err := device.Derive(domain.HoloportIDPath)
	if err != nil {
		return built{}, err
	}
	defer holoport.Wipe()

	cfg, host, err := config.NewV3(
		req.Email, req.Password, req.RegistrationCode,
		revocation, req.DevicePath.String(), locked,
		holoport.SignPublicKey(),
	)
	return built{cfg, host}, err
}

func masterBundle(req domain.ProvisionRequest) (*seedbundle.Unlocked, error) {
	if req.Seed != nil {
		return seedbundle.New(*req.Seed), nil
	}
	return seedbundle.NewRandom()
}

// deviceBundle returns the unlocked device bundle and its locked text
// form. An existing bundle in req is unlocked; otherwise the device seed
// is derived from master at req.DevicePath and locked.
func deviceBundle(req domain.ProvisionRequest, master *seedbundle.Unlocked) (*seedbundle.Unlocked, string, error) {
	if req.DeviceBundle != "" {
		device, err := seedbundle.UnlockString(req.DeviceBundle, req.Passphrase)
		if err != nil {
			return nil, "", fmt.Errorf("device bundle: %w", err)
		}
		return device, req.DeviceBundle, nil
	}

	limits, err := seedbundle.LimitsByName(req.Limits)
	if err != nil {
		return nil, "", err
	}
	device, err := master.Derive(req.DevicePath)
	if err != nil {
		return nil, "", err
	}

	appData := req.AppData
	if appData == nil {
		appData, err = seedbundle.EncodeAppData(seedbundle.DeviceAppData{
			DeviceNumber: uint32(req.DevicePath),
			GenerateBy:   GenerateBy,
		})
		if err != nil {
			device.Wipe()
			return nil, "", err
		}
	}
	device.SetAppData(appData)

	locked, err := device.Lock(req.Passphrase, limits)
	if err != nil {
		device.Wipe()
		return nil, "", err
	}
	return device, seedbundle.EncodeString(locked), nil
}

// ApplyProfile copies every field p sets into req. Callers apply flags
// after the profile so the command line wins.
func ApplyProfile(req *domain.ProvisionRequest, p domain.ProvisionProfile) error {
	if p.Version != "" {
		v, err := domain.ParseVersion(p.Version)
		if err != nil {
			return err
		}
		req.Version = v
	}
	if p.Email != "" {
		req.Email = p.Email
	}
	if p.RegistrationCode != "" {
		req.RegistrationCode = p.RegistrationCode
	}
	if p.DerivationPath != nil {
		req.DevicePath = domain.DerivationPath(*p.DerivationPath)
	}
	if p.Limits != "" {
		req.Limits = p.Limits
	}
	if p.GenerateBy != "" {
		b, err := seedbundle.EncodeAppData(seedbundle.DeviceAppData{
			DeviceNumber: p.DeviceNumber,
			GenerateBy:   p.GenerateBy,
		})
		if err != nil {
			return err
		}
		req.AppData = b
	}
	return nil
}

// Compile-time assertion that Service implements domain.ProvisionService.
var _ domain.ProvisionService = (*Service)(nil)
