package domain

import (
	interfaces "hposconfig/internal/domain/interfaces"
	types "hposconfig/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Seed             = types.Seed
	Ed25519Public    = types.Ed25519Public
	Ed25519Private   = types.Ed25519Private
	Fingerprint      = types.Fingerprint
	DerivationPath   = types.DerivationPath
	Version          = types.Version
	ProvisionRequest = types.ProvisionRequest
	ProvisionProfile = types.ProvisionProfile
	SignRequest      = types.SignRequest
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ProvisionService = interfaces.ProvisionService
	InspectService   = interfaces.InspectService
	ConfigStore      = interfaces.ConfigStore
	ProfileStore     = interfaces.ProfileStore
)

// Constants re-exported from the types subpackage.
const (
	V1 = types.V1
	V2 = types.V2
	V3 = types.V3

	RevocationPath    = types.RevocationPath
	HoloportIDPath    = types.HoloportIDPath
	DefaultDevicePath = types.DefaultDevicePath
)

// Parsers re-exported from the types subpackage.
var (
	ParseVersion        = types.ParseVersion
	ParseDerivationPath = types.ParseDerivationPath
)
