// Package store provides file-based persistence for host configs and
// provisioning profiles.
//
// Configs are written as JSON via a temp file and rename, so a crash never
// leaves a half-written document behind. Profiles are YAML and hold no
// secrets.
package store
