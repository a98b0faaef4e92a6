// Package provision builds new host configs.
//
// It picks or derives the seeds each config version needs, locks the
// device bundle, derives the admin key and, when a store is configured,
// saves the result. Derivation runs off the caller's goroutine.
package provision
