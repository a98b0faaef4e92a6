// Package commands defines the hpos-config CLI and wires dependencies for subcommands.
//
// Commands
//
//   - generate   Provision a new host config (JSON on stdout, host URL on stderr)
//   - validate   Check a config for structural errors
//   - pubkey     Print the host public key in one of several encodings
//   - admin      Print the admin public key
//   - base36-id  Print the base36 host identifier
//   - keypair    Print the host keypair as a lair keystore blob
//   - derive     Print the public key of a derived sub-seed
//   - convert    Rewrite a config in another schema version
//   - sign       Sign a message with the admin key
//   - verify     Check an admin signature locally or against a verifier server
//
// Inspection commands read the config named by their argument, then --config,
// then $HPOS_CONFIG_PATH, then the file in --home. "-" reads stdin. Device
// bundles are unlocked with --passphrase or $DEVICE_BUNDLE_PASSWORD.
package commands
