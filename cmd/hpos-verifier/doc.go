// Package main runs the admin signature verification server for one host.
//
// The admin public key comes from --admin-key (base64 or HCID) or from the
// host config at --config, falling back to $HPOS_CONFIG_PATH. See package
// hposconfig/internal/verifier for the HTTP API.
//
// Behaviour
//
//   - The server holds no secrets and keeps no state between requests.
//   - Every request is access-logged through logrus.
//   - SIGINT and SIGTERM trigger a graceful shutdown.
//   - The default listen address is :8080.
package main
