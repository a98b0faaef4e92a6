// Package domain defines the types and interfaces shared across the app.
// It contains plain types and contracts only.
package domain
