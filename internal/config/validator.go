// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// fills defaults into the merged Koanf tree.  Any tag mismatch or
// validation error aborts startup, ensuring the binary never runs with a
// malformed listen address, webhook URL, or cooldown window.
//
// The rules in play are `required` on the always-present knobs,
// `hostname_port` on the listen address, and `omitempty,url` on the
// webhook URL (empty means “notifier disabled,” so only non-empty values
// are checked for URL shape).
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.

package config

import "github.com/go-playground/validator/v10"

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
