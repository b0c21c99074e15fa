// internal/config/model.go
//
// Typed configuration model for the moderator-application intake service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                         – dotenv values,
//   • optional `conf/global.yaml`                  – primary static file,
//   • `APPLYBOARD_`-prefixed environment overrides – highest precedence.
//
// Every field carries a safe default, applied by the loader before
// validation, so the binary runs correctly with no configuration at all.
// In particular an empty webhook URL disables outbound notification rather
// than failing startup.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Webhook section
//

// Webhook configures best-effort outbound notification delivery.  An empty
// URL disables the notifier entirely; Timeout bounds each delivery attempt.
type Webhook struct {
	URL     string        `koanf:"url"     validate:"omitempty,url"`
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

//
// Rate-limit section
//

// RateLimit tunes the per-identity submission cooldown.  Window is the
// minimum gap between two accepted submissions from one username;
// SweepInterval is how often expired entries are purged from the map.
type RateLimit struct {
	Window        time.Duration `koanf:"window"         validate:"required"`
	SweepInterval time.Duration `koanf:"sweep_interval" validate:"required"`
}

//
// Geo section (optional)
//

// Geo points at a MaxMind GeoLite2-City database.  When DBPath is empty the
// country field on audit records stays blank; no lookup is attempted.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or APPLYBOARD_ROOT override) so later code
// can build absolute file paths, e.g. for the log directory.
type Paths struct {
	Root string // APPLYBOARD_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP      HTTP      `koanf:"http"`
	Webhook   Webhook   `koanf:"webhook"`
	RateLimit RateLimit `koanf:"rate_limit"`
	Geo       Geo       `koanf:"geo"`
	Paths     Paths     `koanf:"-"` // not loaded from config files
}

// Defaults applied by the loader before validation.  Kept in one place so
// tests and docs agree with runtime behavior.
const (
	DefaultListenAddr     = ":8080"
	DefaultWebhookTimeout = 10 * time.Second
	DefaultWindow         = 15 * time.Minute
	DefaultSweepInterval  = 5 * time.Minute
)
