package csrf

import "time"

// Config holds CSRF guard configuration. Secret signs tokens and must be at
// least 32 characters when the guard is enabled.
type Config struct {
	Secret  string `env:"CSRF_SECRET"`
	Enabled bool   `env:"CSRF_ENABLED" envDefault:"true"`

	// TTL bounds the token lifetime; tokens older than this fail
	// verification.
	TTL time.Duration `env:"CSRF_TTL" envDefault:"1h"`

	// HeaderName and QueryParam name where Protect looks for the token.
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"X-CSRF-Token"`
	QueryParam string `env:"CSRF_QUERY_PARAM" envDefault:"csrf_token"`
}

// DefaultConfig returns default CSRF configuration without a secret.
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		TTL:        time.Hour,
		HeaderName: "X-CSRF-Token",
		QueryParam: "csrf_token",
	}
}
