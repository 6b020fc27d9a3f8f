package cookie

import "net/http"

// Config holds codec configuration. Secret signs values; FallbackSecrets are
// accepted for verification only, which keeps old cookies valid during key
// rotation. EncryptionSecret enables authenticated encryption when set.
type Config struct {
	Secret           string   `env:"COOKIE_SECRET"`
	FallbackSecrets  []string `env:"COOKIE_FALLBACK_SECRETS" envSeparator:","`
	EncryptionSecret string   `env:"COOKIE_ENCRYPTION_SECRET"`

	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN"`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode
}

// DefaultConfig returns default codec configuration without secrets.
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// options converts the attribute fields of the config into default Options.
func (c Config) options() Options {
	return Options{
		Path:     c.Path,
		Domain:   c.Domain,
		MaxAge:   c.MaxAge,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
}
