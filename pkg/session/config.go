package session

import (
	"net/http"
	"time"
)

// Config holds session store configuration. Secret signs cookie values and
// must be at least 32 characters; EncryptionSecret additionally encrypts the
// cookie payload when set (CookieStore only).
type Config struct {
	Name             string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	Secret           string `env:"SESSION_SECRET"`
	EncryptionSecret string `env:"SESSION_ENCRYPTION_SECRET"`

	Path     string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"SESSION_COOKIE_DOMAIN"`
	Secure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"SESSION_COOKIE_SAME_SITE" envDefault:"2"` // 2 = SameSiteLaxMode

	// MaxAge bounds both the cookie lifetime and, for server-backed stores,
	// the record TTL.
	MaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"168h"`

	// Rotate re-issues the session id on commit once it is older than
	// RotateInterval.
	Rotate         bool          `env:"SESSION_ROTATE" envDefault:"false"`
	RotateInterval time.Duration `env:"SESSION_ROTATE_INTERVAL" envDefault:"24h"`
}

// DefaultConfig returns default session configuration without secrets.
func DefaultConfig() Config {
	return Config{
		Name:           "__session",
		Path:           "/",
		HttpOnly:       true,
		SameSite:       http.SameSiteLaxMode,
		MaxAge:         7 * 24 * time.Hour,
		RotateInterval: 24 * time.Hour,
	}
}
