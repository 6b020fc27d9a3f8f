package cookie_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrymomot/edgekit/pkg/cookie"
)

const (
	testSecret    = "this-is-a-very-long-secret-key-32-chars-long"
	testOldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
	testEncSecret = "encryption-secret-that-is-32-chars-at-least!"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		cfg     cookie.Config
		wantErr error
	}{
		{
			name:    "no secrets",
			cfg:     cookie.Config{},
			wantErr: cookie.ErrNoSecret,
		},
		{
			name:    "empty fallbacks only",
			cfg:     cookie.Config{FallbackSecrets: []string{"", ""}},
			wantErr: cookie.ErrNoSecret,
		},
		{
			name:    "secret too short",
			cfg:     cookie.Config{Secret: "short"},
			wantErr: cookie.ErrSecretTooShort,
		},
		{
			name:    "fallback too short",
			cfg:     cookie.Config{Secret: testSecret, FallbackSecrets: []string{"short"}},
			wantErr: cookie.ErrSecretTooShort,
		},
		{
			name:    "encryption secret too short",
			cfg:     cookie.Config{Secret: testSecret, EncryptionSecret: "short"},
			wantErr: cookie.ErrSecretTooShort,
		},
		{
			name:    "valid secret",
			cfg:     cookie.Config{Secret: testSecret},
			wantErr: nil,
		},
		{
			name:    "valid with rotation and encryption",
			cfg:     cookie.Config{Secret: testSecret, FallbackSecrets: []string{testOldSecret}, EncryptionSecret: testEncSecret},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := cookie.New(tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCodec_SignVerify(t *testing.T) {
	t.Parallel()
	c, err := cookie.New(cookie.Config{Secret: testSecret})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		signed := c.Sign("user-42")
		got, err := c.Verify(signed)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if got != "user-42" {
			t.Errorf("Verify() = %q, want %q", got, "user-42")
		}
	})

	t.Run("wire format", func(t *testing.T) {
		t.Parallel()
		mac := hmac.New(sha256.New, []byte(testSecret))
		mac.Write([]byte("value"))
		want := "value." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

		if got := c.Sign("value"); got != want {
			t.Errorf("Sign() = %q, want %q", got, want)
		}
	})

	t.Run("value containing dots splits on last dot", func(t *testing.T) {
		t.Parallel()
		signed := c.Sign("a.b.c")
		got, err := c.Verify(signed)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if got != "a.b.c" {
			t.Errorf("Verify() = %q, want %q", got, "a.b.c")
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		t.Parallel()
		other, err := cookie.New(cookie.Config{Secret: testOldSecret})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if _, err := other.Verify(c.Sign("value")); !errors.Is(err, cookie.ErrInvalidSignature) {
			t.Errorf("Verify() error = %v, want ErrInvalidSignature", err)
		}
	})

	t.Run("fallback secret accepted", func(t *testing.T) {
		t.Parallel()
		old, _ := cookie.New(cookie.Config{Secret: testOldSecret})
		rotated, err := cookie.New(cookie.Config{Secret: testSecret, FallbackSecrets: []string{testOldSecret}})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		got, err := rotated.Verify(old.Sign("value"))
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if got != "value" {
			t.Errorf("Verify() = %q, want %q", got, "value")
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name   string
			signed string
		}{
			{"no separator", "value-without-signature"},
			{"empty value half", ".c2lnbmF0dXJl"},
			{"empty signature half", "value."},
			{"signature not base64url", "value.!!not-base64!!"},
		}
		for _, tt := range tests {
			if _, err := c.Verify(tt.signed); !errors.Is(err, cookie.ErrInvalidFormat) {
				t.Errorf("%s: Verify() error = %v, want ErrInvalidFormat", tt.name, err)
			}
		}
	})
}

func TestCodec_EncryptDecrypt(t *testing.T) {
	t.Parallel()
	c, err := cookie.New(cookie.Config{Secret: testSecret, EncryptionSecret: testEncSecret})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		token, err := c.Encrypt("sensitive-value")
		if err != nil {
			t.Fatalf("Encrypt() error = %v", err)
		}
		got, err := c.Decrypt(token)
		if err != nil {
			t.Fatalf("Decrypt() error = %v", err)
		}
		if got != "sensitive-value" {
			t.Errorf("Decrypt() = %q, want %q", got, "sensitive-value")
		}
	})

	t.Run("without encryption secret", func(t *testing.T) {
		t.Parallel()
		plain, _ := cookie.New(cookie.Config{Secret: testSecret})
		if _, err := plain.Encrypt("v"); !errors.Is(err, cookie.ErrNoEncryptionSecret) {
			t.Errorf("Encrypt() error = %v, want ErrNoEncryptionSecret", err)
		}
		if _, err := plain.Decrypt("v"); !errors.Is(err, cookie.ErrNoEncryptionSecret) {
			t.Errorf("Decrypt() error = %v, want ErrNoEncryptionSecret", err)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		t.Parallel()
		other, _ := cookie.New(cookie.Config{Secret: testSecret, EncryptionSecret: testSecret})
		token, _ := c.Encrypt("value")
		if _, err := other.Decrypt(token); !errors.Is(err, cookie.ErrDecryptionFailed) {
			t.Errorf("Decrypt() error = %v, want ErrDecryptionFailed", err)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		t.Parallel()
		for _, token := range []string{"", "!!", "c2hvcnQ", strings.Repeat("A", 15)} {
			if _, err := c.Decrypt(token); !errors.Is(err, cookie.ErrDecryptionFailed) {
				t.Errorf("Decrypt(%q) error = %v, want ErrDecryptionFailed", token, err)
			}
		}
	})
}
