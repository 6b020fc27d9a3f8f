package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	minSecretLength = 32

	// hkdfInfo provides domain separation for the AES key derived from the
	// encryption secret.
	hkdfInfo = "edgekit-cookie-encryption-v1"
)

// Codec signs, verifies, encrypts and decrypts cookie values.
type Codec struct {
	secrets  []string // first entry signs, the rest verify only
	aead     cipher.AEAD
	defaults Options
}

// New creates a Codec from the given configuration. All secrets, including
// the optional encryption secret, must be at least 32 characters; shorter
// secrets are rejected here rather than at first use.
func New(cfg Config, opts ...Option) (*Codec, error) {
	secrets := make([]string, 0, 1+len(cfg.FallbackSecrets))
	if cfg.Secret != "" {
		secrets = append(secrets, cfg.Secret)
	}
	for _, s := range cfg.FallbackSecrets {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	c := &Codec{
		secrets:  secrets,
		defaults: applyOptions(cfg.options(), opts),
	}

	if cfg.EncryptionSecret != "" {
		if len(cfg.EncryptionSecret) < minSecretLength {
			return nil, fmt.Errorf("%w: encryption secret has %d chars, need at least %d", ErrSecretTooShort, len(cfg.EncryptionSecret), minSecretLength)
		}
		aead, err := newAEAD(cfg.EncryptionSecret)
		if err != nil {
			return nil, err
		}
		c.aead = aead
	}

	return c, nil
}

// Defaults returns the default Set-Cookie attributes of the codec.
func (c *Codec) Defaults() Options {
	return c.defaults
}

// CanEncrypt reports whether an encryption secret was configured.
func (c *Codec) CanEncrypt() bool {
	return c.aead != nil
}

// Sign appends an HMAC-SHA256 signature: value + "." + base64url(mac).
func (c *Codec) Sign(value string) string {
	return value + "." + signature(c.secrets[0], value)
}

// Verify splits a signed value on the last dot, recomputes the signature and
// compares it in constant time. Any mismatch yields ErrInvalidSignature; a
// missing half yields ErrInvalidFormat. Fallback secrets are tried so cookies
// signed before a key rotation stay valid.
func (c *Codec) Verify(signed string) (string, error) {
	idx := strings.LastIndex(signed, ".")
	if idx <= 0 || idx == len(signed)-1 {
		return "", ErrInvalidFormat
	}
	value, sig := signed[:idx], signed[idx+1:]

	sigBytes, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, secret := range c.secrets {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte(value))
		if subtle.ConstantTimeCompare(sigBytes, mac.Sum(nil)) == 1 {
			return value, nil
		}
	}

	return "", ErrInvalidSignature
}

// Encrypt seals the value with AES-256-GCM using a fresh random nonce. The
// nonce is prepended to the ciphertext and the whole token is base64url
// encoded, so decryption needs no state beyond the secret.
func (c *Codec) Encrypt(value string) (string, error) {
	if c.aead == nil {
		return "", ErrNoEncryptionSecret
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := c.aead.Seal(nonce, nonce, []byte(value), nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt opens an encrypted token. Every failure mode, whether a bad
// encoding, a truncated nonce or a failed authentication tag, is reported as
// ErrDecryptionFailed so callers gain no signal about what was wrong.
func (c *Codec) Decrypt(token string) (string, error) {
	if c.aead == nil {
		return "", ErrNoEncryptionSecret
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	if len(raw) <= c.aead.NonceSize() {
		return "", ErrDecryptionFailed
	}

	nonce, ciphertext := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrDecryptionFailed
	}

	return string(plaintext), nil
}

func signature(secret, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// newAEAD derives a 32-byte AES key from the encryption secret via
// HKDF-SHA256 and wraps it in GCM.
func newAEAD(secret string) (cipher.AEAD, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
