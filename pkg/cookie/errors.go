package cookie

import "errors"

var (
	ErrNoSecret           = errors.New("cookie.no_secret")
	ErrSecretTooShort     = errors.New("cookie.secret_too_short")
	ErrInvalidFormat      = errors.New("cookie.invalid_format")
	ErrInvalidSignature   = errors.New("cookie.invalid_signature")
	ErrDecryptionFailed   = errors.New("cookie.decryption_failed")
	ErrNoEncryptionSecret = errors.New("cookie.no_encryption_secret")
	ErrCookieNotFound     = errors.New("cookie.not_found")
	ErrNoCodec            = errors.New("cookie.no_codec")
)
