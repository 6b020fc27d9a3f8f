package csrf

import "errors"

var (
	ErrNoSecret       = errors.New("csrf.missing_secret")
	ErrSecretTooShort = errors.New("csrf.secret_too_short")
	ErrDisabled       = errors.New("csrf.disabled")
)
