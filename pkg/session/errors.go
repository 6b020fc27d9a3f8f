package session

import "errors"

var (
	// ErrNilSession indicates a nil session was passed to a store operation
	ErrNilSession = errors.New("session.nil_session")

	// ErrRecordNotFound indicates the backend has no live record for the id
	ErrRecordNotFound = errors.New("session.record_not_found")

	// ErrRecordInvalid indicates a stored record could not be decoded
	ErrRecordInvalid = errors.New("session.record_invalid")

	// ErrRecordExpired indicates a record's expiry is already in the past
	ErrRecordExpired = errors.New("session.record_expired")

	// ErrInvalidTable indicates an unsafe table name was supplied
	ErrInvalidTable = errors.New("session.invalid_table_name")
)
