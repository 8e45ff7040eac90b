package shared

import "errors"

var (
	// ErrNotFound indicates an expected document or ledger row is missing.
	ErrNotFound = errors.New("not found")
	// ErrIOFailure indicates a read/write/rename/delete failure, including zero-byte files.
	ErrIOFailure = errors.New("io failure")
	// ErrUpstream indicates a mail, archive or remote API step failed.
	ErrUpstream = errors.New("upstream failure")
	// ErrInvalidState indicates an operation against a document not in the expected state.
	ErrInvalidState = errors.New("invalid document state")
	// ErrNoValidated indicates a submission was attempted with no validated timecards.
	ErrNoValidated = errors.New("no validated timecards")
	// ErrAlreadySubmitted indicates a pay period was already sent to finance.
	ErrAlreadySubmitted = errors.New("pay period already submitted")
	// ErrInvalidCredentials indicates login or 2FA verification failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPayPeriod indicates a malformed pay period key.
	ErrInvalidPayPeriod = errors.New("invalid pay period")
)
