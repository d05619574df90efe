package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInactiveProfile    = errors.New("inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidField       = errors.New("invalid field")

	// Validation rule violations surfaced to the editing user.
	ErrShippedNeedsTracking = errors.New("carrier and tracking number required for shipped")
	ErrIssueNeedsReason     = errors.New("issue reason required for issue status")
)
