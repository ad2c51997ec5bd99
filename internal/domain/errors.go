// Package domain holds the error taxonomy shared across storage, services
// and the web boundary. Errors are matched with errors.Is and mapped to
// HTTP status codes only in webapi; nothing below the boundary knows
// about status codes.
package domain

import "errors"

// Generic classes. Specific sentinels below wrap one of these so callers
// can match either the exact condition or the class.
var (
	// ErrNotFound is returned when a requested resource does not exist
	// or is not visible to the requester.
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when creating a resource that already exists.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input fails a business rule.
	ErrValidation = errors.New("validation error")
	// ErrUnauthenticated is returned on missing/invalid/expired credentials.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the requester may not perform the action.
	ErrForbidden = errors.New("forbidden")
)

// wrap builds a sentinel that matches both itself and its class.
func wrap(class error, msg string) error {
	return sentinel{msg: msg, class: class}
}

type sentinel struct {
	msg   string
	class error
}

func (e sentinel) Error() string { return e.msg }
func (e sentinel) Unwrap() error { return e.class }

// User and auth conditions.
var (
	ErrUserNotFound  = wrap(ErrNotFound, "user not found")
	ErrUsernameTaken = wrap(ErrAlreadyExists, "username already registered")
	ErrEmailTaken    = wrap(ErrAlreadyExists, "email already registered")
)

// Home and membership conditions.
var (
	ErrHomeNotFound       = wrap(ErrNotFound, "home not found")
	ErrHomeNameTaken      = wrap(ErrAlreadyExists, "home name already taken")
	ErrAlreadyInHome      = wrap(ErrValidation, "user already belongs to a home")
	ErrNoHome             = wrap(ErrValidation, "user does not belong to a home")
	ErrNotLeader          = wrap(ErrForbidden, "only the home leader may do this")
	ErrLeaderCannotLeave  = wrap(ErrValidation, "leader cannot leave while other members remain")
	ErrCannotRemoveLeader = wrap(ErrValidation, "the home leader cannot be removed")
)

// Join request conditions.
var (
	ErrRequestNotFound      = wrap(ErrNotFound, "join request not found")
	ErrRequestAlreadyExists = wrap(ErrAlreadyExists, "a pending join request already exists")
	ErrRequestNotPending    = wrap(ErrValidation, "join request already processed")
)

// Ledger and transfer conditions.
var (
	ErrEntryNotFound         = wrap(ErrNotFound, "contribution not found")
	ErrNonPositiveAmount     = wrap(ErrValidation, "amount must be positive")
	ErrSelfTransfer          = wrap(ErrValidation, "cannot transfer to yourself")
	ErrCrossHomeTransfer     = wrap(ErrValidation, "users must belong to the same home to transfer money")
	ErrSenderAboveAverage    = wrap(ErrValidation, "only users with below-average contributions can give money to others")
	ErrRecipientBelowAverage = wrap(ErrValidation, "you can only transfer money to users with above-average contributions")
	ErrInsufficientFunds     = wrap(ErrValidation, "cannot transfer more than your total contributions")
)
