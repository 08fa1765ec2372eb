package service

import (
	"errors"

	"github.com/MKhiriev/go-data-hub/internal/validators"
)

var (
	// ErrNotFound is returned when a key lookup matched no record.
	ErrNotFound = errors.New("record not found")

	ErrNotLoggedIn    = errors.New("not logged in")
	ErrAccessDenied   = errors.New("e-mail is not authorized")
	ErrSelfRemoval    = errors.New("cannot remove your own access")
	ErrUnknownTable   = errors.New("unknown table")
	ErrEmptyRecord    = errors.New("record has no values")
	ErrInvalidSession = errors.New("invalid session token")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = validators.ErrValidation
)

// ValidationError lists the required fields a submission left empty. It is
// raised before any store call.
type ValidationError = validators.ValidationError
