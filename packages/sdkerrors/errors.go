// Package sdkerrors contains the error kinds returned by the transaction core.
//
// Every error produced by a constructor, serializer or signer of this module can be matched against one of the
// sentinel kinds below with errors.Is. None of them is retryable: callers recover by correcting their inputs.
package sdkerrors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidInput is returned for empty required fields, wrong lengths, malformed hex or out-of-range scalars.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidAddress is returned when an address fails its length, charset, network or checksum checks.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidNamespace is returned for namespace names or paths that do not follow the naming rules.
	ErrInvalidNamespace = errors.New("invalid namespace")
	// ErrInvalidMosaic is returned for malformed mosaic properties.
	ErrInvalidMosaic = errors.New("invalid mosaic")
	// ErrInvalidAggregate is returned when an aggregate envelope cannot be composed.
	ErrInvalidAggregate = errors.New("invalid aggregate")
	// ErrSigningFailed is returned when a payload could not be signed.
	ErrSigningFailed = errors.New("signing failed")
	// ErrMissingGenerationHash is returned when a payload is signed without a generation hash.
	ErrMissingGenerationHash = errors.Wrap(ErrSigningFailed, "missing generation hash")
)

// Reasons reported by ErrInvalidAddress.
const (
	ReasonLength   = "length"
	ReasonCharset  = "charset"
	ReasonChecksum = "checksum"
	ReasonNetwork  = "network"
)

// region ValidationError //////////////////////////////////////////////////////////////////////////////////////////////

// ValidationError is the structured form of the error taxonomy. Kind is one of the sentinel errors of this package.
type ValidationError struct {
	Kind   error
	Field  string
	Reason string
}

// Error returns a human-readable version of the ValidationError.
func (v *ValidationError) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("%s: %s", v.Kind, v.Reason)
	}

	return fmt.Sprintf("%s: %s: %s", v.Kind, v.Field, v.Reason)
}

// Unwrap returns the error kind so that errors.Is matches the sentinel.
func (v *ValidationError) Unwrap() error {
	return v.Kind
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// InvalidInput returns an ErrInvalidInput for the given field.
func InvalidInput(field, format string, args ...interface{}) error {
	return newValidationError(ErrInvalidInput, field, format, args...)
}

// InvalidAddress returns an ErrInvalidAddress with one of the Reason constants.
func InvalidAddress(reason string) error {
	return newValidationError(ErrInvalidAddress, "", reason)
}

// InvalidNamespace returns an ErrInvalidNamespace.
func InvalidNamespace(format string, args ...interface{}) error {
	return newValidationError(ErrInvalidNamespace, "", format, args...)
}

// InvalidMosaic returns an ErrInvalidMosaic.
func InvalidMosaic(format string, args ...interface{}) error {
	return newValidationError(ErrInvalidMosaic, "", format, args...)
}

// InvalidAggregate returns an ErrInvalidAggregate.
func InvalidAggregate(format string, args ...interface{}) error {
	return newValidationError(ErrInvalidAggregate, "", format, args...)
}

// SigningFailed returns an ErrSigningFailed.
func SigningFailed(format string, args ...interface{}) error {
	return newValidationError(ErrSigningFailed, "", format, args...)
}

// Reason extracts the reason of the first ValidationError in the chain of err.
func Reason(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}

	return ""
}

func newValidationError(kind error, field, format string, args ...interface{}) error {
	return errors.WithStack(&ValidationError{
		Kind:   kind,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	})
}
