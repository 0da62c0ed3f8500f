package execerrors

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// FatalError is an unrecoverable failure raised while pulling records from an
// operator. It records the operator that first observed the failure; ancestors
// pass it through unchanged so the origin survives up to the caller.
type FatalError struct {
	error

	// OperatorKind is the kind of the operator that failed, e.g. "SemiApply".
	OperatorKind string

	// OperatorID is the unique ID of the failing operator within its plan.
	OperatorID string
}

// NewFatalError wraps err as a FatalError raised by the given operator. If err
// already is (or wraps) a FatalError it is returned unchanged.
func NewFatalError(err error, operatorKind, operatorID string) error {
	if err == nil {
		return nil
	}

	if _, ok := AsFatalError(err); ok {
		return err
	}

	return &FatalError{err, operatorKind, operatorID}
}

func (err *FatalError) Error() string {
	return fmt.Sprintf("%s operator %s failed: %s", err.OperatorKind, err.OperatorID, err.error.Error())
}

// Unwrap returns the inner, wrapped error.
func (err *FatalError) Unwrap() error {
	return err.error
}

func (err *FatalError) MarshalZerologObject(e *zerolog.Event) {
	e.Err(err.error).Str("kind", err.OperatorKind).Str("id", err.OperatorID)
}

// DetailsMetadata returns the metadata for details for this error.
func (err *FatalError) DetailsMetadata() map[string]string {
	return map[string]string{
		"operator_kind": err.OperatorKind,
		"operator_id":   err.OperatorID,
	}
}

// AsFatalError returns the error as a FatalError, if applicable.
func AsFatalError(err error) (*FatalError, bool) {
	var ferr *FatalError
	if errors.As(err, &ferr) {
		return ferr, true
	}
	return nil, false
}
