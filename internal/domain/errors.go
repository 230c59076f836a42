package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrOrganisationNotFound signals an unknown organisation id.
	ErrOrganisationNotFound = fmt.Errorf("organisation %w", ErrNotFound)
	// ErrInvalidPage signals a page parameter that is not a positive integer.
	ErrInvalidPage = errors.New("invalid page")
	// ErrInvalidFilter signals a malformed filter parameter.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrQueryFailed signals a failure in the query executor.
	ErrQueryFailed = errors.New("query failed")
)

// ParamError wraps a parameter sentinel with the offending parameter and value.
type ParamError struct {
	Kind  error
	Param string
	Value string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%q", e.Kind.Error(), e.Param, e.Value)
}

func (e *ParamError) Unwrap() error { return e.Kind }

// NewParamError creates a parameter error of the given kind.
func NewParamError(kind error, param, value string) error {
	return &ParamError{Kind: kind, Param: param, Value: value}
}
