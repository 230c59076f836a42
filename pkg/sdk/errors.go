package labdex

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/labdex/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// An *APIError matches them through errors.Is by its response code.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrInvalidPage   = domain.ErrInvalidPage
	ErrInvalidFilter = domain.ErrInvalidFilter
)

var (
	// ErrUnexpectedStatus is matched by every *APIError.
	ErrUnexpectedStatus = errors.New("labdex: unexpected status")
	// ErrUnauthorized signals a missing or rejected API key.
	ErrUnauthorized = errors.New("labdex: unauthorized")
	// ErrUnknownOrganisation is returned by Browser for an id outside the loaded list.
	ErrUnknownOrganisation = errors.New("labdex: unknown organisation")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("labdex: status %d", e.StatusCode)
	}
	return fmt.Sprintf("labdex: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return ErrUnexpectedStatus }

// Is maps the server error code onto the exported sentinels.
func (e *APIError) Is(target error) bool {
	switch e.Code {
	case "not_found":
		return target == ErrNotFound
	case "invalid_page":
		return target == ErrInvalidPage
	case "invalid_filter":
		return target == ErrInvalidFilter
	case "unauthorized":
		return target == ErrUnauthorized
	}
	return false
}

// errorBody is the server's error document.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
