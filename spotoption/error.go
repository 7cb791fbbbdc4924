package spotoption

import (
	"errors"
	"fmt"

	"github.com/healthimation/go-glitch/glitch"
)

// Error codes
const (
	ErrorConnectionFailure = "ERROR_CONNECTION_FAILURE"
	ErrorMalformedPayload  = "ERROR_MALFORMED_PAYLOAD"
	ErrorMissingField      = "ERROR_MISSING_FIELD"
	ErrorTypeMismatch      = "ERROR_TYPE_MISMATCH"
	ErrorInvalidRequest    = "ERROR_INVALID_REQUEST"
)

var (
	ErrMalformedPayload = errors.New("malformed payload")
	ErrMissingField     = errors.New("missing field")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrNilRequest       = errors.New("nil request")
)

// ErrorCode returns the glitch code carried by err, or an empty string when err
// did not come from this package.
func ErrorCode(err error) string {
	var dataErr glitch.DataError
	if errors.As(err, &dataErr) {
		return dataErr.Code()
	}
	return ""
}

func malformedPayload(inner error, msg string) glitch.DataError {
	if inner == nil {
		inner = ErrMalformedPayload
	}
	return glitch.NewDataError(inner, ErrorMalformedPayload, msg)
}

func missingField(path string) glitch.DataError {
	return glitch.NewDataError(ErrMissingField, ErrorMissingField, fmt.Sprintf("required field %s is missing", path))
}

func typeMismatch(path string, want string, got interface{}) glitch.DataError {
	return glitch.NewDataError(ErrTypeMismatch, ErrorTypeMismatch, fmt.Sprintf("field %s: cannot use %T value as %s", path, got, want))
}
