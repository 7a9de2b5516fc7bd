package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidEdit     = errors.New("invalid edit")
	ErrInvalidEncoding = errors.New("invalid encoding")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrExecution       = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindIndexOutOfRange  ErrorKind = "index_out_of_range"
	KindPermissionDenied ErrorKind = "permission_denied"
	KindIOFailure        ErrorKind = "io_failure"
	KindInvalidEncoding  ErrorKind = "invalid_encoding"
	KindInvalidEdit      ErrorKind = "invalid_edit"
	KindInvalidConfig    ErrorKind = "invalid_config"
	KindExecution        ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// IsIOFailure reports whether err belongs to the read/write failure family
// (permission problems included).
func IsIOFailure(err error) bool {
	return IsKind(err, KindIOFailure) || IsKind(err, KindPermissionDenied)
}
