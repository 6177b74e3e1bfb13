// Package faults carries the error codes shared by the services so
// controllers can map them to HTTP statuses.
package faults

import "errors"

type Code string

const (
	Validation   Code = "VALIDATION"
	NotFound     Code = "NOT_FOUND"
	InvalidState Code = "INVALID_STATE"
	Unavailable  Code = "UNAVAILABLE"
	Payment      Code = "PAYMENT_FAILED"
	Forbidden    Code = "FORBIDDEN"
)

type codedError struct {
	code  Code
	msg   string
	cause error
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}

func (e codedError) Unwrap() error { return e.cause }
func (e codedError) Code() Code    { return e.code }

func New(c Code, msg string) error { return codedError{code: c, msg: msg} }

func Wrap(c Code, msg string, cause error) error {
	return codedError{code: c, msg: msg, cause: cause}
}

// CodeOf extracts the error code, or "" for uncoded errors.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

func Is(err error, c Code) bool { return CodeOf(err) == c }
