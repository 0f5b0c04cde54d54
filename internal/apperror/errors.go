// Package apperror defines the error kinds surfaced by the storefront
// services. Handlers translate kinds into HTTP statuses.
package apperror

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("unauthorized")
	ErrNotFound   = errors.New("not found")
	ErrEmptyCart  = errors.New("cart is empty")
)

// Error pairs a kind with a stable code. The code doubles as the i18n
// message id and the "error" field of JSON responses.
type Error struct {
	Kind error
	Code string
}

func (e *Error) Error() string {
	return e.Kind.Error() + ": " + e.Code
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(code string) error { return &Error{Kind: ErrValidation, Code: code} }
func Conflict(code string) error   { return &Error{Kind: ErrConflict, Code: code} }
func Auth(code string) error       { return &Error{Kind: ErrAuth, Code: code} }
func NotFound(code string) error   { return &Error{Kind: ErrNotFound, Code: code} }
func EmptyCart() error             { return &Error{Kind: ErrEmptyCart, Code: "cart_empty"} }

// Code returns the code of the first *Error in err's chain, or "" if none.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
