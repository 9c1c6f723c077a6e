package bisscrape

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// EFETCH reports a network or HTTP failure while loading a page.
	EFETCH = "fetch_failed"

	// EAUTH reports that the site redirected to a login or consent page and
	// the session needs an interactive authentication step before retrying.
	EAUTH = "needs_interactive_auth"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("bisscrape error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsInvalidURL reports whether err is the failure returned for an empty or
// unparseable href.
func IsInvalidURL(err error) bool {
	return ErrorCode(err) == EINVALID
}

// NeedsInteractiveAuth reports whether err signals a login gate.
func NeedsInteractiveAuth(err error) bool {
	return ErrorCode(err) == EAUTH
}
