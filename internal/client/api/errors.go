package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Fallback messages shown when a mutation fails without a server message.
const (
	MsgSignInFailed  = "Login failed. Please try again."
	MsgSignUpFailed  = "Sign up failed. Please try again."
	MsgSignOutFailed = "Sign out failed. Please try again."
	MsgUnexpected    = "An unexpected error occurred. Please try again."
)

// APIError is a non-2xx response decoded from {"code","message"}.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// IsUnauthenticated reports whether err is a 401 from the server, meaning
// the stored token is no longer valid.
func IsUnauthenticated(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// FriendlyError carries a message fit for display and keeps the original
// error for errors.As.
type FriendlyError struct {
	Message string
	Err     error
}

func (e *FriendlyError) Error() string { return e.Message }
func (e *FriendlyError) Unwrap() error { return e.Err }

// friendly replaces err with a display message: the server's message when
// it sent one, fallback for a bare API error, MsgUnexpected otherwise.
func friendly(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return &FriendlyError{Message: msg, Err: err}
	}
	return &FriendlyError{Message: MsgUnexpected, Err: err}
}
