package session

import (
	"errors"
	"fmt"
)

// AuthErrorKind classifies a failed login
type AuthErrorKind int

const (
	// InvalidCredentials means the server answered and refused the login
	InvalidCredentials AuthErrorKind = iota
	// NetworkUnreachable means the request never got an answer
	NetworkUnreachable
)

func (k AuthErrorKind) String() string {
	switch k {
	case InvalidCredentials:
		return "invalid credentials"
	case NetworkUnreachable:
		return "network unreachable"
	default:
		return fmt.Sprintf("AuthErrorKind(%d)", int(k))
	}
}

// User-facing messages
const (
	MessageLoginFailed    = "Login failed"
	MessageUnreachable    = "Could not connect to server."
	MessageSessionExpired = "Session expired, please sign in again."
)

// ErrNotLoggedIn is returned by operations that need a session
var ErrNotLoggedIn = errors.New("not logged in")

// AuthError is returned by State.Login. Message is safe to show the user.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed (%s): %s", e.Kind, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsAuthKind reports whether err is an AuthError of the given kind
func IsAuthKind(err error, kind AuthErrorKind) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == kind
}
