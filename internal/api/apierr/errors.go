package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
)

// ErrorResponse is the body of every API error. Clients display Error as-is.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeBadQuery           = "BAD_QUERY"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an ErrorResponse
type httpError struct {
	status int
	body   ErrorResponse
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.body.Error
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(he.body)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, roster.ErrBadQuery):
		return &httpError{http.StatusBadRequest, ErrorResponse{"Invalid search query", CodeBadQuery}}
	case errors.Is(err, roster.ErrStoreUnavailable):
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Player search is temporarily unavailable", CodeStoreUnavailable}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, ErrorResponse{"Player not found", CodePlayerNotFound}}

	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, ErrorResponse{"Invalid email or password", CodeInvalidCredentials}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, ErrorResponse{"Invalid or expired session", CodeUnauthorized}}
	case errors.Is(err, auth.ErrEmailExists):
		return &httpError{http.StatusConflict, ErrorResponse{"Email already registered", CodeEmailExists}}

	default:
		return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, ErrorResponse{message, CodeInvalidRequest}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, ErrorResponse{"Authentication required", CodeUnauthorized}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, ErrorResponse{"Internal server error", CodeInternalError}}
}
