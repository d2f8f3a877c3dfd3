package authstate

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeControllerMissing = "AUTH_STATE_MISSING"
	TextCodeNoToken           = "AUTH_NO_TOKEN"
	TextCodeTokenMalformed    = "AUTH_TOKEN_MALFORMED"
	TextCodeTokenExpired      = "AUTH_TOKEN_EXPIRED"
	TextCodeInvalidParams     = "AUTH_INVALID_PARAMS"
	TextCodeAlreadyMounted    = "AUTH_STATE_ALREADY_MOUNTED"
)

// ErrControllerMissing is raised when the auth state is read from a scope
// that was never wrapped with WithController.
var ErrControllerMissing = goerrors.New(
	"auth state missing, did you forget to wrap your context with WithController?",
	goerrors.CategoryInternal,
).WithTextCode(TextCodeControllerMissing).
	WithCode(goerrors.CodeInternal)

// ErrNoToken is returned when a token is required but the collaborator has none
var ErrNoToken = goerrors.New("no session token available", goerrors.CategoryAuth).
	WithTextCode(TextCodeNoToken).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when the session token cannot be decoded
var ErrTokenMalformed = goerrors.New("session token is malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when the session token's exp claim has passed
var ErrTokenExpired = goerrors.New("session token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// IsValidationError reports whether err was produced by parameter validation
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryValidation
}

// IsTokenExpiredError reports whether err comes from an expired session token
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return true
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeTokenExpired
}

// ErrAlreadyMounted is returned by Mount when the controller is already mounted
var ErrAlreadyMounted = goerrors.New("auth state controller is already mounted", goerrors.CategoryConflict).
	WithTextCode(TextCodeAlreadyMounted).
	WithCode(goerrors.CodeConflict)
