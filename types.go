package authstate

import (
	"fmt"
	"reflect"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// User is the opaque profile record returned by the identity backend
type User interface {
	GetID() string
}

// Token is the raw session credential. An empty token means unauthenticated.
type Token string

// Valid reports whether the token is present
func (t Token) Valid() bool {
	return t != ""
}

// DefaultUser is a minimal User implementation
type DefaultUser struct {
	ID    string         `json:"id,omitempty"`
	Email string         `json:"email,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

func (u *DefaultUser) GetID() string {
	if u == nil {
		return ""
	}
	return u.ID
}

func (u *DefaultUser) GetEmail() string {
	if u == nil {
		return ""
	}
	return u.Email
}

// AuthParams carries credentials for sign up and log in
type AuthParams struct {
	Email        string         `json:"email,omitempty"`
	Password     string         `json:"password,omitempty"`
	Provider     string         `json:"provider,omitempty"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	OTP          string         `json:"otp,omitempty"`
	Extra        map[string]any `json:"extra,omitempty"`
}

// OtpParams carries a one time password (2fa) verification request
type OtpParams struct {
	AuthParams
}

// ResetPasswordParams requests a password reset for an email
type ResetPasswordParams struct {
	Email string `json:"email"`
}

// UpdatePasswordParams sets a new password
type UpdatePasswordParams struct {
	Password string `json:"password"`
}

// AuthOptions are per-call options forwarded to the collaborator
type AuthOptions struct {
	// RedirectTo is the url to redirect to after social or magic link login.
	RedirectTo string         `json:"redirect_to,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// AuthStateChangeFunc is handed to OnAuthStateChange. A nil user means signed out.
type AuthStateChangeFunc func(user User)

// Listener receives a state snapshot after every mutation
type Listener func(state State)

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// isNilUser catches typed nil pointers wrapped in the User interface
func isNilUser(u User) bool {
	if u == nil {
		return true
	}
	v := reflect.ValueOf(u)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
