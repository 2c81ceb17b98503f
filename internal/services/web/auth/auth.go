// Package auth is the mock authentication state store. It fabricates tokens,
// persists the signed-in user in visitor storage, and never talks to a real
// identity backend.
package auth

import (
	"fmt"
	"strings"

	apperrors "github.com/vpshub/site/internal/services/web/platform/errors"
)

// Storage keys for the persisted auth state.
const (
	TokenKey = "vpshub_auth_token"
	UserKey  = "vpshub_auth_user"
)

// Provider names a social login provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// ParseProvider validates a provider name.
func ParseProvider(value string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(value))); p {
	case ProviderGoogle, ProviderGitHub:
		return p, nil
	}
	return "", apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("unsupported social provider %q", value))
}

// User is the persisted signed-in user.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// State is the auth state a visitor currently has. IsAuthenticated is true
// only when both User and Token are set.
type State struct {
	User            *User
	Token           string
	IsAuthenticated bool
}

// Session is the result of a successful login.
type Session struct {
	User  User
	Token string
}

func unauthenticated() State {
	return State{}
}
