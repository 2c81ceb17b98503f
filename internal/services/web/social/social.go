// Package social integrates third-party sign-in providers with the mock auth
// store. Google runs a real OAuth flow to learn the user's email; GitHub is
// mocked outright.
package social

import (
	"fmt"

	"golang.org/x/oauth2"

	"github.com/vpshub/site/internal/platform/id"
	"github.com/vpshub/site/internal/services/web/auth"
)

// Identity is what a provider hands to auth.Store.SocialLogin.
type Identity struct {
	Provider    auth.Provider
	AccessToken string
	Email       string
}

// GitHubIdentity is the mock GitHub sign-in. It carries no token and no
// email, so the store falls back to its defaults.
func GitHubIdentity() Identity {
	return Identity{Provider: auth.ProviderGitHub}
}

// FlowState is the per-attempt secret pair of a Google flow. The token flow
// only uses State.
type FlowState struct {
	State    string
	Verifier string
}

// NewFlowState generates a CSRF state and a PKCE verifier.
func NewFlowState() (FlowState, error) {
	state, err := id.NewID()
	if err != nil {
		return FlowState{}, fmt.Errorf("generate oauth state: %w", err)
	}
	return FlowState{State: state, Verifier: oauth2.GenerateVerifier()}, nil
}
