// Package session carries the identity and credential of the current user.
// Components receive a Session explicitly; there is no ambient singleton.
package session

import "context"

// State describes what the dashboard can do for a session
type State string

const (
	// StateReady means the session has a credential and service views are available
	StateReady State = "ready"
	// StateConfigurationRequired means no API key is configured yet. This is
	// an expected state, not an error; all service operations are gated on it.
	StateConfigurationRequired State = "configuration_required"
)

// Session identifies one authenticated user and their provider credential
type Session struct {
	UserID string
	Email  string
	APIKey string
}

// HasAPIKey reports whether the session carries a provider credential
func (s *Session) HasAPIKey() bool {
	return s != nil && s.APIKey != ""
}

// State returns the dashboard state for this session
func (s *Session) State() State {
	if s.HasAPIKey() {
		return StateReady
	}
	return StateConfigurationRequired
}

// Provider is the boundary to the external authentication service. The
// dashboard consumes identity and credentials from it but does not
// implement authentication itself.
type Provider interface {
	// Current returns the session of the signed-in user, or nil if none
	Current(ctx context.Context) (*Session, error)
	// SignIn exchanges credentials for a session
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignOut invalidates the current session
	SignOut(ctx context.Context) error
	// Refresh re-reads the user's profile and API key
	Refresh(ctx context.Context) (*Session, error)
}

// StaticProvider serves a single fixed session, used for CLI runs and tests
// where identity comes from local configuration instead of an auth service.
type StaticProvider struct {
	Session *Session
}

// NewStaticProvider creates a provider that always returns the given session
func NewStaticProvider(s *Session) *StaticProvider {
	return &StaticProvider{Session: s}
}

func (p *StaticProvider) Current(ctx context.Context) (*Session, error) {
	return p.Session, nil
}

func (p *StaticProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return p.Session, nil
}

func (p *StaticProvider) SignOut(ctx context.Context) error {
	return nil
}

func (p *StaticProvider) Refresh(ctx context.Context) (*Session, error) {
	return p.Session, nil
}
