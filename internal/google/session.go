package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// SessionState tracks where an auth session is in the token flow.
type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateTokenPending
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateTokenPending:
		return "token-pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Session is an explicit auth session: unauthenticated until an auth URL
// is issued, token-pending until the code is exchanged, then
// authenticated. Transitions out of order are errors, so callers cannot
// rely on hidden process-wide readiness flags.
type Session struct {
	config *oauth2.Config
	token  *oauth2.Token
	state  SessionState
}

// NewSession creates an unauthenticated session for the given config.
func NewSession(config *oauth2.Config) *Session {
	return &Session{config: config, state: StateUnauthenticated}
}

// State reports the current session state.
func (s *Session) State() SessionState {
	return s.state
}

// AuthURL issues the consent URL the user must visit and moves the
// session to token-pending.
func (s *Session) AuthURL() string {
	s.state = StateTokenPending
	return s.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

// Exchange trades the authorization code for a token. Only valid while
// token-pending.
func (s *Session) Exchange(ctx context.Context, authCode string) error {
	if s.state != StateTokenPending {
		return fmt.Errorf("cannot exchange code in state %s", s.state)
	}
	token, err := s.config.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	s.token = token
	s.state = StateAuthenticated
	return nil
}

// Resume installs a previously saved token, marking the session
// authenticated.
func (s *Session) Resume(token *oauth2.Token) {
	s.token = token
	s.state = StateAuthenticated
}

// Token returns the session token; an error if not authenticated yet.
func (s *Session) Token() (*oauth2.Token, error) {
	if s.state != StateAuthenticated {
		return nil, fmt.Errorf("session is %s, not authenticated", s.state)
	}
	return s.token, nil
}
