package models

import "time"

// SessionState is the authentication state of a session.
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is the server-side record behind a session cookie.
// UserID is meaningful only in StateAuthenticated.
type Session struct {
	ID        string       `json:"id"`
	State     SessionState `json:"state"`
	UserID    int          `json:"user_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewSession returns an anonymous session.
func NewSession(id string, now time.Time) Session {
	return Session{ID: id, State: StateAnonymous, CreatedAt: now.UTC()}
}

// IsAuthenticated reports whether a user is bound to the session.
func (s Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated
}

// Login binds userID to the session. Logging in on an authenticated
// session rebinds it to the new user.
func (s Session) Login(userID int) Session {
	s.State = StateAuthenticated
	s.UserID = userID
	return s
}

// LoginFailed leaves the session untouched: a failed attempt neither
// authenticates an anonymous session nor demotes an authenticated one.
func (s Session) LoginFailed() Session {
	return s
}

// Logout drops the user binding.
func (s Session) Logout() Session {
	s.State = StateAnonymous
	s.UserID = 0
	return s
}
