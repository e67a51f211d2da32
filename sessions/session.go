package sessions

import (
	"time"

	"github.com/jrsteele09/studyflow-auth/users"
)

// Session is the server-side record of one browser login handshake, keyed by its state.
// It moves from unauthenticated to authenticated exactly once and is removed when the
// token is exchanged or after it expires.
type Session struct {
	State           string          // Opaque, unguessable key handed to the client
	RedirectURI     string          // Where the login page sends the browser afterwards, optional
	CreatedAt       time.Time       // When the session was created
	ExpiresAt       time.Time       // CreatedAt plus the session TTL
	IsAuthenticated bool            // Set once credentials are verified
	Identity        *users.Identity // Present only when IsAuthenticated
}

// Live reports whether the session can still be used at the given time.
func (s Session) Live(now time.Time) bool {
	return !now.After(s.ExpiresAt)
}

// TTL is the lifetime the session was created with.
func (s Session) TTL() time.Duration {
	return s.ExpiresAt.Sub(s.CreatedAt)
}

func (s Session) clone() Session {
	c := s
	if s.Identity != nil {
		identity := *s.Identity
		c.Identity = &identity
	}
	return c
}
