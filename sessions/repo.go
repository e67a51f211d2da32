package sessions

import "github.com/jrsteele09/studyflow-auth/users"

// Repo stores login sessions. Implementations must be safe for concurrent use and
// must never return an expired session.
type Repo interface {
	// Create stores a fresh unauthenticated session and returns a copy of it
	Create(redirectURI string) (Session, error)

	// Get returns a copy of a live session, or ErrSessionNotFound
	Get(state string) (Session, error)

	// MarkAuthenticated attaches identity to a live session
	MarkAuthenticated(state string, identity users.Identity) error

	// Remove deletes a session and reports whether it existed
	Remove(state string) bool

	// DeleteExpired removes every expired session and returns how many were removed
	DeleteExpired() int

	// Len returns the number of stored sessions, expired or not
	Len() int
}
