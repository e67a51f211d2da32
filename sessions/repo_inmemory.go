package sessions

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/thejerf/abtime"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/users"
)

const DefaultTimeout = 5 * time.Minute

type InMemorySettings struct {
	Timeout time.Duration
	abtime.AbstractTime
	// GenerateState defaults to GenerateState.
	GenerateState func() (string, error)
}

// InMemoryRepo keeps sessions in a map guarded by a RWMutex. Expired entries are
// evicted lazily on lookup and in bulk by DeleteExpired.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	*InMemorySettings
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo returns an empty repo. The settings must not be modified afterwards.
func NewInMemoryRepo(settings *InMemorySettings) *InMemoryRepo {
	if settings == nil {
		settings = &InMemorySettings{}
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}
	if settings.AbstractTime == nil {
		settings.AbstractTime = abtime.NewRealTime()
	}
	if settings.GenerateState == nil {
		settings.GenerateState = GenerateState
	}
	return &InMemoryRepo{
		sessions:         make(map[string]*Session),
		InMemorySettings: settings,
	}
}

func (r *InMemoryRepo) Create(redirectURI string) (Session, error) {
	state, err := r.GenerateState()
	if err != nil {
		return Session{}, errors.Wrap(err, "[InMemoryRepo.Create]")
	}

	now := r.Now()
	s := &Session{
		State:       state,
		RedirectURI: redirectURI,
		CreatedAt:   now,
		ExpiresAt:   now.Add(r.Timeout),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[state]; exists {
		return Session{}, errors.New("[InMemoryRepo.Create] state collision")
	}
	r.sessions[state] = s
	return s.clone(), nil
}

func (r *InMemoryRepo) Get(state string) (Session, error) {
	now := r.Now()

	r.mu.RLock()
	s, ok := r.sessions[state]
	if ok && s.Live(now) {
		c := s.clone()
		r.mu.RUnlock()
		return c, nil
	}
	r.mu.RUnlock()

	if ok {
		r.evict(state, now)
	}
	return Session{}, autherrors.ErrSessionNotFound
}

func (r *InMemoryRepo) MarkAuthenticated(state string, identity users.Identity) error {
	if !identity.Valid() {
		return autherrors.ErrInvalidIdentity
	}
	now := r.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[state]
	if !ok {
		return autherrors.ErrSessionNotFound
	}
	if !s.Live(now) {
		delete(r.sessions, state)
		return autherrors.ErrSessionExpired
	}
	s.IsAuthenticated = true
	s.Identity = &identity
	return nil
}

func (r *InMemoryRepo) Remove(state string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[state]; !ok {
		return false
	}
	delete(r.sessions, state)
	return true
}

func (r *InMemoryRepo) DeleteExpired() int {
	now := r.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for state, s := range r.sessions {
		if !s.Live(now) {
			delete(r.sessions, state)
			removed++
		}
	}
	return removed
}

func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// evict deletes state if it is still expired once the write lock is held.
func (r *InMemoryRepo) evict(state string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[state]; ok && !s.Live(now) {
		delete(r.sessions, state)
	}
}
