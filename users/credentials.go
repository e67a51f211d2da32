package users

import (
	"sync"

	"github.com/pkg/errors"
)

// CredentialVerifier answers whether a username/password pair is valid.
type CredentialVerifier interface {
	VerifyCredentials(username, password string) bool
}

// DemoCredentials are the accounts seeded into a fresh store.
var DemoCredentials = map[string]string{
	"demo":  "password123",
	"user1": "pass123",
	"admin": "admin123",
}

// RepoVerifier checks credentials against the bcrypt hashes held by a UserRepo.
// Unknown usernames are compared against a dummy hash so they cost the same as a wrong password.
type RepoVerifier struct {
	repo  UserRepo
	check func(password, hash string) bool
}

var _ CredentialVerifier = (*RepoVerifier)(nil)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

func unknownUserHash() string {
	dummyHashOnce.Do(func() {
		hash, err := HashPassword("studyflow-unknown-user")
		if err != nil {
			panic(errors.Wrap(err, "[users.unknownUserHash]"))
		}
		dummyHash = hash
	})
	return dummyHash
}

func NewRepoVerifier(repo UserRepo) *RepoVerifier {
	return &RepoVerifier{repo: repo, check: CheckPasswordHash}
}

func (v *RepoVerifier) VerifyCredentials(username, password string) bool {
	if username == "" || password == "" {
		return false
	}
	user, err := v.repo.GetByUsername(username)
	if err != nil || user == nil {
		v.check(password, unknownUserHash())
		return false
	}
	return v.check(password, user.PasswordHash)
}

// Seed hashes and stores each username/password pair. Emails are derived from emailDomain.
func Seed(repo UserRepo, credentials map[string]string, emailDomain string) error {
	for username, password := range credentials {
		hash, err := HashPassword(password)
		if err != nil {
			return errors.Wrapf(err, "[users.Seed] hashing password for %s", username)
		}
		user := &User{
			Username:     username,
			Email:        EmailFor(username, emailDomain),
			PasswordHash: hash,
		}
		if err := repo.Upsert(user); err != nil {
			return errors.Wrapf(err, "[users.Seed] storing %s", username)
		}
	}
	return nil
}
