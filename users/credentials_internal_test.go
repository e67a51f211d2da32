package users

import (
	"testing"

	"github.com/stretchr/testify/require"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
)

type mapRepo map[string]*User

func (m mapRepo) GetByUsername(username string) (*User, error) {
	if u, ok := m[username]; ok {
		return u, nil
	}
	return nil, autherrors.ErrUserNotFound
}

func (m mapRepo) Upsert(u *User) error {
	m[u.Username] = u
	return nil
}

func (m mapRepo) Delete(username string) error {
	delete(m, username)
	return nil
}

func (m mapRepo) List() ([]*User, error) {
	list := make([]*User, 0, len(m))
	for _, u := range m {
		list = append(list, u)
	}
	return list, nil
}

func TestVerifyCredentials_UnknownUserStillComparesHash(t *testing.T) {
	repo := mapRepo{}
	require.NoError(t, Seed(repo, map[string]string{"demo": "password123"}, "example.com"))

	var hashes []string
	v := NewRepoVerifier(repo)
	v.check = func(password, hash string) bool {
		hashes = append(hashes, hash)
		return CheckPasswordHash(password, hash)
	}

	require.False(t, v.VerifyCredentials("ghost", "password123"))
	require.Len(t, hashes, 1, "unknown users must pay for a bcrypt comparison")
	require.Equal(t, unknownUserHash(), hashes[0])

	require.False(t, v.VerifyCredentials("demo", "wrong"))
	require.True(t, v.VerifyCredentials("demo", "password123"))
	require.Len(t, hashes, 3)
	require.Equal(t, repo["demo"].PasswordHash, hashes[2])

	require.False(t, v.VerifyCredentials("", "password123"))
	require.Len(t, hashes, 3)
}
