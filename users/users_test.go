package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/users"
	fakeuserrepo "github.com/jrsteele09/studyflow-auth/users/repofake"
)

func TestEmailFor(t *testing.T) {
	require.Equal(t, "demo@example.com", users.EmailFor("demo", ""))
	require.Equal(t, "demo@studyflow.test", users.EmailFor("demo", "studyflow.test"))
	require.Equal(t, "demo@studyflow.test", users.EmailFor("demo", "@studyflow.test"))
}

func TestIdentityValid(t *testing.T) {
	require.True(t, users.Identity{ID: "1", Username: "demo"}.Valid())
	require.False(t, users.Identity{Username: "demo"}.Valid())
	require.False(t, users.Identity{ID: "1"}.Valid())
}

func TestRepoVerifier(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, users.Seed(repo, users.DemoCredentials, "example.com"))
	verifier := users.NewRepoVerifier(repo)

	t.Run("demo users verify", func(t *testing.T) {
		for username, password := range users.DemoCredentials {
			require.True(t, verifier.VerifyCredentials(username, password), username)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		require.False(t, verifier.VerifyCredentials("demo", "wrong"))
	})

	t.Run("passwords are not interchangeable", func(t *testing.T) {
		require.False(t, verifier.VerifyCredentials("demo", "admin123"))
	})

	t.Run("unknown user", func(t *testing.T) {
		require.False(t, verifier.VerifyCredentials("nobody", "password123"))
	})

	t.Run("empty input", func(t *testing.T) {
		require.False(t, verifier.VerifyCredentials("", ""))
		require.False(t, verifier.VerifyCredentials("demo", ""))
	})
}

func TestSeed_StoresHashesNotPasswords(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()
	require.NoError(t, users.Seed(repo, map[string]string{"demo": "password123"}, "example.com"))

	u, err := repo.GetByUsername("demo")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "demo@example.com", u.Email)
	require.NotEqual(t, "password123", u.PasswordHash)
	require.True(t, users.CheckPasswordHash("password123", u.PasswordHash))
}

func TestFakeUserRepo(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()

	_, err := repo.GetByUsername("demo")
	require.ErrorIs(t, err, autherrors.ErrUserNotFound)

	require.NoError(t, repo.Upsert(&users.User{Username: "b"}))
	require.NoError(t, repo.Upsert(&users.User{Username: "a"}))

	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].Username)

	// returned values are copies
	list[0].Email = "changed@example.com"
	u, err := repo.GetByUsername("a")
	require.NoError(t, err)
	require.Empty(t, u.Email)

	require.NoError(t, repo.Delete("a"))
	require.ErrorIs(t, repo.Delete("a"), autherrors.ErrUserNotFound)
}
