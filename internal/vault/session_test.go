package vault

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginTestSession(t *testing.T) *Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "work.db")
	db, err := Create(t.Context(), path, []byte("open sesame"), cheapParams)
	require.NoError(t, err)
	require.NoError(t, db.Add("github", []byte("ghp_token")))
	require.NoError(t, db.Close())

	session, err := Login(t.Context(), "work", path, []byte("open sesame"))
	require.NoError(t, err)
	t.Cleanup(session.Logout)
	return session
}

func TestLoginWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.db")
	db, err := Create(t.Context(), path, []byte("right"), cheapParams)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Login(t.Context(), "work", path, []byte("wrong"))
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestLoginMissingDatabase(t *testing.T) {
	_, err := Login(t.Context(), "work", filepath.Join(t.TempDir(), "absent.db"), []byte("pw"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionOperations(t *testing.T) {
	session := loginTestSession(t)
	assert.Equal(t, "work", session.Profile())

	require.NoError(t, session.Add("aws", []byte("AKIA...")))

	labels, err := session.Labels()
	require.NoError(t, err)
	assert.Equal(t, []string{"github", "aws"}, labels)

	secret, err := session.Reveal("aws")
	require.NoError(t, err)
	assert.Equal(t, []byte("AKIA..."), secret)
	Zero(secret)

	require.NoError(t, session.Remove("aws"))
	_, err = session.Reveal("aws")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRevealReturnsFreshCopies(t *testing.T) {
	session := loginTestSession(t)

	first, err := session.Reveal("github")
	require.NoError(t, err)

	// Consumer wipes its copy; the store must not be affected
	Zero(first)

	second, err := session.Reveal("github")
	require.NoError(t, err)
	assert.Equal(t, []byte("ghp_token"), second)
	Zero(second)
}

func TestLogoutErasesKeyAndBlocksOps(t *testing.T) {
	session := loginTestSession(t)
	key := session.db.key

	session.Logout()

	for _, b := range key {
		require.Zero(t, b, "derived key not erased on logout")
	}

	assert.ErrorIs(t, session.Add("x", []byte("y")), ErrNoSession)
	_, err := session.Reveal("github")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = session.Labels()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, session.Remove("github"), ErrNoSession)

	// Logout is safe to repeat
	session.Logout()
}

func TestLogoutReleasesDatabaseLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.db")
	db, err := Create(t.Context(), path, []byte("pw123"), cheapParams)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	session, err := Login(t.Context(), "work", path, []byte("pw123"))
	require.NoError(t, err)

	_, err = Login(t.Context(), "work", path, []byte("pw123"))
	assert.ErrorIs(t, err, ErrBusy)

	session.Logout()

	again, err := Login(t.Context(), "work", path, []byte("pw123"))
	require.NoError(t, err)
	again.Logout()
}
