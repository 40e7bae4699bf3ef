package auth

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"gestorpro/internal/apperr"
	"gestorpro/internal/database"
	"gestorpro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccounts(t *testing.T, adminPass string) (*Accounts, *database.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := database.NewStore(t.TempDir(), logger)
	require.NoError(t, store.Initialize())
	return NewAccounts(store, "Administrator", adminPass, logger), store
}

func TestRegisterAndLogin(t *testing.T) {
	a, store := newTestAccounts(t, "")

	user, err := a.Register("Ana", "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	users, err := database.GetTable[models.User](store, database.Users)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEqual(t, "s3cret", users[0].Pass)
	assert.True(t, strings.HasPrefix(users[0].Pass, "$2"))

	got, err := a.Login("ANA@example.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Login("ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = a.Login("nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := a.User(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", me.Email)
	_, err = a.User(42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRegisterRejects(t *testing.T) {
	a, _ := newTestAccounts(t, "")
	_, err := a.Register("Ana", "ana@example.com", "x")
	require.NoError(t, err)

	_, err = a.Register("Outra", "Ana@Example.com", "y")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = a.Register("Sem email", " ", "y")
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = a.Register("Sem senha", "b@example.com", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestLegacyPlaintextPasswordIsUpgraded(t *testing.T) {
	a, store := newTestAccounts(t, "")
	require.NoError(t, database.UpdateTable(store, database.Users, []models.User{
		{ID: 1, Name: "Legado", Email: "old@example.com", Pass: "1234"},
	}))

	_, err := a.Login("old@example.com", "123")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := a.Login("old@example.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	users, err := database.GetTable[models.User](store, database.Users)
	require.NoError(t, err)
	assert.True(t, isHash(users[0].Pass))

	_, err = a.Login("old@example.com", "1234")
	assert.NoError(t, err)
}

func TestAdminLogin(t *testing.T) {
	a, _ := newTestAccounts(t, "admin-pass")
	assert.NoError(t, a.AdminLogin("Administrator", "admin-pass"))
	assert.ErrorIs(t, a.AdminLogin("Administrator", "nope"), ErrInvalidCredentials)
	assert.ErrorIs(t, a.AdminLogin("root", "admin-pass"), ErrInvalidCredentials)

	disabled, _ := newTestAccounts(t, "")
	assert.ErrorIs(t, disabled.AdminLogin("Administrator", ""), ErrInvalidCredentials)
}
