package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/repository/memory"
	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

func newAuthUC(store *memory.Store) *AuthUsecase {
	return NewAuthUsecase(store, dec("10000"), zap.NewNop())
}

func TestRegister(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	user, err := uc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Regexp(t, `^MKEY-[0-9A-Z]{16}$`, user.WalletAddress)
	assert.True(t, dec("10000").Equal(user.Balance))
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Str0ng!Pass", user.PasswordHash)
}

func TestRegister_WeakPassword(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.Register(context.Background(), "alice", "alice@example.com", "weak")

	var validation *xerrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.NotEmpty(t, validation.Errors)
}

func TestRegister_DuplicateEmailAndUsername(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), "alice2", "alice@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, xerrors.ErrEmailAlreadyInUse)

	_, err = uc.Register(context.Background(), "alice", "alice2@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, xerrors.ErrUsernameAlreadyTaken)
}

func TestLogin(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	created, err := uc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	user, err := uc.Login(context.Background(), "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	require.NotNil(t, user.LastLogin)

	// lastLogin persisted, not just echoed.
	stored, err := store.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestLogin_BadCredentials(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), "nobody@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, xerrors.ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	user, err := uc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	store.SetActive(user.ID, false)

	_, err = uc.Login(context.Background(), "alice@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, xerrors.ErrAccountDeactivated)
}

func TestProfile(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	created, err := uc.Register(context.Background(), "alice", "alice@example.com", "Str0ng!Pass")
	require.NoError(t, err)

	user, err := uc.Profile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = uc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, xerrors.ErrUserNotFound)
}
