package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
	"github.com/LazorAmorie/Masterkey.01/internal/repository"
	"github.com/LazorAmorie/Masterkey.01/pkg/id"
	"github.com/LazorAmorie/Masterkey.01/pkg/password"
	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

type AuthUsecase struct {
	users          repository.UserStore
	defaultBalance decimal.Decimal
	logger         *zap.Logger
}

func NewAuthUsecase(users repository.UserStore, defaultBalance decimal.Decimal, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:          users,
		defaultBalance: defaultBalance,
		logger:         logger,
	}
}

// Register creates a new account with a generated wallet address and the
// configured starting balance.
func (uc *AuthUsecase) Register(ctx context.Context, username, email, plainPassword string) (*domain.User, error) {
	if violations := password.ValidatePolicy(plainPassword); len(violations) > 0 {
		return nil, xerrors.NewValidationError("Validation error", violations)
	}

	// Pre-checks give friendlier conflicts; the unique indexes are the
	// backstop under concurrent signups.
	if _, err := uc.users.GetUserByEmail(ctx, email); err == nil {
		return nil, xerrors.ErrEmailAlreadyInUse
	}
	if _, err := uc.users.GetUserByUsername(ctx, username); err == nil {
		return nil, xerrors.ErrUsernameAlreadyTaken
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:            uuid.NewString(),
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		WalletAddress: id.GenerateWalletAddress(),
		Balance:       uc.defaultBalance,
		IsActive:      true,
	}

	if err := uc.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	uc.logger.Info("new user registered", zap.String("email", email))
	return user, nil
}

// Login authenticates by email and password and stamps lastLogin.
func (uc *AuthUsecase) Login(ctx context.Context, email, plainPassword string) (*domain.User, error) {
	user, err := uc.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, xerrors.ErrAccountDeactivated
	}

	if !password.Verify(plainPassword, user.PasswordHash) {
		return nil, xerrors.ErrInvalidCredentials
	}

	now := time.Now()
	if err := uc.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLogin = &now

	uc.logger.Info("user logged in", zap.String("email", email))
	return user, nil
}

// Profile returns the account's public fields.
func (uc *AuthUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetUserByID(ctx, userID)
}
