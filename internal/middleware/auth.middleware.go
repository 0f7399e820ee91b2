package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/repository"
	"github.com/LazorAmorie/Masterkey.01/pkg/jwtutil"
	"github.com/LazorAmorie/Masterkey.01/pkg/response"
	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

// AuthMiddleware verifies the bearer token, loads the account it names and
// gates on isActive. The database is the source of truth: a valid token for
// a deleted or deactivated account is still rejected.
type AuthMiddleware struct {
	verifier *jwtutil.Verifier
	users    repository.UserStore
	logger   *zap.Logger
}

func NewAuthMiddleware(verifier *jwtutil.Verifier, users repository.UserStore, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

func (am *AuthMiddleware) Require() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Error(w, http.StatusUnauthorized, "Authentication required. Please provide a valid token.")
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token == "" {
				response.Error(w, http.StatusUnauthorized, "Authentication token is missing")
				return
			}

			claims, err := am.verifier.ParseAndValidate(token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, err.Error())
				return
			}

			user, err := am.users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, xerrors.ErrUserNotFound) {
					response.Error(w, http.StatusUnauthorized, "User not found. Token may be invalid.")
					return
				}
				am.logger.Error("auth middleware user lookup failed", zap.Error(err))
				response.Error(w, http.StatusInternalServerError, "Authentication failed")
				return
			}

			if !user.IsActive {
				response.Error(w, http.StatusForbidden, xerrors.ErrAccountDeactivated.Error())
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, user.ID)
			ctx = context.WithValue(ctx, ContextUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
