package middleware

import (
	"context"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
)

type contextKey string

const (
	ContextUserID contextKey = "userID"
	ContextUser   contextKey = "user"
)

func GetUserID(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(ContextUserID).(string)
	return val, ok
}

func GetUser(ctx context.Context) (*domain.User, bool) {
	val, ok := ctx.Value(ContextUser).(*domain.User)
	return val, ok
}
