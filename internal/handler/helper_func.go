package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/engine"
	"github.com/LazorAmorie/Masterkey.01/pkg/response"
	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

// writeError maps usecase errors onto HTTP statuses and the API envelope.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	var validation *xerrors.ValidationError
	if errors.As(err, &validation) {
		response.ValidationError(w, validation.Message, validation.Errors)
		return
	}

	var insufficient *xerrors.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		response.Error(w, http.StatusBadRequest, insufficient.Error())
		return
	}

	var routeUnavailable *xerrors.RouteNotAvailableError
	if errors.As(err, &routeUnavailable) {
		response.Error(w, http.StatusBadRequest, routeUnavailable.Error())
		return
	}

	var noRoute *engine.NoRouteAvailableError
	if errors.As(err, &noRoute) {
		response.Error(w, http.StatusBadRequest, noRoute.Error())
		return
	}

	switch {
	case errors.Is(err, xerrors.ErrEmailAlreadyInUse),
		errors.Is(err, xerrors.ErrUsernameAlreadyTaken):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, xerrors.ErrAccountDeactivated),
		errors.Is(err, xerrors.ErrNotTransactionOwner):
		response.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, xerrors.ErrTransactionNotFound),
		errors.Is(err, xerrors.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	default:
		logger.Error(fallback, zap.Error(err))
		response.Error(w, http.StatusInternalServerError, fallback)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
