package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/middleware"
	"github.com/LazorAmorie/Masterkey.01/internal/usecase"
	"github.com/LazorAmorie/Masterkey.01/pkg/response"
	"github.com/LazorAmorie/Masterkey.01/pkg/validation"
)

type TransactionHandler struct {
	uc       *usecase.TransactionUsecase
	validate *validator.Validate
	logger   *zap.Logger
}

func NewTransactionHandler(uc *usecase.TransactionUsecase, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		uc:       uc,
		validate: validator.New(),
		logger:   logger,
	}
}

type sendRequest struct {
	ReceiverIdentifier string          `json:"receiverIdentifier" validate:"required"`
	Amount             decimal.Decimal `json:"amount" validate:"required"`
	RouteKey           string          `json:"routeKey"`
}

func (h *TransactionHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.ValidationError(w, "Validation error", validation.FormatValidationError(err))
		return
	}

	txn, newBalance, err := h.uc.Send(r.Context(), senderID, usecase.SendRequest{
		ReceiverIdentifier: req.ReceiverIdentifier,
		Amount:             req.Amount,
		RouteKey:           req.RouteKey,
	})
	if err != nil {
		writeError(w, h.logger, err, "Failed to process transaction")
		return
	}

	response.JSON(w, http.StatusCreated, "Transaction processed successfully", map[string]interface{}{
		"id":                 txn.ID,
		"transactionId":      txn.TransactionID,
		"amount":             txn.Amount,
		"fee":                txn.Fee,
		"totalAmount":        txn.TotalAmount,
		"route":              txn.Route,
		"status":             txn.Status,
		"receiverIdentifier": txn.ReceiverIdentifier,
		"routeMetadata":      txn.RouteMetadata,
		"createdAt":          txn.CreatedAt,
		"newBalance":         newBalance,
	})
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		return
	}

	txnID := chi.URLParam(r, "transactionId")
	txn, err := h.uc.GetByTransactionID(r.Context(), callerID, txnID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch transaction")
		return
	}

	response.JSON(w, http.StatusOK, "", map[string]interface{}{
		"transaction": txn,
	})
}

func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	status := r.URL.Query().Get("status")

	transactions, total, err := h.uc.History(r.Context(), callerID, page, limit, status)
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch transaction history")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	response.JSON(w, http.StatusOK, "", map[string]interface{}{
		"transactions": transactions,
		"pagination": map[string]interface{}{
			"currentPage":  page,
			"totalPages":   totalPages,
			"totalItems":   total,
			"itemsPerPage": limit,
			"hasNext":      page < totalPages,
			"hasPrev":      page > 1,
		},
	})
}

func (h *TransactionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Authentication required. Please provide a valid token.")
		return
	}

	stats, err := h.uc.Stats(r.Context(), callerID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to fetch transaction statistics")
		return
	}

	response.JSON(w, http.StatusOK, "", map[string]interface{}{
		"stats": stats,
	})
}
