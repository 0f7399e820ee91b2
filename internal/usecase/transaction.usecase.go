package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
	"github.com/LazorAmorie/Masterkey.01/internal/engine"
	"github.com/LazorAmorie/Masterkey.01/internal/events"
	"github.com/LazorAmorie/Masterkey.01/internal/repository"
	"github.com/LazorAmorie/Masterkey.01/pkg/id"
	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

// TransactionUsecase coordinates validation, route selection, the locked
// balance read, the debit and the record insert as one atomic unit.
type TransactionUsecase struct {
	ledger    repository.LedgerStore
	publisher events.Publisher
	logger    *zap.Logger
}

func NewTransactionUsecase(ledger repository.LedgerStore, publisher events.Publisher, logger *zap.Logger) *TransactionUsecase {
	return &TransactionUsecase{
		ledger:    ledger,
		publisher: publisher,
		logger:    logger,
	}
}

// SendRequest is a validated transfer request. RouteKey == "" means pick the
// cheapest available route.
type SendRequest struct {
	ReceiverIdentifier string
	Amount             decimal.Decimal
	RouteKey           string
}

// Send processes a transfer. On success it returns the created record and
// the sender's new balance; on any failure the atomic unit is rolled back
// and the balance is untouched.
func (uc *TransactionUsecase) Send(ctx context.Context, senderID string, req SendRequest) (*domain.Transaction, decimal.Decimal, error) {
	validation := engine.ValidateTransaction(req.Amount, req.ReceiverIdentifier)
	if !validation.IsValid {
		return nil, decimal.Zero, xerrors.NewValidationError("Transaction validation failed", validation.Errors)
	}

	tx, err := uc.ledger.BeginTransfer(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	sender, err := tx.SenderForUpdate(ctx, senderID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	availableRoutes := engine.AvailableRoutes(req.Amount)

	var selected domain.RouteQuote
	if req.RouteKey != "" {
		found := false
		for _, q := range availableRoutes {
			if q.RouteKey == req.RouteKey {
				selected = q
				found = true
				break
			}
		}
		if !found {
			return nil, decimal.Zero, &xerrors.RouteNotAvailableError{RouteKey: req.RouteKey, Amount: req.Amount}
		}
	} else {
		selected, err = engine.SelectCheapestRoute(req.Amount)
		if err != nil {
			return nil, decimal.Zero, err
		}
	}

	// Exact engine arithmetic, rounded to the stored 2dp precision. The
	// stored invariant is totalAmount = amount + fee on the rounded values.
	fee := selected.Fee.Round(2)
	totalAmount := req.Amount.Add(fee)

	if sender.Balance.LessThan(totalAmount) {
		return nil, decimal.Zero, &xerrors.InsufficientBalanceError{
			Required:  totalAmount,
			Available: sender.Balance,
		}
	}

	transaction := &domain.Transaction{
		ID:                 uuid.NewString(),
		TransactionID:      id.GenerateTransactionID(),
		SenderID:           sender.ID,
		ReceiverIdentifier: req.ReceiverIdentifier,
		Amount:             req.Amount,
		Fee:                fee,
		TotalAmount:        totalAmount,
		Route:              selected.RouteKey,
		Status:             domain.StatusSuccess,
		RouteMetadata: &domain.RouteMetadata{
			RouteName:          selected.Name,
			ProcessingTime:     selected.ProcessingTime,
			Description:        selected.Description,
			AllAvailableRoutes: availableRoutes,
		},
	}

	if err := tx.CreateTransaction(ctx, transaction); err != nil {
		return nil, decimal.Zero, err
	}

	newBalance := sender.Balance.Sub(totalAmount)
	if err := tx.UpdateBalance(ctx, sender.ID, newBalance); err != nil {
		return nil, decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to commit transfer: %w", err)
	}

	uc.logger.Info("transaction created",
		zap.String("transactionId", transaction.TransactionID),
		zap.String("sender", sender.Email),
		zap.String("receiver", req.ReceiverIdentifier),
	)

	if err := uc.publisher.PublishTransactionCompleted(ctx, transaction); err != nil {
		// Event delivery never fails a committed transfer.
		uc.logger.Warn("failed to publish transaction event",
			zap.String("transactionId", transaction.TransactionID), zap.Error(err))
	}

	return transaction, newBalance, nil
}

// GetByTransactionID returns a transaction; only the sender may view it.
func (uc *TransactionUsecase) GetByTransactionID(ctx context.Context, callerID, txnID string) (*domain.Transaction, error) {
	transaction, err := uc.ledger.GetTransactionByTxnID(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if transaction.SenderID != callerID {
		return nil, xerrors.ErrNotTransactionOwner
	}
	return transaction, nil
}

// History returns a page of the caller's transactions, newest first, with
// the total row count for pagination.
func (uc *TransactionUsecase) History(ctx context.Context, callerID string, page, limit int, status string) ([]*domain.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if status != "" && !domain.ValidStatus(status) {
		return nil, 0, xerrors.NewValidationError("Validation error", []string{fmt.Sprintf("unknown status filter: %s", status)})
	}

	offset := (page - 1) * limit
	return uc.ledger.ListBySender(ctx, callerID, domain.TransactionStatus(status), limit, offset)
}

// Stats aggregates the caller's transaction history.
func (uc *TransactionUsecase) Stats(ctx context.Context, callerID string) (*domain.TransactionStats, error) {
	return uc.ledger.StatsBySender(ctx, callerID)
}
