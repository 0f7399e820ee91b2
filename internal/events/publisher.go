package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
)

// TransactionCompleted is emitted after a transfer commits.
type TransactionCompleted struct {
	TransactionID      string          `json:"transaction_id"`
	SenderID           string          `json:"sender_id"`
	ReceiverIdentifier string          `json:"receiver_identifier"`
	Amount             decimal.Decimal `json:"amount"`
	Fee                decimal.Decimal `json:"fee"`
	Route              string          `json:"route"`
	OccurredAt         time.Time       `json:"occurred_at"`
}

type Publisher interface {
	PublishTransactionCompleted(ctx context.Context, t *domain.Transaction) error
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionCompleted(ctx context.Context, t *domain.Transaction) error {
	return nil
}
