package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusSuccess   TransactionStatus = "SUCCESS"
	StatusFailed    TransactionStatus = "FAILED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the transaction statuses.
func ValidStatus(s string) bool {
	switch TransactionStatus(s) {
	case StatusPending, StatusSuccess, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Transaction is an outgoing transfer record. Immutable once created; the
// receiver identifier is a free-form string (email, phone or wallet address)
// and is not resolved against an existing account.
type Transaction struct {
	ID                 string            `json:"id"`
	TransactionID      string            `json:"transactionId"`
	SenderID           string            `json:"senderId"`
	ReceiverIdentifier string            `json:"receiverIdentifier"`
	Amount             decimal.Decimal   `json:"amount"`
	Fee                decimal.Decimal   `json:"fee"`
	TotalAmount        decimal.Decimal   `json:"totalAmount"`
	Route              string            `json:"route"`
	Status             TransactionStatus `json:"status"`
	RouteMetadata      *RouteMetadata    `json:"routeMetadata,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// TransactionStats aggregates a sender's transaction history.
type TransactionStats struct {
	TotalTransactions int64           `json:"totalTransactions"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalFees         decimal.Decimal `json:"totalFees"`
	AvgAmount         decimal.Decimal `json:"avgAmount"`
}
