package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
)

// UserStore persists wallet accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

// LedgerStore persists transactions and runs the atomic transfer unit.
type LedgerStore interface {
	// BeginTransfer opens the atomic unit for a balance transfer. The
	// returned TransferTx must be committed or rolled back.
	BeginTransfer(ctx context.Context) (TransferTx, error)

	GetTransactionByTxnID(ctx context.Context, txnID string) (*domain.Transaction, error)

	// ListBySender returns a page of the sender's transactions ordered newest
	// first, plus the total row count. status == "" means no filter.
	ListBySender(ctx context.Context, senderID string, status domain.TransactionStatus, limit, offset int) ([]*domain.Transaction, int64, error)

	StatsBySender(ctx context.Context, senderID string) (*domain.TransactionStats, error)
}

// TransferTx is the atomic unit of a transfer: it holds an exclusive lock on
// the sender row from SenderForUpdate until Commit or Rollback, so concurrent
// transfers from the same sender serialize. Either both the debit and the
// transaction record become visible, or neither does.
type TransferTx interface {
	SenderForUpdate(ctx context.Context, senderID string) (*domain.User, error)
	CreateTransaction(ctx context.Context, t *domain.Transaction) error
	UpdateBalance(ctx context.Context, senderID string, balance decimal.Decimal) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
