package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

type TransactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{db: db}
}

const transactionColumns = `id, transaction_id, sender_id, receiver_identifier, amount, fee, total_amount, route, status, route_metadata, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.ID, &t.TransactionID, &t.SenderID, &t.ReceiverIdentifier,
		&t.Amount, &t.Fee, &t.TotalAmount, &t.Route, &t.Status,
		&t.RouteMetadata, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepo) GetTransactionByTxnID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`
	return scanTransaction(r.db.QueryRow(ctx, query, txnID))
}

func (r *TransactionRepo) ListBySender(ctx context.Context, senderID string, status domain.TransactionStatus, limit, offset int) ([]*domain.Transaction, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE sender_id = $1 AND ($2 = '' OR status::text = $2)`
	if err := r.db.QueryRow(ctx, countQuery, senderID, string(status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE sender_id = $1 AND ($2 = '' OR status::text = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, senderID, string(status), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, total, nil
}

func (r *TransactionRepo) StatsBySender(ctx context.Context, senderID string) (*domain.TransactionStats, error) {
	query := `
		SELECT
			COUNT(id),
			COALESCE(SUM(amount), 0),
			COALESCE(SUM(fee), 0),
			COALESCE(AVG(amount), 0)
		FROM transactions
		WHERE sender_id = $1
	`
	var stats domain.TransactionStats
	err := r.db.QueryRow(ctx, query, senderID).Scan(
		&stats.TotalTransactions, &stats.TotalAmount, &stats.TotalFees, &stats.AvgAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction stats: %w", err)
	}
	return &stats, nil
}

// BeginTransfer opens the database transaction that carries the transfer's
// row lock, debit and record insert.
func (r *TransactionRepo) BeginTransfer(ctx context.Context) (TransferTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transfer: %w", err)
	}
	return &transferTx{tx: tx}, nil
}

type transferTx struct {
	tx pgx.Tx
}

// SenderForUpdate fetches the sender row under an exclusive lock
// (SELECT ... FOR UPDATE) so concurrent transfers from the same sender
// cannot read a stale balance.
func (t *transferTx) SenderForUpdate(ctx context.Context, senderID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return scanUser(t.tx.QueryRow(ctx, query, senderID))
}

func (t *transferTx) CreateTransaction(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, transaction_id, sender_id, receiver_identifier, amount, fee, total_amount, route, status, route_metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := t.tx.QueryRow(ctx, query,
		txn.ID, txn.TransactionID, txn.SenderID, txn.ReceiverIdentifier,
		txn.Amount, txn.Fee, txn.TotalAmount, txn.Route, txn.Status, txn.RouteMetadata,
	).Scan(&txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (t *transferTx) UpdateBalance(ctx context.Context, senderID string, balance decimal.Decimal) error {
	query := `UPDATE users SET balance = $1, updated_at = NOW() WHERE id = $2`
	tag, err := t.tx.Exec(ctx, query, balance, senderID)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrUserNotFound
	}
	return nil
}

func (t *transferTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *transferTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
