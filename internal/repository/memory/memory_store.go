// Package memory is an in-memory implementation of the repository interfaces.
// It is embedded-persistence oriented: mutual exclusion uses a per-account
// mutex instead of a database row lock, with the same serialization
// guarantee for concurrent transfers from one sender.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
	"github.com/LazorAmorie/Masterkey.01/internal/repository"
	xerrors "github.com/LazorAmorie/Masterkey.01/pkg/xerrors"
)

type Store struct {
	mu           sync.Mutex
	users        map[string]*domain.User
	transactions []*domain.Transaction

	muMap map[string]*sync.Mutex // per-account transfer locks
	mapMu sync.Mutex             // protects muMap itself
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*domain.User),
		muMap: make(map[string]*sync.Mutex),
	}
}

func (s *Store) accountLock(userID string) *sync.Mutex {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()

	if _, exists := s.muMap[userID]; !exists {
		s.muMap[userID] = &sync.Mutex{}
	}
	return s.muMap[userID]
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		cp.LastLogin = &t
	}
	return &cp
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	cp := *t
	if t.RouteMetadata != nil {
		md := *t.RouteMetadata
		md.AllAvailableRoutes = append([]domain.RouteQuote(nil), t.RouteMetadata.AllAvailableRoutes...)
		cp.RouteMetadata = &md
	}
	return &cp
}

// ---- UserStore ----

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return xerrors.ErrEmailAlreadyInUse
		}
		if existing.Username == u.Username {
			return xerrors.ErrUsernameAlreadyTaken
		}
		if existing.WalletAddress == u.WalletAddress {
			return xerrors.ErrWalletAddressInUse
		}
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = cloneUser(u)
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, xerrors.ErrUserNotFound
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, xerrors.ErrUserNotFound
}

func (s *Store) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return xerrors.ErrUserNotFound
	}
	u.LastLogin = &at
	u.UpdatedAt = time.Now()
	return nil
}

// SetActive flips the account gate; test helper for the deactivated flows.
func (s *Store) SetActive(id string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		u.IsActive = active
	}
}

// ---- LedgerStore ----

func (s *Store) GetTransactionByTxnID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.transactions {
		if t.TransactionID == txnID {
			return cloneTransaction(t), nil
		}
	}
	return nil, xerrors.ErrTransactionNotFound
}

func (s *Store) ListBySender(ctx context.Context, senderID string, status domain.TransactionStatus, limit, offset int) ([]*domain.Transaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*domain.Transaction
	for _, t := range s.transactions {
		if t.SenderID != senderID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		matched = append(matched, t)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*domain.Transaction, 0, end-offset)
	for _, t := range matched[offset:end] {
		page = append(page, cloneTransaction(t))
	}
	return page, total, nil
}

func (s *Store) StatsBySender(ctx context.Context, senderID string) (*domain.TransactionStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &domain.TransactionStats{}
	for _, t := range s.transactions {
		if t.SenderID != senderID {
			continue
		}
		stats.TotalTransactions++
		stats.TotalAmount = stats.TotalAmount.Add(t.Amount)
		stats.TotalFees = stats.TotalFees.Add(t.Fee)
	}
	if stats.TotalTransactions > 0 {
		stats.AvgAmount = stats.TotalAmount.DivRound(decimal.NewFromInt(stats.TotalTransactions), 8)
	}
	return stats, nil
}

// BeginTransfer takes no lock yet; the sender's lock is acquired by
// SenderForUpdate, mirroring the row-lock acquisition point of the SQL store.
func (s *Store) BeginTransfer(ctx context.Context) (repository.TransferTx, error) {
	return &transferTx{store: s}, nil
}

type transferTx struct {
	store *Store

	locked   *sync.Mutex
	senderID string
	done     bool

	// staged writes, applied on Commit
	newBalance  *decimal.Decimal
	transaction *domain.Transaction
}

func (t *transferTx) SenderForUpdate(ctx context.Context, senderID string) (*domain.User, error) {
	if t.locked == nil {
		lock := t.store.accountLock(senderID)
		lock.Lock()
		t.locked = lock
		t.senderID = senderID
	}

	return t.store.GetUserByID(ctx, senderID)
}

func (t *transferTx) CreateTransaction(ctx context.Context, txn *domain.Transaction) error {
	now := time.Now()
	txn.CreatedAt = now
	txn.UpdatedAt = now
	t.transaction = cloneTransaction(txn)
	return nil
}

func (t *transferTx) UpdateBalance(ctx context.Context, senderID string, balance decimal.Decimal) error {
	if senderID != t.senderID {
		return xerrors.ErrUserNotFound
	}
	b := balance
	t.newBalance = &b
	return nil
}

func (t *transferTx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.release()

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.transaction != nil {
		t.store.transactions = append(t.store.transactions, t.transaction)
	}
	if t.newBalance != nil {
		u, ok := t.store.users[t.senderID]
		if !ok {
			return xerrors.ErrUserNotFound
		}
		u.Balance = *t.newBalance
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (t *transferTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.release()
	return nil
}

func (t *transferTx) release() {
	if t.locked != nil {
		t.locked.Unlock()
		t.locked = nil
	}
}
