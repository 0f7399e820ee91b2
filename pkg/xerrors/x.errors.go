package xerrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

func ParsePGErrorCode(err error) string {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
)

// Registration / Login
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("Invalid email or password")
	ErrEmailAlreadyInUse    = errors.New("Email already registered")
	ErrUsernameAlreadyTaken = errors.New("Username already taken")
	ErrWalletAddressInUse   = errors.New("wallet address already in use")
	ErrAccountDeactivated   = errors.New("Account is deactivated. Please contact support.")
)

// Password rules
var (
	ErrPasswordTooShort    = errors.New("Password must be at least 8 characters long")
	ErrPasswordUppercase   = errors.New("Password must contain at least one uppercase letter")
	ErrPasswordLowercase   = errors.New("Password must contain at least one lowercase letter")
	ErrPasswordDigit       = errors.New("Password must contain at least one number")
	ErrPasswordSpecialChar = errors.New("Password must contain at least one special character")
	ErrPasswordMismatch    = errors.New("Passwords do not match")
)

// Token
var (
	ErrInvalidToken = errors.New("Invalid token. Please login again.")
	ErrExpiredToken = errors.New("Token has expired. Please login again.")
)

// Transactions
var (
	ErrTransactionNotFound = errors.New("Transaction not found")
	ErrNotTransactionOwner = errors.New("Not authorized to view this transaction")
)

// ValidationError carries the full list of violated rules so the caller
// sees every problem at once.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, errs []string) *ValidationError {
	return &ValidationError{Message: message, Errors: errs}
}

// InsufficientBalanceError reports required vs. available amounts.
type InsufficientBalanceError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance. Required: $%s, Available: $%s",
		e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// RouteNotAvailableError is returned when an explicitly requested route does
// not serve the transaction amount.
type RouteNotAvailableError struct {
	RouteKey string
	Amount   decimal.Decimal
}

func (e *RouteNotAvailableError) Error() string {
	return fmt.Sprintf("Route %s is not available for amount $%s", e.RouteKey, e.Amount.String())
}
