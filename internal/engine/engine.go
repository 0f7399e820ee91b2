// Package engine holds the payment route catalog and the fee and route
// selection functions. Everything here is pure: no I/O, no shared mutable
// state, safe for any number of concurrent callers.
package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LazorAmorie/Masterkey.01/internal/domain"
)

var ErrUnknownRoute = errors.New("invalid payment route")

// NoRouteAvailableError is returned when no route's bounds contain the amount.
type NoRouteAvailableError struct {
	Amount decimal.Decimal
}

func (e *NoRouteAvailableError) Error() string {
	return fmt.Sprintf("No payment routes available for amount: $%s", e.Amount.String())
}

// paymentRoutes is the route catalog, loaded once at process start and never
// written afterwards. Slice order is the fee tiebreak for equal fees.
var paymentRoutes = []domain.PaymentRoute{
	{
		Key:            "MOBILE_WALLET",
		Name:           "Mobile Wallet",
		BaseFee:        decimal.NewFromInt(10),
		PercentageFee:  decimal.NewFromFloat(0.01), // 1%
		MinAmount:      decimal.NewFromInt(1),
		MaxAmount:      decimal.NewFromInt(50000),
		ProcessingTime: "instant",
		Description:    "Fast mobile wallet transfer",
	},
	{
		Key:            "BANK_TRANSFER",
		Name:           "Bank Transfer",
		BaseFee:        decimal.NewFromInt(25),
		PercentageFee:  decimal.NewFromFloat(0.005), // 0.5%
		MinAmount:      decimal.NewFromInt(100),
		MaxAmount:      decimal.NewFromInt(1000000),
		ProcessingTime: "1-3 business days",
		Description:    "Traditional bank transfer",
	},
	{
		Key:            "CARD_PAYMENT",
		Name:           "Card Payment",
		BaseFee:        decimal.NewFromInt(15),
		PercentageFee:  decimal.NewFromFloat(0.025), // 2.5%
		MinAmount:      decimal.NewFromInt(5),
		MaxAmount:      decimal.NewFromInt(100000),
		ProcessingTime: "instant",
		Description:    "Credit/Debit card payment",
	},
	{
		Key:            "CRYPTO_TRANSFER",
		Name:           "Crypto Transfer",
		BaseFee:        decimal.NewFromInt(5),
		PercentageFee:  decimal.NewFromFloat(0.002), // 0.2%
		MinAmount:      decimal.NewFromInt(10),
		MaxAmount:      decimal.NewFromInt(500000),
		ProcessingTime: "10-30 minutes",
		Description:    "Blockchain-based cryptocurrency transfer",
	},
}

// Routes returns the full catalog in insertion order.
func Routes() []domain.PaymentRoute {
	out := make([]domain.PaymentRoute, len(paymentRoutes))
	copy(out, paymentRoutes)
	return out
}

// RouteByKey looks a catalog entry up by its key.
func RouteByKey(key string) (domain.PaymentRoute, bool) {
	for _, r := range paymentRoutes {
		if r.Key == key {
			return r, true
		}
	}
	return domain.PaymentRoute{}, false
}

// CalculateFee computes baseFee + amount * percentageFee for the route.
// The arithmetic is exact; callers round for persistence.
func CalculateFee(routeKey string, amount decimal.Decimal) (decimal.Decimal, error) {
	route, ok := RouteByKey(routeKey)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownRoute, routeKey)
	}
	return route.BaseFee.Add(amount.Mul(route.PercentageFee)), nil
}

// AvailableRoutes returns every route whose [minAmount, maxAmount] contains
// the amount, ordered ascending by fee with catalog order breaking ties.
func AvailableRoutes(amount decimal.Decimal) []domain.RouteQuote {
	quotes := make([]domain.RouteQuote, 0, len(paymentRoutes))

	for _, route := range paymentRoutes {
		if amount.LessThan(route.MinAmount) || amount.GreaterThan(route.MaxAmount) {
			continue
		}
		fee := route.BaseFee.Add(amount.Mul(route.PercentageFee))
		quotes = append(quotes, domain.RouteQuote{
			RouteKey:       route.Key,
			Name:           route.Name,
			Fee:            fee,
			TotalAmount:    amount.Add(fee),
			ProcessingTime: route.ProcessingTime,
			Description:    route.Description,
		})
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].Fee.LessThan(quotes[j].Fee)
	})

	return quotes
}

// SelectCheapestRoute picks the cheapest route serving the amount.
func SelectCheapestRoute(amount decimal.Decimal) (domain.RouteQuote, error) {
	quotes := AvailableRoutes(amount)
	if len(quotes) == 0 {
		return domain.RouteQuote{}, &NoRouteAvailableError{Amount: amount}
	}
	return quotes[0], nil
}

// ValidationResult carries a success flag and the ordered list of violated
// rules so the caller sees every problem at once.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

// ValidateTransaction accumulates all violated rules for a transfer request.
func ValidateTransaction(amount decimal.Decimal, receiverIdentifier string) ValidationResult {
	var errs []string

	if amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "Amount must be greater than 0")
	}

	if strings.TrimSpace(receiverIdentifier) == "" {
		errs = append(errs, "Receiver identifier is required")
	}

	if len(AvailableRoutes(amount)) == 0 {
		errs = append(errs, fmt.Sprintf("Amount $%s is outside the range of all available payment routes", amount.String()))
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
