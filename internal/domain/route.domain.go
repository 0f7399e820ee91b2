package domain

import "github.com/shopspring/decimal"

// PaymentRoute is a catalog entry: a named payment channel with its own fee
// formula and amount bounds. Immutable for the process lifetime.
type PaymentRoute struct {
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	BaseFee        decimal.Decimal `json:"baseFee"`
	PercentageFee  decimal.Decimal `json:"percentageFee"`
	MinAmount      decimal.Decimal `json:"minAmount"`
	MaxAmount      decimal.Decimal `json:"maxAmount"`
	ProcessingTime string          `json:"processingTime"`
	Description    string          `json:"description"`
}

// RouteQuote is a route priced for a concrete amount.
type RouteQuote struct {
	RouteKey       string          `json:"routeKey"`
	Name           string          `json:"name"`
	Fee            decimal.Decimal `json:"fee"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	ProcessingTime string          `json:"processingTime"`
	Description    string          `json:"description"`
}

// RouteMetadata is the audit snapshot stored with each transaction: the
// chosen route's details plus every route that was considered.
type RouteMetadata struct {
	RouteName          string       `json:"routeName"`
	ProcessingTime     string       `json:"processingTime"`
	Description        string       `json:"description"`
	AllAvailableRoutes []RouteQuote `json:"allAvailableRoutes"`
}
