package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DateRange is an inclusive [From, To] window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// FinancialMetrics aggregates a dealer's money flow over a window. COGS is
// attributed at time of sale, not at time of cost incurrence. NetProfit may
// be negative.
type FinancialMetrics struct {
	Revenue   float64 `json:"revenue"`
	Expenses  float64 `json:"expenses"`
	COGS      float64 `json:"cogs"`
	NetProfit float64 `json:"net_profit"`
}

// RevenuePoint is one calendar-month revenue bucket. Months without sales
// produce no point, so the series is not guaranteed gap-free.
type RevenuePoint struct {
	Period  string  `json:"period"` // "2006-01"
	Revenue float64 `json:"revenue"`
}

type AnalyticsRepository interface {
	// FinancialTotals returns revenue, expense, and cost-of-goods-sold sums
	// for sales/expenses dated within [from, to]. Empty windows yield zeros.
	FinancialTotals(ctx context.Context, dealerID uuid.UUID, from, to time.Time) (revenue, expenses, cogs float64, err error)
	MonthlyRevenue(ctx context.Context, dealerID uuid.UUID, from, to time.Time) ([]RevenuePoint, error)
	// AverageDaysToSell returns the mean of per-sale floor(days between
	// vehicle intake and sale), each clamped at zero, rounded to the nearest
	// integer. Zero when the dealer has no sales.
	AverageDaysToSell(ctx context.Context, dealerID uuid.UUID) (int, error)
}
