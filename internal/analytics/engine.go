// Package analytics computes a dealer's financial aggregates on top of the
// repository's SQL sums. Every entry point passes through the gate with the
// view-analytics capability before touching a single row.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
)

// DefaultWindowMonths is how many trailing calendar months FinancialMetrics
// and RevenueOverTime cover when the caller supplies no range, the current
// month included.
const DefaultWindowMonths = 6

// defaultFrom returns the first instant of the calendar month
// DefaultWindowMonths-1 months before to's month. Anchoring to month starts
// keeps the window at exactly DefaultWindowMonths monthly buckets; a
// day-count approximation can leak an extra month.
func defaultFrom(to time.Time) time.Time {
	y, m, _ := to.UTC().Date()
	return time.Date(y, m-(DefaultWindowMonths-1), 1, 0, 0, 0, 0, time.UTC)
}

type Engine struct {
	gate *authgate.Gate
	repo domain.AnalyticsRepository
}

func NewEngine(gate *authgate.Gate, repo domain.AnalyticsRepository) *Engine {
	return &Engine{gate: gate, repo: repo}
}

// resolveRange fills a missing or half-open range with the trailing default
// window ending now.
func resolveRange(rng *domain.DateRange) domain.DateRange {
	now := time.Now().UTC()
	if rng == nil {
		return domain.DateRange{From: defaultFrom(now), To: now}
	}

	out := *rng
	if out.To.IsZero() {
		out.To = now
	}
	if out.From.IsZero() {
		out.From = defaultFrom(out.To)
	}

	return out
}

// FinancialMetrics returns the dealer's revenue, expenses, COGS, and the
// derived net profit for the window. Net profit may be negative.
func (e *Engine) FinancialMetrics(ctx context.Context, id authgate.Identity, rng *domain.DateRange) (*domain.FinancialMetrics, error) {
	profile, err := e.gate.Require(ctx, id, authgate.PermViewAnalytics)
	if err != nil {
		return nil, fmt.Errorf("analytics.FinancialMetrics: %w", err)
	}

	window := resolveRange(rng)

	revenue, expenses, cogs, err := e.repo.FinancialTotals(ctx, profile.DealerID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("analytics.FinancialMetrics: %w", err)
	}

	return &domain.FinancialMetrics{
		Revenue:   revenue,
		Expenses:  expenses,
		COGS:      cogs,
		NetProfit: revenue - expenses - cogs,
	}, nil
}

// RevenueOverTime returns the monthly revenue series for the window. Months
// with no sales are absent, not zero.
func (e *Engine) RevenueOverTime(ctx context.Context, id authgate.Identity, rng *domain.DateRange) ([]domain.RevenuePoint, error) {
	profile, err := e.gate.Require(ctx, id, authgate.PermViewAnalytics)
	if err != nil {
		return nil, fmt.Errorf("analytics.RevenueOverTime: %w", err)
	}

	window := resolveRange(rng)

	points, err := e.repo.MonthlyRevenue(ctx, profile.DealerID, window.From, window.To)
	if err != nil {
		return nil, fmt.Errorf("analytics.RevenueOverTime: %w", err)
	}

	return points, nil
}

// InventoryTurnover returns the average days a vehicle sits before selling,
// zero when the dealer has no sales yet. The result is clamped at zero so a
// repository fed skewed timestamps can never report a negative turnover.
func (e *Engine) InventoryTurnover(ctx context.Context, id authgate.Identity) (int, error) {
	profile, err := e.gate.Require(ctx, id, authgate.PermViewAnalytics)
	if err != nil {
		return 0, fmt.Errorf("analytics.InventoryTurnover: %w", err)
	}

	days, err := e.repo.AverageDaysToSell(ctx, profile.DealerID)
	if err != nil {
		return 0, fmt.Errorf("analytics.InventoryTurnover: %w", err)
	}

	if days < 0 {
		days = 0
	}

	return days, nil
}
