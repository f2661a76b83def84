package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotwise/dealerd/internal/domain"
)

type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// FinancialTotals aggregates sale revenue, recorded expenses, and cost of
// goods sold for the window. COGS attributes a vehicle's cost price at the
// moment of sale, so vehicles bought in an earlier period still count against
// the period they sold in.
func (r *AnalyticsRepo) FinancialTotals(ctx context.Context, dealerID uuid.UUID, from, to time.Time) (revenue, expenses, cogs float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(price), 0) FROM sales
		 WHERE dealer_id = $1 AND sold_at >= $2 AND sold_at <= $3`,
		dealerID, from, to,
	).Scan(&revenue)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("analyticsRepo.FinancialTotals: revenue: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
		 WHERE dealer_id = $1 AND incurred_at >= $2 AND incurred_at <= $3`,
		dealerID, from, to,
	).Scan(&expenses)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("analyticsRepo.FinancialTotals: expenses: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(v.cost_price), 0)
		 FROM sales s JOIN vehicles v ON v.id = s.vehicle_id AND v.dealer_id = s.dealer_id
		 WHERE s.dealer_id = $1 AND s.sold_at >= $2 AND s.sold_at <= $3`,
		dealerID, from, to,
	).Scan(&cogs)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("analyticsRepo.FinancialTotals: cogs: %w", err)
	}

	return revenue, expenses, cogs, nil
}

// MonthlyRevenue buckets sale revenue by calendar month. Months with no
// sales produce no row.
func (r *AnalyticsRepo) MonthlyRevenue(ctx context.Context, dealerID uuid.UUID, from, to time.Time) ([]domain.RevenuePoint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT date_trunc('month', sold_at) AS month, SUM(price)
		 FROM sales
		 WHERE dealer_id = $1 AND sold_at >= $2 AND sold_at <= $3
		 GROUP BY month ORDER BY month`,
		dealerID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("analyticsRepo.MonthlyRevenue: %w", err)
	}
	defer rows.Close()

	var points []domain.RevenuePoint
	for rows.Next() {
		var month time.Time
		var revenue float64

		err = rows.Scan(&month, &revenue)
		if err != nil {
			return nil, fmt.Errorf("analyticsRepo.MonthlyRevenue: scan: %w", err)
		}

		points = append(points, domain.RevenuePoint{
			Period:  month.Format("2006-01"),
			Revenue: revenue,
		})
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("analyticsRepo.MonthlyRevenue: rows: %w", err)
	}

	return points, nil
}

// AverageDaysToSell measures whole days between a vehicle entering stock and
// its sale, averaged over the dealer's entire sale history. Per-sale clock
// skew is clamped at zero before averaging rather than after.
func (r *AnalyticsRepo) AverageDaysToSell(ctx context.Context, dealerID uuid.UUID) (int, error) {
	var days int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(ROUND(AVG(GREATEST(FLOOR(EXTRACT(EPOCH FROM (s.sold_at - v.created_at)) / 86400), 0))), 0)
		 FROM sales s JOIN vehicles v ON v.id = s.vehicle_id AND v.dealer_id = s.dealer_id
		 WHERE s.dealer_id = $1`,
		dealerID,
	).Scan(&days)
	if err != nil {
		return 0, fmt.Errorf("analyticsRepo.AverageDaysToSell: %w", err)
	}

	return days, nil
}
