package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotwise/dealerd/internal/domain"
)

type ExpenseRepo struct {
	pool *pgxpool.Pool
}

func NewExpenseRepo(pool *pgxpool.Pool) *ExpenseRepo {
	return &ExpenseRepo{pool: pool}
}

func (r *ExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO expenses (id, dealer_id, vehicle_id, category, amount, incurred_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.DealerID, e.VehicleID, nilIfEmpty(e.Category),
		e.Amount, e.IncurredAt, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("expenseRepo.Create: %w", err)
	}

	return nil
}

func (r *ExpenseRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, dealer_id, vehicle_id, category, amount, incurred_at, created_at
		 FROM expenses WHERE dealer_id = $1 ORDER BY incurred_at DESC, id
		 LIMIT 500`,
		dealerID,
	)
	if err != nil {
		return nil, fmt.Errorf("expenseRepo.List: %w", err)
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		var category *string

		err = rows.Scan(&e.ID, &e.DealerID, &e.VehicleID, &category,
			&e.Amount, &e.IncurredAt, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("expenseRepo.List: scan: %w", err)
		}

		e.Category = derefStr(category)
		expenses = append(expenses, &e)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("expenseRepo.List: rows: %w", err)
	}

	return expenses, nil
}
