package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotwise/dealerd/internal/domain"
)

type CustomerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

func (r *CustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO customers (id, dealer_id, name, email, phone, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.DealerID, c.Name, nilIfEmpty(c.Email), nilIfEmpty(c.Phone),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("customerRepo.Create: %w", err)
	}

	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	var email, phone *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, dealer_id, name, email, phone, created_at, updated_at
		 FROM customers WHERE dealer_id = $1 AND id = $2`,
		dealerID, id,
	).Scan(&c.ID, &c.DealerID, &c.Name, &email, &phone, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("customerRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}

	c.Email = derefStr(email)
	c.Phone = derefStr(phone)

	return &c, nil
}

func (r *CustomerRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Customer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, dealer_id, name, email, phone, created_at, updated_at
		 FROM customers WHERE dealer_id = $1 ORDER BY created_at, id
		 LIMIT 500`,
		dealerID,
	)
	if err != nil {
		return nil, fmt.Errorf("customerRepo.List: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		var c domain.Customer
		var email, phone *string

		err = rows.Scan(&c.ID, &c.DealerID, &c.Name, &email, &phone, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("customerRepo.List: scan: %w", err)
		}

		c.Email = derefStr(email)
		c.Phone = derefStr(phone)
		customers = append(customers, &c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("customerRepo.List: rows: %w", err)
	}

	return customers, nil
}
