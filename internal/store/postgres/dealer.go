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

type DealerRepo struct {
	pool *pgxpool.Pool
}

func NewDealerRepo(pool *pgxpool.Pool) *DealerRepo {
	return &DealerRepo{pool: pool}
}

func (r *DealerRepo) Create(ctx context.Context, d *domain.Dealer) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO dealers (id, name, slug, city, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.Name, d.Slug, nilIfEmpty(d.City), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("dealerRepo.Create: %w", err)
	}

	return nil
}

func (r *DealerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error) {
	return r.get(ctx, `SELECT id, name, slug, city, created_at, updated_at
		 FROM dealers WHERE id = $1`, id)
}

func (r *DealerRepo) GetBySlug(ctx context.Context, slug string) (*domain.Dealer, error) {
	return r.get(ctx, `SELECT id, name, slug, city, created_at, updated_at
		 FROM dealers WHERE slug = $1`, slug)
}

func (r *DealerRepo) get(ctx context.Context, query string, arg any) (*domain.Dealer, error) {
	var d domain.Dealer
	var city *string

	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&d.ID, &d.Name, &d.Slug, &city, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("dealerRepo.get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("dealerRepo.get: %w", err)
	}

	d.City = derefStr(city)

	return &d, nil
}

func (r *DealerRepo) List(ctx context.Context) ([]*domain.Dealer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, slug, city, created_at, updated_at
		 FROM dealers ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("dealerRepo.List: %w", err)
	}
	defer rows.Close()

	var dealers []*domain.Dealer
	for rows.Next() {
		var d domain.Dealer
		var city *string

		err = rows.Scan(&d.ID, &d.Name, &d.Slug, &city, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("dealerRepo.List: scan: %w", err)
		}

		d.City = derefStr(city)
		dealers = append(dealers, &d)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("dealerRepo.List: rows: %w", err)
	}

	return dealers, nil
}
