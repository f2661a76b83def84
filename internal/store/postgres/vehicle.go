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

type VehicleRepo struct {
	pool *pgxpool.Pool
}

func NewVehicleRepo(pool *pgxpool.Pool) *VehicleRepo {
	return &VehicleRepo{pool: pool}
}

const vehicleColumns = `id, dealer_id, vin, make, model, year, status, price, cost_price, created_at, updated_at`

func (r *VehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.DealerID, nilIfEmpty(v.VIN), v.Make, v.Model, v.Year,
		v.Status, v.Price, v.CostPrice, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("vehicleRepo.Create: %w", err)
	}

	return nil
}

func (r *VehicleRepo) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var vin *string

	err := r.pool.QueryRow(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE dealer_id = $1 AND id = $2`,
		dealerID, id,
	).Scan(&v.ID, &v.DealerID, &vin, &v.Make, &v.Model, &v.Year,
		&v.Status, &v.Price, &v.CostPrice, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("vehicleRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("vehicleRepo.GetByID: %w", err)
	}

	v.VIN = derefStr(vin)

	return &v, nil
}

func (r *VehicleRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Vehicle, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles
		 WHERE dealer_id = $1 ORDER BY created_at, id
		 LIMIT 500`,
		dealerID,
	)
	if err != nil {
		return nil, fmt.Errorf("vehicleRepo.List: %w", err)
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		var vin *string

		err = rows.Scan(&v.ID, &v.DealerID, &vin, &v.Make, &v.Model, &v.Year,
			&v.Status, &v.Price, &v.CostPrice, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("vehicleRepo.List: scan: %w", err)
		}

		v.VIN = derefStr(vin)
		vehicles = append(vehicles, &v)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("vehicleRepo.List: rows: %w", err)
	}

	return vehicles, nil
}

func (r *VehicleRepo) UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status domain.VehicleStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE vehicles SET status = $1, updated_at = now()
		 WHERE dealer_id = $2 AND id = $3`,
		status, dealerID, id,
	)
	if err != nil {
		return fmt.Errorf("vehicleRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vehicleRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *VehicleRepo) Delete(ctx context.Context, dealerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM vehicles WHERE dealer_id = $1 AND id = $2`,
		dealerID, id,
	)
	if err != nil {
		return fmt.Errorf("vehicleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vehicleRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
