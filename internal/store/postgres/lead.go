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

type LeadRepo struct {
	pool *pgxpool.Pool
}

func NewLeadRepo(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

const leadColumns = `id, dealer_id, vehicle_id, customer_name, email, phone, message, status, created_at, updated_at`

func (r *LeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO leads (`+leadColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		l.ID, l.DealerID, l.VehicleID, l.CustomerName,
		nilIfEmpty(l.Email), nilIfEmpty(l.Phone), nilIfEmpty(l.Message),
		l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("leadRepo.Create: %w", err)
	}

	return nil
}

func (r *LeadRepo) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Lead, error) {
	var l domain.Lead
	var email, phone, message *string

	err := r.pool.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE dealer_id = $1 AND id = $2`,
		dealerID, id,
	).Scan(&l.ID, &l.DealerID, &l.VehicleID, &l.CustomerName,
		&email, &phone, &message, &l.Status, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("leadRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("leadRepo.GetByID: %w", err)
	}

	l.Email = derefStr(email)
	l.Phone = derefStr(phone)
	l.Message = derefStr(message)

	return &l, nil
}

func (r *LeadRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Lead, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+leadColumns+` FROM leads
		 WHERE dealer_id = $1 ORDER BY created_at DESC, id
		 LIMIT 500`,
		dealerID,
	)
	if err != nil {
		return nil, fmt.Errorf("leadRepo.List: %w", err)
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		var l domain.Lead
		var email, phone, message *string

		err = rows.Scan(&l.ID, &l.DealerID, &l.VehicleID, &l.CustomerName,
			&email, &phone, &message, &l.Status, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("leadRepo.List: scan: %w", err)
		}

		l.Email = derefStr(email)
		l.Phone = derefStr(phone)
		l.Message = derefStr(message)
		leads = append(leads, &l)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("leadRepo.List: rows: %w", err)
	}

	return leads, nil
}

func (r *LeadRepo) UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status domain.LeadStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE leads SET status = $1, updated_at = now()
		 WHERE dealer_id = $2 AND id = $3`,
		status, dealerID, id,
	)
	if err != nil {
		return fmt.Errorf("leadRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("leadRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}
