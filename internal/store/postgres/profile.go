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

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `id, dealer_id, email, password_hash, name, role, active, created_at, updated_at`

func (r *ProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profiles (`+profileColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.DealerID, p.Email, nilIfEmpty(p.PasswordHash),
		p.Name, p.Role, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("profileRepo.Create: %w", err)
	}

	return nil
}

func (r *ProfileRepo) GetByIdentity(ctx context.Context, identityID uuid.UUID) (*domain.Profile, error) {
	return r.scanOne(ctx, "profileRepo.GetByIdentity",
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, identityID)
}

func (r *ProfileRepo) GetByEmail(ctx context.Context, dealerID uuid.UUID, email string) (*domain.Profile, error) {
	return r.scanOne(ctx, "profileRepo.GetByEmail",
		`SELECT `+profileColumns+` FROM profiles WHERE dealer_id = $1 AND email = $2`,
		dealerID, email)
}

func (r *ProfileRepo) LookupByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.scanOne(ctx, "profileRepo.LookupByEmail",
		`SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
}

func (r *ProfileRepo) scanOne(ctx context.Context, op, query string, args ...any) (*domain.Profile, error) {
	var p domain.Profile
	var passwordHash *string

	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.DealerID, &p.Email, &passwordHash, &p.Name, &p.Role, &p.Active,
			&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p.PasswordHash = derefStr(passwordHash)

	return &p, nil
}

func (r *ProfileRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE dealer_id = $1 ORDER BY created_at, id
		 LIMIT 500`,
		dealerID,
	)
	if err != nil {
		return nil, fmt.Errorf("profileRepo.List: %w", err)
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		var p domain.Profile
		var passwordHash *string

		err = rows.Scan(&p.ID, &p.DealerID, &p.Email, &passwordHash, &p.Name, &p.Role, &p.Active,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("profileRepo.List: scan: %w", err)
		}

		p.PasswordHash = derefStr(passwordHash)
		profiles = append(profiles, &p)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("profileRepo.List: rows: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepo) SetRole(ctx context.Context, dealerID, id uuid.UUID, role domain.Role) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET role = $1, updated_at = now()
		 WHERE dealer_id = $2 AND id = $3`,
		role, dealerID, id,
	)
	if err != nil {
		return fmt.Errorf("profileRepo.SetRole: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profileRepo.SetRole: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProfileRepo) SetActive(ctx context.Context, dealerID, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET active = $1, updated_at = now()
		 WHERE dealer_id = $2 AND id = $3`,
		active, dealerID, id,
	)
	if err != nil {
		return fmt.Errorf("profileRepo.SetActive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profileRepo.SetActive: %w", domain.ErrNotFound)
	}

	return nil
}

// --- Helpers ---

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
