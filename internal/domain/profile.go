package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role is the coarse permission class of a staff profile.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSales   Role = "sales"
	RoleService Role = "service"
	RoleViewer  Role = "viewer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSales, RoleService, RoleViewer:
		return true
	default:
		return false
	}
}

// Profile is the resolved, dealer-scoped identity of a caller. Profiles are
// created out-of-band; this service only mutates the role and active flag.
type Profile struct {
	ID           uuid.UUID
	DealerID     uuid.UUID
	Email        string
	PasswordHash string // argon2id, empty for OAuth-only staff
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	// GetByIdentity resolves an opaque identity id to its profile without a
	// dealer scope; the returned profile carries the DealerID used to scope
	// everything downstream.
	GetByIdentity(ctx context.Context, identityID uuid.UUID) (*Profile, error)
	GetByEmail(ctx context.Context, dealerID uuid.UUID, email string) (*Profile, error)
	// LookupByEmail searches across dealers; used by the OAuth callback where
	// only the provider-asserted email is known.
	LookupByEmail(ctx context.Context, email string) (*Profile, error)
	List(ctx context.Context, dealerID uuid.UUID) ([]*Profile, error)
	SetRole(ctx context.Context, dealerID, id uuid.UUID, role Role) error
	SetActive(ctx context.Context, dealerID, id uuid.UUID, active bool) error
}
