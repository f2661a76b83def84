package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Dealer is the multi-tenancy root. Every other entity carries a DealerID
// and no operation may cross dealer boundaries.
type Dealer struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DealerRepository interface {
	Create(ctx context.Context, d *Dealer) error
	GetByID(ctx context.Context, id uuid.UUID) (*Dealer, error)
	GetBySlug(ctx context.Context, slug string) (*Dealer, error)
	List(ctx context.Context) ([]*Dealer, error)
}
