package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID
	DealerID  uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*Customer, error)
	List(ctx context.Context, dealerID uuid.UUID) ([]*Customer, error)
}
