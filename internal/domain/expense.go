package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Expense is a dealer cost, optionally attributed to a vehicle. Read-only
// input to the analytics engine.
type Expense struct {
	ID         uuid.UUID
	DealerID   uuid.UUID
	VehicleID  *uuid.UUID // nullable
	Category   string
	Amount     float64
	IncurredAt time.Time
	CreatedAt  time.Time
}

type ExpenseRepository interface {
	Create(ctx context.Context, e *Expense) error
	List(ctx context.Context, dealerID uuid.UUID) ([]*Expense, error)
}
