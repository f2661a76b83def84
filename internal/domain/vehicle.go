package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type VehicleStatus string

const (
	VehicleInStock  VehicleStatus = "in_stock"
	VehicleReserved VehicleStatus = "reserved"
	VehicleSold     VehicleStatus = "sold"
	VehicleHidden   VehicleStatus = "hidden"
)

// Valid reports whether s is a known lifecycle status.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleInStock, VehicleReserved, VehicleSold, VehicleHidden:
		return true
	default:
		return false
	}
}

// Vehicle is a unit of inventory. It is created in_stock and reaches sold
// exactly once, only through the sale transaction; sold is terminal.
type Vehicle struct {
	ID        uuid.UUID
	DealerID  uuid.UUID
	VIN       string
	Make      string
	Model     string
	Year      int
	Status    VehicleStatus
	Price     float64
	CostPrice *float64 // nullable, purchase cost for COGS attribution
	CreatedAt time.Time
	UpdatedAt time.Time
}

type VehicleRepository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*Vehicle, error)
	List(ctx context.Context, dealerID uuid.UUID) ([]*Vehicle, error)
	UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status VehicleStatus) error
	Delete(ctx context.Context, dealerID, id uuid.UUID) error
}
