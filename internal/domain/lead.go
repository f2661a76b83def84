package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadNew             LeadStatus = "new"
	LeadContacted       LeadStatus = "contacted"
	LeadQualified       LeadStatus = "qualified"
	LeadTestDriveBooked LeadStatus = "test_drive_booked"
	LeadWon             LeadStatus = "won"
	LeadLost            LeadStatus = "lost"
)

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadTestDriveBooked, LeadWon, LeadLost:
		return true
	default:
		return false
	}
}

// Lead is a customer inquiry, optionally tied to a vehicle. Lead lifecycle
// is managed manually by staff; the sale transaction only reads them.
type Lead struct {
	ID           uuid.UUID
	DealerID     uuid.UUID
	VehicleID    *uuid.UUID // nullable, general inquiries carry no vehicle
	CustomerName string
	Email        string
	Phone        string
	Message      string
	Status       LeadStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type LeadRepository interface {
	Create(ctx context.Context, l *Lead) error
	GetByID(ctx context.Context, dealerID, id uuid.UUID) (*Lead, error)
	List(ctx context.Context, dealerID uuid.UUID) ([]*Lead, error)
	UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status LeadStatus) error
}
