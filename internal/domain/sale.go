package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentLoan         PaymentMethod = "loan"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
	PaymentOther        PaymentMethod = "other"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentLoan, PaymentBankTransfer, PaymentCheque, PaymentOther:
		return true
	default:
		return false
	}
}

// Sale is an append-only ledger entry. Once recorded it is never updated or
// deleted.
type Sale struct {
	ID            uuid.UUID
	DealerID      uuid.UUID
	VehicleID     uuid.UUID
	CustomerID    uuid.UUID
	SellerID      uuid.UUID
	Price         float64
	PaymentMethod PaymentMethod
	SoldAt        time.Time
	CreatedAt     time.Time
}

type SaleRepository interface {
	// Record commits the sale atomically: the ledger insert, the vehicle's
	// in_stock -> sold transition, and a read-only count of still-open leads
	// on the vehicle all happen in one transaction. A vehicle that is not
	// in_stock aborts the transaction with ErrVehicleUnavailable; a customer
	// outside the dealer aborts with ErrNotFound. The returned count is the
	// number of open leads observed at commit time.
	Record(ctx context.Context, s *Sale) (openLeads int, err error)
	List(ctx context.Context, dealerID uuid.UUID, limit int) ([]*Sale, error)
}
