// Package sales coordinates sale recording: permission checks first, input
// validation second, then the single-transaction ledger write, and only after
// commit the best-effort fan-out (cached-view invalidation, live feed event).
package sales

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
	"github.com/lotwise/dealerd/internal/media"
	redisstore "github.com/lotwise/dealerd/internal/store/redis"
)

// Publisher pushes a committed-sale event to the live feed.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// ViewInvalidator drops a dealer's cached inventory and sales views.
type ViewInvalidator interface {
	InvalidateDealerViews(ctx context.Context, dealerID uuid.UUID) error
}

// Processor owns the sale-recording flow and admin vehicle deletion.
type Processor struct {
	gate     *authgate.Gate
	sales    domain.SaleRepository
	vehicles domain.VehicleRepository
	media    media.Store

	// Both optional; nil disables the corresponding post-commit step.
	views  ViewInvalidator
	events Publisher
}

func NewProcessor(gate *authgate.Gate, sales domain.SaleRepository, vehicles domain.VehicleRepository, mediaStore media.Store, views ViewInvalidator, events Publisher) *Processor {
	return &Processor{
		gate:     gate,
		sales:    sales,
		vehicles: vehicles,
		media:    mediaStore,
		views:    views,
		events:   events,
	}
}

// RecordSaleInput is the untrusted request body for recording a sale. Price
// arrives as a string so malformed numbers are rejected here rather than
// coerced by JSON decoding.
type RecordSaleInput struct {
	VehicleID     string
	CustomerID    string
	Price         string
	PaymentMethod string
	SoldAt        *time.Time
}

// SaleEvent is the payload published to the dealer's live feed after commit.
type SaleEvent struct {
	SaleID        uuid.UUID `json:"sale_id"`
	VehicleID     uuid.UUID `json:"vehicle_id"`
	SellerID      uuid.UUID `json:"seller_id"`
	Price         float64   `json:"price"`
	PaymentMethod string    `json:"payment_method"`
	SoldAt        time.Time `json:"sold_at"`
	OpenLeads     int       `json:"open_leads"`
}

// RecordSale validates in, records the sale atomically under the caller's
// dealer, and returns the committed sale. The seller is always the resolved
// caller; the input cannot attribute a sale to someone else.
func (p *Processor) RecordSale(ctx context.Context, id authgate.Identity, in RecordSaleInput) (*domain.Sale, error) {
	profile, err := p.gate.Require(ctx, id, authgate.PermRecordSale)
	if err != nil {
		return nil, fmt.Errorf("sales.RecordSale: %w", err)
	}

	sale, err := buildSale(profile, in)
	if err != nil {
		return nil, fmt.Errorf("sales.RecordSale: %w", err)
	}

	openLeads, err := p.sales.Record(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("sales.RecordSale: %w", err)
	}

	p.afterCommit(ctx, sale, openLeads)

	return sale, nil
}

func buildSale(profile *domain.Profile, in RecordSaleInput) (*domain.Sale, error) {
	vehicleID, err := uuid.Parse(in.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle id: %w", domain.ErrValidation)
	}

	customerID, err := uuid.Parse(in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer id: %w", domain.ErrValidation)
	}

	price, err := strconv.ParseFloat(in.Price, 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("price %q: %w", in.Price, domain.ErrValidation)
	}

	method := domain.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return nil, fmt.Errorf("payment method %q: %w", in.PaymentMethod, domain.ErrValidation)
	}

	now := time.Now().UTC()
	soldAt := now
	if in.SoldAt != nil {
		soldAt = in.SoldAt.UTC()
	}

	return &domain.Sale{
		ID:            uuid.New(),
		DealerID:      profile.DealerID,
		VehicleID:     vehicleID,
		CustomerID:    customerID,
		SellerID:      profile.ID,
		Price:         price,
		PaymentMethod: method,
		SoldAt:        soldAt,
		CreatedAt:     now,
	}, nil
}

// afterCommit runs the non-transactional fan-out. Failures here never undo
// the sale; they are logged and the caller still gets a success.
func (p *Processor) afterCommit(ctx context.Context, sale *domain.Sale, openLeads int) {
	if p.views != nil {
		if err := p.views.InvalidateDealerViews(ctx, sale.DealerID); err != nil {
			log.Warn().Err(err).
				Str("dealer_id", sale.DealerID.String()).
				Msg("sale committed but view invalidation failed")
		}
	}

	if p.events == nil {
		return
	}

	payload, err := json.Marshal(SaleEvent{
		SaleID:        sale.ID,
		VehicleID:     sale.VehicleID,
		SellerID:      sale.SellerID,
		Price:         sale.Price,
		PaymentMethod: string(sale.PaymentMethod),
		SoldAt:        sale.SoldAt,
		OpenLeads:     openLeads,
	})
	if err != nil {
		log.Warn().Err(err).Msg("sale event marshal failed")
		return
	}

	if err := p.events.Publish(ctx, redisstore.SaleChannel(sale.DealerID), payload); err != nil {
		log.Warn().Err(err).
			Str("dealer_id", sale.DealerID.String()).
			Msg("sale committed but feed publish failed")
	}
}

// DeleteVehicle removes a vehicle and releases its stored photos. Admin only.
// Media release is best-effort: orphaned files are cheaper than a vehicle row
// that refuses to die.
func (p *Processor) DeleteVehicle(ctx context.Context, id authgate.Identity, vehicleID uuid.UUID) error {
	profile, err := p.gate.RequireRole(ctx, id, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("sales.DeleteVehicle: %w", err)
	}

	// Dealer-scoped existence check so a foreign vehicle reads as not found
	// rather than silently deleting nothing.
	if _, err := p.vehicles.GetByID(ctx, profile.DealerID, vehicleID); err != nil {
		return fmt.Errorf("sales.DeleteVehicle: %w", err)
	}

	if err := p.media.Release(ctx, profile.DealerID, vehicleID); err != nil {
		log.Warn().Err(err).
			Str("vehicle_id", vehicleID.String()).
			Msg("media release failed, continuing with delete")
	}

	if err := p.vehicles.Delete(ctx, profile.DealerID, vehicleID); err != nil {
		return fmt.Errorf("sales.DeleteVehicle: %w", err)
	}

	if p.views != nil {
		if err := p.views.InvalidateDealerViews(ctx, profile.DealerID); err != nil {
			log.Warn().Err(err).
				Str("dealer_id", profile.DealerID.String()).
				Msg("vehicle deleted but view invalidation failed")
		}
	}

	return nil
}
