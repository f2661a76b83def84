package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/lotwise/dealerd/internal/auth"
	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
	"github.com/lotwise/dealerd/internal/sales"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Dealers() domain.DealerRepository
	Profiles() domain.ProfileRepository
	Vehicles() domain.VehicleRepository
	Customers() domain.CustomerRepository
	Sales() domain.SaleRepository
	Leads() domain.LeadRepository
	Expenses() domain.ExpenseRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Login(ctx context.Context, dealerID uuid.UUID, email, password string) (accessToken, refreshToken string, err error)
	LoginWithGoogle(ctx context.Context, provider *auth.OAuthProvider, code string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// SaleService abstracts the sale-recording flow for handler testing.
// *sales.Processor satisfies this interface.
type SaleService interface {
	RecordSale(ctx context.Context, id authgate.Identity, in sales.RecordSaleInput) (*domain.Sale, error)
	DeleteVehicle(ctx context.Context, id authgate.Identity, vehicleID uuid.UUID) error
}

// AnalyticsService abstracts the financial aggregates for handler testing.
// *analytics.Engine satisfies this interface.
type AnalyticsService interface {
	FinancialMetrics(ctx context.Context, id authgate.Identity, rng *domain.DateRange) (*domain.FinancialMetrics, error)
	RevenueOverTime(ctx context.Context, id authgate.Identity, rng *domain.DateRange) ([]domain.RevenuePoint, error)
	InventoryTurnover(ctx context.Context, id authgate.Identity) (int, error)
}
