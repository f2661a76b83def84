package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/lotwise/dealerd/internal/auth"
	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
	"github.com/lotwise/dealerd/internal/sales"
	"github.com/lotwise/dealerd/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the caller identity for DoCtx
// ---------------------------------------------------------------------------

func identityCtx(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(),
		middleware.ContextKeyIdentity, authgate.Identity{ID: userID})
}

// newGate builds a real gate over a profile repo and a fresh memory cache.
func newGate(profiles domain.ProfileRepository) *authgate.Gate {
	return authgate.New(profiles, authgate.NewMemoryCache(), 0)
}

// staffProfiles is a profile repo preloaded with one profile per identity.
func staffProfiles(profiles ...*domain.Profile) *mockProfileRepo {
	byID := make(map[uuid.UUID]*domain.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}
	return &mockProfileRepo{
		getByIdentityFunc: func(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
			p, ok := byID[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return p, nil
		},
	}
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	dealers   domain.DealerRepository
	profiles  domain.ProfileRepository
	vehicles  domain.VehicleRepository
	customers domain.CustomerRepository
	sales     domain.SaleRepository
	leads     domain.LeadRepository
	expenses  domain.ExpenseRepository
}

func (m *mockDataStore) Dealers() domain.DealerRepository     { return m.dealers }
func (m *mockDataStore) Profiles() domain.ProfileRepository   { return m.profiles }
func (m *mockDataStore) Vehicles() domain.VehicleRepository   { return m.vehicles }
func (m *mockDataStore) Customers() domain.CustomerRepository { return m.customers }
func (m *mockDataStore) Sales() domain.SaleRepository         { return m.sales }
func (m *mockDataStore) Leads() domain.LeadRepository         { return m.leads }
func (m *mockDataStore) Expenses() domain.ExpenseRepository   { return m.expenses }

// ---------------------------------------------------------------------------
// Mock DealerRepository
// ---------------------------------------------------------------------------

type mockDealerRepo struct {
	createFunc    func(ctx context.Context, d *domain.Dealer) error
	getByIDFunc   func(ctx context.Context, id uuid.UUID) (*domain.Dealer, error)
	getBySlugFunc func(ctx context.Context, slug string) (*domain.Dealer, error)
	listFunc      func(ctx context.Context) ([]*domain.Dealer, error)
}

func (m *mockDealerRepo) Create(ctx context.Context, d *domain.Dealer) error {
	return m.createFunc(ctx, d)
}

func (m *mockDealerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dealer, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockDealerRepo) GetBySlug(ctx context.Context, slug string) (*domain.Dealer, error) {
	return m.getBySlugFunc(ctx, slug)
}

func (m *mockDealerRepo) List(ctx context.Context) ([]*domain.Dealer, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock ProfileRepository
// ---------------------------------------------------------------------------

type mockProfileRepo struct {
	createFunc        func(ctx context.Context, p *domain.Profile) error
	getByIdentityFunc func(ctx context.Context, identityID uuid.UUID) (*domain.Profile, error)
	getByEmailFunc    func(ctx context.Context, dealerID uuid.UUID, email string) (*domain.Profile, error)
	lookupByEmailFunc func(ctx context.Context, email string) (*domain.Profile, error)
	listFunc          func(ctx context.Context, dealerID uuid.UUID) ([]*domain.Profile, error)
	setRoleFunc       func(ctx context.Context, dealerID, id uuid.UUID, role domain.Role) error
	setActiveFunc     func(ctx context.Context, dealerID, id uuid.UUID, active bool) error
}

func (m *mockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	return m.createFunc(ctx, p)
}

func (m *mockProfileRepo) GetByIdentity(ctx context.Context, identityID uuid.UUID) (*domain.Profile, error) {
	return m.getByIdentityFunc(ctx, identityID)
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, dealerID uuid.UUID, email string) (*domain.Profile, error) {
	return m.getByEmailFunc(ctx, dealerID, email)
}

func (m *mockProfileRepo) LookupByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return m.lookupByEmailFunc(ctx, email)
}

func (m *mockProfileRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Profile, error) {
	return m.listFunc(ctx, dealerID)
}

func (m *mockProfileRepo) SetRole(ctx context.Context, dealerID, id uuid.UUID, role domain.Role) error {
	return m.setRoleFunc(ctx, dealerID, id, role)
}

func (m *mockProfileRepo) SetActive(ctx context.Context, dealerID, id uuid.UUID, active bool) error {
	return m.setActiveFunc(ctx, dealerID, id, active)
}

// ---------------------------------------------------------------------------
// Mock VehicleRepository
// ---------------------------------------------------------------------------

type mockVehicleRepo struct {
	createFunc       func(ctx context.Context, v *domain.Vehicle) error
	getByIDFunc      func(ctx context.Context, dealerID, id uuid.UUID) (*domain.Vehicle, error)
	listFunc         func(ctx context.Context, dealerID uuid.UUID) ([]*domain.Vehicle, error)
	updateStatusFunc func(ctx context.Context, dealerID, id uuid.UUID, status domain.VehicleStatus) error
	deleteFunc       func(ctx context.Context, dealerID, id uuid.UUID) error
}

func (m *mockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	return m.createFunc(ctx, v)
}

func (m *mockVehicleRepo) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Vehicle, error) {
	return m.getByIDFunc(ctx, dealerID, id)
}

func (m *mockVehicleRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Vehicle, error) {
	return m.listFunc(ctx, dealerID)
}

func (m *mockVehicleRepo) UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status domain.VehicleStatus) error {
	return m.updateStatusFunc(ctx, dealerID, id, status)
}

func (m *mockVehicleRepo) Delete(ctx context.Context, dealerID, id uuid.UUID) error {
	return m.deleteFunc(ctx, dealerID, id)
}

// ---------------------------------------------------------------------------
// Mock CustomerRepository
// ---------------------------------------------------------------------------

type mockCustomerRepo struct {
	createFunc  func(ctx context.Context, c *domain.Customer) error
	getByIDFunc func(ctx context.Context, dealerID, id uuid.UUID) (*domain.Customer, error)
	listFunc    func(ctx context.Context, dealerID uuid.UUID) ([]*domain.Customer, error)
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	return m.createFunc(ctx, c)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Customer, error) {
	return m.getByIDFunc(ctx, dealerID, id)
}

func (m *mockCustomerRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Customer, error) {
	return m.listFunc(ctx, dealerID)
}

// ---------------------------------------------------------------------------
// Mock SaleRepository
// ---------------------------------------------------------------------------

type mockSaleRepo struct {
	recordFunc func(ctx context.Context, s *domain.Sale) (int, error)
	listFunc   func(ctx context.Context, dealerID uuid.UUID, limit int) ([]*domain.Sale, error)
}

func (m *mockSaleRepo) Record(ctx context.Context, s *domain.Sale) (int, error) {
	return m.recordFunc(ctx, s)
}

func (m *mockSaleRepo) List(ctx context.Context, dealerID uuid.UUID, limit int) ([]*domain.Sale, error) {
	return m.listFunc(ctx, dealerID, limit)
}

// ---------------------------------------------------------------------------
// Mock LeadRepository
// ---------------------------------------------------------------------------

type mockLeadRepo struct {
	createFunc       func(ctx context.Context, l *domain.Lead) error
	getByIDFunc      func(ctx context.Context, dealerID, id uuid.UUID) (*domain.Lead, error)
	listFunc         func(ctx context.Context, dealerID uuid.UUID) ([]*domain.Lead, error)
	updateStatusFunc func(ctx context.Context, dealerID, id uuid.UUID, status domain.LeadStatus) error
}

func (m *mockLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	return m.createFunc(ctx, l)
}

func (m *mockLeadRepo) GetByID(ctx context.Context, dealerID, id uuid.UUID) (*domain.Lead, error) {
	return m.getByIDFunc(ctx, dealerID, id)
}

func (m *mockLeadRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Lead, error) {
	return m.listFunc(ctx, dealerID)
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, dealerID, id uuid.UUID, status domain.LeadStatus) error {
	return m.updateStatusFunc(ctx, dealerID, id, status)
}

// ---------------------------------------------------------------------------
// Mock ExpenseRepository
// ---------------------------------------------------------------------------

type mockExpenseRepo struct {
	createFunc func(ctx context.Context, e *domain.Expense) error
	listFunc   func(ctx context.Context, dealerID uuid.UUID) ([]*domain.Expense, error)
}

func (m *mockExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	return m.createFunc(ctx, e)
}

func (m *mockExpenseRepo) List(ctx context.Context, dealerID uuid.UUID) ([]*domain.Expense, error) {
	return m.listFunc(ctx, dealerID)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	loginFunc           func(ctx context.Context, dealerID uuid.UUID, email, password string) (string, string, error)
	loginWithGoogleFunc func(ctx context.Context, provider *auth.OAuthProvider, code string) (string, string, error)
	refreshFunc         func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Login(ctx context.Context, dealerID uuid.UUID, email, password string) (string, string, error) {
	return m.loginFunc(ctx, dealerID, email, password)
}

func (m *mockAuthService) LoginWithGoogle(ctx context.Context, provider *auth.OAuthProvider, code string) (string, string, error) {
	return m.loginWithGoogleFunc(ctx, provider, code)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Mock SaleService
// ---------------------------------------------------------------------------

type mockSaleService struct {
	recordSaleFunc    func(ctx context.Context, id authgate.Identity, in sales.RecordSaleInput) (*domain.Sale, error)
	deleteVehicleFunc func(ctx context.Context, id authgate.Identity, vehicleID uuid.UUID) error
}

func (m *mockSaleService) RecordSale(ctx context.Context, id authgate.Identity, in sales.RecordSaleInput) (*domain.Sale, error) {
	return m.recordSaleFunc(ctx, id, in)
}

func (m *mockSaleService) DeleteVehicle(ctx context.Context, id authgate.Identity, vehicleID uuid.UUID) error {
	return m.deleteVehicleFunc(ctx, id, vehicleID)
}

// ---------------------------------------------------------------------------
// Mock AnalyticsService
// ---------------------------------------------------------------------------

type mockAnalyticsService struct {
	financialMetricsFunc  func(ctx context.Context, id authgate.Identity, rng *domain.DateRange) (*domain.FinancialMetrics, error)
	revenueOverTimeFunc   func(ctx context.Context, id authgate.Identity, rng *domain.DateRange) ([]domain.RevenuePoint, error)
	inventoryTurnoverFunc func(ctx context.Context, id authgate.Identity) (int, error)
}

func (m *mockAnalyticsService) FinancialMetrics(ctx context.Context, id authgate.Identity, rng *domain.DateRange) (*domain.FinancialMetrics, error) {
	return m.financialMetricsFunc(ctx, id, rng)
}

func (m *mockAnalyticsService) RevenueOverTime(ctx context.Context, id authgate.Identity, rng *domain.DateRange) ([]domain.RevenuePoint, error) {
	return m.revenueOverTimeFunc(ctx, id, rng)
}

func (m *mockAnalyticsService) InventoryTurnover(ctx context.Context, id authgate.Identity) (int, error) {
	return m.inventoryTurnoverFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock LeadNotifier
// ---------------------------------------------------------------------------

type mockNotifier struct {
	notifyFunc func(ctx context.Context, dealer *domain.Dealer, lead *domain.Lead) error
}

func (m *mockNotifier) NotifyLead(ctx context.Context, dealer *domain.Dealer, lead *domain.Lead) error {
	if m.notifyFunc == nil {
		return nil
	}
	return m.notifyFunc(ctx, dealer, lead)
}

// ---------------------------------------------------------------------------
// Deterministic UUIDs for stable tests
// ---------------------------------------------------------------------------

func fixedDealerID() uuid.UUID {
	return uuid.MustParse("00000000-0000-0000-0000-000000000001")
}

func fixedUserID() uuid.UUID {
	return uuid.MustParse("00000000-0000-0000-0000-000000000002")
}

func fixedVehicleID() uuid.UUID {
	return uuid.MustParse("00000000-0000-0000-0000-000000000003")
}

func activeProfile(role domain.Role) *domain.Profile {
	return &domain.Profile{
		ID:       fixedUserID(),
		DealerID: fixedDealerID(),
		Email:    "staff@example.com",
		Role:     role,
		Active:   true,
	}
}
