package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lotwise/dealerd/internal/domain"
)

type Store struct {
	pool      *pgxpool.Pool
	dealers   *DealerRepo
	profiles  *ProfileRepo
	vehicles  *VehicleRepo
	customers *CustomerRepo
	sales     *SaleRepo
	leads     *LeadRepo
	expenses  *ExpenseRepo
	analytics *AnalyticsRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:      pool,
		dealers:   NewDealerRepo(pool),
		profiles:  NewProfileRepo(pool),
		vehicles:  NewVehicleRepo(pool),
		customers: NewCustomerRepo(pool),
		sales:     NewSaleRepo(pool),
		leads:     NewLeadRepo(pool),
		expenses:  NewExpenseRepo(pool),
		analytics: NewAnalyticsRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Dealers() domain.DealerRepository      { return s.dealers }
func (s *Store) Profiles() domain.ProfileRepository    { return s.profiles }
func (s *Store) Vehicles() domain.VehicleRepository    { return s.vehicles }
func (s *Store) Customers() domain.CustomerRepository  { return s.customers }
func (s *Store) Sales() domain.SaleRepository          { return s.sales }
func (s *Store) Leads() domain.LeadRepository          { return s.leads }
func (s *Store) Expenses() domain.ExpenseRepository    { return s.expenses }
func (s *Store) Analytics() domain.AnalyticsRepository { return s.analytics }
