package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/dealerd/internal/domain"
)

type SaleRepo struct {
	pool *pgxpool.Pool
}

func NewSaleRepo(pool *pgxpool.Pool) *SaleRepo {
	return &SaleRepo{pool: pool}
}

// Record commits the sale ledger insert and the vehicle's lifecycle
// transition in one transaction. The vehicle update is conditioned on the
// current status being in_stock; zero rows affected means a concurrent sale
// (or a reserved/hidden vehicle) won, and the whole transaction aborts with
// ErrVehicleUnavailable.
func (r *SaleRepo) Record(ctx context.Context, s *domain.Sale) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("saleRepo.Record: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var customerOK bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE dealer_id = $1 AND id = $2)`,
		s.DealerID, s.CustomerID,
	).Scan(&customerOK)
	if err != nil {
		return 0, fmt.Errorf("saleRepo.Record: customer check: %w", err)
	}
	if !customerOK {
		return 0, fmt.Errorf("saleRepo.Record: customer: %w", domain.ErrNotFound)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO sales (id, dealer_id, vehicle_id, customer_id, seller_id, price, payment_method, sold_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.DealerID, s.VehicleID, s.CustomerID, s.SellerID,
		s.Price, s.PaymentMethod, s.SoldAt, s.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("saleRepo.Record: insert: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = $1, updated_at = now()
		 WHERE dealer_id = $2 AND id = $3 AND status = $4`,
		domain.VehicleSold, s.DealerID, s.VehicleID, domain.VehicleInStock,
	)
	if err != nil {
		return 0, fmt.Errorf("saleRepo.Record: vehicle transition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("saleRepo.Record: vehicle %s: %w", s.VehicleID, domain.ErrVehicleUnavailable)
	}

	// Open inquiries on the vehicle are observed but not transitioned; lead
	// lifecycle stays manual.
	// TODO: decide whether leads on a sold vehicle should be auto-closed
	// (mark won / mark competing lost) once the sales team settles on a
	// policy.
	var openLeads int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM leads
		 WHERE dealer_id = $1 AND vehicle_id = $2 AND status = $3`,
		s.DealerID, s.VehicleID, domain.LeadNew,
	).Scan(&openLeads)
	if err != nil {
		return 0, fmt.Errorf("saleRepo.Record: lead count: %w", err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return 0, fmt.Errorf("saleRepo.Record: commit: %w", err)
	}

	if openLeads > 0 {
		log.Debug().
			Str("vehicle_id", s.VehicleID.String()).
			Int("open_leads", openLeads).
			Msg("sale recorded with open inquiries on vehicle")
	}

	return openLeads, nil
}

func (r *SaleRepo) List(ctx context.Context, dealerID uuid.UUID, limit int) ([]*domain.Sale, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, dealer_id, vehicle_id, customer_id, seller_id, price, payment_method, sold_at, created_at
		 FROM sales WHERE dealer_id = $1 ORDER BY sold_at DESC, id
		 LIMIT $2`,
		dealerID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("saleRepo.List: %w", err)
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		var s domain.Sale
		err = rows.Scan(&s.ID, &s.DealerID, &s.VehicleID, &s.CustomerID, &s.SellerID,
			&s.Price, &s.PaymentMethod, &s.SoldAt, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("saleRepo.List: scan: %w", err)
		}
		sales = append(sales, &s)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("saleRepo.List: rows: %w", err)
	}

	return sales, nil
}
