package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
	"github.com/lotwise/dealerd/internal/sales"
)

type RecordSaleInput struct {
	Body struct {
		VehicleID     string     `json:"vehicle_id" minLength:"1" doc:"Vehicle ID"`
		CustomerID    string     `json:"customer_id" minLength:"1" doc:"Customer ID"`
		Price         string     `json:"price" minLength:"1" doc:"Sale price as a decimal string"`
		PaymentMethod string     `json:"payment_method" minLength:"1" doc:"cash, loan, bank_transfer, cheque or other"`
		SoldAt        *time.Time `json:"sold_at,omitempty" doc:"Sale timestamp, defaults to now"`
	}
}

type RecordSaleOutput struct {
	Body *domain.Sale
}

type ListSalesInput struct {
	Limit int `query:"limit" minimum:"1" maximum:"500" default:"50" doc:"Max results"`
}

type ListSalesOutput struct {
	Body []*domain.Sale
}

func RegisterSaleRoutes(api huma.API, store DataStore, gate *authgate.Gate, saleSvc SaleService) {
	huma.Register(api, huma.Operation{
		OperationID: "record-sale",
		Method:      http.MethodPost,
		Path:        "/sales",
		Summary:     "Record a sale",
		Tags:        []string{"Sales"},
	}, func(ctx context.Context, input *RecordSaleInput) (*RecordSaleOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		sale, err := saleSvc.RecordSale(ctx, id, sales.RecordSaleInput{
			VehicleID:     input.Body.VehicleID,
			CustomerID:    input.Body.CustomerID,
			Price:         input.Body.Price,
			PaymentMethod: input.Body.PaymentMethod,
			SoldAt:        input.Body.SoldAt,
		})
		if err != nil {
			switch {
			case errors.Is(err, authgate.ErrPermissionDenied):
				return nil, huma.Error403Forbidden("insufficient permissions to record sales")
			case errors.Is(err, authgate.ErrNoIdentity),
				errors.Is(err, authgate.ErrProfileNotFound),
				errors.Is(err, authgate.ErrDeactivated):
				return nil, huma.Error401Unauthorized("identity cannot be resolved")
			case errors.Is(err, domain.ErrValidation):
				return nil, huma.Error422UnprocessableEntity(err.Error())
			case errors.Is(err, domain.ErrVehicleUnavailable):
				return nil, huma.Error409Conflict("vehicle is not in stock")
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("customer not found")
			default:
				return nil, huma.Error500InternalServerError("failed to record sale", err)
			}
		}

		return &RecordSaleOutput{Body: sale}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-sales",
		Method:      http.MethodGet,
		Path:        "/sales",
		Summary:     "List the dealer's sale ledger",
		Tags:        []string{"Sales"},
	}, func(ctx context.Context, input *ListSalesInput) (*ListSalesOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.ResolveProfile(ctx, id)
		if err != nil {
			return nil, gateError(err)
		}

		entries, err := store.Sales().List(ctx, profile.DealerID, input.Limit)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list sales", err)
		}

		return &ListSalesOutput{Body: entries}, nil
	})
}
