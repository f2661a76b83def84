package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
)

type CreateExpenseInput struct {
	Body struct {
		VehicleID  *uuid.UUID `json:"vehicle_id,omitempty" doc:"Vehicle the expense is attributed to"`
		Category   string     `json:"category,omitempty" maxLength:"100" doc:"Expense category"`
		Amount     float64    `json:"amount" exclusiveMinimum:"0" doc:"Amount spent"`
		IncurredAt *time.Time `json:"incurred_at,omitempty" doc:"When the expense occurred, defaults to now"`
	}
}

type CreateExpenseOutput struct {
	Body *domain.Expense
}

type ListExpensesOutput struct {
	Body []*domain.Expense
}

func RegisterExpenseRoutes(api huma.API, store DataStore, gate *authgate.Gate) {
	huma.Register(api, huma.Operation{
		OperationID: "create-expense",
		Method:      http.MethodPost,
		Path:        "/expenses",
		Summary:     "Record an expense",
		Tags:        []string{"Expenses"},
	}, func(ctx context.Context, input *CreateExpenseInput) (*CreateExpenseOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageInventory)
		if err != nil {
			return nil, gateError(err)
		}

		now := time.Now()
		incurredAt := now
		if input.Body.IncurredAt != nil {
			incurredAt = *input.Body.IncurredAt
		}

		e := &domain.Expense{
			ID:         uuid.New(),
			DealerID:   profile.DealerID,
			VehicleID:  input.Body.VehicleID,
			Category:   input.Body.Category,
			Amount:     input.Body.Amount,
			IncurredAt: incurredAt,
			CreatedAt:  now,
		}

		if err := store.Expenses().Create(ctx, e); err != nil {
			return nil, huma.Error500InternalServerError("failed to create expense", err)
		}

		return &CreateExpenseOutput{Body: e}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-expenses",
		Method:      http.MethodGet,
		Path:        "/expenses",
		Summary:     "List the dealer's expenses",
		Tags:        []string{"Expenses"},
	}, func(ctx context.Context, _ *struct{}) (*ListExpensesOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermViewAnalytics)
		if err != nil {
			return nil, gateError(err)
		}

		expenses, err := store.Expenses().List(ctx, profile.DealerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list expenses", err)
		}

		return &ListExpensesOutput{Body: expenses}, nil
	})
}
