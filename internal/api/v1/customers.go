package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
)

type CreateCustomerInput struct {
	Body struct {
		Name  string `json:"name" minLength:"1" maxLength:"255" doc:"Customer name"`
		Email string `json:"email,omitempty" maxLength:"255" doc:"Email"`
		Phone string `json:"phone,omitempty" maxLength:"32" doc:"Phone"`
	}
}

type CreateCustomerOutput struct {
	Body *domain.Customer
}

type ListCustomersOutput struct {
	Body []*domain.Customer
}

type GetCustomerInput struct {
	ID uuid.UUID `path:"id" doc:"Customer ID"`
}

type GetCustomerOutput struct {
	Body *domain.Customer
}

func RegisterCustomerRoutes(api huma.API, store DataStore, gate *authgate.Gate) {
	huma.Register(api, huma.Operation{
		OperationID: "create-customer",
		Method:      http.MethodPost,
		Path:        "/customers",
		Summary:     "Register a customer",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, input *CreateCustomerInput) (*CreateCustomerOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermRecordSale)
		if err != nil {
			return nil, gateError(err)
		}

		now := time.Now()
		c := &domain.Customer{
			ID:        uuid.New(),
			DealerID:  profile.DealerID,
			Name:      input.Body.Name,
			Email:     input.Body.Email,
			Phone:     input.Body.Phone,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := store.Customers().Create(ctx, c); err != nil {
			return nil, huma.Error500InternalServerError("failed to create customer", err)
		}

		return &CreateCustomerOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-customers",
		Method:      http.MethodGet,
		Path:        "/customers",
		Summary:     "List the dealer's customers",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, _ *struct{}) (*ListCustomersOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.ResolveProfile(ctx, id)
		if err != nil {
			return nil, gateError(err)
		}

		customers, err := store.Customers().List(ctx, profile.DealerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list customers", err)
		}

		return &ListCustomersOutput{Body: customers}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-customer",
		Method:      http.MethodGet,
		Path:        "/customers/{id}",
		Summary:     "Get a customer by ID",
		Tags:        []string{"Customers"},
	}, func(ctx context.Context, input *GetCustomerInput) (*GetCustomerOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.ResolveProfile(ctx, id)
		if err != nil {
			return nil, gateError(err)
		}

		c, err := store.Customers().GetByID(ctx, profile.DealerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("customer not found")
			}
			return nil, huma.Error500InternalServerError("failed to get customer", err)
		}

		return &GetCustomerOutput{Body: c}, nil
	})
}
