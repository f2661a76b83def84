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

type CreateVehicleInput struct {
	Body struct {
		VIN       string   `json:"vin,omitempty" maxLength:"17" doc:"Vehicle identification number"`
		Make      string   `json:"make" minLength:"1" maxLength:"100" doc:"Manufacturer"`
		Model     string   `json:"model" minLength:"1" maxLength:"100" doc:"Model name"`
		Year      int      `json:"year" minimum:"1900" maximum:"2100" doc:"Model year"`
		Price     float64  `json:"price" exclusiveMinimum:"0" doc:"Listing price"`
		CostPrice *float64 `json:"cost_price,omitempty" minimum:"0" doc:"Purchase cost, used for COGS"`
	}
}

type CreateVehicleOutput struct {
	Body *domain.Vehicle
}

type ListVehiclesOutput struct {
	Body []*domain.Vehicle
}

type GetVehicleInput struct {
	ID uuid.UUID `path:"id" doc:"Vehicle ID"`
}

type GetVehicleOutput struct {
	Body *domain.Vehicle
}

type UpdateVehicleStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Vehicle ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type UpdateVehicleStatusOutput struct {
	Body *domain.Vehicle
}

type DeleteVehicleInput struct {
	ID uuid.UUID `path:"id" doc:"Vehicle ID"`
}

func RegisterVehicleRoutes(api huma.API, store DataStore, gate *authgate.Gate, saleSvc SaleService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-vehicle",
		Method:      http.MethodPost,
		Path:        "/vehicles",
		Summary:     "Add a vehicle to inventory",
		Tags:        []string{"Vehicles"},
	}, func(ctx context.Context, input *CreateVehicleInput) (*CreateVehicleOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageInventory)
		if err != nil {
			return nil, gateError(err)
		}

		now := time.Now()
		v := &domain.Vehicle{
			ID:        uuid.New(),
			DealerID:  profile.DealerID,
			VIN:       input.Body.VIN,
			Make:      input.Body.Make,
			Model:     input.Body.Model,
			Year:      input.Body.Year,
			Status:    domain.VehicleInStock,
			Price:     input.Body.Price,
			CostPrice: input.Body.CostPrice,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := store.Vehicles().Create(ctx, v); err != nil {
			return nil, huma.Error500InternalServerError("failed to create vehicle", err)
		}

		return &CreateVehicleOutput{Body: v}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-vehicles",
		Method:      http.MethodGet,
		Path:        "/vehicles",
		Summary:     "List the dealer's inventory",
		Tags:        []string{"Vehicles"},
	}, func(ctx context.Context, _ *struct{}) (*ListVehiclesOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.ResolveProfile(ctx, id)
		if err != nil {
			return nil, gateError(err)
		}

		vehicles, err := store.Vehicles().List(ctx, profile.DealerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list vehicles", err)
		}

		return &ListVehiclesOutput{Body: vehicles}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-vehicle",
		Method:      http.MethodGet,
		Path:        "/vehicles/{id}",
		Summary:     "Get a vehicle by ID",
		Tags:        []string{"Vehicles"},
	}, func(ctx context.Context, input *GetVehicleInput) (*GetVehicleOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.ResolveProfile(ctx, id)
		if err != nil {
			return nil, gateError(err)
		}

		v, err := store.Vehicles().GetByID(ctx, profile.DealerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("vehicle not found")
			}
			return nil, huma.Error500InternalServerError("failed to get vehicle", err)
		}

		return &GetVehicleOutput{Body: v}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-vehicle-status",
		Method:      http.MethodPatch,
		Path:        "/vehicles/{id}/status",
		Summary:     "Update a vehicle's lifecycle status",
		Tags:        []string{"Vehicles"},
	}, func(ctx context.Context, input *UpdateVehicleStatusInput) (*UpdateVehicleStatusOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageInventory)
		if err != nil {
			return nil, gateError(err)
		}

		target := domain.VehicleStatus(input.Body.Status)
		if !target.Valid() {
			return nil, huma.Error400BadRequest("unknown vehicle status: " + input.Body.Status)
		}
		// The in_stock -> sold transition belongs exclusively to the sale
		// transaction, where it is guarded against double sells.
		if target == domain.VehicleSold {
			return nil, huma.Error400BadRequest("vehicles reach sold only through a recorded sale")
		}

		existing, err := store.Vehicles().GetByID(ctx, profile.DealerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("vehicle not found")
			}
			return nil, huma.Error500InternalServerError("failed to get vehicle", err)
		}
		if existing.Status == domain.VehicleSold {
			return nil, huma.Error409Conflict("sold is terminal")
		}

		if err := store.Vehicles().UpdateStatus(ctx, profile.DealerID, input.ID, target); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("vehicle not found")
			}
			return nil, huma.Error500InternalServerError("failed to update vehicle status", err)
		}

		existing.Status = target
		existing.UpdatedAt = time.Now()

		return &UpdateVehicleStatusOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-vehicle",
		Method:      http.MethodDelete,
		Path:        "/vehicles/{id}",
		Summary:     "Delete a vehicle and release its media",
		Tags:        []string{"Vehicles"},
	}, func(ctx context.Context, input *DeleteVehicleInput) (*struct{}, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		if err := saleSvc.DeleteVehicle(ctx, id, input.ID); err != nil {
			switch {
			case errors.Is(err, authgate.ErrPermissionDenied):
				return nil, huma.Error403Forbidden("admin role required")
			case errors.Is(err, authgate.ErrNoIdentity),
				errors.Is(err, authgate.ErrProfileNotFound),
				errors.Is(err, authgate.ErrDeactivated):
				return nil, huma.Error401Unauthorized("identity cannot be resolved")
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("vehicle not found")
			default:
				return nil, huma.Error500InternalServerError("failed to delete vehicle", err)
			}
		}

		return nil, nil
	})
}
