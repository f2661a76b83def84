package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
	"github.com/lotwise/dealerd/internal/notify"
)

type CreateLeadInput struct {
	Body struct {
		DealerSlug   string     `json:"dealer_slug" minLength:"1" maxLength:"63" doc:"Dealer slug"`
		VehicleID    *uuid.UUID `json:"vehicle_id,omitempty" doc:"Vehicle the inquiry is about"`
		CustomerName string     `json:"customer_name" minLength:"1" maxLength:"255" doc:"Name of the person inquiring"`
		Email        string     `json:"email,omitempty" maxLength:"255" doc:"Contact email"`
		Phone        string     `json:"phone,omitempty" maxLength:"32" doc:"Contact phone"`
		Message      string     `json:"message,omitempty" maxLength:"2000" doc:"Free-form message"`
	}
}

type CreateLeadOutput struct {
	Body *domain.Lead
}

type ListLeadsOutput struct {
	Body []*domain.Lead
}

type UpdateLeadStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Lead ID"`
	Body struct {
		Status string `json:"status" minLength:"1" doc:"Target status"`
	}
}

type UpdateLeadStatusOutput struct {
	Body *domain.Lead
}

// RegisterPublicLeadRoutes mounts the unauthenticated inquiry form endpoint.
func RegisterPublicLeadRoutes(api huma.API, store DataStore, notifier notify.LeadNotifier) {
	huma.Register(api, huma.Operation{
		OperationID: "create-lead",
		Method:      http.MethodPost,
		Path:        "/leads",
		Summary:     "Submit a sales inquiry",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *CreateLeadInput) (*CreateLeadOutput, error) {
		dealer, err := store.Dealers().GetBySlug(ctx, input.Body.DealerSlug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("dealer not found")
			}
			return nil, huma.Error500InternalServerError("failed to look up dealer", err)
		}

		if input.Body.VehicleID != nil {
			if _, err := store.Vehicles().GetByID(ctx, dealer.ID, *input.Body.VehicleID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("vehicle not found")
				}
				return nil, huma.Error500InternalServerError("failed to validate vehicle", err)
			}
		}

		now := time.Now()
		l := &domain.Lead{
			ID:           uuid.New(),
			DealerID:     dealer.ID,
			VehicleID:    input.Body.VehicleID,
			CustomerName: input.Body.CustomerName,
			Email:        input.Body.Email,
			Phone:        input.Body.Phone,
			Message:      input.Body.Message,
			Status:       domain.LeadNew,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := store.Leads().Create(ctx, l); err != nil {
			return nil, huma.Error500InternalServerError("failed to create lead", err)
		}

		// Best-effort heads-up to the sales floor; the lead is already stored.
		if err := notifier.NotifyLead(ctx, dealer, l); err != nil {
			log.Warn().Err(err).Str("lead_id", l.ID.String()).Msg("lead notification failed")
		}

		return &CreateLeadOutput{Body: l}, nil
	})
}

func RegisterLeadRoutes(api huma.API, store DataStore, gate *authgate.Gate) {
	huma.Register(api, huma.Operation{
		OperationID: "list-leads",
		Method:      http.MethodGet,
		Path:        "/leads",
		Summary:     "List the dealer's leads",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, _ *struct{}) (*ListLeadsOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageLeads)
		if err != nil {
			return nil, gateError(err)
		}

		leads, err := store.Leads().List(ctx, profile.DealerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list leads", err)
		}

		return &ListLeadsOutput{Body: leads}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-lead-status",
		Method:      http.MethodPatch,
		Path:        "/leads/{id}/status",
		Summary:     "Transition a lead's status",
		Tags:        []string{"Leads"},
	}, func(ctx context.Context, input *UpdateLeadStatusInput) (*UpdateLeadStatusOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageLeads)
		if err != nil {
			return nil, gateError(err)
		}

		target := domain.LeadStatus(input.Body.Status)
		if !target.Valid() {
			return nil, huma.Error400BadRequest("unknown lead status: " + input.Body.Status)
		}

		existing, err := store.Leads().GetByID(ctx, profile.DealerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("lead not found")
			}
			return nil, huma.Error500InternalServerError("failed to get lead", err)
		}

		if err := store.Leads().UpdateStatus(ctx, profile.DealerID, input.ID, target); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("lead not found")
			}
			return nil, huma.Error500InternalServerError("failed to update lead status", err)
		}

		existing.Status = target
		existing.UpdatedAt = time.Now()

		return &UpdateLeadStatusOutput{Body: existing}, nil
	})
}
