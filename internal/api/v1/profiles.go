package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/domain"
)

type ListProfilesOutput struct {
	Body []*domain.Profile
}

type SetProfileRoleInput struct {
	ID   uuid.UUID `path:"id" doc:"Profile ID"`
	Body struct {
		Role string `json:"role" minLength:"1" doc:"admin, sales, service or viewer"`
	}
}

type SetProfileActiveInput struct {
	ID   uuid.UUID `path:"id" doc:"Profile ID"`
	Body struct {
		Active bool `json:"active" doc:"Whether the profile may act"`
	}
}

func RegisterProfileRoutes(api huma.API, store DataStore, gate *authgate.Gate) {
	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/profiles",
		Summary:     "List the dealer's staff",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, _ *struct{}) (*ListProfilesOutput, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageProfiles)
		if err != nil {
			return nil, gateError(err)
		}

		staff, err := store.Profiles().List(ctx, profile.DealerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list profiles", err)
		}

		for _, p := range staff {
			p.PasswordHash = ""
		}

		return &ListProfilesOutput{Body: staff}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-profile-role",
		Method:      http.MethodPatch,
		Path:        "/profiles/{id}/role",
		Summary:     "Change a staff member's role",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, input *SetProfileRoleInput) (*struct{}, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageProfiles)
		if err != nil {
			return nil, gateError(err)
		}

		role := domain.Role(input.Body.Role)
		if !role.Valid() {
			return nil, huma.Error400BadRequest("unknown role: " + input.Body.Role)
		}

		if err := store.Profiles().SetRole(ctx, profile.DealerID, input.ID, role); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to set role", err)
		}

		// Purge this instance's cache so the change lands immediately here;
		// other instances converge within the profile TTL.
		gate.Invalidate(ctx, input.ID)

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-profile-active",
		Method:      http.MethodPatch,
		Path:        "/profiles/{id}/active",
		Summary:     "Activate or deactivate a staff member",
		Tags:        []string{"Profiles"},
	}, func(ctx context.Context, input *SetProfileActiveInput) (*struct{}, error) {
		id, err := callerIdentity(ctx)
		if err != nil {
			return nil, err
		}

		profile, err := gate.Require(ctx, id, authgate.PermManageProfiles)
		if err != nil {
			return nil, gateError(err)
		}

		if profile.ID == input.ID && !input.Body.Active {
			return nil, huma.Error400BadRequest("cannot deactivate yourself")
		}

		if err := store.Profiles().SetActive(ctx, profile.DealerID, input.ID, input.Body.Active); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("profile not found")
			}
			return nil, huma.Error500InternalServerError("failed to set active flag", err)
		}

		gate.Invalidate(ctx, input.ID)

		return nil, nil
	})
}
