package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/lotwise/dealerd/internal/api/v1"
	"github.com/lotwise/dealerd/internal/domain"
)

func TestCreateLead(t *testing.T) {
	t.Parallel()

	dealer := &domain.Dealer{ID: fixedDealerID(), Name: "Lotwise Motors", Slug: "lotwise-motors"}

	leadBody := map[string]any{
		"dealer_slug":   "lotwise-motors",
		"customer_name": "Dana Whitfield",
		"phone":         "+1-555-0137",
		"message":       "Is the sedan still available?",
	}

	t.Run("happy_path_notifies_sales_floor", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)

		var notified *domain.Lead
		store := &mockDataStore{
			dealers: &mockDealerRepo{
				getBySlugFunc: func(_ context.Context, slug string) (*domain.Dealer, error) {
					assert.Equal(t, "lotwise-motors", slug)
					return dealer, nil
				},
			},
			leads: &mockLeadRepo{
				createFunc: func(_ context.Context, l *domain.Lead) error {
					assert.Equal(t, fixedDealerID(), l.DealerID)
					assert.Equal(t, domain.LeadNew, l.Status)
					return nil
				},
			},
		}
		notifier := &mockNotifier{
			notifyFunc: func(_ context.Context, d *domain.Dealer, l *domain.Lead) error {
				assert.Equal(t, dealer.ID, d.ID)
				notified = l
				return nil
			},
		}

		v1.RegisterPublicLeadRoutes(api, store, notifier)

		resp := api.Post("/leads", leadBody)

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Lead
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Dana Whitfield", body.CustomerName)
		require.NotNil(t, notified)
		assert.Equal(t, body.ID, notified.ID)
	})

	t.Run("notification_failure_does_not_fail_the_lead", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			dealers: &mockDealerRepo{
				getBySlugFunc: func(context.Context, string) (*domain.Dealer, error) { return dealer, nil },
			},
			leads: &mockLeadRepo{
				createFunc: func(context.Context, *domain.Lead) error { return nil },
			},
		}
		notifier := &mockNotifier{
			notifyFunc: func(context.Context, *domain.Dealer, *domain.Lead) error {
				return errors.New("slack down")
			},
		}

		v1.RegisterPublicLeadRoutes(api, store, notifier)

		resp := api.Post("/leads", leadBody)

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("unknown_dealer_maps_to_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			dealers: &mockDealerRepo{
				getBySlugFunc: func(context.Context, string) (*domain.Dealer, error) {
					return nil, domain.ErrNotFound
				},
			},
		}

		v1.RegisterPublicLeadRoutes(api, store, &mockNotifier{})

		resp := api.Post("/leads", leadBody)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("foreign_vehicle_maps_to_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			dealers: &mockDealerRepo{
				getBySlugFunc: func(context.Context, string) (*domain.Dealer, error) { return dealer, nil },
			},
			vehicles: &mockVehicleRepo{
				getByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (*domain.Vehicle, error) {
					return nil, domain.ErrNotFound
				},
			},
		}

		v1.RegisterPublicLeadRoutes(api, store, &mockNotifier{})

		withVehicle := map[string]any{}
		for k, v := range leadBody {
			withVehicle[k] = v
		}
		withVehicle["vehicle_id"] = uuid.NewString()

		resp := api.Post("/leads", withVehicle)

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestListLeads(t *testing.T) {
	t.Parallel()

	t.Run("service_role_may_list", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		profiles := staffProfiles(activeProfile(domain.RoleService))
		store := &mockDataStore{
			profiles: profiles,
			leads: &mockLeadRepo{
				listFunc: func(_ context.Context, dealerID uuid.UUID) ([]*domain.Lead, error) {
					assert.Equal(t, fixedDealerID(), dealerID)
					return []*domain.Lead{{ID: uuid.New(), DealerID: dealerID, Status: domain.LeadNew}}, nil
				},
			},
		}

		v1.RegisterLeadRoutes(api, store, newGate(profiles))

		resp := api.GetCtx(identityCtx(fixedUserID()), "/leads")

		require.Equal(t, http.StatusOK, resp.Code)

		var body []*domain.Lead
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 1)
	})

	t.Run("viewer_forbidden", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		profiles := staffProfiles(activeProfile(domain.RoleViewer))

		v1.RegisterLeadRoutes(api, &mockDataStore{profiles: profiles}, newGate(profiles))

		resp := api.GetCtx(identityCtx(fixedUserID()), "/leads")

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

func TestUpdateLeadStatus(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		leadID := uuid.New()
		profiles := staffProfiles(activeProfile(domain.RoleSales))
		store := &mockDataStore{
			profiles: profiles,
			leads: &mockLeadRepo{
				getByIDFunc: func(_ context.Context, dealerID, id uuid.UUID) (*domain.Lead, error) {
					return &domain.Lead{ID: id, DealerID: dealerID, Status: domain.LeadNew}, nil
				},
				updateStatusFunc: func(_ context.Context, _, id uuid.UUID, status domain.LeadStatus) error {
					assert.Equal(t, leadID, id)
					assert.Equal(t, domain.LeadContacted, status)
					return nil
				},
			},
		}

		v1.RegisterLeadRoutes(api, store, newGate(profiles))

		resp := api.PatchCtx(identityCtx(fixedUserID()), "/leads/"+leadID.String()+"/status",
			map[string]any{"status": "contacted"})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Lead
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.LeadContacted, body.Status)
	})

	t.Run("unknown_status_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		profiles := staffProfiles(activeProfile(domain.RoleSales))

		v1.RegisterLeadRoutes(api, &mockDataStore{profiles: profiles}, newGate(profiles))

		resp := api.PatchCtx(identityCtx(fixedUserID()), "/leads/"+uuid.NewString()+"/status",
			map[string]any{"status": "maybe"})

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
