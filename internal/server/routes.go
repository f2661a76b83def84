package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/lotwise/dealerd/internal/analytics"
	v1 "github.com/lotwise/dealerd/internal/api/v1"
	"github.com/lotwise/dealerd/internal/api/ws"
	"github.com/lotwise/dealerd/internal/auth"
	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/notify"
	"github.com/lotwise/dealerd/internal/sales"
	"github.com/lotwise/dealerd/internal/store/postgres"
)

func registerPublicRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, notifier notify.LeadNotifier, google *auth.OAuthProvider) {
	v1.RegisterAuthRoutes(api, store, authSvc, google)
	v1.RegisterPublicLeadRoutes(api, store, notifier)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, gate *authgate.Gate, saleSvc *sales.Processor, analyticsSvc *analytics.Engine) {
	v1.RegisterVehicleRoutes(api, store, gate, saleSvc)
	v1.RegisterSaleRoutes(api, store, gate, saleSvc)
	v1.RegisterCustomerRoutes(api, store, gate)
	v1.RegisterLeadRoutes(api, store, gate)
	v1.RegisterExpenseRoutes(api, store, gate)
	v1.RegisterAnalyticsRoutes(api, analyticsSvc)
	v1.RegisterProfileRoutes(api, store, gate)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/sales", hub.ServeSales)
}
