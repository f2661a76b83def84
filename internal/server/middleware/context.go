package middleware

import (
	"context"

	"github.com/lotwise/dealerd/internal/authgate"
)

type contextKey string

const ContextKeyIdentity contextKey = "identity"

// IdentityFromContext returns the authenticated caller identity placed by the
// Auth middleware. The identity is unresolved; handlers pass it through the
// gate to obtain a profile.
func IdentityFromContext(ctx context.Context) (authgate.Identity, bool) {
	v, ok := ctx.Value(ContextKeyIdentity).(authgate.Identity)
	return v, ok
}
