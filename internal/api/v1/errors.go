package v1

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lotwise/dealerd/internal/authgate"
	"github.com/lotwise/dealerd/internal/server/middleware"
)

// callerIdentity pulls the authenticated identity out of the request context.
func callerIdentity(ctx context.Context) (authgate.Identity, error) {
	id, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		return authgate.Identity{}, huma.Error401Unauthorized("missing identity")
	}
	return id, nil
}

// gateError maps gate resolution failures onto HTTP statuses. An identity
// that no longer resolves reads as 401; a resolved profile without the
// capability reads as 403.
func gateError(err error) error {
	switch {
	case errors.Is(err, authgate.ErrPermissionDenied):
		return huma.Error403Forbidden("insufficient permissions")
	case errors.Is(err, authgate.ErrNoIdentity),
		errors.Is(err, authgate.ErrProfileNotFound),
		errors.Is(err, authgate.ErrDeactivated):
		return huma.Error401Unauthorized("identity cannot be resolved")
	default:
		return huma.Error500InternalServerError("authorization check failed", err)
	}
}
