package authgate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lotwise/dealerd/internal/domain"
)

// Sentinel errors for the authgate package.
var (
	// ErrNoIdentity means the caller presented no identity or an invalid one.
	ErrNoIdentity = errors.New("authgate: missing or invalid identity")
	// ErrProfileNotFound means the identity is valid but no profile row exists.
	ErrProfileNotFound = errors.New("authgate: profile not found")
	// ErrDeactivated means the profile exists but its active flag is off.
	ErrDeactivated = errors.New("authgate: account deactivated")
	// ErrPermissionDenied means the profile's role lacks the capability.
	ErrPermissionDenied = errors.New("authgate: permission denied")
)

// DefaultProfileTTL is how long a resolved profile is trusted without a
// re-fetch. Out-of-band role or active-flag changes become visible on each
// instance only after its local entry expires.
const DefaultProfileTTL = 5 * time.Minute

// Identity is the opaque caller identity asserted by the identity provider
// (JWT session or OAuth callback). It carries no trust by itself; the gate
// resolves it to a dealer-scoped profile.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// Gate resolves identities to profiles through a TTL cache and enforces
// capability checks. All downstream dealer scoping flows from the profiles
// it returns.
type Gate struct {
	profiles domain.ProfileRepository
	cache    ProfileCache
	ttl      time.Duration
}

// New creates a Gate. A non-positive ttl falls back to DefaultProfileTTL.
func New(profiles domain.ProfileRepository, cache ProfileCache, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &Gate{
		profiles: profiles,
		cache:    cache,
		ttl:      ttl,
	}
}

// ResolveProfile translates an identity into its profile. Cache hits within
// the TTL return without touching the store. A missing profile or a
// deactivated account fails and purges any stale cache entry so the next
// attempt re-fetches.
func (g *Gate) ResolveProfile(ctx context.Context, id Identity) (*domain.Profile, error) {
	if id.ID == uuid.Nil {
		return nil, fmt.Errorf("authgate.ResolveProfile: %w", ErrNoIdentity)
	}

	key := cacheKey(id.ID)
	if p, ok := g.cache.Get(ctx, key); ok {
		return p, nil
	}

	p, err := g.profiles.GetByIdentity(ctx, id.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			g.cache.Delete(ctx, key)
			return nil, fmt.Errorf("authgate.ResolveProfile: %w", ErrProfileNotFound)
		}
		return nil, fmt.Errorf("authgate.ResolveProfile: %w", err)
	}

	if !p.Active {
		g.cache.Delete(ctx, key)
		return nil, fmt.Errorf("authgate.ResolveProfile: %w", ErrDeactivated)
	}

	g.cache.Set(ctx, key, p, g.ttl)

	return p, nil
}

// Require resolves the identity and checks that its role carries perm.
func (g *Gate) Require(ctx context.Context, id Identity, perm Permission) (*domain.Profile, error) {
	p, err := g.ResolveProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("authgate.Require: %w", err)
	}

	if !RoleHasPermission(p.Role, perm) {
		log.Debug().
			Str("profile_id", p.ID.String()).
			Str("role", string(p.Role)).
			Str("permission", perm.String()).
			Msg("authgate: permission denied")
		return nil, fmt.Errorf("authgate.Require: %s: %w", perm, ErrPermissionDenied)
	}

	return p, nil
}

// RequireRole resolves the identity and checks role membership directly.
// Prefer Require with a Permission; this exists for the few call sites that
// are role-shaped rather than capability-shaped.
func (g *Gate) RequireRole(ctx context.Context, id Identity, roles ...domain.Role) (*domain.Profile, error) {
	p, err := g.ResolveProfile(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("authgate.RequireRole: %w", err)
	}

	for _, r := range roles {
		if p.Role == r {
			return p, nil
		}
	}

	return nil, fmt.Errorf("authgate.RequireRole: role %s: %w", p.Role, ErrPermissionDenied)
}

// Invalidate purges the cached profile for an identity. Called after admin
// role or active-flag changes so the local instance observes them at once;
// other instances still wait out their own TTL.
func (g *Gate) Invalidate(ctx context.Context, identityID uuid.UUID) {
	g.cache.Delete(ctx, cacheKey(identityID))
}

func cacheKey(id uuid.UUID) string {
	return "profile:" + id.String()
}
