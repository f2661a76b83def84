package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lotwise/dealerd/internal/auth"
	"github.com/lotwise/dealerd/internal/authgate"
)

// Auth validates the Bearer access token and stores the asserted identity in
// the request context. The token carries identity only; authorization happens
// later at the gate, so a stale role in flight can never widen access.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				unauthorized(w)
				return
			}

			id, ok := authenticateJWT(tok, jwtSecret)
			if !ok {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}

func authenticateJWT(tokenStr, secret string) (authgate.Identity, bool) {
	claims, err := auth.ValidateToken(secret, tokenStr)
	if err != nil {
		return authgate.Identity{}, false
	}

	// Refresh tokens only mint new access tokens; they never authenticate a
	// request directly.
	if claims.TokenType != "access" {
		return authgate.Identity{}, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return authgate.Identity{}, false
	}

	return authgate.Identity{ID: userID, Email: claims.Email}, true
}
