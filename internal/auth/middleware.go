package auth

import (
	"context"
	"net/http"

	"crg-site/internal/utils"
)

type contextKey string

const identityKey contextKey = "admin_identity"

// RevocationChecker reports whether a session token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Middleware gates a route group on a valid, unrevoked session token. The
// admin identity is placed into the request context on success.
func Middleware(tokens *TokenService, revoked RevocationChecker, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := ExtractTokenFromRequest(r, cookieName)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "missing session credential")
				return
			}

			identity, err := tokens.Verify(tokenString)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "invalid session credential")
				return
			}

			if revoked != nil {
				// A Redis failure fails closed for revocation checks
				isRevoked, err := revoked.IsRevoked(r.Context(), identity.JTI)
				if err != nil || isRevoked {
					utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "session no longer valid")
					return
				}
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext extracts the authenticated admin identity in handlers.
func IdentityFromContext(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(identityKey).(*Identity); ok {
		return identity
	}
	return nil
}
