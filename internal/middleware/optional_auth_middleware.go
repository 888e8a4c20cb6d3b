package middleware

import (
	"crypto/rsa"
	"net/http"

	"github.com/theopenshift/openshift-web/internal/session"
)

// OptionalAuthMiddleware attaches the identity when a valid token is present
// and otherwise lets the request through unauthenticated.
func OptionalAuthMiddleware(pub *rsa.PublicKey, issuer string, hub *session.Hub) func(http.Handler) http.Handler {
	required := AuthMiddleware(pub, issuer, hub)
	return func(next http.Handler) http.Handler {
		authed := required(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, _ := extractAccessToken(r) // ignore error here
			if tokenStr == "" {
				next.ServeHTTP(w, r) // unauthenticated is allowed
				return
			}
			if _, err := ValidateToken(tokenStr, pub, issuer); err != nil {
				next.ServeHTTP(w, r)
				return
			}
			authed.ServeHTTP(w, r)
		})
	}
}
