package middleware

import (
	"crypto/rsa"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/session"
	"github.com/theopenshift/openshift-web/internal/utils"
)

const (
	// AccessTokenCookieName is the identity provider's session cookie.
	AccessTokenCookieName = "__Host-accessToken"

	// RoleClaimNamespaced is where the identity provider's login action puts
	// the marketplace role; a bare "role" claim is accepted as well.
	RoleClaimNamespaced = "https://theopenshift.com.au/role"
)

// AuthMiddleware requires a valid identity-provider token, read from the
// Authorization header or, failing that, the session cookie. The resolved
// identity is attached to the request context and announced to hub.
func AuthMiddleware(pub *rsa.PublicKey, issuer string, hub *session.Hub) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), nil,
				)
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub, issuer)
			if vErr != nil || !tok.Valid {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusUnauthorized, utils.ErrCodeTokenExpired, "Token expired", vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid token", vErr,
				)
				return
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid claims", nil,
				)
				return
			}
			sub, ok := claims["sub"].(string)
			if !ok || sub == "" {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Missing subject", nil,
				)
				return
			}

			id := &session.Identity{
				UserID:      sub,
				Role:        roleFromClaims(claims),
				AccessToken: tokenStr,
			}
			id.Email, _ = claims["email"].(string)
			id.Name, _ = claims["name"].(string)
			if exp, ok := claims["exp"].(float64); ok {
				id.ExpiresAt = time.Unix(int64(exp), 0).UTC()
			}

			if hub != nil {
				hub.Touch(sub)
			}
			next.ServeHTTP(w, r.WithContext(session.WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole rejects identities whose role is not listed. It must run after
// AuthMiddleware.
func RequireRole(roles ...models.RoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.FromContext(r.Context())
			if !ok {
				utils.RespondErrorWithCode(
					w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Not signed in", nil,
				)
				return
			}
			if !slices.Contains(roles, id.Role) {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeForbidden, "You do not have access to this page", nil,
				)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleFromClaims(claims jwt.MapClaims) models.RoleType {
	for _, key := range []string{RoleClaimNamespaced, "role"} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return models.RoleType(strings.ToLower(v))
			}
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return models.RoleType(strings.ToLower(s))
				}
			}
		}
	}
	return models.RoleStaff
}

// helper: Authorization header first, then the session cookie
func extractAccessToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		if !strings.HasPrefix(h, "Bearer ") {
			return "", errors.New("malformed Authorization header")
		}
		return strings.TrimPrefix(h, "Bearer "), nil
	}
	c, err := r.Cookie(AccessTokenCookieName)
	if err != nil || c.Value == "" {
		return "", errors.New("missing access token")
	}
	return c.Value, nil
}
