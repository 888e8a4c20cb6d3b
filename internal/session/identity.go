package session

import (
	"context"
	"errors"
	"time"

	"github.com/theopenshift/openshift-web/internal/models"
)

// ErrNoAccessToken means no identity-provider token is attached to the
// current request.
var ErrNoAccessToken = errors.New("no_access_token")

// Identity is the signed-in user as asserted by the identity provider's token.
type Identity struct {
	UserID      string          `json:"id"`
	Email       string          `json:"email,omitempty"`
	Name        string          `json:"name,omitempty"`
	Role        models.RoleType `json:"role"`
	AccessToken string          `json:"-"`
	ExpiresAt   time.Time       `json:"-"`
}

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// FromContext returns the identity attached by the auth middleware.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(*Identity)
	return id, ok && id != nil
}

// ContextTokenSource hands out the access token of the request being served.
// It is read fresh on every call; nothing is cached across requests.
type ContextTokenSource struct{}

func (ContextTokenSource) Token(ctx context.Context) (string, error) {
	id, ok := FromContext(ctx)
	if !ok || id.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return id.AccessToken, nil
}
