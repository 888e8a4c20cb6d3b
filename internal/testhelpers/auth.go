package testhelpers

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/theopenshift/openshift-web/internal/middleware"
	"github.com/theopenshift/openshift-web/internal/models"
)

// TestIssuer is the issuer claim on every minted token.
const TestIssuer = "https://idp.test.theopenshift.com.au/"

// Keys holds an RSA key pair standing in for the identity provider.
type Keys struct {
	T          *testing.T
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey
}

func NewKeys(t *testing.T) *Keys {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err, "Failed to generate test RSA key")
	return &Keys{T: t, PrivateKey: priv, PublicKey: &priv.PublicKey}
}

// CreateJWT mints an RS256 identity token for userID with the given role,
// valid for fifteen minutes.
func (k *Keys) CreateJWT(userID string, role models.RoleType) string {
	now := time.Now().Unix()
	return k.sign(jwt.MapClaims{
		"iss":                          TestIssuer,
		"sub":                          userID,
		"iat":                          now,
		"exp":                          now + 15*60,
		"email":                        userID + "@example.com",
		middleware.RoleClaimNamespaced: string(role),
	})
}

// CreateExpiredJWT mints a token that expired a minute ago.
func (k *Keys) CreateExpiredJWT(userID string, role models.RoleType) string {
	now := time.Now().Unix()
	return k.sign(jwt.MapClaims{
		"iss":  TestIssuer,
		"sub":  userID,
		"iat":  now - 3600,
		"exp":  now - 60,
		"role": string(role),
	})
}

func (k *Keys) sign(claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(k.PrivateKey)
	require.NoError(k.T, err, "Failed to sign test JWT")
	return signed
}
