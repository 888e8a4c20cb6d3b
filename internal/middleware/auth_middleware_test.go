package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopenshift/openshift-web/internal/middleware"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/session"
	"github.com/theopenshift/openshift-web/internal/testhelpers"
	"github.com/theopenshift/openshift-web/internal/utils"
)

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		utils.RespondWithJSON(w, http.StatusOK, map[string]any{"anonymous": true})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, id)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestAuthMiddleware(t *testing.T) {
	keys := testhelpers.NewKeys(t)
	otherKeys := testhelpers.NewKeys(t)
	hub := session.NewHub()
	h := middleware.AuthMiddleware(keys.PublicKey, testhelpers.TestIssuer, hub)(http.HandlerFunc(echoIdentity))

	t.Run("valid bearer token", func(t *testing.T) {
		tok := keys.CreateJWT("org-1", models.RoleOrg)
		var id session.Identity
		rec := testhelpers.Do(t, h, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", tok, nil), &id)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "org-1", id.UserID)
		assert.Equal(t, models.RoleOrg, id.Role)
		assert.Equal(t, "org-1@example.com", id.Email)
		assert.True(t, hub.Active("org-1"))
	})

	t.Run("session cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookieName, Value: keys.CreateJWT("staff-9", models.RoleStaff)})
		var id session.Identity
		rec := testhelpers.Do(t, h, req, &id)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "staff-9", id.UserID)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := testhelpers.Do(t, h, httptest.NewRequest(http.MethodGet, "/x", nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, utils.ErrCodeUnauthorized, errorCode(t, rec))
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := testhelpers.Do(t, h, req, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		tok := keys.CreateExpiredJWT("staff-1", models.RoleStaff)
		rec := testhelpers.Do(t, h, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", tok, nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, utils.ErrCodeTokenExpired, errorCode(t, rec))
	})

	t.Run("foreign signature", func(t *testing.T) {
		tok := otherKeys.CreateJWT("staff-1", models.RoleStaff)
		rec := testhelpers.Do(t, h, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", tok, nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, utils.ErrCodeUnauthorized, errorCode(t, rec))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		strict := middleware.AuthMiddleware(keys.PublicKey, "https://someone-else/", hub)(http.HandlerFunc(echoIdentity))
		tok := keys.CreateJWT("staff-1", models.RoleStaff)
		rec := testhelpers.Do(t, strict, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", tok, nil), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	keys := testhelpers.NewKeys(t)
	auth := middleware.AuthMiddleware(keys.PublicKey, testhelpers.TestIssuer, nil)
	h := auth(middleware.RequireRole(models.RoleOrg, models.RoleAdmin)(http.HandlerFunc(echoIdentity)))

	rec := testhelpers.Do(t, h, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", keys.CreateJWT("org-1", models.RoleOrg), nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = testhelpers.Do(t, h, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", keys.CreateJWT("staff-1", models.RoleStaff), nil), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, utils.ErrCodeForbidden, errorCode(t, rec))

	bare := middleware.RequireRole(models.RoleOrg)(http.HandlerFunc(echoIdentity))
	rec = testhelpers.Do(t, bare, httptest.NewRequest(http.MethodGet, "/x", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	keys := testhelpers.NewKeys(t)
	h := middleware.OptionalAuthMiddleware(keys.PublicKey, testhelpers.TestIssuer, nil)(http.HandlerFunc(echoIdentity))

	var anon map[string]any
	rec := testhelpers.Do(t, h, httptest.NewRequest(http.MethodGet, "/x", nil), &anon)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, anon["anonymous"])

	anon = nil
	rec = testhelpers.Do(t, h, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", keys.CreateExpiredJWT("staff-1", models.RoleStaff), nil), &anon)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, anon["anonymous"], "expired token is treated as signed out")

	var id session.Identity
	rec = testhelpers.Do(t, h, testhelpers.BuildAuthRequest(t, http.MethodGet, "/x", keys.CreateJWT("admin-1", models.RoleAdmin), nil), &id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RoleAdmin, id.Role)
}

func TestValidateTokenWithoutKey(t *testing.T) {
	keys := testhelpers.NewKeys(t)
	tok, err := middleware.ValidateToken(keys.CreateJWT("staff-1", models.RoleStaff), nil, "")
	require.NoError(t, err)
	assert.True(t, tok.Valid)

	_, err = middleware.ValidateToken(keys.CreateExpiredJWT("staff-1", models.RoleStaff), nil, "")
	assert.Error(t, err)
}
