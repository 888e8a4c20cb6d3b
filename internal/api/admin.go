package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/theopenshift/openshift-web/internal/models"
)

const (
	pathAdminAllUsers     = "/v1/admin/all_users"
	pathAdminAllOrgs      = "/v1/admin/all_orgs"
	pathAdminIdentityUser = "/v1/admin/auth0_user"
	pathAdminUser         = "/v1/admin/user"
)

func (c *Client) AdminListUsers(ctx context.Context) ([]models.AdminUser, error) {
	var out []models.AdminUser
	if err := c.doRequest(ctx, http.MethodGet, pathAdminAllUsers, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("AdminListUsers error: %w", err)
	}
	return out, nil
}

func (c *Client) AdminListOrgs(ctx context.Context) ([]models.OrganizationProfile, error) {
	var out []models.OrganizationProfile
	if err := c.doRequest(ctx, http.MethodGet, pathAdminAllOrgs, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("AdminListOrgs error: %w", err)
	}
	return out, nil
}

// AdminIdentityUser looks a user up at the identity provider.
func (c *Client) AdminIdentityUser(ctx context.Context, userID string) (*models.IdentityUser, error) {
	var u models.IdentityUser
	query := url.Values{"user_id": {userID}}
	if err := c.doRequest(ctx, http.MethodGet, pathAdminIdentityUser, query, nil, &u); err != nil {
		return nil, fmt.Errorf("AdminIdentityUser error: %w", err)
	}
	return &u, nil
}

func (c *Client) AdminUpdateUser(ctx context.Context, upd AdminUserUpdate) error {
	if err := c.doRequest(ctx, http.MethodPatch, pathAdminUser, nil, upd, nil); err != nil {
		return fmt.Errorf("AdminUpdateUser error: %w", err)
	}
	return nil
}
