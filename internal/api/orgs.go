package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/theopenshift/openshift-web/internal/models"
)

const (
	pathOrgsMe     = "/v1/orgs/me"
	pathOrgsOrg    = "/v1/orgs/org"
	pathOrgsSearch = "/v1/orgs/search"
)

func (c *Client) GetOrgProfile(ctx context.Context) (*models.OrganizationProfile, error) {
	var o models.OrganizationProfile
	if err := c.doRequest(ctx, http.MethodGet, pathOrgsMe, nil, nil, &o); err != nil {
		return nil, fmt.Errorf("GetOrgProfile error: %w", err)
	}
	return &o, nil
}

func (c *Client) CreateOrgProfile(ctx context.Context, in OrgInput) (*models.OrganizationProfile, error) {
	var o models.OrganizationProfile
	if err := c.doRequest(ctx, http.MethodPost, pathOrgsOrg, nil, in, &o); err != nil {
		return nil, fmt.Errorf("CreateOrgProfile error: %w", err)
	}
	return &o, nil
}

func (c *Client) UpdateOrgProfile(ctx context.Context, in OrgInput) error {
	if err := c.doRequest(ctx, http.MethodPatch, pathOrgsOrg, nil, in, nil); err != nil {
		return fmt.Errorf("UpdateOrgProfile error: %w", err)
	}
	return nil
}

// SearchStaff finds care staff by address, services and preferences. List
// filters are sent comma-separated.
func (c *Client) SearchStaff(ctx context.Context, q StaffSearch) ([]models.StaffSearchResult, error) {
	query := url.Values{}
	if q.Address != "" {
		query.Set("address", q.Address)
	}
	if len(q.Services) > 0 {
		query.Set("services", strings.Join(q.Services, ","))
	}
	if len(q.Preferences) > 0 {
		query.Set("preferences", strings.Join(q.Preferences, ","))
	}
	var out []models.StaffSearchResult
	if err := c.doRequest(ctx, http.MethodGet, pathOrgsSearch, query, nil, &out); err != nil {
		return nil, fmt.Errorf("SearchStaff error: %w", err)
	}
	return out, nil
}
