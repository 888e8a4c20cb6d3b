package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/theopenshift/openshift-web/internal/models"
)

const (
	pathUsersMe           = "/v1/users/me"
	pathUsersUser         = "/v1/users/user"
	pathUsersAvailability = "/v1/users/availability"
)

// GetStaffProfile fetches the signed-in staff member's profile.
func (c *Client) GetStaffProfile(ctx context.Context) (*models.StaffProfile, error) {
	var p models.StaffProfile
	if err := c.doRequest(ctx, http.MethodGet, pathUsersMe, nil, nil, &p); err != nil {
		return nil, fmt.Errorf("GetStaffProfile error: %w", err)
	}
	return &p, nil
}

// UpdateStaffProfile replaces the profile fields wholesale.
func (c *Client) UpdateStaffProfile(ctx context.Context, upd ProfileUpdate) error {
	if err := c.doRequest(ctx, http.MethodPatch, pathUsersUser, nil, upd, nil); err != nil {
		return fmt.Errorf("UpdateStaffProfile error: %w", err)
	}
	return nil
}

func (c *Client) GetAvailability(ctx context.Context) (models.Availability, error) {
	var a models.Availability
	if err := c.doRequest(ctx, http.MethodGet, pathUsersAvailability, nil, nil, &a); err != nil {
		return nil, fmt.Errorf("GetAvailability error: %w", err)
	}
	if a == nil {
		a = models.Availability{}
	}
	return a, nil
}

// ReplaceAvailability PATCHes the full weekday map.
func (c *Client) ReplaceAvailability(ctx context.Context, a models.Availability) error {
	if err := c.doRequest(ctx, http.MethodPatch, pathUsersAvailability, nil, a, nil); err != nil {
		return fmt.Errorf("ReplaceAvailability error: %w", err)
	}
	return nil
}
