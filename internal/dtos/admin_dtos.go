package dtos

import (
	"github.com/theopenshift/openshift-web/internal/models"
)

type AdminUpdateUserRequest struct {
	UserID  string          `json:"user_id" validate:"required"`
	Role    models.RoleType `json:"role" validate:"omitempty,oneof=staff org admin"`
	Blocked *bool           `json:"blocked"`
}

type AdminOverviewResponse struct {
	Users []models.AdminUser           `json:"users"`
	Orgs  []models.OrganizationProfile `json:"orgs"`
}
