package services

import (
	"context"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/utils"
	"github.com/theopenshift/openshift-web/internal/validation"
)

// AdminService passes the admin console's calls through to the API.
type AdminService struct {
	api *api.Client
}

func NewAdminService(client *api.Client) *AdminService {
	return &AdminService{api: client}
}

func (s *AdminService) Overview(ctx context.Context) (*dtos.AdminOverviewResponse, error) {
	users, err := s.api.AdminListUsers(ctx)
	if err != nil {
		return nil, err
	}
	orgs, err := s.api.AdminListOrgs(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.AdminUser{}
	}
	if orgs == nil {
		orgs = []models.OrganizationProfile{}
	}
	return &dtos.AdminOverviewResponse{Users: users, Orgs: orgs}, nil
}

func (s *AdminService) IdentityUser(ctx context.Context, userID string) (*models.IdentityUser, error) {
	return s.api.AdminIdentityUser(ctx, userID)
}

func (s *AdminService) UpdateUser(ctx context.Context, adminID string, req dtos.AdminUpdateUserRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := s.api.AdminUpdateUser(ctx, api.AdminUserUpdate{
		UserID:  req.UserID,
		Role:    req.Role,
		Blocked: req.Blocked,
	}); err != nil {
		return err
	}
	utils.Logger.WithField("admin_id", adminID).Infof("Updated user %s", req.UserID)
	return nil
}
