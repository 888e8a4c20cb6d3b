package controllers

import (
	"net/http"
	"strings"

	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/services"
	"github.com/theopenshift/openshift-web/internal/utils"
)

type AdminController struct {
	adminService *services.AdminService
}

func NewAdminController(s *services.AdminService) *AdminController {
	return &AdminController{adminService: s}
}

// GET /api/admin/overview
func (c *AdminController) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.adminService.Overview(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to load users")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/admin/identity?user_id=
func (c *AdminController) IdentityUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "user_id is required", nil,
		)
		return
	}
	u, err := c.adminService.IdentityUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to look up user")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, u)
}

// PATCH /api/admin/user
func (c *AdminController) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dtos.AdminUpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := c.adminService.UpdateUser(r.Context(), id.UserID, req); err != nil {
		respondServiceError(w, err, "Failed to update user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
