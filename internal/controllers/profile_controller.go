package controllers

import (
	"net/http"
	"strings"

	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/services"
	"github.com/theopenshift/openshift-web/internal/utils"
)

type ProfileController struct {
	profileService *services.ProfileService
}

func NewProfileController(s *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: s}
}

// GET /api/staff/profile/draft
func (c *ProfileController) DraftHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	b, err := c.profileService.Draft(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to load your profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewProfileDraftResponse(b))
}

// DELETE /api/staff/profile/draft
func (c *ProfileController) ResetDraftHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	b, err := c.profileService.ResetDraft(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to reload your profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewProfileDraftResponse(b))
}

// POST /api/staff/profile/draft/day
func (c *ProfileController) ToggleDayHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dtos.ToggleDayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := c.profileService.ToggleDay(r.Context(), id.UserID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update availability")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewProfileDraftResponse(b))
}

// POST /api/staff/profile/draft/tag
func (c *ProfileController) ToggleTagHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dtos.ToggleTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := c.profileService.ToggleTag(r.Context(), id.UserID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewProfileDraftResponse(b))
}

// PUT /api/staff/profile/draft/fields
func (c *ProfileController) SetFieldsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dtos.ProfileFieldsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := c.profileService.SetFields(r.Context(), id.UserID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to update profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.NewProfileDraftResponse(b))
}

// POST /api/staff/profile/save
func (c *ProfileController) SaveHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	resp, err := c.profileService.Save(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to save your profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/org/profile
func (c *ProfileController) OrgProfileHandler(w http.ResponseWriter, r *http.Request) {
	p, err := c.profileService.OrgProfile(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to load organization")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// PUT /api/org/profile
func (c *ProfileController) SaveOrgProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dtos.OrgProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := c.profileService.SaveOrgProfile(r.Context(), id.UserID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to save organization")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// GET /api/org/staff/search?address=&services=a,b&preferences=c
func (c *ProfileController) SearchStaffHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dtos.StaffSearchQuery{
		Address:     strings.TrimSpace(q.Get("address")),
		Services:    splitList(q.Get("services")),
		Preferences: splitList(q.Get("preferences")),
	}
	out, err := c.profileService.SearchStaff(r.Context(), query)
	if err != nil {
		respondServiceError(w, err, "Failed to search staff")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
