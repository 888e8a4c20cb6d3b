package controllers

import (
	"net/http"

	"github.com/theopenshift/openshift-web/internal/services"
	"github.com/theopenshift/openshift-web/internal/session"
	"github.com/theopenshift/openshift-web/internal/utils"
)

type SessionController struct {
	sessionService *services.SessionService
}

func NewSessionController(s *services.SessionService) *SessionController {
	return &SessionController{sessionService: s}
}

// GET /api/auth/session
func (c *SessionController) SessionHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := session.FromContext(r.Context())
	utils.RespondWithJSON(w, http.StatusOK, c.sessionService.State(id))
}

// POST /api/auth/logout
func (c *SessionController) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	c.sessionService.Logout(id.UserID)
	w.WriteHeader(http.StatusNoContent)
}
