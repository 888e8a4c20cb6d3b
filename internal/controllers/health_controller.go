package controllers

import (
	"net/http"

	"github.com/theopenshift/openshift-web/internal/config"
	"github.com/theopenshift/openshift-web/internal/utils"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// GET /api/config/public
func (c *HealthController) PublicConfigHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, c.cfg.Public)
}
