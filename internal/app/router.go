package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theopenshift/openshift-web/internal/controllers"
	"github.com/theopenshift/openshift-web/internal/middleware"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/routes"
)

// Router wires every controller onto a gorilla/mux router.
func (a *App) Router() *mux.Router {
	cfg := a.Config

	healthController := controllers.NewHealthController(cfg)
	sessionController := controllers.NewSessionController(a.SessionService)
	staffController := controllers.NewStaffBookingsController(a.BookingService)
	orgController := controllers.NewOrgBookingsController(a.BookingService)
	profileController := controllers.NewProfileController(a.ProfileService)
	adminController := controllers.NewAdminController(a.AdminService)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.PublicConfig, healthController.PublicConfigHandler).Methods(http.MethodGet)

	optional := router.NewRoute().Subrouter()
	optional.Use(middleware.OptionalAuthMiddleware(cfg.IDPPublicKey, cfg.IDPIssuer, a.Hub))
	optional.HandleFunc(routes.AuthSession, sessionController.SessionHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.IDPPublicKey, cfg.IDPIssuer, a.Hub))
	secured.HandleFunc(routes.AuthLogout, sessionController.LogoutHandler).Methods(http.MethodPost)

	staff := router.NewRoute().Subrouter()
	staff.Use(
		middleware.AuthMiddleware(cfg.IDPPublicKey, cfg.IDPIssuer, a.Hub),
		middleware.RequireRole(models.RoleStaff),
	)
	staff.HandleFunc(routes.StaffBookings, staffController.ListHandler).Methods(http.MethodGet)
	staff.HandleFunc(routes.StaffBookingsSearch, staffController.SearchHandler).Methods(http.MethodGet)
	staff.HandleFunc(routes.StaffActivity, staffController.ActivityHandler).Methods(http.MethodGet)
	staff.HandleFunc(routes.StaffTimers, staffController.TimersHandler).Methods(http.MethodGet)
	staff.HandleFunc(routes.StaffRequests, staffController.SendRequestHandler).Methods(http.MethodPost)
	staff.HandleFunc(routes.StaffCheckIn, staffController.CheckInHandler).Methods(http.MethodPost)
	staff.HandleFunc(routes.StaffCheckOut, staffController.CheckOutHandler).Methods(http.MethodPost)
	staff.HandleFunc(routes.StaffTimesheet, staffController.SendTimesheetHandler).Methods(http.MethodPost)
	staff.HandleFunc(routes.StaffProfileDraft, profileController.DraftHandler).Methods(http.MethodGet)
	staff.HandleFunc(routes.StaffProfileDraft, profileController.ResetDraftHandler).Methods(http.MethodDelete)
	staff.HandleFunc(routes.StaffProfileDay, profileController.ToggleDayHandler).Methods(http.MethodPost)
	staff.HandleFunc(routes.StaffProfileTag, profileController.ToggleTagHandler).Methods(http.MethodPost)
	staff.HandleFunc(routes.StaffProfileFields, profileController.SetFieldsHandler).Methods(http.MethodPut)
	staff.HandleFunc(routes.StaffProfileSave, profileController.SaveHandler).Methods(http.MethodPost)

	org := router.NewRoute().Subrouter()
	org.Use(
		middleware.AuthMiddleware(cfg.IDPPublicKey, cfg.IDPIssuer, a.Hub),
		middleware.RequireRole(models.RoleOrg),
	)
	org.HandleFunc(routes.OrgBookings, orgController.ListHandler).Methods(http.MethodGet)
	org.HandleFunc(routes.OrgBookings, orgController.CreateHandler).Methods(http.MethodPost)
	org.HandleFunc(routes.OrgBooking, orgController.UpdateHandler).Methods(http.MethodPatch)
	org.HandleFunc(routes.OrgBookingForm, orgController.EditFormHandler).Methods(http.MethodGet)
	org.HandleFunc(routes.OrgBookingCancel, orgController.CancelHandler).Methods(http.MethodPost)
	org.HandleFunc(routes.OrgBookingRequests, orgController.RequestsHandler).Methods(http.MethodGet)
	org.HandleFunc(routes.OrgRequestRespond, orgController.RespondHandler).Methods(http.MethodPost)
	org.HandleFunc(routes.OrgTimesheetReview, orgController.ReviewTimesheetHandler).Methods(http.MethodPost)
	org.HandleFunc(routes.OrgProfile, profileController.OrgProfileHandler).Methods(http.MethodGet)
	org.HandleFunc(routes.OrgProfile, profileController.SaveOrgProfileHandler).Methods(http.MethodPut)
	org.HandleFunc(routes.OrgStaffSearch, profileController.SearchStaffHandler).Methods(http.MethodGet)

	admin := router.NewRoute().Subrouter()
	admin.Use(
		middleware.AuthMiddleware(cfg.IDPPublicKey, cfg.IDPIssuer, a.Hub),
		middleware.RequireRole(models.RoleAdmin),
	)
	admin.HandleFunc(routes.AdminOverview, adminController.OverviewHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminIdentityUser, adminController.IdentityUserHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminUser, adminController.UpdateUserHandler).Methods(http.MethodPatch)

	return router
}
