package controllers

import (
	"net/http"

	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/services"
	"github.com/theopenshift/openshift-web/internal/utils"
)

type OrgBookingsController struct {
	bookingService *services.BookingService
}

func NewOrgBookingsController(s *services.BookingService) *OrgBookingsController {
	return &OrgBookingsController{bookingService: s}
}

// GET /api/org/bookings
func (c *OrgBookingsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	views, err := c.bookingService.OrgBookings(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to load jobs")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.BookingListResponse{Bookings: views})
}

// POST /api/org/bookings
func (c *OrgBookingsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var form dtos.JobForm
	if !decodeJSON(w, r, &form) {
		return
	}
	view, err := c.bookingService.CreateJob(r.Context(), form)
	if err != nil {
		respondServiceError(w, err, "Failed to create job")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, view)
}

// GET /api/org/bookings/{id}/form
func (c *OrgBookingsController) EditFormHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	form, err := c.bookingService.JobForm(r.Context(), bookingID)
	if err != nil {
		respondServiceError(w, err, "Failed to load job")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, form)
}

// PATCH /api/org/bookings/{id}
func (c *OrgBookingsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var form dtos.JobForm
	if !decodeJSON(w, r, &form) {
		return
	}
	view, err := c.bookingService.EditJob(r.Context(), bookingID, form)
	if err != nil {
		respondServiceError(w, err, "Failed to update job")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// POST /api/org/bookings/{id}/cancel
func (c *OrgBookingsController) CancelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	views, err := c.bookingService.CancelJob(r.Context(), id.UserID, bookingID)
	if err != nil {
		respondServiceError(w, err, "Failed to cancel job")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.BookingListResponse{Bookings: views})
}

// GET /api/org/bookings/{id}/requests
func (c *OrgBookingsController) RequestsHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	resp, err := c.bookingService.Requests(r.Context(), bookingID)
	if err != nil {
		respondServiceError(w, err, "Failed to load applicants")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/org/requests/{id}/respond
func (c *OrgBookingsController) RespondHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.RespondRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := c.bookingService.RespondToRequest(r.Context(), id.UserID, requestID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to respond to request")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// POST /api/org/bookings/{id}/timesheet
func (c *OrgBookingsController) ReviewTimesheetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.ReviewTimesheetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := c.bookingService.ReviewTimesheet(r.Context(), id.UserID, bookingID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to review timesheet")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}
