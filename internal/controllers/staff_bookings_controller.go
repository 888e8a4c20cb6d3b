package controllers

import (
	"net/http"
	"strings"

	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/services"
	"github.com/theopenshift/openshift-web/internal/utils"
)

type StaffBookingsController struct {
	bookingService *services.BookingService
}

func NewStaffBookingsController(s *services.BookingService) *StaffBookingsController {
	return &StaffBookingsController{bookingService: s}
}

// ----------------------------------------------------------------
// GET /api/staff/bookings
// ----------------------------------------------------------------
func (c *StaffBookingsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	views, err := c.bookingService.StaffBookings(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to load your shifts")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.BookingListResponse{Bookings: views})
}

// ----------------------------------------------------------------
// GET /api/staff/bookings/search?service=&suburb=&date=
// ----------------------------------------------------------------
func (c *StaffBookingsController) SearchHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	query := dtos.BookingSearchQuery{
		Service: strings.TrimSpace(q.Get("service")),
		Suburb:  strings.TrimSpace(q.Get("suburb")),
		Date:    strings.TrimSpace(q.Get("date")),
	}
	views, err := c.bookingService.SearchBookings(r.Context(), id.UserID, query)
	if err != nil {
		respondServiceError(w, err, "Failed to search shifts")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.BookingListResponse{Bookings: views})
}

// ----------------------------------------------------------------
// GET /api/staff/activity
// ----------------------------------------------------------------
func (c *StaffBookingsController) ActivityHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	resp, err := c.bookingService.Activity(r.Context(), id.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to load your activity")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/staff/requests
// ----------------------------------------------------------------
func (c *StaffBookingsController) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	var req dtos.SendRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := c.bookingService.SendRequest(r.Context(), id.UserID, req)
	if err != nil {
		respondServiceError(w, err, "Failed to send request")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// ----------------------------------------------------------------
// POST /api/staff/bookings/{id}/check_in
// ----------------------------------------------------------------
func (c *StaffBookingsController) CheckInHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := c.bookingService.CheckIn(r.Context(), id.UserID, bookingID)
	if err != nil {
		respondServiceError(w, err, "Failed to check in")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// ----------------------------------------------------------------
// POST /api/staff/bookings/{id}/check_out
// ----------------------------------------------------------------
func (c *StaffBookingsController) CheckOutHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := c.bookingService.CheckOut(r.Context(), id.UserID, bookingID)
	if err != nil {
		respondServiceError(w, err, "Failed to check out")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// ----------------------------------------------------------------
// POST /api/staff/bookings/{id}/timesheet
// ----------------------------------------------------------------
func (c *StaffBookingsController) SendTimesheetHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	view, err := c.bookingService.SendTimesheet(r.Context(), id.UserID, bookingID)
	if err != nil {
		respondServiceError(w, err, "Failed to send timesheet")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}

// ----------------------------------------------------------------
// GET /api/staff/timers
// ----------------------------------------------------------------
func (c *StaffBookingsController) TimersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, c.bookingService.Timers(id.UserID))
}
