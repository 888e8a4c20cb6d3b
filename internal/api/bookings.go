package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/theopenshift/openshift-web/internal/models"
)

const (
	pathBookings       = "/v1/bookings"
	pathBookingsOrg    = "/v1/bookings/org"
	pathBookingsMe     = "/v1/bookings/me"
	pathBookingsSearch = "/v1/bookings/search"
	pathBookingCheckIn = "/v1/bookings/check_in"
)

func bookingPath(id int64) string { return fmt.Sprintf("%s/%d", pathBookings, id) }

func (c *Client) CreateBooking(ctx context.Context, in BookingInput) (*models.Booking, error) {
	var b models.Booking
	if err := c.doRequest(ctx, http.MethodPost, pathBookings, nil, in, &b); err != nil {
		return nil, fmt.Errorf("CreateBooking error: %w", err)
	}
	return &b, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int64, in BookingInput) (*models.Booking, error) {
	var b models.Booking
	if err := c.doRequest(ctx, http.MethodPatch, bookingPath(id), nil, in, &b); err != nil {
		return nil, fmt.Errorf("UpdateBooking error: %w", err)
	}
	return &b, nil
}

func (c *Client) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	if err := c.doRequest(ctx, http.MethodGet, bookingPath(id), nil, nil, &b); err != nil {
		return nil, fmt.Errorf("GetBooking error: %w", err)
	}
	return &b, nil
}

// ListOrgBookings lists the organization's own job listings.
func (c *Client) ListOrgBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.doRequest(ctx, http.MethodGet, pathBookingsOrg, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("ListOrgBookings error: %w", err)
	}
	return out, nil
}

// ListStaffBookings lists the bookings a staff member is attached to.
func (c *Client) ListStaffBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.doRequest(ctx, http.MethodGet, pathBookingsMe, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("ListStaffBookings error: %w", err)
	}
	return out, nil
}

func (c *Client) SearchBookings(ctx context.Context, q BookingSearch) ([]models.Booking, error) {
	query := url.Values{}
	if q.Service != "" {
		query.Set("service", q.Service)
	}
	if q.Suburb != "" {
		query.Set("suburb", q.Suburb)
	}
	if q.Date != "" {
		query.Set("date", q.Date)
	}
	var out []models.Booking
	if err := c.doRequest(ctx, http.MethodGet, pathBookingsSearch, query, nil, &out); err != nil {
		return nil, fmt.Errorf("SearchBookings error: %w", err)
	}
	return out, nil
}

func (c *Client) CancelBooking(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodPost, bookingPath(id)+"/cancel", nil, nil, nil); err != nil {
		return fmt.Errorf("CancelBooking error: %w", err)
	}
	return nil
}

// CheckIn calls the check-in endpoint. checkout=false checks in,
// checkout=true checks out; the reply is the booking's timing snapshot.
func (c *Client) CheckIn(ctx context.Context, bookingID int64, checkout bool) (*models.CheckoutSnapshot, error) {
	var snap models.CheckoutSnapshot
	body := checkInRequest{BookingID: bookingID, Checkout: checkout}
	if err := c.doRequest(ctx, http.MethodPost, pathBookingCheckIn, nil, body, &snap); err != nil {
		return nil, fmt.Errorf("CheckIn error: %w", err)
	}
	return &snap, nil
}
