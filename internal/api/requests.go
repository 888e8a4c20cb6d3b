package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/theopenshift/openshift-web/internal/models"
)

const (
	pathRequests        = "/v1/requests"
	pathRequestsMe      = "/v1/requests/me"
	pathRequestsSend    = "/v1/requests/send"
	pathRequestsRespond = "/v1/requests/respond"
)

// SendRequest offers to fill a booking at the proposed rate.
func (c *Client) SendRequest(ctx context.Context, bookingID int64, rate float64, comment string) (*models.Request, error) {
	var r models.Request
	body := sendRequestBody{BookingID: bookingID, Rate: rate, Comment: comment}
	if err := c.doRequest(ctx, http.MethodPost, pathRequestsSend, nil, body, &r); err != nil {
		return nil, fmt.Errorf("SendRequest error: %w", err)
	}
	return &r, nil
}

// ListRequests lists every applicant for one booking.
func (c *Client) ListRequests(ctx context.Context, bookingID int64) ([]models.Request, error) {
	query := url.Values{"booking_id": {strconv.FormatInt(bookingID, 10)}}
	var out []models.Request
	if err := c.doRequest(ctx, http.MethodGet, pathRequests, query, nil, &out); err != nil {
		return nil, fmt.Errorf("ListRequests error: %w", err)
	}
	return out, nil
}

// ListMyRequests lists the staff member's own requests with the joined
// booking status.
func (c *Client) ListMyRequests(ctx context.Context) ([]models.Request, error) {
	var out []models.Request
	if err := c.doRequest(ctx, http.MethodGet, pathRequestsMe, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("ListMyRequests error: %w", err)
	}
	return out, nil
}

func (c *Client) RespondToRequest(ctx context.Context, requestID int64, approve bool) error {
	body := respondRequestBody{RequestID: requestID, Approve: approve}
	if err := c.doRequest(ctx, http.MethodPost, pathRequestsRespond, nil, body, nil); err != nil {
		return fmt.Errorf("RespondToRequest error: %w", err)
	}
	return nil
}
