package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/theopenshift/openshift-web/internal/models"
)

const (
	pathTimesheetsSend    = "/v1/timesheets/send"
	pathTimesheetsApprove = "/v1/timesheets/approve"
)

func (c *Client) SendTimesheet(ctx context.Context, ts models.Timesheet) error {
	if err := c.doRequest(ctx, http.MethodPost, pathTimesheetsSend, nil, ts, nil); err != nil {
		return fmt.Errorf("SendTimesheet error: %w", err)
	}
	return nil
}

// ApproveTimesheet records the organization's decision together with the
// amount it computed.
func (c *Client) ApproveTimesheet(ctx context.Context, bookingID int64, approve bool, amount string) error {
	body := approveTimesheetBody{BookingID: bookingID, Approve: approve, Amount: amount}
	if err := c.doRequest(ctx, http.MethodPost, pathTimesheetsApprove, nil, body, nil); err != nil {
		return fmt.Errorf("ApproveTimesheet error: %w", err)
	}
	return nil
}
