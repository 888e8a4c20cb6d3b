package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/availability"
	"github.com/theopenshift/openshift-web/internal/lifecycle"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/services"
	"github.com/theopenshift/openshift-web/internal/session"
	"github.com/theopenshift/openshift-web/internal/testhelpers"
	"github.com/theopenshift/openshift-web/internal/timer"
	"github.com/theopenshift/openshift-web/internal/utils"
)

const (
	staffID = "staff-1"
	orgID   = "org-1"
)

type fixture struct {
	t         *testing.T
	fake      *testhelpers.FakeAPI
	keys      *testhelpers.Keys
	client    *api.Client
	hub       *session.Hub
	timers    *timer.Registry
	overlay   *lifecycle.Overlay
	snapshots *lifecycle.SnapshotStore
	drafts    *availability.Drafts
	bookings  *services.BookingService
	profiles  *services.ProfileService
}

func newFixture(t *testing.T, optimisticTimer bool) *fixture {
	f := &fixture{
		t:         t,
		fake:      testhelpers.NewFakeAPI(t),
		keys:      testhelpers.NewKeys(t),
		hub:       session.NewHub(),
		timers:    timer.NewRegistry(),
		overlay:   lifecycle.NewOverlay(),
		snapshots: lifecycle.NewSnapshotStore(),
		drafts:    availability.NewDrafts(),
	}
	client, err := api.NewClient(f.fake.URL(), session.ContextTokenSource{}, 5*time.Second)
	require.NoError(t, err)
	f.client = client
	f.bookings = services.NewBookingService(client, f.overlay, f.timers, f.snapshots, time.UTC, optimisticTimer)
	f.profiles = services.NewProfileService(client, f.drafts)
	return f
}

// as returns a context signed in as userID.
func (f *fixture) as(userID string, role models.RoleType) context.Context {
	return session.WithIdentity(context.Background(), &session.Identity{
		UserID:      userID,
		Role:        role,
		AccessToken: f.keys.CreateJWT(userID, role),
	})
}

func (f *fixture) staff() context.Context { return f.as(staffID, models.RoleStaff) }
func (f *fixture) org() context.Context { return f.as(orgID, models.RoleOrg) }

// seedConfirmed stores booking 42 already assigned to the staff member at
// rate 25.
func (f *fixture) seedConfirmed() models.Booking {
	start := f.fake.Now()
	end := start.Add(4 * time.Hour)
	return f.fake.SeedBooking(orgID, models.Booking{
		ID:              42,
		Title:           "Morning personal care",
		Service:         "personal care",
		Suburb:          "Parramatta",
		StartTime:       &start,
		EndTime:         &end,
		Status:          models.BookingStatusConfirmed,
		Rate:            25,
		AssignedStaffID: staffID,
	})
}

func requireAppError(t *testing.T, err error, code string) *utils.AppError {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
