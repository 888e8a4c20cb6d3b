package app

import (
	"fmt"

	cron "github.com/robfig/cron/v3"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/availability"
	"github.com/theopenshift/openshift-web/internal/config"
	"github.com/theopenshift/openshift-web/internal/constants"
	"github.com/theopenshift/openshift-web/internal/lifecycle"
	"github.com/theopenshift/openshift-web/internal/services"
	"github.com/theopenshift/openshift-web/internal/session"
	"github.com/theopenshift/openshift-web/internal/timer"
	"github.com/theopenshift/openshift-web/internal/utils"
)

// App owns every process-wide collaborator. All in-memory state lives here
// and is torn down per user on logout.
type App struct {
	Config    *config.Config
	API       *api.Client
	Hub       *session.Hub
	Timers    *timer.Registry
	Drafts    *availability.Drafts
	Overlay   *lifecycle.Overlay
	Snapshots *lifecycle.SnapshotStore
	Cron      *cron.Cron

	BookingService *services.BookingService
	ProfileService *services.ProfileService
	AdminService   *services.AdminService
	SessionService *services.SessionService

	unsubscribe func()
}

func NewApp(cfg *config.Config) (*App, error) {
	client, err := api.NewClient(cfg.APIBaseURL, session.ContextTokenSource{}, cfg.APITimeout)
	if err != nil {
		return nil, fmt.Errorf("marketplace API client: %w", err)
	}

	a := &App{
		Config:    cfg,
		API:       client,
		Hub:       session.NewHub(),
		Timers:    timer.NewRegistry(),
		Drafts:    availability.NewDrafts(),
		Overlay:   lifecycle.NewOverlay(),
		Snapshots: lifecycle.NewSnapshotStore(),
		Cron:      cron.New(),
	}
	a.unsubscribe = services.RegisterTeardown(a.Hub, a.Timers, a.Drafts, a.Overlay, a.Snapshots)

	a.BookingService = services.NewBookingService(
		client,
		a.Overlay,
		a.Timers,
		a.Snapshots,
		cfg.DisplayLocation,
		cfg.LDFlag_OptimisticActivityTimer,
	)
	a.ProfileService = services.NewProfileService(client, a.Drafts)
	a.AdminService = services.NewAdminService(client)
	a.SessionService = services.NewSessionService(a.Hub)

	if err := a.Timers.Schedule(a.Cron); err != nil {
		return nil, err
	}
	if _, err := a.Cron.AddFunc(constants.SweepSchedule, a.sweep); err != nil {
		return nil, fmt.Errorf("schedule sweep: %w", err)
	}
	return a, nil
}

// StartBackground starts the shared timer tick and the idle sweep.
func (a *App) StartBackground() {
	a.Cron.Start()
}

func (a *App) sweep() {
	if n := a.Timers.PruneStopped(constants.StoppedTimerMaxAge); n > 0 {
		utils.Logger.Infof("Pruned %d stopped activity timers", n)
	}
}

func (a *App) Close() {
	ctx := a.Cron.Stop()
	<-ctx.Done()
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}
