package timer

import (
	cron "github.com/robfig/cron/v3"

	"github.com/theopenshift/openshift-web/internal/utils"
)

// TickSchedule is the schedule of the single shared tick that drives every
// running timer.
const TickSchedule = "@every 1s"

// Schedule registers the shared tick on c.
func (r *Registry) Schedule(c *cron.Cron) error {
	_, err := c.AddFunc(TickSchedule, r.Tick)
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to schedule activity timer tick")
	}
	return err
}
