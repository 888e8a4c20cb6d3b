package availability

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/utils"
)

// Saver is the part of the marketplace API a save needs.
type Saver interface {
	UpdateStaffProfile(ctx context.Context, upd api.ProfileUpdate) error
	ReplaceAvailability(ctx context.Context, a models.Availability) error
}

// SaveResult reports each half of a save on its own. A profile save that
// succeeded stays committed whatever happens to the availability save.
type SaveResult struct {
	ProfileSaved      bool  `json:"profile_saved"`
	AvailabilitySaved bool  `json:"availability_saved"`
	ProfileErr        error `json:"-"`
	AvailabilityErr   error `json:"-"`
}

func (r SaveResult) OK() bool { return r.ProfileSaved && r.AvailabilitySaved }

// Partial reports a committed profile with a failed availability save.
func (r SaveResult) Partial() bool { return r.ProfileSaved && !r.AvailabilitySaved }

// ProfileUpdate is the full profile PATCH body for the bag.
func (b *Bag) ProfileUpdate() api.ProfileUpdate {
	p := b.Profile
	return api.ProfileUpdate{
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Phone:                p.Phone,
		Gender:               p.Gender,
		DateOfBirth:          p.DateOfBirth,
		EmergencyContactName: p.EmergencyContactName,
		EmergencyContact:     p.EmergencyContact,
		TFN:                  p.TFN,
		Bio:                  p.Bio,
		Address:              p.Address,
		Skills:               nonNil(b.Tags[TagSkills]),
		Interests:            nonNil(b.Tags[TagInterests]),
		Preferences:          nonNil(b.Tags[TagPreferences]),
		Services:             nonNil(b.Tags[TagServices]),
		Badges:               nonNil(b.Tags[TagBadges]),
		Vaccinations:         nonNil(b.Tags[TagVaccinations]),
		Languages:            nonNil(b.Tags[TagLanguages]),
	}
}

// Save sends the profile PATCH, then the availability PATCH, each with the
// whole bag. Both are attempted; there is no retry and no compensation.
func Save(ctx context.Context, s Saver, b *Bag) SaveResult {
	var res SaveResult
	log := utils.Logger.WithField("user_id", b.Profile.ID)

	if err := s.UpdateStaffProfile(ctx, b.ProfileUpdate()); err != nil {
		log.WithError(err).Warn("Profile save failed")
		res.ProfileErr = err
	} else {
		res.ProfileSaved = true
	}

	if err := s.ReplaceAvailability(ctx, b.Days.Clone()); err != nil {
		log.WithError(err).Warn("Availability save failed")
		res.AvailabilityErr = err
	} else {
		res.AvailabilitySaved = true
	}

	log.WithFields(logrus.Fields{
		"profile_saved":      res.ProfileSaved,
		"availability_saved": res.AvailabilitySaved,
	}).Info("Profile bag saved")
	return res
}
