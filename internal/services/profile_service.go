package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/theopenshift/openshift-web/internal/api"
	"github.com/theopenshift/openshift-web/internal/availability"
	"github.com/theopenshift/openshift-web/internal/constants"
	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/utils"
	"github.com/theopenshift/openshift-web/internal/validation"
)

// ProfileService edits the staff profile bag and the organization profile.
type ProfileService struct {
	api    *api.Client
	drafts *availability.Drafts
}

func NewProfileService(client *api.Client, drafts *availability.Drafts) *ProfileService {
	return &ProfileService{api: client, drafts: drafts}
}

// Draft returns the user's unsaved bag, seeding it from a fresh fetch the
// first time.
func (s *ProfileService) Draft(ctx context.Context, userID string) (*availability.Bag, error) {
	if b, ok := s.drafts.Get(userID); ok {
		return b, nil
	}
	return s.ResetDraft(ctx, userID)
}

// ResetDraft discards local edits and reseeds from the server.
func (s *ProfileService) ResetDraft(ctx context.Context, userID string) (*availability.Bag, error) {
	profile, err := s.api.GetStaffProfile(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.api.GetAvailability(ctx)
	if err != nil {
		return nil, err
	}
	b := availability.NewBag(*profile, days)
	s.drafts.Put(userID, b)
	return b, nil
}

func (s *ProfileService) ToggleDay(ctx context.Context, userID string, req dtos.ToggleDayRequest) (*availability.Bag, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, func(b *availability.Bag) error { return b.ToggleDay(req.Day) })
}

func (s *ProfileService) ToggleTag(ctx context.Context, userID string, req dtos.ToggleTagRequest) (*availability.Bag, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, func(b *availability.Bag) error { return b.ToggleTag(req.Field, req.Tag) })
}

// SetFields replaces the identity fields of the draft after validation.
func (s *ProfileService) SetFields(ctx context.Context, userID string, req dtos.ProfileFieldsRequest) (*availability.Bag, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, func(b *availability.Bag) error {
		p := &b.Profile
		p.FirstName = req.FirstName
		p.LastName = req.LastName
		p.Phone = req.Phone
		p.Gender = req.Gender
		p.DateOfBirth = req.DateOfBirth
		p.EmergencyContactName = req.EmergencyContactName
		p.EmergencyContact = req.EmergencyContact
		p.TFN = req.TFN
		p.Bio = req.Bio
		p.Address = req.Address
		return nil
	})
}

// Save flushes the whole draft. A fully saved draft is dropped so the next
// read reflects the server; a partly saved one is kept for another attempt.
func (s *ProfileService) Save(ctx context.Context, userID string) (*dtos.SaveProfileResponse, error) {
	b, err := s.Draft(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := availability.Save(ctx, s.api, b)

	resp := &dtos.SaveProfileResponse{
		ProfileSaved:      res.ProfileSaved,
		AvailabilitySaved: res.AvailabilitySaved,
	}
	switch {
	case res.OK():
		s.drafts.Drop(userID)
		return resp, nil
	case res.Partial():
		resp.Message = constants.MsgAvailabilityNotSaved
		if m := api.UserMessage(res.AvailabilityErr); m != utils.GenericErrorMessage {
			resp.Message = m
		}
		return resp, &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodePartialSave,
			Message:    resp.Message,
			Details:    resp,
			Err:        res.AvailabilityErr,
		}
	default:
		resp.Message = constants.MsgProfileNotSaved
		if m := api.UserMessage(res.ProfileErr); m != utils.GenericErrorMessage {
			resp.Message = m
		}
		return resp, &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeUpstream,
			Message:    resp.Message,
			Details:    resp,
			Err:        errors.Join(res.ProfileErr, res.AvailabilityErr),
		}
	}
}

func (s *ProfileService) update(ctx context.Context, userID string, fn func(*availability.Bag) error) (*availability.Bag, error) {
	if _, err := s.Draft(ctx, userID); err != nil {
		return nil, err
	}
	b, found, err := s.drafts.Update(userID, fn)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    "Unknown day or tag",
			Err:        err,
		}
	}
	if !found {
		// dropped concurrently by a logout
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeConflict,
			Message:    "Your session changed, please reload",
			Err:        utils.ErrNotFound,
		}
	}
	return b, nil
}

// ----------------------------------------------------------------
// Organization profile
// ----------------------------------------------------------------

func (s *ProfileService) OrgProfile(ctx context.Context) (*models.OrganizationProfile, error) {
	return s.api.GetOrgProfile(ctx)
}

// SaveOrgProfile creates the organization on first save and updates it
// afterwards.
func (s *ProfileService) SaveOrgProfile(ctx context.Context, userID string, req dtos.OrgProfileRequest) (*models.OrganizationProfile, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	in := api.OrgInput{
		Name:        req.Name,
		ABN:         req.ABN,
		ABNStatus:   req.ABNStatus,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Suburb:      req.Suburb,
		Description: req.Description,
	}

	_, err := s.api.GetOrgProfile(ctx)
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.NotFound():
		utils.Logger.WithField("user_id", userID).Info("Creating organization profile")
		return s.api.CreateOrgProfile(ctx, in)
	case err != nil:
		return nil, err
	}

	if err := s.api.UpdateOrgProfile(ctx, in); err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{"user_id": userID}).Info("Organization profile updated")
	return s.api.GetOrgProfile(ctx)
}

func (s *ProfileService) SearchStaff(ctx context.Context, q dtos.StaffSearchQuery) ([]models.StaffSearchResult, error) {
	out, err := s.api.SearchStaff(ctx, api.StaffSearch{
		Address:     q.Address,
		Services:    q.Services,
		Preferences: q.Preferences,
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.StaffSearchResult{}
	}
	return out, nil
}
