package services_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopenshift/openshift-web/internal/availability"
	"github.com/theopenshift/openshift-web/internal/dtos"
	"github.com/theopenshift/openshift-web/internal/models"
	"github.com/theopenshift/openshift-web/internal/utils"
	"github.com/theopenshift/openshift-web/internal/validation"
)

func seedStaffProfile(f *fixture) {
	f.fake.SeedProfile(models.StaffProfile{
		ID:        staffID,
		FirstName: "Ana",
		LastName:  "Silva",
		Email:     "ana@example.com",
		Skills:    []string{"dementia care"},
		Languages: []string{"English"},
	}, models.DaysAvailable("monday"))
}

func TestDraftSeededOnceAndEditedLocally(t *testing.T) {
	f := newFixture(t, false)
	seedStaffProfile(f)
	ctx := f.staff()

	b, err := f.profiles.Draft(ctx, staffID)
	require.NoError(t, err)
	assert.True(t, b.Days.Available("monday"))
	assert.False(t, b.Days.Available("sunday"))
	assert.Len(t, b.Days, 1)

	_, err = f.profiles.ToggleDay(ctx, staffID, dtos.ToggleDayRequest{Day: "sunday"})
	require.NoError(t, err)
	b, err = f.profiles.ToggleTag(ctx, staffID, dtos.ToggleTagRequest{Field: availability.TagLanguages, Tag: "Portuguese"})
	require.NoError(t, err)
	assert.True(t, b.Days.Available("sunday"))
	assert.Equal(t, []string{"English", "Portuguese"}, b.Tags[availability.TagLanguages])

	assert.Equal(t, 1, f.fake.CallCount(http.MethodGet, "/v1/users/me"), "draft is fetched once")
	_, saved := f.fake.Profile(staffID)
	assert.False(t, saved.Available("sunday"), "nothing is sent before save")

	_, err = f.profiles.ToggleDay(ctx, staffID, dtos.ToggleDayRequest{Day: "someday"})
	requireAppError(t, err, utils.ErrCodeInvalidPayload)
}

func TestSetFieldsValidatesBeforeTouchingDraft(t *testing.T) {
	f := newFixture(t, false)
	seedStaffProfile(f)
	ctx := f.staff()

	_, err := f.profiles.SetFields(ctx, staffID, dtos.ProfileFieldsRequest{
		FirstName:   "Ana",
		LastName:    "Silva",
		DateOfBirth: "1990-05-01",
		Phone:       "12345",
		TFN:         "123456789",
	})
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := map[string]bool{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["phone"])
	assert.True(t, fields["tfn"])

	b, err := f.profiles.SetFields(ctx, staffID, dtos.ProfileFieldsRequest{
		FirstName:   "Ana",
		LastName:    "Silva-Costa",
		DateOfBirth: "1990-05-01",
		Phone:       "0412 345 678",
		TFN:         "123456782",
	})
	require.NoError(t, err)
	assert.Equal(t, "Silva-Costa", b.Profile.LastName)
}

func TestSaveSendsBothPatches(t *testing.T) {
	f := newFixture(t, false)
	seedStaffProfile(f)
	ctx := f.staff()

	_, err := f.profiles.ToggleDay(ctx, staffID, dtos.ToggleDayRequest{Day: "friday"})
	require.NoError(t, err)
	_, err = f.profiles.ToggleTag(ctx, staffID, dtos.ToggleTagRequest{Field: availability.TagSkills, Tag: "dementia care"})
	require.NoError(t, err)

	resp, err := f.profiles.Save(ctx, staffID)
	require.NoError(t, err)
	assert.True(t, resp.ProfileSaved)
	assert.True(t, resp.AvailabilitySaved)

	p, days := f.fake.Profile(staffID)
	assert.Empty(t, p.Skills, "toggling an existing tag removes it")
	assert.True(t, days.Available("friday"))
	assert.True(t, days.Available("monday"))
	assert.Len(t, days, 2, "the whole map is sent")

	_, kept := f.drafts.Get(staffID)
	assert.False(t, kept, "saved draft is dropped")
}

func TestSavePartialKeepsDraft(t *testing.T) {
	f := newFixture(t, false)
	seedStaffProfile(f)
	ctx := f.staff()
	f.fake.Fail(http.MethodPatch, "/v1/users/availability", http.StatusInternalServerError, `{"message":"Availability is temporarily read-only"}`)

	_, err := f.profiles.ToggleDay(ctx, staffID, dtos.ToggleDayRequest{Day: "tuesday"})
	require.NoError(t, err)

	resp, err := f.profiles.Save(ctx, staffID)
	appErr := requireAppError(t, err, utils.ErrCodePartialSave)
	assert.Equal(t, http.StatusBadGateway, appErr.StatusCode)
	assert.Equal(t, "Availability is temporarily read-only", appErr.Message)
	assert.True(t, resp.ProfileSaved)
	assert.False(t, resp.AvailabilitySaved)

	b, kept := f.drafts.Get(staffID)
	require.True(t, kept)
	assert.True(t, b.Days.Available("tuesday"))

	resp, err = f.profiles.Save(ctx, staffID)
	require.NoError(t, err)
	assert.True(t, resp.AvailabilitySaved)
	_, days := f.fake.Profile(staffID)
	assert.True(t, days.Available("tuesday"))
}

func TestSaveAttemptsAvailabilityWhenProfileFails(t *testing.T) {
	f := newFixture(t, false)
	seedStaffProfile(f)
	ctx := f.staff()
	f.fake.Fail(http.MethodPatch, "/v1/users/user", http.StatusBadRequest, `{"message":"Invalid phone"}`)

	_, err := f.profiles.Draft(ctx, staffID)
	require.NoError(t, err)
	resp, err := f.profiles.Save(ctx, staffID)
	requireAppError(t, err, utils.ErrCodeUpstream)
	assert.Equal(t, "Invalid phone", resp.Message)
	assert.False(t, resp.ProfileSaved)
	assert.True(t, resp.AvailabilitySaved)
	assert.Equal(t, 1, f.fake.CallCount(http.MethodPatch, "/v1/users/availability"))
}

func TestSaveOrgProfileCreatesThenUpdates(t *testing.T) {
	f := newFixture(t, false)
	ctx := f.org()
	req := dtos.OrgProfileRequest{Name: "Harbour Aged Care", ABN: "51 824 753 556", Suburb: "Manly"}

	created, err := f.profiles.SaveOrgProfile(ctx, orgID, req)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, f.fake.CallCount(http.MethodPost, "/v1/orgs/org"))

	req.Description = "Residential care on the northern beaches"
	updated, err := f.profiles.SaveOrgProfile(ctx, orgID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, req.Description, updated.Description)
	assert.Equal(t, 1, f.fake.CallCount(http.MethodPatch, "/v1/orgs/org"))

	_, err = f.profiles.SaveOrgProfile(ctx, orgID, dtos.OrgProfileRequest{Name: "X", ABN: "12 345 678 901"})
	var ve *validation.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestSearchStaff(t *testing.T) {
	f := newFixture(t, false)
	f.fake.SeedProfile(models.StaffProfile{ID: "s1", Services: []string{"transport"}}, nil)
	f.fake.SeedProfile(models.StaffProfile{ID: "s2", Services: []string{"personal care"}}, nil)

	got, err := f.profiles.SearchStaff(f.org(), dtos.StaffSearchQuery{Services: []string{"transport"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)

	got, err = f.profiles.SearchStaff(f.org(), dtos.StaffSearchQuery{Services: []string{"gardening"}})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveWritesBackUntouchedDaysVerbatim(t *testing.T) {
	f := newFixture(t, false)
	fetched := models.Availability{
		"monday":    json.RawMessage(`["morning","evening"]`),
		"wednesday": json.RawMessage(`true`),
	}
	f.fake.SeedProfile(models.StaffProfile{ID: staffID, FirstName: "Ana"}, fetched)
	ctx := f.staff()

	for i := 0; i < 2; i++ {
		_, err := f.profiles.ToggleDay(ctx, staffID, dtos.ToggleDayRequest{Day: "friday"})
		require.NoError(t, err)
	}
	_, err := f.profiles.Save(ctx, staffID)
	require.NoError(t, err)

	_, saved := f.fake.Profile(staffID)
	assert.Equal(t, fetched, saved)
}
