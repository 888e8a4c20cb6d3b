// Package availability holds the staff member's locally edited weekday map
// and profile tag lists until they are saved in full.
package availability

import (
	"errors"
	"slices"
	"strings"

	"github.com/theopenshift/openshift-web/internal/models"
)

type TagField string

const (
	TagSkills       TagField = "skills"
	TagInterests    TagField = "interests"
	TagPreferences  TagField = "preferences"
	TagServices     TagField = "services"
	TagBadges       TagField = "badges"
	TagVaccinations TagField = "vaccinations"
	TagLanguages    TagField = "languages"
)

// TagFields lists every editable tag list in display order.
var TagFields = []TagField{
	TagSkills, TagInterests, TagPreferences, TagServices, TagBadges, TagVaccinations, TagLanguages,
}

var (
	ErrUnknownDay   = errors.New("unknown_day")
	ErrUnknownField = errors.New("unknown_tag_field")
	ErrEmptyTag     = errors.New("empty_tag")
)

// Bag is one staff member's unsaved edits. Profile carries the identity
// fields that go out with the profile PATCH. Days holds the availability map
// as it will be replaced; fetched is the map as read.
type Bag struct {
	Profile models.StaffProfile   `json:"profile"`
	Days    models.Availability   `json:"availability"`
	Tags    map[TagField][]string `json:"tags"`

	fetched models.Availability
}

// NewBag seeds a bag from the last fetched profile and availability map. The
// map is kept verbatim, unknown keys included.
func NewBag(profile models.StaffProfile, days models.Availability) *Bag {
	if days == nil {
		days = models.Availability{}
	}
	b := &Bag{
		Profile: profile,
		Days:    days.Clone(),
		Tags:    make(map[TagField][]string, len(TagFields)),
		fetched: days.Clone(),
	}
	for _, f := range TagFields {
		b.Tags[f] = slices.Clone(profileTags(&profile, f))
	}
	return b
}

// ToggleDay flips one weekday. Flipping back to the fetched state restores the
// fetched value, or removes the key if there was none.
func (b *Bag) ToggleDay(day string) error {
	day = strings.ToLower(strings.TrimSpace(day))
	if !slices.Contains(models.Weekdays, day) {
		return ErrUnknownDay
	}
	on := !b.Days.Available(day)
	if on == b.fetched.Available(day) {
		if v, ok := b.fetched[day]; ok {
			b.Days[day] = slices.Clone(v)
		} else {
			delete(b.Days, day)
		}
		return nil
	}
	b.Days[day] = models.DayFlag(on)
	return nil
}

// Weekdays is the on/off view of every weekday.
func (b *Bag) Weekdays() map[string]bool {
	return b.Days.Flags()
}

// ToggleTag adds tag to the field's list if absent, removes it if present.
func (b *Bag) ToggleTag(field TagField, tag string) error {
	if !slices.Contains(TagFields, field) {
		return ErrUnknownField
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrEmptyTag
	}
	list := b.Tags[field]
	if i := slices.Index(list, tag); i >= 0 {
		b.Tags[field] = slices.Delete(list, i, i+1)
		return nil
	}
	b.Tags[field] = append(list, tag)
	return nil
}

// Clone returns a deep copy.
func (b *Bag) Clone() *Bag {
	out := &Bag{
		Profile: b.Profile,
		Days:    b.Days.Clone(),
		Tags:    make(map[TagField][]string, len(b.Tags)),
		fetched: b.fetched.Clone(),
	}
	for f, list := range b.Tags {
		out.Tags[f] = slices.Clone(list)
	}
	return out
}

func profileTags(p *models.StaffProfile, f TagField) []string {
	switch f {
	case TagSkills:
		return p.Skills
	case TagInterests:
		return p.Interests
	case TagPreferences:
		return p.Preferences
	case TagServices:
		return p.Services
	case TagBadges:
		return p.Badges
	case TagVaccinations:
		return p.Vaccinations
	case TagLanguages:
		return p.Languages
	}
	return nil
}

// nonNil keeps empty lists serialized as [] rather than null.
func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
