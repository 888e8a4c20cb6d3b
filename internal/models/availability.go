package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Weekdays in display order; the availability map is keyed by these names.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var (
	rawTrue  = json.RawMessage("true")
	rawFalse = json.RawMessage("false")
)

// Availability maps weekday name to the value the API stored for that day: a
// boolean, a list of slots or null. Values are kept verbatim so a replace
// writes back exactly what was read for days nobody edited. Keys that are not
// weekdays pass through untouched.
type Availability map[string]json.RawMessage

// DaysAvailable builds a map with each named day set to true.
func DaysAvailable(days ...string) Availability {
	out := make(Availability, len(days))
	for _, d := range days {
		out[d] = rawTrue
	}
	return out
}

// DayFlag returns the JSON value for a plain boolean day.
func DayFlag(on bool) json.RawMessage {
	if on {
		return rawTrue
	}
	return rawFalse
}

// UnmarshalJSON rejects weekday values that are neither boolean, list nor
// null.
func (a *Availability) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for day, v := range raw {
		if !slices.Contains(Weekdays, day) {
			continue
		}
		if _, err := dayValue(v); err != nil {
			return fmt.Errorf("availability for %q: %w", day, err)
		}
	}
	*a = Availability(raw)
	return nil
}

// Available reports whether day counts as a working day. A non-empty list
// counts as available; missing and null do not.
func (a Availability) Available(day string) bool {
	v, ok := a[day]
	if !ok {
		return false
	}
	on, _ := dayValue(v)
	return on
}

// Flags is the weekday view shown to the browser.
func (a Availability) Flags() map[string]bool {
	out := make(map[string]bool, len(Weekdays))
	for _, d := range Weekdays {
		out[d] = a.Available(d)
	}
	return out
}

// Clone returns an independent copy.
func (a Availability) Clone() Availability {
	out := make(Availability, len(a))
	for k, v := range a {
		out[k] = slices.Clone(v)
	}
	return out
}

func dayValue(v json.RawMessage) (bool, error) {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	var flag bool
	if err := json.Unmarshal(trimmed, &flag); err == nil {
		return flag, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(trimmed, &list); err == nil {
		return len(list) > 0, nil
	}
	return false, fmt.Errorf("unsupported value %s", string(trimmed))
}
