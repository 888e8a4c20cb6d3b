package lifecycle

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
)

var weekendAlt = []cal.AltDay{
	{Day: time.Saturday, Offset: 2},
	{Day: time.Sunday, Offset: 1},
}

var (
	australiaDay = &cal.Holiday{
		Name:     "Australia Day",
		Type:     cal.ObservancePublic,
		Month:    time.January,
		Day:      26,
		Observed: weekendAlt,
		Func:     cal.CalcDayOfMonth,
	}
	anzacDay = &cal.Holiday{
		Name:  "Anzac Day",
		Type:  cal.ObservancePublic,
		Month: time.April,
		Day:   25,
		Func:  cal.CalcDayOfMonth,
	}
)

// create once at init
var auNational = cal.NewBusinessCalendar()

func init() {
	auNational.AddHoliday(
		aa.NewYear,
		australiaDay,
		aa.GoodFriday,
		aa.EasterMonday,
		anzacDay,
		aa.ChristmasDay,
		aa.ChristmasDay2,
	)
}

// IsPublicHoliday reports whether t falls on an Australian national public
// holiday. State-only holidays are not included.
func IsPublicHoliday(t time.Time) bool {
	ok, _, _ := auNational.IsHoliday(t)
	return ok
}
