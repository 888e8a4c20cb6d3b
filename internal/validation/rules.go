package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the date-of-birth wire format.
const DateLayout = "2006-01-02"

var (
	auPhoneRe    = regexp.MustCompile(`^(?:\+61|61|0)[2-478]\d{8}$`)
	personNameRe = regexp.MustCompile(`^\p{L}[\p{L} '\-]*$`)

	tfnWeights9 = []int{1, 4, 3, 7, 5, 8, 6, 9, 10}
	tfnWeights8 = []int{10, 7, 8, 4, 6, 3, 5, 1}
	abnWeights  = []int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

	now = time.Now
)

func stripSeparators(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
}

func digits(s string) ([]int, bool) {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, false
		}
		out = append(out, int(r-'0'))
	}
	return out, true
}

// IsAUPhone accepts landline and mobile numbers in national or +61 form.
func IsAUPhone(s string) bool {
	return auPhoneRe.MatchString(stripSeparators(s))
}

// IsTFN checks an 8 or 9 digit Tax File Number against its weighted
// mod-11 checksum.
func IsTFN(s string) bool {
	d, ok := digits(stripSeparators(s))
	if !ok {
		return false
	}
	var weights []int
	switch len(d) {
	case 9:
		weights = tfnWeights9
	case 8:
		weights = tfnWeights8
	default:
		return false
	}
	sum := 0
	for i, w := range weights {
		sum += d[i] * w
	}
	return sum%11 == 0
}

// IsABN checks an 11 digit Australian Business Number: subtract one from the
// leading digit, weight, and the sum must divide by 89.
func IsABN(s string) bool {
	d, ok := digits(stripSeparators(s))
	if !ok || len(d) != 11 || d[0] == 0 {
		return false
	}
	d[0]--
	sum := 0
	for i, w := range abnWeights {
		sum += d[i] * w
	}
	return sum%89 == 0
}

// AgeOn returns the age in whole years of someone born on dob at t.
func AgeOn(dob, t time.Time) int {
	years := t.Year() - dob.Year()
	if t.Month() < dob.Month() || (t.Month() == dob.Month() && t.Day() < dob.Day()) {
		years--
	}
	return years
}

func validateAUPhone(fl validator.FieldLevel) bool {
	return IsAUPhone(fl.Field().String())
}

func validateTFN(fl validator.FieldLevel) bool {
	return IsTFN(fl.Field().String())
}

func validateABN(fl validator.FieldLevel) bool {
	return IsABN(fl.Field().String())
}

func validateMinAge(fl validator.FieldLevel) bool {
	minAge, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	dob, err := time.Parse(DateLayout, fl.Field().String())
	if err != nil {
		return false
	}
	if dob.After(now()) {
		return false
	}
	return AgeOn(dob, now()) >= minAge
}

func validatePersonName(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s != "" && len(s) <= 50 && personNameRe.MatchString(s)
}
