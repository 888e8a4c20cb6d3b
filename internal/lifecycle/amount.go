package lifecycle

import (
	"math/big"
	"strconv"
	"time"
)

const millisPerHour = 3_600_000

// Amount is the worked-time summary shown on cards and sent with timesheets.
type Amount struct {
	Hours  string `json:"total_hours"`
	Amount string `json:"amount"`
}

var zeroAmount = Amount{Hours: "0.00", Amount: "0.00"}

// ComputeAmount derives elapsed hours and pay from the check-in/check-out
// timestamps. Pay is rate times the two-decimal hours figure.
func ComputeAmount(checkIn, checkOut *time.Time, rate float64) Amount {
	if checkIn == nil || checkOut == nil || checkIn.IsZero() || checkOut.IsZero() {
		return zeroAmount
	}
	ms := checkOut.Sub(*checkIn).Milliseconds()
	hours := FormatFixed2(float64(ms) / millisPerHour)
	h, _ := strconv.ParseFloat(hours, 64)
	return Amount{
		Hours:  hours,
		Amount: FormatFixed2(rate * h),
	}
}

// FormatFixed2 renders x with exactly two decimals, rounding half away from
// zero on the exact binary value of x. strconv rounds exact ties to even,
// which would print 0.125 as "0.12".
func FormatFixed2(x float64) string {
	neg := x < 0
	r := new(big.Rat).SetFloat64(x)
	if r == nil {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	if neg {
		r.Neg(r)
	}
	r.Mul(r, big.NewRat(100, 1))

	n := new(big.Int).Quo(r.Num(), r.Denom())
	rem := new(big.Rat).Sub(r, new(big.Rat).SetInt(n))
	if rem.Cmp(big.NewRat(1, 2)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if neg {
		out = "-" + out
	}
	return out
}
