// Package pricing computes rental fees and calendar occupancy for cultural-center
// bookings. Everything here is pure: callers pass in the facility and booking
// snapshots they already hold.
package pricing

import (
	"math/big"
	"strings"
	"time"

	"culturehub/internal/domain"
)

// Calendar grid bounds, in local hours. The last cell starts at SlotEndHour-1.
const (
	SlotStartHour = 8
	SlotEndHour   = 22
)

// roundingStep is the billing increment in minor currency units.
const roundingStep = 1000

// RateTable maps a facility display name to an hourly rate that wins over the
// facility's own base rate.
type RateTable map[string]int64

// Quote is the fee preview for one interval. Hours is nil when the interval
// could not be priced.
type Quote struct {
	Hours    *float64 `json:"hours"`
	UnitRate int64    `json:"unitRate"`
	Amount   int64    `json:"amount"`
}

// Priced reports whether the quote covers a valid interval.
func (q Quote) Priced() bool {
	return q.Hours != nil
}

// Engine holds the shared rate table and the local time zone used for
// zone-less inputs and hour-of-day slots. It is immutable and safe for
// concurrent use.
type Engine struct {
	rates RateTable
	loc   *time.Location
}

func NewEngine(rates RateTable, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	cp := make(RateTable, len(rates))
	for name, rate := range rates {
		cp[name] = rate
	}
	return &Engine{rates: cp, loc: loc}
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// Rates returns a copy of the override table.
func (e *Engine) Rates() RateTable {
	cp := make(RateTable, len(e.rates))
	for name, rate := range e.rates {
		cp[name] = rate
	}
	return cp
}

// RateSource tells where a facility's unit rate came from.
type RateSource string

const (
	RateFromOverride RateSource = "override"
	RateFromBase     RateSource = "base"
	RateNone         RateSource = "none"
)

// UnitRate resolves the hourly rate: override by exact name, then the base
// rate, then zero. Negative rates count as zero.
func (e *Engine) UnitRate(f *domain.Facility) (int64, RateSource) {
	if f == nil {
		return 0, RateNone
	}
	if rate, ok := e.rates[f.Name]; ok {
		return clampRate(rate), RateFromOverride
	}
	if f.BaseHourlyRate != nil {
		return clampRate(*f.BaseHourlyRate), RateFromBase
	}
	return 0, RateNone
}

// ComputeRentalFee prices the interval given as form strings. Missing facility,
// unparsable dates and inverted intervals all yield a zero quote with nil Hours.
func (e *Engine) ComputeRentalFee(f *domain.Facility, startTime, endTime string) Quote {
	if f == nil {
		return Quote{}
	}
	start, okStart := e.ParseTime(startTime)
	end, okEnd := e.ParseTime(endTime)
	if !okStart || !okEnd {
		rate, _ := e.UnitRate(f)
		return Quote{UnitRate: rate}
	}
	return e.QuoteInterval(f, start, end)
}

// QuoteInterval is ComputeRentalFee for callers that already hold instants.
func (e *Engine) QuoteInterval(f *domain.Facility, start, end time.Time) Quote {
	if f == nil {
		return Quote{}
	}
	rate, _ := e.UnitRate(f)
	if !end.After(start) {
		return Quote{UnitRate: rate}
	}

	d := end.Sub(start)
	hours := d.Hours()
	return Quote{
		Hours:    &hours,
		UnitRate: rate,
		Amount:   roundUpAmount(d, rate),
	}
}

// roundUpAmount returns ceil(hours*rate/1000)*1000 using integer arithmetic on
// nanoseconds, so exact multiples stay exact.
func roundUpAmount(d time.Duration, rate int64) int64 {
	if d <= 0 || rate <= 0 {
		return 0
	}
	num := new(big.Int).Mul(big.NewInt(int64(d)), big.NewInt(rate))
	den := big.NewInt(int64(time.Hour) * roundingStep)

	q, m := new(big.Int).QuoRem(num, den, new(big.Int))
	if m.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Int64() * roundingStep
}

func clampRate(rate int64) int64 {
	if rate < 0 {
		return 0
	}
	return rate
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTime accepts RFC 3339 instants and the zone-less layouts produced by
// datetime-local inputs, which are read in the engine's location.
func (e *Engine) ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, e.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
