package util

import (
	"fmt"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

const dateLayout = "2006-01-02"

// Date is a civil calendar day, independent of time-of-day and zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// LoadLocation resolves name to a location. An empty name means
// DefaultTimezone. When the zone database is unavailable it falls back to
// the fixed BRT offset for the default zone and returns an error otherwise.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc, nil
	}
	if name == DefaultTimezone {
		return time.FixedZone("BRT", -3*60*60), nil
	}
	return nil, fmt.Errorf("load timezone %q: %w", name, err)
}

// DateOf returns the calendar day t falls on in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// AddDays moves the date n days forward (negative n goes backward).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC)
	return DateOf(t, time.UTC)
}

func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(dateLayout)
}
