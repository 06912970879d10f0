package booking

import (
	"slices"
	"time"
)

const DefaultWindowDays = 7

var DefaultShowtimes = []string{"14:00", "17:00", "20:00"}

// Policy holds the booking knobs the wizard validates against.
type Policy struct {
	Showtimes  []string
	WindowDays int
}

func DefaultPolicy() Policy {
	return Policy{
		Showtimes:  slices.Clone(DefaultShowtimes),
		WindowDays: DefaultWindowDays,
	}
}

func (p Policy) validTime(t string) bool {
	return slices.Contains(p.Showtimes, t)
}

// Dates returns every bookable date starting at today.
func (p Policy) Dates(today time.Time) []time.Time {
	first := truncateDay(today)
	dates := make([]time.Time, 0, p.WindowDays+1)

	for i := 0; i <= p.WindowDays; i++ {
		dates = append(dates, first.AddDate(0, 0, i))
	}

	return dates
}

func (p Policy) validDate(d, today time.Time) bool {
	first := truncateDay(today)
	last := first.AddDate(0, 0, p.WindowDays)
	d = truncateDay(d)

	return !d.Before(first) && !d.After(last)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
