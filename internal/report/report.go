// Package report aggregates reservations into the series shown on the
// reports page.
package report

import (
	"time"

	"github.com/metinatakli/movie-booking-web/internal/domain"
)

// UnknownTime buckets reservations whose schedule cannot be parsed.
const UnknownTime = "unknown"

var scheduleLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

type MovieCount struct {
	MovieTitle string `json:"movieTitle"`
	Count      int    `json:"count"`
}

type TimeCount struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// Summary is everything the reports page renders for one date range.
type Summary struct {
	Reservations int          `json:"reservations"`
	Seats        int          `json:"seats"`
	ByMovie      []MovieCount `json:"byMovie"`
	ByTime       []TimeCount  `json:"byTime"`
}

func Summarize(reservations []domain.ReportReservation) Summary {
	s := Summary{
		Reservations: len(reservations),
		ByMovie:      ByMovie(reservations),
		ByTime:       ByTime(reservations),
	}

	for _, r := range reservations {
		s.Seats += len(r.Seats)
	}

	return s
}

// ByMovie sums reserved seats per movie title, in the order titles first
// appear.
func ByMovie(reservations []domain.ReportReservation) []MovieCount {
	index := make(map[string]int)
	counts := []MovieCount{}

	for _, r := range reservations {
		i, ok := index[r.MovieTitle]
		if !ok {
			i = len(counts)
			index[r.MovieTitle] = i
			counts = append(counts, MovieCount{MovieTitle: r.MovieTitle})
		}

		counts[i].Count += len(r.Seats)
	}

	return counts
}

// ByTime sums reserved seats per time of day ("15:04") taken from the
// schedule, in the order times first appear.
func ByTime(reservations []domain.ReportReservation) []TimeCount {
	index := make(map[string]int)
	counts := []TimeCount{}

	for _, r := range reservations {
		bucket := TimeOfDay(r.Schedule)

		i, ok := index[bucket]
		if !ok {
			i = len(counts)
			index[bucket] = i
			counts = append(counts, TimeCount{Time: bucket})
		}

		counts[i].Count += len(r.Seats)
	}

	return counts
}

// TimeOfDay normalises a schedule string to its hour and minute.
func TimeOfDay(schedule string) string {
	for _, layout := range scheduleLayouts {
		t, err := time.Parse(layout, schedule)
		if err == nil {
			return t.Format("15:04")
		}
	}

	return UnknownTime
}
