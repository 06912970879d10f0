package domain

import (
	"context"
	"time"
)

// Reservation is the shape returned when reservations are read back for a
// room and schedule.
type Reservation struct {
	ID        string   `json:"id"`
	MovieID   string   `json:"movieId"`
	RoomID    string   `json:"roomId"`
	Schedule  string   `json:"schedule"`
	Seats     []string `json:"seats"`
	UserEmail string   `json:"userEmail,omitempty"`
}

// NewReservation is the body posted to create a reservation. The field set
// and order are part of the backend contract.
type NewReservation struct {
	MovieID   string   `json:"movieId"`
	RoomID    string   `json:"roomId"`
	Seats     []string `json:"seats"`
	UserEmail string   `json:"userEmail"`
	Schedule  string   `json:"schedule"`
}

// UserReservation is a reservation as listed for a user, joined with the
// movie title and room name.
type UserReservation struct {
	ID         string   `json:"id"`
	MovieID    string   `json:"movieId"`
	RoomID     string   `json:"roomId"`
	Schedule   string   `json:"schedule"`
	Seats      []string `json:"seats"`
	MovieTitle string   `json:"title"`
	RoomName   string   `json:"name"`
}

// ReportReservation is a reservation as returned by the date range query.
type ReportReservation struct {
	MovieTitle string   `json:"movieTitle"`
	RoomName   string   `json:"roomName"`
	Schedule   string   `json:"schedule"`
	Seats      []string `json:"seats"`
}

// OccupiedSeats returns the union of the seats held by the given
// reservations, in first-seen order.
func OccupiedSeats(reservations []Reservation) []string {
	seen := make(map[string]bool)
	var seats []string

	for _, r := range reservations {
		for _, seat := range r.Seats {
			if seen[seat] {
				continue
			}

			seen[seat] = true
			seats = append(seats, seat)
		}
	}

	return seats
}

type ReservationService interface {
	ForSlot(ctx context.Context, roomID, schedule string) ([]Reservation, error)
	ForUser(ctx context.Context, email string) ([]UserReservation, error)
	InRange(ctx context.Context, start, end time.Time) ([]ReportReservation, error)
	Create(ctx context.Context, reservation NewReservation) error
	Cancel(ctx context.Context, id string) error
}
