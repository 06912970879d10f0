package apiclient

import (
	"context"
	"net/url"
	"time"

	"github.com/metinatakli/movie-booking-web/internal/domain"
)

const dateLayout = "2006-01-02"

type ReservationService struct {
	client *Client
}

func NewReservationService(client *Client) *ReservationService {
	return &ReservationService{client: client}
}

func (s *ReservationService) ForSlot(ctx context.Context, roomID, schedule string) ([]domain.Reservation, error) {
	query := url.Values{}
	query.Set("roomId", roomID)
	query.Set("schedule", schedule)

	var reservations []domain.Reservation

	err := s.client.Get(ctx, "/reservations?"+query.Encode(), &reservations)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (s *ReservationService) ForUser(ctx context.Context, email string) ([]domain.UserReservation, error) {
	var reservations []domain.UserReservation

	err := s.client.Get(ctx, "/reservations/user/"+url.PathEscape(email), &reservations)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

func (s *ReservationService) InRange(ctx context.Context, start, end time.Time) ([]domain.ReportReservation, error) {
	query := url.Values{}
	query.Set("startDate", start.Format(dateLayout))
	query.Set("endDate", end.Format(dateLayout))

	var reservations []domain.ReportReservation

	err := s.client.Get(ctx, "/reservations/date-range?"+query.Encode(), &reservations)
	if err != nil {
		return nil, err
	}

	return reservations, nil
}

// Create posts a reservation. Any 2xx counts as booked; the response body is
// not read.
func (s *ReservationService) Create(ctx context.Context, reservation domain.NewReservation) error {
	return s.client.Post(ctx, "/reservations", reservation, nil)
}

func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/reservations/"+url.PathEscape(id))
}
