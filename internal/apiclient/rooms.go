package apiclient

import (
	"context"
	"net/url"

	"github.com/metinatakli/movie-booking-web/internal/domain"
)

type RoomService struct {
	client *Client
}

func NewRoomService(client *Client) *RoomService {
	return &RoomService{client: client}
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room

	err := s.client.Get(ctx, "/rooms", &rooms)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (s *RoomService) Create(ctx context.Context, payload domain.RoomPayload) (*domain.Room, error) {
	var room domain.Room

	err := s.client.Post(ctx, "/rooms", payload, &room)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, payload domain.RoomPayload) (*domain.Room, error) {
	var room domain.Room

	err := s.client.Put(ctx, "/rooms/"+url.PathEscape(id), payload, &room)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/rooms/"+url.PathEscape(id))
}
