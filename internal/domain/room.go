package domain

import "context"

type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type RoomPayload struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func (r Room) Payload() RoomPayload {
	return RoomPayload{
		Name:     r.Name,
		Capacity: r.Capacity,
	}
}

type RoomService interface {
	List(ctx context.Context) ([]Room, error)
	Create(ctx context.Context, payload RoomPayload) (*Room, error)
	Update(ctx context.Context, id string, payload RoomPayload) (*Room, error)
	Delete(ctx context.Context, id string) error
}
