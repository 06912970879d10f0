package domain

import "context"

type Movie struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Duration int    `json:"duration"`
	Rating   string `json:"rating"`
}

// MoviePayload is the body accepted by both create and update.
type MoviePayload struct {
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Duration int    `json:"duration"`
	Rating   string `json:"rating"`
}

func (m Movie) Payload() MoviePayload {
	return MoviePayload{
		Title:    m.Title,
		Genre:    m.Genre,
		Duration: m.Duration,
		Rating:   m.Rating,
	}
}

type MovieService interface {
	List(ctx context.Context) ([]Movie, error)
	Get(ctx context.Context, id string) (*Movie, error)
	Create(ctx context.Context, payload MoviePayload) (*Movie, error)
	Update(ctx context.Context, id string, payload MoviePayload) (*Movie, error)
	Delete(ctx context.Context, id string) error
}
