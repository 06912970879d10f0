package apiclient

import (
	"context"
	"net/url"

	"github.com/metinatakli/movie-booking-web/internal/domain"
)

type MovieService struct {
	client *Client
}

func NewMovieService(client *Client) *MovieService {
	return &MovieService{client: client}
}

func (s *MovieService) List(ctx context.Context) ([]domain.Movie, error) {
	var movies []domain.Movie

	err := s.client.Get(ctx, "/movies", &movies)
	if err != nil {
		return nil, err
	}

	return movies, nil
}

func (s *MovieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	var movie domain.Movie

	err := s.client.Get(ctx, "/movies/"+url.PathEscape(id), &movie)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (s *MovieService) Create(ctx context.Context, payload domain.MoviePayload) (*domain.Movie, error) {
	var movie domain.Movie

	err := s.client.Post(ctx, "/movies", payload, &movie)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (s *MovieService) Update(ctx context.Context, id string, payload domain.MoviePayload) (*domain.Movie, error) {
	var movie domain.Movie

	err := s.client.Put(ctx, "/movies/"+url.PathEscape(id), payload, &movie)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/movies/"+url.PathEscape(id))
}
