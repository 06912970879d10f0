package integration_test

import (
	"github.com/metinatakli/movie-booking-web/internal/domain"
)

const (
	// Movie related constants
	TestMovieID       = "m-1"
	TestMovieTitle    = "Test Movie"
	TestMovieGenre    = "Drama"
	TestMovieDuration = 120
	TestMovieRating   = "PG-13"

	// Room related constants
	TestRoomID       = "r-1"
	TestRoomName     = "Hall A"
	TestRoomCapacity = 6

	// Reservation related constants
	TestUserEmail = "test@example.com"
	TestSchedule  = "2030-06-01 17:00"
)

func defaultTestMovie() domain.Movie {
	return domain.Movie{
		ID:       TestMovieID,
		Title:    TestMovieTitle,
		Genre:    TestMovieGenre,
		Duration: TestMovieDuration,
		Rating:   TestMovieRating,
	}
}

func defaultTestRoom() domain.Room {
	return domain.Room{
		ID:       TestRoomID,
		Name:     TestRoomName,
		Capacity: TestRoomCapacity,
	}
}
