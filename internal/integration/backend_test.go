package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-booking-web/internal/domain"
)

// fakeBackend is an in-memory booking backend served over HTTP. It keeps
// just enough state for the web app to be driven end to end.
type fakeBackend struct {
	*httptest.Server

	mu           sync.Mutex
	seq          int
	movies       []domain.Movie
	rooms        []domain.Room
	reservations []storedReservation
	// failures maps "METHOD /path" prefixes to a message answered with 500.
	failures map[string]string
}

type storedReservation struct {
	domain.Reservation
	Title    string
	RoomName string
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{failures: make(map[string]string)}

	r := chi.NewRouter()
	r.Use(b.failing)

	r.Get("/movies", b.listMovies)
	r.Post("/movies", b.createMovie)
	r.Get("/movies/{id}", b.getMovie)
	r.Put("/movies/{id}", b.updateMovie)
	r.Delete("/movies/{id}", b.deleteMovie)

	r.Get("/rooms", b.listRooms)
	r.Post("/rooms", b.createRoom)
	r.Put("/rooms/{id}", b.updateRoom)
	r.Delete("/rooms/{id}", b.deleteRoom)

	r.Get("/reservations", b.reservationsForSlot)
	r.Post("/reservations", b.createReservation)
	r.Get("/reservations/user/{email}", b.reservationsForUser)
	r.Get("/reservations/date-range", b.reservationsInRange)
	r.Delete("/reservations/{id}", b.cancelReservation)

	b.Server = httptest.NewServer(r)

	return b
}

func (b *fakeBackend) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq = 0
	b.movies = nil
	b.rooms = nil
	b.reservations = nil
	b.failures = make(map[string]string)
}

func (b *fakeBackend) seed(movies []domain.Movie, rooms []domain.Room) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.movies = append(b.movies, movies...)
	b.rooms = append(b.rooms, rooms...)
}

func (b *fakeBackend) seedReservation(r domain.Reservation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reservations = append(b.reservations, b.stored(r))
}

func (b *fakeBackend) fail(route, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures[route] = message
}

func (b *fakeBackend) snapshot() ([]domain.Movie, []domain.Room, []domain.Reservation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	reservations := make([]domain.Reservation, len(b.reservations))
	for i, r := range b.reservations {
		reservations[i] = r.Reservation
	}

	return slices.Clone(b.movies), slices.Clone(b.rooms), reservations
}

func (b *fakeBackend) failing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		var message string
		found := false
		for route, m := range b.failures {
			if strings.HasPrefix(r.Method+" "+r.URL.Path, route) {
				message, found = m, true
				break
			}
		}
		b.mu.Unlock()

		if found {
			writeError(w, http.StatusInternalServerError, message)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s-%d", prefix, b.seq+100)
}

func (b *fakeBackend) stored(r domain.Reservation) storedReservation {
	s := storedReservation{Reservation: r}

	for _, m := range b.movies {
		if m.ID == r.MovieID {
			s.Title = m.Title
		}
	}

	for _, room := range b.rooms {
		if room.ID == r.RoomID {
			s.RoomName = room.Name
		}
	}

	return s
}

func (b *fakeBackend) listMovies(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	writeJSON(w, http.StatusOK, nonNil(b.movies))
}

func (b *fakeBackend) getMovie(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := chi.URLParam(r, "id")
	for _, m := range b.movies {
		if m.ID == id {
			writeJSON(w, http.StatusOK, m)
			return
		}
	}

	writeError(w, http.StatusNotFound, "movie not found")
}

func (b *fakeBackend) createMovie(w http.ResponseWriter, r *http.Request) {
	var payload domain.MoviePayload
	if !readJSON(w, r, &payload) {
		return
	}

	if payload.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	movie := domain.Movie{
		ID:       b.nextID("m"),
		Title:    payload.Title,
		Genre:    payload.Genre,
		Duration: payload.Duration,
		Rating:   payload.Rating,
	}
	b.movies = append(b.movies, movie)

	writeJSON(w, http.StatusCreated, movie)
}

func (b *fakeBackend) updateMovie(w http.ResponseWriter, r *http.Request) {
	var payload domain.MoviePayload
	if !readJSON(w, r, &payload) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i, m := range b.movies {
		if m.ID == id {
			b.movies[i] = domain.Movie{ID: id, Title: payload.Title, Genre: payload.Genre, Duration: payload.Duration, Rating: payload.Rating}
			writeJSON(w, http.StatusOK, b.movies[i])
			return
		}
	}

	writeError(w, http.StatusNotFound, "movie not found")
}

func (b *fakeBackend) deleteMovie(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := chi.URLParam(r, "id")
	n := len(b.movies)
	b.movies = slices.DeleteFunc(b.movies, func(m domain.Movie) bool { return m.ID == id })

	if len(b.movies) == n {
		writeError(w, http.StatusNotFound, "movie not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) listRooms(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	writeJSON(w, http.StatusOK, nonNil(b.rooms))
}

func (b *fakeBackend) createRoom(w http.ResponseWriter, r *http.Request) {
	var payload domain.RoomPayload
	if !readJSON(w, r, &payload) {
		return
	}

	if payload.Capacity <= 0 {
		writeError(w, http.StatusBadRequest, "capacity must be positive")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	room := domain.Room{ID: b.nextID("r"), Name: payload.Name, Capacity: payload.Capacity}
	b.rooms = append(b.rooms, room)

	writeJSON(w, http.StatusCreated, room)
}

func (b *fakeBackend) updateRoom(w http.ResponseWriter, r *http.Request) {
	var payload domain.RoomPayload
	if !readJSON(w, r, &payload) {
		return
	}

	if payload.Capacity <= 0 {
		writeError(w, http.StatusBadRequest, "capacity must be positive")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i, room := range b.rooms {
		if room.ID == id {
			b.rooms[i] = domain.Room{ID: id, Name: payload.Name, Capacity: payload.Capacity}
			writeJSON(w, http.StatusOK, b.rooms[i])
			return
		}
	}

	writeError(w, http.StatusNotFound, "room not found")
}

func (b *fakeBackend) deleteRoom(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := chi.URLParam(r, "id")
	b.rooms = slices.DeleteFunc(b.rooms, func(room domain.Room) bool { return room.ID == id })

	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) reservationsForSlot(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	roomID := r.URL.Query().Get("roomId")
	schedule := r.URL.Query().Get("schedule")

	found := []domain.Reservation{}
	for _, s := range b.reservations {
		if s.RoomID == roomID && s.Schedule == schedule {
			found = append(found, s.Reservation)
		}
	}

	writeJSON(w, http.StatusOK, found)
}

func (b *fakeBackend) createReservation(w http.ResponseWriter, r *http.Request) {
	var payload domain.NewReservation
	if !readJSON(w, r, &payload) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.reservations {
		if s.RoomID != payload.RoomID || s.Schedule != payload.Schedule {
			continue
		}

		for _, seat := range payload.Seats {
			if slices.Contains(s.Seats, seat) {
				writeError(w, http.StatusConflict, fmt.Sprintf("seat %s is already reserved", seat))
				return
			}
		}
	}

	reservation := domain.Reservation{
		ID:        b.nextID("x"),
		MovieID:   payload.MovieID,
		RoomID:    payload.RoomID,
		Schedule:  payload.Schedule,
		Seats:     payload.Seats,
		UserEmail: payload.UserEmail,
	}
	b.reservations = append(b.reservations, b.stored(reservation))

	writeJSON(w, http.StatusCreated, reservation)
}

func (b *fakeBackend) reservationsForUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	email := chi.URLParam(r, "email")

	found := []domain.UserReservation{}
	for _, s := range b.reservations {
		if s.UserEmail != email {
			continue
		}

		found = append(found, domain.UserReservation{
			ID:         s.ID,
			MovieID:    s.MovieID,
			RoomID:     s.RoomID,
			Schedule:   s.Schedule,
			Seats:      s.Seats,
			MovieTitle: s.Title,
			RoomName:   s.RoomName,
		})
	}

	writeJSON(w, http.StatusOK, found)
}

func (b *fakeBackend) reservationsInRange(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := r.URL.Query().Get("startDate")
	end := r.URL.Query().Get("endDate")

	found := []domain.ReportReservation{}
	for _, s := range b.reservations {
		day := s.Schedule[:min(len(s.Schedule), 10)]
		if day < start || day > end {
			continue
		}

		found = append(found, domain.ReportReservation{
			MovieTitle: s.Title,
			RoomName:   s.RoomName,
			Schedule:   s.Schedule,
			Seats:      s.Seats,
		})
	}

	writeJSON(w, http.StatusOK, found)
}

func (b *fakeBackend) cancelReservation(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := chi.URLParam(r, "id")
	n := len(b.reservations)
	b.reservations = slices.DeleteFunc(b.reservations, func(s storedReservation) bool { return s.ID == id })

	if len(b.reservations) == n {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
