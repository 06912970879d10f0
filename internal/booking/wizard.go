package booking

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/movie-booking-web/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

type Step int

const (
	StepClosed Step = iota
	StepSchedule
	StepSeats
	StepEmail
)

func (s Step) String() string {
	switch s {
	case StepSchedule:
		return "schedule"
	case StepSeats:
		return "seats"
	case StepEmail:
		return "email"
	default:
		return "closed"
	}
}

// Wizard is the state of one booking flow, from picking a movie to the
// submitted reservation. It is kept in the visitor's session between
// requests, so every field must survive a JSON round trip.
//
// Transitions never perform I/O. Occupancy is fetched by the caller and
// handed back through ApplyAvailability.
type Wizard struct {
	ID    string        `json:"id"`
	Step  Step          `json:"step"`
	Movie *domain.Movie `json:"movie,omitempty"`
	Time  string        `json:"time,omitempty"`
	Date  types.Date    `json:"date"`
	Room  *domain.Room  `json:"room,omitempty"`
	Seats []string      `json:"seats,omitempty"`
	Email string        `json:"email,omitempty"`

	Occupied        []string `json:"occupied,omitempty"`
	AvailabilityKey string   `json:"availabilityKey,omitempty"`
	AvailabilityErr string   `json:"availabilityErr,omitempty"`
}

func (w *Wizard) Open() bool {
	return w.Step != StepClosed && w.Movie != nil
}

// SelectMovie starts a fresh flow for movie, discarding whatever was chosen
// before.
func (w *Wizard) SelectMovie(movie domain.Movie, today time.Time) {
	*w = Wizard{
		ID:    uuid.NewString(),
		Step:  StepSchedule,
		Movie: &movie,
		Date:  types.Date{Time: truncateDay(today)},
	}
}

// Check rejects form posts that were rendered for a different flow.
func (w *Wizard) Check(id string) error {
	if !w.Open() {
		return ErrNoMovie
	}

	if id != w.ID {
		return ErrStaleWizard
	}

	return nil
}

func (w *Wizard) SelectTime(p Policy, t string) error {
	if err := w.requireStep(StepSchedule); err != nil {
		return err
	}

	if !p.validTime(t) {
		return ErrUnknownTime
	}

	w.Time = t
	w.slotChanged()

	return nil
}

func (w *Wizard) SelectDate(p Policy, d, today time.Time) error {
	if err := w.requireStep(StepSchedule); err != nil {
		return err
	}

	if !p.validDate(d, today) {
		return ErrDateOutOfRange
	}

	w.Date = types.Date{Time: truncateDay(d)}
	w.slotChanged()

	return nil
}

// SelectRoom always records the room. ErrTimeRequired is advisory: it is
// returned when no showtime has been picked yet, but the room stays
// selected.
func (w *Wizard) SelectRoom(room domain.Room) error {
	if err := w.requireStep(StepSchedule); err != nil {
		return err
	}

	w.Room = &room
	w.slotChanged()

	if w.Time == "" {
		return ErrTimeRequired
	}

	return nil
}

func (w *Wizard) Advance() error {
	switch w.Step {
	case StepSchedule:
		if w.Time == "" || w.Room == nil {
			return ErrScheduleIncomplete
		}

		w.Step = StepSeats
	case StepSeats:
		if !w.AvailabilityLoaded() {
			return ErrAvailabilityUnknown
		}

		if len(w.Seats) == 0 {
			return ErrNoSeats
		}

		w.Step = StepEmail
	case StepEmail:
		return ErrWrongStep
	default:
		return ErrNoMovie
	}

	return nil
}

// Back returns to the previous step. Data entered at later steps is kept.
func (w *Wizard) Back() error {
	switch w.Step {
	case StepSeats, StepEmail:
		w.Step--
		return nil
	case StepSchedule:
		return ErrWrongStep
	default:
		return ErrNoMovie
	}
}

func (w *Wizard) ToggleSeat(label string) error {
	if err := w.requireStep(StepSeats); err != nil {
		return err
	}

	if !w.AvailabilityLoaded() {
		return ErrAvailabilityUnknown
	}

	if !seatInRoom(label, w.Room.Capacity) {
		return ErrSeatOutOfRange
	}

	if slices.Contains(w.Occupied, label) {
		return ErrSeatOccupied
	}

	if i := slices.Index(w.Seats, label); i >= 0 {
		w.Seats = slices.Delete(w.Seats, i, i+1)
	} else {
		w.Seats = append(w.Seats, label)
	}

	return nil
}

// SetEmail stores the email whatever its shape so the form can be
// re-rendered with it, and reports whether it is acceptable.
func (w *Wizard) SetEmail(email string) error {
	if err := w.requireStep(StepEmail); err != nil {
		return err
	}

	w.Email = email

	if !ValidEmail(email) {
		return ErrInvalidEmail
	}

	return nil
}

func (w *Wizard) EmailValid() bool {
	return ValidEmail(w.Email)
}

// Schedule is the date and time of the chosen showing, "2006-01-02 15:04".
func (w *Wizard) Schedule() string {
	if w.Time == "" {
		return ""
	}

	return w.Date.Format(types.DateFormat) + " " + w.Time
}

// CurrentAvailabilityKey identifies the slot whose occupancy the seat step
// depends on. It is empty until both a room and a time are chosen.
func (w *Wizard) CurrentAvailabilityKey() string {
	if w.Room == nil || w.Time == "" {
		return ""
	}

	return w.Room.ID + "|" + w.Schedule()
}

func (w *Wizard) AvailabilityLoaded() bool {
	key := w.CurrentAvailabilityKey()
	return key != "" && w.AvailabilityKey == key && w.AvailabilityErr == ""
}

// ApplyAvailability records the occupancy fetched for key. Results for a
// slot that is no longer selected are dropped and false is returned.
//
// A failed fetch leaves the seat step blocked until a later fetch for the
// same slot succeeds.
func (w *Wizard) ApplyAvailability(key string, occupied []string, fetchErr error) bool {
	if key == "" || key != w.CurrentAvailabilityKey() {
		return false
	}

	w.AvailabilityKey = key

	if fetchErr != nil {
		w.Occupied = nil
		w.AvailabilityErr = ErrAvailabilityUnknown.Error()
		return true
	}

	w.Occupied = slices.Clone(occupied)
	w.AvailabilityErr = ""
	w.Seats = slices.DeleteFunc(w.Seats, func(seat string) bool {
		return slices.Contains(w.Occupied, seat)
	})

	return true
}

// SeatGrid lays out every seat of the selected room with its state.
func (w *Wizard) SeatGrid() []Seat {
	if w.Room == nil {
		return nil
	}

	labels := SeatLabels(w.Room.Capacity)
	grid := make([]Seat, len(labels))

	for i, label := range labels {
		grid[i] = Seat{
			Label:    label,
			Occupied: slices.Contains(w.Occupied, label),
			Selected: slices.Contains(w.Seats, label),
		}
	}

	return grid
}

// Submission validates the whole flow and returns the reservation to post.
func (w *Wizard) Submission() (domain.NewReservation, error) {
	if err := w.requireStep(StepEmail); err != nil {
		return domain.NewReservation{}, err
	}

	switch {
	case w.Time == "" || w.Room == nil:
		return domain.NewReservation{}, ErrScheduleIncomplete
	case len(w.Seats) == 0:
		return domain.NewReservation{}, ErrNoSeats
	case !ValidEmail(w.Email):
		return domain.NewReservation{}, ErrInvalidEmail
	}

	return domain.NewReservation{
		MovieID:   w.Movie.ID,
		RoomID:    w.Room.ID,
		Seats:     slices.Clone(w.Seats),
		UserEmail: w.Email,
		Schedule:  w.Schedule(),
	}, nil
}

// Close discards the flow.
func (w *Wizard) Close() {
	*w = Wizard{}
}

func (w *Wizard) requireStep(step Step) error {
	if !w.Open() {
		return ErrNoMovie
	}

	if w.Step != step {
		return ErrWrongStep
	}

	return nil
}

// slotChanged drops occupancy and seat choices that belonged to a
// previously selected room, date or time.
func (w *Wizard) slotChanged() {
	key := w.CurrentAvailabilityKey()
	if key != "" && key == w.AvailabilityKey {
		return
	}

	w.Occupied = nil
	w.AvailabilityKey = ""
	w.AvailabilityErr = ""
	w.Seats = nil
}
