package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/booking"
	"github.com/metinatakli/movie-booking-web/internal/domain"
	"github.com/metinatakli/movie-booking-web/internal/mailer"
	"github.com/oapi-codegen/runtime/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	MsgReservationConfirmed = "Reservation confirmed! Check your email."
	MsgReservationFailed    = "There was an error making the reservation. Please try again."
	MsgCatalogUnavailable   = "The movie listings could not be loaded."
	MsgMovieUnavailable     = "This movie could not be loaded."
	MsgMovieGone            = "This movie is no longer available."
	MsgRoomUnavailable      = "This room is no longer available."
)

type catalogPage struct {
	Movies    []domain.Movie
	LoadError string
	Wizard    *wizardView
	Result    *Modal
}

type dateOption struct {
	Value    string
	Label    string
	Selected bool
}

// wizardView is the open wizard plus everything its current step renders.
type wizardView struct {
	booking.Wizard

	Notice      string
	Showtimes   []string
	Dates       []dateOption
	Rooms       []domain.Room
	Grid        []booking.Seat
	Loaded      bool
	CanContinue bool
	CanConfirm  bool
}

func (v wizardView) AtSchedule() bool { return v.Step == booking.StepSchedule }
func (v wizardView) AtSeats() bool    { return v.Step == booking.StepSeats }
func (v wizardView) AtEmail() bool    { return v.Step == booking.StepEmail }

type scheduleForm struct {
	Time string `validate:"omitempty,datetime=15:04"`
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

func (app *Application) ShowCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := catalogPage{
		Result: app.bookingResult(ctx),
	}

	movies, err := app.movieService.List(ctx)
	if err != nil {
		app.logError(r, err)
		page.LoadError = apiclient.ErrorMessage(err, MsgCatalogUnavailable)
	}
	page.Movies = movies

	wizard := app.loadWizard(ctx)
	if wizard.Open() {
		rooms, err := app.roomService.List(ctx)
		if err != nil {
			app.logError(r, err)
			app.notice(ctx, apiclient.ErrorMessage(err, MsgCatalogUnavailable))
		}

		if wizard.Step == booking.StepSeats {
			app.refreshAvailability(r, &wizard)
			app.saveWizard(ctx, wizard)
		}

		page.Wizard = app.newWizardView(ctx, wizard, rooms)
	}

	data := app.newTemplateData(r)
	data.Page = page

	app.render(w, r, http.StatusOK, pageCatalog, data)
}

// refreshAvailability fetches the occupancy of the wizard's slot. Only the
// newest fetch for a slot may update the wizard.
func (app *Application) refreshAvailability(r *http.Request, wizard *booking.Wizard) {
	key := wizard.CurrentAvailabilityKey()
	if key == "" {
		return
	}

	ticket := app.guard.Begin(wizard.ID, key)
	defer app.guard.Release(ticket)

	reservations, err := app.reservationService.ForSlot(r.Context(), wizard.Room.ID, wizard.Schedule())

	if !app.guard.Accept(ticket) {
		app.logger.DebugContext(r.Context(), "discarding superseded availability",
			"slot", ticket.Key(),
			"in_flight", app.guard.Pending())
		return
	}

	if err != nil {
		app.logError(r, fmt.Errorf("load availability for %s: %w", key, err))
	}

	wizard.ApplyAvailability(key, domain.OccupiedSeats(reservations), err)
}

func (app *Application) newWizardView(ctx context.Context, wizard booking.Wizard, rooms []domain.Room) *wizardView {
	view := &wizardView{
		Wizard:     wizard,
		Notice:     app.popNotice(ctx),
		Showtimes:  app.policy.Showtimes,
		Rooms:      rooms,
		Grid:       wizard.SeatGrid(),
		Loaded:     wizard.AvailabilityLoaded(),
		CanConfirm: wizard.EmailValid(),
	}

	view.CanContinue = view.Loaded && len(wizard.Seats) > 0

	selected := wizard.Date.Format(types.DateFormat)
	for _, d := range app.policy.Dates(app.now()) {
		value := d.Format(types.DateFormat)
		view.Dates = append(view.Dates, dateOption{
			Value:    value,
			Label:    humanDate(d),
			Selected: value == selected,
		})
	}

	return view
}

func (app *Application) SelectMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := formValue(r, "movie_id")
	if id == "" {
		app.badRequestResponse(w, r, errors.New("movie_id is required"))
		return
	}

	movie, err := app.movieService.Get(ctx, id)
	if err != nil {
		app.logError(r, err)

		fallback := MsgMovieUnavailable
		if errors.Is(err, domain.ErrRecordNotFound) {
			fallback = MsgMovieGone
		}

		app.putJSON(ctx, SessionKeyResult, Modal{
			Message: apiclient.ErrorMessage(err, fallback),
			Error:   true,
		})
		redirect(w, r, "/")
		return
	}

	var wizard booking.Wizard
	wizard.SelectMovie(*movie, app.now())

	app.sessionManager.Remove(ctx, SessionKeyResult.String())
	app.sessionManager.Remove(ctx, SessionKeyNotice.String())
	app.saveWizard(ctx, wizard)

	redirect(w, r, "/")
}

func (app *Application) SelectSchedule(w http.ResponseWriter, r *http.Request) {
	wizard, ok := app.wizardForPost(w, r)
	if !ok {
		return
	}

	form := scheduleForm{
		Time: formValue(r, "time"),
		Date: formValue(r, "date"),
	}

	err := app.validator.Struct(form)
	if err != nil {
		messages := validationMessages(err)
		field := sortedKeys(messages)[0]

		app.finishStep(w, r, wizard, fmt.Errorf("%s %s", field, messages[field]))
		return
	}

	if form.Time != "" {
		err = wizard.SelectTime(app.policy, form.Time)
	}

	if err == nil && form.Date != "" {
		now := app.now()

		var d time.Time
		d, err = time.ParseInLocation(types.DateFormat, form.Date, now.Location())
		if err == nil {
			err = wizard.SelectDate(app.policy, d, now)
		}
	}

	app.finishStep(w, r, wizard, err)
}

func (app *Application) SelectRoom(w http.ResponseWriter, r *http.Request) {
	wizard, ok := app.wizardForPost(w, r)
	if !ok {
		return
	}

	id := formValue(r, "room_id")

	rooms, err := app.roomService.List(r.Context())
	if err != nil {
		app.logError(r, err)
		app.finishStep(w, r, wizard, errors.New(apiclient.ErrorMessage(err, MsgRoomUnavailable)))
		return
	}

	for _, room := range rooms {
		if room.ID == id {
			app.finishStep(w, r, wizard, wizard.SelectRoom(room))
			return
		}
	}

	app.finishStep(w, r, wizard, errors.New(MsgRoomUnavailable))
}

func (app *Application) NextStep(w http.ResponseWriter, r *http.Request) {
	wizard, ok := app.wizardForPost(w, r)
	if !ok {
		return
	}

	app.finishStep(w, r, wizard, wizard.Advance())
}

func (app *Application) PreviousStep(w http.ResponseWriter, r *http.Request) {
	wizard, ok := app.wizardForPost(w, r)
	if !ok {
		return
	}

	app.finishStep(w, r, wizard, wizard.Back())
}

func (app *Application) ToggleSeat(w http.ResponseWriter, r *http.Request) {
	wizard, ok := app.wizardForPost(w, r)
	if !ok {
		return
	}

	app.finishStep(w, r, wizard, wizard.ToggleSeat(formValue(r, "seat")))
}

func (app *Application) SetEmail(w http.ResponseWriter, r *http.Request) {
	wizard, ok := app.wizardForPost(w, r)
	if !ok {
		return
	}

	app.finishStep(w, r, wizard, wizard.SetEmail(formValue(r, "email")))
}

func (app *Application) CloseWizard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	wizard := app.loadWizard(ctx)
	wizard.Close()
	app.saveWizard(ctx, wizard)

	redirect(w, r, "/")
}

func (app *Application) CloseResultModal(w http.ResponseWriter, r *http.Request) {
	app.sessionManager.Remove(r.Context(), SessionKeyResult.String())

	redirect(w, r, "/")
}

// ConfirmReservation closes the wizard and posts the reservation. The
// outcome is kept as the booking result until the visitor dismisses it.
func (app *Application) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	wizard, ok := app.wizardForPost(w, r)
	if !ok {
		return
	}

	submission, err := wizard.Submission()
	if err != nil {
		app.finishStep(w, r, wizard, err)
		return
	}

	confirmation := mailer.ReservationConfirmation{
		MovieTitle: wizard.Movie.Title,
		RoomName:   wizard.Room.Name,
		Schedule:   submission.Schedule,
		Seats:      submission.Seats,
	}

	wizard.Close()
	app.saveWizard(ctx, wizard)

	result := Modal{Message: MsgReservationConfirmed}

	err = app.reservationService.Create(ctx, submission)
	if err != nil {
		app.logError(r, fmt.Errorf("create reservation: %w", err))
		result = Modal{
			Message: apiclient.ErrorMessage(err, MsgReservationFailed),
			Error:   true,
		}
	} else {
		app.sendConfirmation(submission.UserEmail, confirmation)
	}

	app.countReservation(ctx, err == nil)
	app.putJSON(ctx, SessionKeyResult, result)

	redirect(w, r, "/")
}

// sendConfirmation emails the visitor in the background. Delivery is best
// effort: failures are only logged.
func (app *Application) sendConfirmation(recipient string, data mailer.ReservationConfirmation) {
	if app.mailer == nil {
		return
	}

	app.background(func() {
		err := app.mailer.Send(recipient, mailer.ReservationConfirmedTemplate, data)
		if err != nil {
			app.logger.Error("failed to send confirmation email", "recipient", recipient, "error", err)
		}
	})
}

func (app *Application) countReservation(ctx context.Context, ok bool) {
	result := "success"
	if !ok {
		result = "error"
	}

	app.reservationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// wizardForPost loads the wizard a form post was rendered for. Posts for a
// closed or replaced wizard are answered with a redirect and false.
func (app *Application) wizardForPost(w http.ResponseWriter, r *http.Request) (booking.Wizard, bool) {
	ctx := r.Context()

	wizard := app.loadWizard(ctx)

	err := wizard.Check(formValue(r, "wizard_id"))
	if err != nil {
		if errors.Is(err, booking.ErrStaleWizard) {
			app.notice(ctx, err.Error())
		}

		redirect(w, r, "/")
		return wizard, false
	}

	return wizard, true
}

// finishStep stores the wizard and shows err, if any, inside the modal.
func (app *Application) finishStep(w http.ResponseWriter, r *http.Request, wizard booking.Wizard, err error) {
	ctx := r.Context()

	if err != nil {
		app.notice(ctx, err.Error())
	}

	app.saveWizard(ctx, wizard)

	redirect(w, r, "/")
}
