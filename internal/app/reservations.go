package app

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/domain"
)

const (
	MsgLookupFailed        = "unknown error"
	MsgCancelConfirm       = "Are you sure you want to cancel this reservation?"
	MsgReservationCanceled = "Reservation cancelled successfully."
	MsgCancelFailed        = "Error cancelling reservation"
)

const reservationsPath = "/reservations"

type reservationsPage struct {
	Email        string
	Searched     bool
	Reservations []domain.UserReservation
	LoadError    string
	Confirm      *confirmModal
}

func (app *Application) LookupReservations(w http.ResponseWriter, r *http.Request) {
	app.renderReservations(w, r, nil)
}

func (app *Application) ConfirmCancelReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reservationId")
	email := lookupEmail(r)

	app.renderReservations(w, r, &confirmModal{
		Message: MsgCancelConfirm,
		Action:  reservationsPath + "/" + url.PathEscape(id) + "/cancel",
		Cancel:  lookupPath(email),
		Hidden:  map[string]string{"email": email},
	})
}

// renderReservations lists the reservations of the email in the query
// string. A failed lookup and an empty result render differently.
func (app *Application) renderReservations(w http.ResponseWriter, r *http.Request, confirm *confirmModal) {
	ctx := r.Context()

	page := reservationsPage{
		Email:   lookupEmail(r),
		Confirm: confirm,
	}

	if page.Email != "" {
		page.Searched = true

		reservations, err := app.reservationService.ForUser(ctx, page.Email)
		if err != nil {
			app.logError(r, err)
			page.LoadError = apiclient.ErrorMessage(err, MsgLookupFailed)
		}
		page.Reservations = reservations
	}

	data := app.newTemplateData(r)
	data.Flash = app.popFlash(ctx)
	data.Page = page

	app.render(w, r, http.StatusOK, pageReservations, data)
}

func (app *Application) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reservationId")

	err := app.reservationService.Cancel(r.Context(), id)

	app.flashOutcome(r, err, MsgReservationCanceled, MsgCancelFailed)

	redirect(w, r, lookupPath(formValue(r, "email")))
}

func lookupPath(email string) string {
	if email == "" {
		return reservationsPath
	}

	return reservationsPath + "?email=" + url.QueryEscape(email)
}

func lookupEmail(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("email"))
}
