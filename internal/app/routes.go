package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/movie-booking-web/ui"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(otelchi.Middleware("movie-booking-web", otelchi.WithChiRoutes(r)))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)

	r.Get("/healthz", app.GetHealth)
	r.Handle("/static/*", http.FileServerFS(ui.Files))

	r.Group(func(r chi.Router) {
		r.Use(app.sessionManager.LoadAndSave)
		r.Use(app.parseForm)

		r.Get("/", app.ShowCatalog)

		r.Route("/booking", func(r chi.Router) {
			r.Post("/movie", app.SelectMovie)
			r.Post("/schedule", app.SelectSchedule)
			r.Post("/room", app.SelectRoom)
			r.Post("/next", app.NextStep)
			r.Post("/back", app.PreviousStep)
			r.Post("/seats", app.ToggleSeat)
			r.Post("/email", app.SetEmail)
			r.Post("/confirm", app.ConfirmReservation)
			r.Post("/close", app.CloseWizard)
			r.Post("/modal/close", app.CloseResultModal)
		})

		r.Route("/admin/movies", func(r chi.Router) {
			r.Get("/", app.ListMovies)
			r.Post("/", app.CreateMovie)
			r.Post("/{movieId}", app.UpdateMovie)
			r.Get("/{movieId}/delete", app.ConfirmDeleteMovie)
			r.Post("/{movieId}/delete", app.DeleteMovie)
		})

		r.Route("/admin/rooms", func(r chi.Router) {
			r.Get("/", app.ListRooms)
			r.Post("/", app.CreateRoom)
			r.Post("/{roomId}", app.UpdateRoom)
			r.Get("/{roomId}/delete", app.ConfirmDeleteRoom)
			r.Post("/{roomId}/delete", app.DeleteRoom)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", app.LookupReservations)
			r.Get("/{reservationId}/cancel", app.ConfirmCancelReservation)
			r.Post("/{reservationId}/cancel", app.CancelReservation)
		})

		r.Get("/reports", app.ShowReport)
	})

	r.Get("/reports/data", app.GetReportData)

	return r
}
