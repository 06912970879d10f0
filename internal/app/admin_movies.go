package app

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/domain"
)

const (
	MsgMovieCreated       = "Movie added."
	MsgMovieCreateFailed  = "Error adding movie"
	MsgMovieUpdated       = "Movie updated."
	MsgMovieUpdateFailed  = "Error updating movie"
	MsgMovieDeleteConfirm = "Delete movie?"
	MsgMovieDeleted       = "Movie deleted."
	MsgMovieDeleteFailed  = "Error deleting movie"
	MsgMoviesUnavailable  = "The movies could not be loaded."
)

const moviesPath = "/admin/movies"

type moviesPage struct {
	Movies    []domain.Movie
	LoadError string
	// EditID is the movie the form updates; empty when it creates one.
	EditID  string
	Form    domain.MoviePayload
	Confirm *confirmModal
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	app.renderMovies(w, r, nil)
}

func (app *Application) ConfirmDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "movieId")

	app.renderMovies(w, r, &confirmModal{
		Message: MsgMovieDeleteConfirm,
		Action:  moviesPath + "/" + url.PathEscape(id) + "/delete",
		Cancel:  moviesPath,
	})
}

func (app *Application) renderMovies(w http.ResponseWriter, r *http.Request, confirm *confirmModal) {
	ctx := r.Context()

	page := moviesPage{Confirm: confirm}

	movies, err := app.movieService.List(ctx)
	if err != nil {
		app.logError(r, err)
		page.LoadError = apiclient.ErrorMessage(err, MsgMoviesUnavailable)
	}
	page.Movies = movies

	if draft, ok := app.popDraft(ctx, moviesPath); ok {
		page.EditID = draft.EditID
		page.Form = moviePayloadFromValues(draft.Values)
	} else if editID := r.URL.Query().Get("edit"); editID != "" {
		for _, movie := range movies {
			if movie.ID == editID {
				page.EditID = movie.ID
				page.Form = movie.Payload()
				break
			}
		}
	}

	data := app.newTemplateData(r)
	data.Flash = app.popFlash(ctx)
	data.Page = page

	app.render(w, r, http.StatusOK, pageMovies, data)
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	_, err := app.movieService.Create(r.Context(), moviePayloadFromValues(r.PostForm))

	app.finishEdit(w, r, err, moviesPath, "", MsgMovieCreated, MsgMovieCreateFailed)
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "movieId")

	_, err := app.movieService.Update(r.Context(), id, moviePayloadFromValues(r.PostForm))

	app.finishEdit(w, r, err, moviesPath, id, MsgMovieUpdated, MsgMovieUpdateFailed)
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "movieId")

	err := app.movieService.Delete(r.Context(), id)

	app.flashOutcome(r, err, MsgMovieDeleted, MsgMovieDeleteFailed)
	redirect(w, r, moviesPath)
}

func moviePayloadFromValues(v url.Values) domain.MoviePayload {
	return domain.MoviePayload{
		Title:    trimmedValue(v, "title"),
		Genre:    trimmedValue(v, "genre"),
		Duration: atoiOrZero(v.Get("duration")),
		Rating:   trimmedValue(v, "rating"),
	}
}

// flashOutcome replaces any pending modal with the result of a mutation,
// preferring the server's message on failure.
func (app *Application) flashOutcome(r *http.Request, err error, success, failure string) {
	if err != nil {
		app.logError(r, err)
		app.flash(r.Context(), Modal{Message: apiclient.ErrorMessage(err, failure), Error: true})
		return
	}

	app.flash(r.Context(), Modal{Message: success})
}

// finishEdit answers a create (editID empty) or update post. On failure the
// submitted values are kept and the form reopens on the same record, so a
// resubmit retries the update instead of creating a duplicate.
func (app *Application) finishEdit(w http.ResponseWriter, r *http.Request, err error, listPath, editID, success, failure string) {
	app.flashOutcome(r, err, success, failure)

	if err == nil {
		redirect(w, r, listPath)
		return
	}

	app.keepDraft(r.Context(), formDraft{Path: listPath, EditID: editID, Values: r.PostForm})

	target := listPath
	if editID != "" {
		target += "?edit=" + url.QueryEscape(editID)
	}

	redirect(w, r, target)
}
