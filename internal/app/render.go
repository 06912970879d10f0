package app

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/metinatakli/movie-booking-web/ui"
)

const (
	pageCatalog      = "catalog.tmpl"
	pageMovies       = "movies.tmpl"
	pageRooms        = "rooms.tmpl"
	pageReservations = "reservations.tmpl"
	pageReports      = "reports.tmpl"
	pageError        = "error.tmpl"
)

type templateData struct {
	CurrentYear int
	Version     string
	Path        string
	Flash       *Modal
	Page        any
}

type errorPage struct {
	Status  int
	Message string
}

// confirmModal asks before a destructive post to Action. Hidden fields are
// sent along with the confirmation; Cancel is where closing it leads.
type confirmModal struct {
	Message string
	Action  string
	Cancel  string
	Hidden  map[string]string
}

var functions = template.FuncMap{
	"join":      strings.Join,
	"humanDate": humanDate,
	"statusText": func(code int) string {
		return http.StatusText(code)
	},
}

func humanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("Mon 02 Jan 2006")
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := map[string]*template.Template{}

	pages, err := fs.Glob(ui.Files, "html/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := path.Base(page)

		patterns := []string{
			"html/base.tmpl",
			"html/partials/*.tmpl",
			page,
		}

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		cache[name] = ts
	}

	return cache, nil
}

func (app *Application) newTemplateData(r *http.Request) templateData {
	return templateData{
		CurrentYear: app.now().Year(),
		Version:     version,
		Path:        r.URL.Path,
	}
}

// render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (app *Application) render(w http.ResponseWriter, r *http.Request, status int, page string, data templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.logError(r, fmt.Errorf("the template %s does not exist", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)

	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.logError(r, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
