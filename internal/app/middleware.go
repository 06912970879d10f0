package app

import (
	"fmt"
	"net/http"
)

func (app *Application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")

				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// parseForm parses the body of every form post before the handler runs,
// so handlers can read r.PostForm directly.
func (app *Application) parseForm(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

			if err := r.ParseForm(); err != nil {
				app.badRequestResponse(w, r, fmt.Errorf("malformed form: %w", err))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
