package app

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/metinatakli/movie-booking-web/internal/booking"
)

type sessionKey string

const (
	SessionKeyWizard = sessionKey("wizard")
	SessionKeyNotice = sessionKey("wizardNotice")
	SessionKeyResult = sessionKey("bookingResult")
	SessionKeyFlash  = sessionKey("flash")
	SessionKeyDraft  = sessionKey("adminDraft")
)

func (s sessionKey) String() string {
	return string(s)
}

// Modal is a message shown over a page until the visitor dismisses it.
type Modal struct {
	Message string `json:"message"`
	Error   bool   `json:"error,omitempty"`
}

func (app *Application) putJSON(ctx context.Context, key sessionKey, v any) {
	js, err := json.Marshal(v)
	if err != nil {
		// only session-local types are stored, which always encode
		panic(err)
	}

	app.sessionManager.Put(ctx, key.String(), string(js))
}

// getJSON decodes the value stored under key into dst. A missing or
// undecodable value reports false and leaves dst untouched.
func (app *Application) getJSON(ctx context.Context, key sessionKey, dst any) bool {
	js := app.sessionManager.GetString(ctx, key.String())
	if js == "" {
		return false
	}

	return json.Unmarshal([]byte(js), dst) == nil
}

func (app *Application) loadWizard(ctx context.Context) booking.Wizard {
	var w booking.Wizard
	if !app.getJSON(ctx, SessionKeyWizard, &w) {
		return booking.Wizard{}
	}

	return w
}

func (app *Application) saveWizard(ctx context.Context, w booking.Wizard) {
	if !w.Open() {
		app.sessionManager.Remove(ctx, SessionKeyWizard.String())
		app.sessionManager.Remove(ctx, SessionKeyNotice.String())
		return
	}

	app.putJSON(ctx, SessionKeyWizard, w)
}

// notice is shown once inside the wizard modal.
func (app *Application) notice(ctx context.Context, message string) {
	app.sessionManager.Put(ctx, SessionKeyNotice.String(), message)
}

func (app *Application) popNotice(ctx context.Context) string {
	return app.sessionManager.PopString(ctx, SessionKeyNotice.String())
}

// flash stores a modal for the next page render, replacing any pending one.
func (app *Application) flash(ctx context.Context, modal Modal) {
	app.sessionManager.Remove(ctx, SessionKeyFlash.String())
	app.putJSON(ctx, SessionKeyFlash, modal)
}

func (app *Application) popFlash(ctx context.Context) *Modal {
	var modal Modal
	if !app.getJSON(ctx, SessionKeyFlash, &modal) {
		return nil
	}

	app.sessionManager.Remove(ctx, SessionKeyFlash.String())

	return &modal
}

func (app *Application) bookingResult(ctx context.Context) *Modal {
	var modal Modal
	if !app.getJSON(ctx, SessionKeyResult, &modal) {
		return nil
	}

	return &modal
}

// formDraft is an admin form whose save failed. It is shown again, still
// targeting the same record, on the next render of its page.
type formDraft struct {
	Path   string     `json:"path"`
	EditID string     `json:"editId,omitempty"`
	Values url.Values `json:"values"`
}

func (app *Application) keepDraft(ctx context.Context, draft formDraft) {
	app.putJSON(ctx, SessionKeyDraft, draft)
}

// popDraft returns the pending draft for the page at path. Any pending
// draft is discarded, whichever page it belongs to.
func (app *Application) popDraft(ctx context.Context, path string) (formDraft, bool) {
	var draft formDraft
	ok := app.getJSON(ctx, SessionKeyDraft, &draft)

	app.sessionManager.Remove(ctx, SessionKeyDraft.String())

	return draft, ok && draft.Path == path
}
