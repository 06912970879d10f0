package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/metinatakli/movie-booking-web/internal/config"
	"github.com/metinatakli/movie-booking-web/internal/mocks"
	"github.com/metinatakli/movie-booking-web/internal/validator"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

func newTestApplication(opts ...func(*Application)) *Application {
	app, err := NewApp(
		Config{Env: "test", Booking: config.Default().Booking},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator.NewValidator(),
		nil,
		NewSessionManager(nil),
		&mocks.MockMovieService{},
		&mocks.MockRoomService{},
		&mocks.MockReservationService{},
	)
	if err != nil {
		panic(err)
	}

	app.now = func() time.Time { return testNow }

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// testClient drives the router like a browser: it keeps the session cookie
// and does not follow redirects.
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, app *Application) *testClient {
	return &testClient{
		t:       t,
		handler: app.Routes(),
		cookies: make(map[string]*http.Cookie),
	}
}

type testResponse struct {
	Status   int
	Body     string
	Location string
	Header   http.Header
}

func (c *testClient) do(r *http.Request) testResponse {
	c.t.Helper()

	for _, cookie := range c.cookies {
		r.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, r)

	res := w.Result()
	defer res.Body.Close()

	for _, cookie := range res.Cookies() {
		c.cookies[cookie.Name] = cookie
	}

	body, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)

	return testResponse{
		Status:   res.StatusCode,
		Body:     string(body),
		Location: res.Header.Get("Location"),
		Header:   res.Header,
	}
}

func (c *testClient) get(path string) testResponse {
	c.t.Helper()

	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *testClient) post(path string, form url.Values) testResponse {
	c.t.Helper()

	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(r)
}

// postRedirect posts form and requires the post/redirect/get answer.
func (c *testClient) postRedirect(path string, form url.Values, location string) {
	c.t.Helper()

	res := c.post(path, form)
	require.Equal(c.t, http.StatusSeeOther, res.Status, res.Body)
	require.Equal(c.t, location, res.Location)
}
