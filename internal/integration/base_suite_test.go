package integration_test

import (
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/metinatakli/movie-booking-web/internal/app"
	"github.com/metinatakli/movie-booking-web/internal/config"
	"github.com/metinatakli/movie-booking-web/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const cacheImageName = "redis:7"

type BaseSuite struct {
	suite.Suite
	app            *TestApp
	cacheContainer *RedisContainer
	server         *httptest.Server
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	redisContainer, err := getCacheContainer(ctx)
	s.Require().NoError(err, "failed to start container")

	s.cacheContainer = redisContainer

	backend := newFakeBackend()

	cfg := app.Config{
		Port: 3000,
		Env:  "test",
		API: app.APIConfig{
			BaseURL: backend.URL,
			Timeout: 5 * time.Second,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Booking: config.Default().Booking,
	}

	testApp, err := newTestApp(cfg, backend)
	if err != nil {
		backend.Close()
		s.Require().NoError(err, "cannot initialize app")
	}

	s.app = testApp
	s.server = httptest.NewServer(testApp.App.Routes())
}

func (s *BaseSuite) SetupTest() {
	s.app.Backend.reset()
	s.app.Backend.seed([]domain.Movie{defaultTestMovie()}, []domain.Room{defaultTestRoom()})
	s.app.Mailer.Reset()

	s.Require().NoError(s.app.Redis.FlushDB(context.Background()).Err())
}

func (s *BaseSuite) TearDownSuite() {
	if s.server != nil {
		s.server.Close()
	}

	if s.app != nil {
		s.app.Backend.Close()
		s.app.Redis.Close()
	}

	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) newBrowser() *browser {
	return newBrowser(s.T(), s.server.URL)
}

// Scenario is one request made by a fresh visitor. Form posts follow the
// redirect, so expectations apply to the page the visitor lands on.
type Scenario struct {
	Name             string
	Method           string
	URL              string
	Form             url.Values
	ExpectedStatus   int
	ExpectedContains []string
	ExpectedResponse string
	BeforeTestFunc   func(t testing.TB, app *TestApp)
	AfterTestFunc    func(t testing.TB, app *TestApp, page *page)
}

func (s Scenario) Run(t *testing.T, testApp *TestApp, serverURL string) {
	t.Run(s.Name, func(t *testing.T) {
		if s.BeforeTestFunc != nil {
			s.BeforeTestFunc(t, testApp)
		}

		b := newBrowser(t, serverURL)

		var p *page
		switch s.Method {
		case http.MethodPost:
			p = b.post(s.URL, s.Form)
		default:
			p = b.get(s.URL)
		}

		assert.Equal(t, s.ExpectedStatus, p.Status)

		for _, want := range s.ExpectedContains {
			assert.Contains(t, p.Body, want)
		}

		if s.ExpectedResponse != "" {
			require.Contains(t, p.Header.Get("Content-Type"), "application/json")
			compareResponse(t, p.Body, s.ExpectedResponse)
		}

		if s.AfterTestFunc != nil {
			s.AfterTestFunc(t, testApp, p)
		}
	})
}
