package integration_test

import (
	"log/slog"
	"os"

	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/app"
	"github.com/metinatakli/movie-booking-web/internal/mailer"
	appvalidator "github.com/metinatakli/movie-booking-web/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App     *app.Application
	Redis   *redis.Client
	Mailer  *mailer.MockMailer
	Backend *fakeBackend
}

func newTestApp(cfg app.Config, backend *fakeBackend) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mailer := mailer.NewMockMailer()

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)

	application, err := app.NewApp(
		cfg,
		logger,
		validator,
		mailer,
		sessionManager,
		apiclient.NewMovieService(client),
		apiclient.NewRoomService(client),
		apiclient.NewReservationService(client),
	)
	if err != nil {
		redisClient.Close()
		return nil, err
	}

	return &TestApp{
		App:     application,
		Redis:   redisClient,
		Mailer:  mailer,
		Backend: backend,
	}, nil
}
