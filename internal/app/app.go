package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/booking"
	"github.com/metinatakli/movie-booking-web/internal/config"
	"github.com/metinatakli/movie-booking-web/internal/domain"
	"github.com/metinatakli/movie-booking-web/internal/mailer"
	appvalidator "github.com/metinatakli/movie-booking-web/internal/validator"
	"github.com/metinatakli/movie-booking-web/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	version = vcs.Version()
)

const instrumentationName = "github.com/metinatakli/movie-booking-web/internal/app"

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	templateCache  map[string]*template.Template

	policy booking.Policy
	guard  *booking.SequenceGuard

	movieService       domain.MovieService
	roomService        domain.RoomService
	reservationService domain.ReservationService

	reservationCounter metric.Int64Counter

	now func() time.Time
	wg  sync.WaitGroup
}

// NewApp wires an application around the given collaborators. mailer may be
// nil, in which case no confirmation emails are sent.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	mailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	movieService domain.MovieService,
	roomService domain.RoomService,
	reservationService domain.ReservationService,
) (*Application, error) {
	templateCache, err := newTemplateCache()
	if err != nil {
		return nil, err
	}

	reservationCounter, err := otel.Meter(instrumentationName).Int64Counter(
		"booking.reservations",
		metric.WithDescription("Reservations submitted through the booking wizard"),
	)
	if err != nil {
		return nil, err
	}

	return &Application{
		config:             cfg,
		logger:             logger,
		validator:          validator,
		mailer:             mailer,
		sessionManager:     sessionManager,
		templateCache:      templateCache,
		policy:             cfg.Booking.Policy(),
		guard:              booking.NewSequenceGuard(),
		movieService:       movieService,
		roomService:        roomService,
		reservationService: reservationService,
		reservationCounter: reservationCounter,
		now:                time.Now,
	}, nil
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 4000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Booking configuration file (YAML)")

	flag.StringVar(&cfg.API.BaseURL, "api-url", "http://localhost:3000", "Booking API base URL")
	flag.DurationVar(&cfg.API.Timeout, "api-timeout", 10*time.Second, "Booking API request timeout")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis address for sessions (in-memory sessions when empty)")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "", "SMTP host (confirmation emails are disabled when empty)")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "CineX <no-reply@cinex.metinatakli.net>", "SMTP sender")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	validator := appvalidator.NewValidator()

	bookingFile, err := config.Load(cfg.ConfigFile, cfg.Env, validator)
	if err != nil {
		return err
	}
	cfg.Booking = bookingFile.Booking

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	var appMailer mailer.Mailer
	if cfg.SMTP.Host != "" {
		appMailer = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	}

	client := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)

	app, err := NewApp(
		cfg,
		logger,
		validator,
		appMailer,
		NewSessionManager(redisClient),
		apiclient.NewMovieService(client),
		apiclient.NewRoomService(client),
		apiclient.NewReservationService(client),
	)
	if err != nil {
		return err
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.run()
}

// NewSessionManager keeps sessions in Redis when a client is given and in
// process memory otherwise.
func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	if client != nil {
		sessionManager.Store = goredisstore.New(client)
	} else {
		sessionManager.Store = memstore.New()
	}

	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(
		redisotel.InstrumentTracing(rdb),
		redisotel.InstrumentMetrics(rdb),
	)
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("completing background tasks", "addr", srv.Addr)

		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "api", app.config.API.BaseURL)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

// background runs fn outside the request, recovering any panic.
func (app *Application) background(fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()

		defer func() {
			if err := recover(); err != nil {
				app.logger.Error(fmt.Sprintf("%v", err))
			}
		}()

		fn()
	}()
}
