package app

import (
	"time"

	"github.com/metinatakli/movie-booking-web/internal/config"
)

type Config struct {
	Port             int
	Env              string
	ConfigFile       string
	API              APIConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	OtelCollectorUrl string
	Booking          config.Booking
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}
