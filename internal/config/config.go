// Package config loads the optional booking configuration file.
//
// The file may carry environment sections (dev, staging, prod) whose values
// override the base ones when the running environment matches.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/movie-booking-web/internal/booking"
	"gopkg.in/yaml.v3"
)

// Booking holds the knobs the booking wizard validates against.
type Booking struct {
	Showtimes  []string `yaml:"showtimes" validate:"min=1,dive,datetime=15:04"`
	WindowDays int      `yaml:"booking_window_days" validate:"min=0,max=365"`
}

// File is the layout of the configuration file.
type File struct {
	Booking Booking `yaml:"booking"`

	Dev     *Overrides `yaml:"dev,omitempty"`
	Staging *Overrides `yaml:"staging,omitempty"`
	Prod    *Overrides `yaml:"prod,omitempty"`
}

type Overrides struct {
	Showtimes  []string `yaml:"showtimes,omitempty"`
	WindowDays *int     `yaml:"booking_window_days,omitempty"`
}

func Default() *File {
	return &File{
		Booking: Booking{
			Showtimes:  slices.Clone(booking.DefaultShowtimes),
			WindowDays: booking.DefaultWindowDays,
		},
	}
}

// Load reads path, applies the section for env and validates the result.
// An empty path yields the defaults.
func Load(path, env string, v *validator.Validate) (*File, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyOverrides(env)

	if err := v.Struct(cfg.Booking); err != nil {
		return nil, fmt.Errorf("invalid booking config: %w", err)
	}

	return cfg, nil
}

func (f *File) applyOverrides(env string) {
	var overrides *Overrides

	switch env {
	case "dev":
		overrides = f.Dev
	case "staging":
		overrides = f.Staging
	case "prod":
		overrides = f.Prod
	}

	if overrides == nil {
		return
	}

	if len(overrides.Showtimes) > 0 {
		f.Booking.Showtimes = overrides.Showtimes
	}
	if overrides.WindowDays != nil {
		f.Booking.WindowDays = *overrides.WindowDays
	}
}

func (b Booking) Policy() booking.Policy {
	return booking.Policy{
		Showtimes:  slices.Clone(b.Showtimes),
		WindowDays: b.WindowDays,
	}
}
