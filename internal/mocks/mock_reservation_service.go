package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/movie-booking-web/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) ForSlot(ctx context.Context, roomID, schedule string) ([]domain.Reservation, error) {
	args := m.Called(ctx, roomID, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationService) ForUser(ctx context.Context, email string) ([]domain.UserReservation, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserReservation), args.Error(1)
}

func (m *MockReservationService) InRange(ctx context.Context, start, end time.Time) ([]domain.ReportReservation, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportReservation), args.Error(1)
}

func (m *MockReservationService) Create(ctx context.Context, reservation domain.NewReservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationService) Cancel(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
