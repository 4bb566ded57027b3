package services

import (
	"context"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"rental-backend/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CreateBooking(ctx context.Context, b models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookingRepo) ListBookings(ctx context.Context) ([]models.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Booking), args.Error(1)
}

type chanNotifier struct {
	got chan models.Booking
	err error
}

func (n *chanNotifier) BookingCreated(_ context.Context, b models.Booking) error {
	n.got <- b
	return n.err
}
