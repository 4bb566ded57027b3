package notification

import (
	"context"
	"errors"

	"rental-backend/models"
)

type Notifier interface {
	BookingCreated(ctx context.Context, b models.Booking) error
}

// Multi fans a booking out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) BookingCreated(ctx context.Context, b models.Booking) error {
	var errs []error
	for _, n := range m {
		if err := n.BookingCreated(ctx, b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
