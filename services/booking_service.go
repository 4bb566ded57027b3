package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rental-backend/models"
	"rental-backend/storage"
	"rental-backend/validation"
)

// BookingNotifier is told about every accepted booking. Failures are logged
// and never reach the client.
type BookingNotifier interface {
	BookingCreated(ctx context.Context, b models.Booking) error
}

type BookingService struct {
	bookings   storage.BookingRepository
	properties storage.PropertyRepository
	pricing    *PricingModel
	notifier   BookingNotifier
	now        func() time.Time
	log        *slog.Logger
}

func NewBookingService(
	bookings storage.BookingRepository,
	properties storage.PropertyRepository,
	pricing *PricingModel,
	notifier BookingNotifier,
	now func() time.Time,
	log *slog.Logger,
) *BookingService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		pricing:    pricing,
		notifier:   notifier,
		now:        now,
		log:        log,
	}
}

func newBookingID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate booking id: %w", err)
	}
	return "booking_" + id.String(), nil
}

// Create applies the store-boundary checks, assigns id and creation time and
// persists the booking with status pending.
func (s *BookingService) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	if errs := validation.StoreFields(b); len(errs) > 0 {
		return models.Booking{}, fmt.Errorf("%w: %w", models.ErrMissingRequiredFields, errs)
	}

	id, err := newBookingID()
	if err != nil {
		return models.Booking{}, err
	}
	b.ID = id
	b.CreatedAt = s.now().UTC()
	b.Status = models.BookingStatusPending

	if err := s.bookings.CreateBooking(ctx, b); err != nil {
		return models.Booking{}, fmt.Errorf("create booking: %w", err)
	}

	s.log.InfoContext(ctx, "booking created",
		slog.String("booking_id", b.ID),
		slog.String("property_id", b.PropertyID.String()),
		slog.Float64("total_price", b.TotalPrice),
	)
	s.notify(ctx, b)
	return b, nil
}

func (s *BookingService) notify(ctx context.Context, b models.Booking) {
	if s.notifier == nil {
		return
	}
	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.notifier.BookingCreated(nctx, b); err != nil {
			s.log.Warn("booking notification failed",
				slog.String("booking_id", b.ID),
				slog.String("error", err.Error()),
			)
		}
	}()
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.ListBookings(ctx)
}

func (s *BookingService) GetByID(ctx context.Context, id string) (models.Booking, error) {
	return s.bookings.GetBooking(ctx, id)
}

// Quote prices a proposed stay without storing anything.
func (s *BookingService) Quote(ctx context.Context, propertyID models.PropertyID, req models.BookingRequest) (Quote, error) {
	property, err := s.properties.GetProperty(ctx, propertyID)
	if err != nil {
		return Quote{}, err
	}
	return s.pricing.Quote(property, req)
}

// Checkout runs the full booking form rules against the property, prices the
// stay and stores it.
func (s *BookingService) Checkout(ctx context.Context, propertyID models.PropertyID, req models.BookingRequest) (models.Booking, error) {
	property, err := s.properties.GetProperty(ctx, propertyID)
	if err != nil {
		return models.Booking{}, err
	}

	b, _, err := s.pricing.Build(property, req)
	if err != nil {
		return models.Booking{}, err
	}
	return s.Create(ctx, b)
}
