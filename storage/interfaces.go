// Package storage defines the persistence contracts the services depend on.
// Drivers live in subpackages; the in-process driver is in this package.
package storage

import (
	"context"

	"rental-backend/models"
)

type PropertyRepository interface {
	// ListProperties returns every property ordered by id.
	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id models.PropertyID) (models.Property, error)
	// SeedProperties inserts the properties that are not stored yet and
	// reports how many were added.
	SeedProperties(ctx context.Context, properties []models.Property) (int, error)
}

type BookingRepository interface {
	// CreateBooking stores b as given. Ids are assigned by the caller.
	CreateBooking(ctx context.Context, b models.Booking) error
	// ListBookings returns bookings in insertion order.
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (models.Booking, error)
}

type ReviewRepository interface {
	// ListReviews returns a property's reviews, newest first.
	ListReviews(ctx context.Context, propertyID models.PropertyID) ([]models.Review, error)
	CreateReview(ctx context.Context, r models.Review) error
	// IncrementHelpful adds one to the helpful counter and returns the updated review.
	IncrementHelpful(ctx context.Context, reviewID string) (models.Review, error)
	SeedReviews(ctx context.Context, reviews []models.Review) (int, error)
}

type Store interface {
	PropertyRepository
	BookingRepository
	ReviewRepository
	Close() error
}
