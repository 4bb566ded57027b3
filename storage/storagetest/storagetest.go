// Package storagetest is the behaviour every storage driver must share.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
	"rental-backend/storage"
)

// Factory returns an empty store. Cleanup is registered on t by the factory.
type Factory func(t *testing.T) storage.Store

var base = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func Properties() []models.Property {
	return []models.Property{
		{
			ID:       3,
			Name:     "Harbour Studio",
			Address:  models.Address{City: "Sydney", State: "NSW", Country: "Australia"},
			Rating:   4.2,
			Category: []string{"studio"},
			Price:    90,
			Offers:   models.Offers{Bed: 1, Shower: 1, Occupants: 2},
			Image:    "/images/harbour.jpg",
		},
		{
			ID:       1,
			Name:     "Sea View Loft",
			Address:  models.Address{City: "Lisbon", State: "Lisbon", Country: "Portugal"},
			Rating:   4.8,
			Category: []string{"apartment", "beach"},
			Price:    100,
			Offers:   models.Offers{Bed: 2, Shower: 1, Occupants: 4},
			Image:    "/images/loft.jpg",
			Discount: "10",
		},
		{
			ID:       2,
			Name:     "Mountain Cabin",
			Address:  models.Address{City: "Aspen", State: "CO", Country: "USA"},
			Rating:   5,
			Category: []string{"cabin"},
			Price:    250,
			Offers:   models.Offers{Bed: 3, Shower: 2, Occupants: 6},
		},
	}
}

func booking(id string, at time.Time) models.Booking {
	return models.Booking{
		ID:             id,
		PropertyID:     1,
		PropertyName:   "Sea View Loft",
		FirstName:      "Jane",
		LastName:       "Doe",
		Email:          "jane@example.com",
		Phone:          "555-0100",
		CheckInDate:    "2024-03-01",
		CheckOutDate:   "2024-03-04",
		Guests:         2,
		TotalNights:    3,
		PricePerNight:  100,
		BookingFee:     10,
		TotalPrice:     310,
		CardNumber:     "4111111111111111",
		ExpirationDate: "12/27",
		CVV:            "123",
		BillingAddress: models.BillingAddress{Street: "1 Main St", City: "Springfield", State: "IL", ZipCode: "62701", Country: "US"},
		Status:         models.BookingStatusPending,
		CreatedAt:      at,
	}
}

func review(id string, pid models.PropertyID, rating int, at time.Time) models.Review {
	return models.Review{
		ID:         id,
		PropertyID: pid,
		UserID:     "user_" + id,
		UserName:   "Guest " + id,
		Rating:     rating,
		Comment:    "Lovely stay",
		Date:       at,
	}
}

// Run executes the contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Properties", func(t *testing.T) { testProperties(t, newStore(t)) })
	t.Run("Bookings", func(t *testing.T) { testBookings(t, newStore(t)) })
	t.Run("Reviews", func(t *testing.T) { testReviews(t, newStore(t)) })
}

func testProperties(t *testing.T, s storage.Store) {
	ctx := context.Background()

	added, err := s.SeedProperties(ctx, Properties())
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = s.SeedProperties(ctx, Properties())
	require.NoError(t, err)
	assert.Zero(t, added, "seeding twice must not duplicate")

	list, err := s.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, p := range list {
		assert.Equal(t, models.PropertyID(i+1), p.ID)
	}

	got, err := s.GetProperty(ctx, 1)
	require.NoError(t, err)
	want := Properties()[1]
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Address, got.Address)
	assert.Equal(t, want.Offers, got.Offers)
	assert.Equal(t, []string(want.Category), []string(got.Category))
	assert.Equal(t, want.Price, got.Price)
	assert.Equal(t, want.Rating, got.Rating)
	assert.Equal(t, want.Discount, got.Discount)

	_, err = s.GetProperty(ctx, 99)
	assert.ErrorIs(t, err, models.ErrPropertyNotFound)
}

func testBookings(t *testing.T, s storage.Store) {
	ctx := context.Background()

	list, err := s.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	first := booking("booking_b", base)
	second := booking("booking_a", base.Add(time.Second))
	second.FirstName = "John"

	require.NoError(t, s.CreateBooking(ctx, first))
	require.NoError(t, s.CreateBooking(ctx, second))

	err = s.CreateBooking(ctx, first)
	assert.ErrorIs(t, err, models.ErrDuplicateID)

	list, err = s.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "booking_b", list[0].ID)
	assert.Equal(t, "booking_a", list[1].ID)

	got, err := s.GetBooking(ctx, "booking_a")
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	assert.Equal(t, second.BillingAddress, got.BillingAddress)
	assert.Equal(t, second.TotalPrice, got.TotalPrice)
	assert.Equal(t, second.CVV, got.CVV)
	assert.Equal(t, models.BookingStatusPending, got.Status)
	assert.True(t, second.CreatedAt.Equal(got.CreatedAt), "created at %v, got %v", second.CreatedAt, got.CreatedAt)

	_, err = s.GetBooking(ctx, "booking_missing")
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}

func testReviews(t *testing.T, s storage.Store) {
	ctx := context.Background()

	seed := []models.Review{
		review("r1", 1, 5, base),
		review("r2", 1, 4, base.Add(48*time.Hour)),
		review("r3", 2, 3, base.Add(24*time.Hour)),
	}
	added, err := s.SeedReviews(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = s.SeedReviews(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, added)

	list, err := s.ListReviews(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r2", list[0].ID)
	assert.Equal(t, "r1", list[1].ID)

	none, err := s.ListReviews(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)

	fresh := review("r4", 1, 2, base.Add(72*time.Hour))
	fresh.UserAvatar = "/avatars/4.png"
	require.NoError(t, s.CreateReview(ctx, fresh))
	assert.ErrorIs(t, s.CreateReview(ctx, fresh), models.ErrDuplicateID)

	list, err = s.ListReviews(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "r4", list[0].ID)
	assert.Equal(t, "/avatars/4.png", list[0].UserAvatar)
	assert.True(t, fresh.Date.Equal(list[0].Date))

	r, err := s.IncrementHelpful(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Helpful)
	r, err = s.IncrementHelpful(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, r.Helpful)
	assert.Equal(t, "r1", r.ID)

	_, err = s.IncrementHelpful(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrReviewNotFound)
}
