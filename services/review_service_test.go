package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
	"rental-backend/storage"
)

func newReviewService(t *testing.T) *ReviewService {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()
	_, err := store.SeedProperties(ctx, []models.Property{{ID: 1, Name: "Loft", Price: 100}, {ID: 2, Name: "Cabin", Price: 200}})
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	_, err = store.SeedReviews(ctx, []models.Review{
		{ID: "1", PropertyID: 1, Rating: 5, Date: day(15), Helpful: 12},
		{ID: "2", PropertyID: 1, Rating: 4, Date: day(10), Helpful: 8},
		{ID: "3", PropertyID: 1, Rating: 5, Date: day(5), Helpful: 15},
	})
	require.NoError(t, err)

	return NewReviewService(store, clock, discardLogger())
}

func TestReviewService_ListAndStats(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	list, err := svc.ListByProperty(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "1", list[0].ID)

	stats, err := svc.Stats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.7, stats.AverageRating)
	assert.Equal(t, 3, stats.TotalReviews)
	assert.Equal(t, 2, stats.RatingCounts[5])

	empty, err := svc.ListByProperty(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	unknown, err := svc.ListByProperty(ctx, 9)
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestReviewService_Create(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, 2, models.Review{ID: "ignored", PropertyID: 1, UserName: " Ana ", Rating: 9, Comment: "Nice"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.ID, "review_"))
	assert.Equal(t, models.PropertyID(2), r.PropertyID)
	assert.Equal(t, testNow, r.Date)
	assert.Equal(t, "Ana", r.UserName)
	assert.Equal(t, 9, r.Rating)

	list, err := svc.ListByProperty(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 1)

	orphan, err := svc.Create(ctx, 42, models.Review{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, models.PropertyID(42), orphan.PropertyID)

	list, err = svc.ListByProperty(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestServices_NilLoggerDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	reviews := NewReviewService(store, clock, nil)
	assert.NotPanics(t, func() {
		_, err := reviews.Create(ctx, 1, models.Review{Rating: 4})
		assert.NoError(t, err)
	})

	properties := NewPropertyService(store, nil)
	assert.NotPanics(t, func() {
		assert.NoError(t, properties.Seed(ctx, []models.Property{{ID: 1, Name: "Loft", Price: 100}}))
	})

	bookings := NewBookingService(store, store, NewPricingModel(nil, clock), nil, clock, nil)
	assert.NotPanics(t, func() {
		_, err := bookings.Create(ctx, models.Booking{PropertyID: 1, Email: "a@b.co", FirstName: "A", LastName: "B"})
		assert.NoError(t, err)
	})
}

func TestReviewService_MarkHelpfulIsNotIdempotent(t *testing.T) {
	svc := newReviewService(t)
	ctx := context.Background()

	r, err := svc.MarkHelpful(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 9, r.Helpful)

	r, err = svc.MarkHelpful(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 10, r.Helpful)

	_, err = svc.MarkHelpful(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrReviewNotFound)
}
