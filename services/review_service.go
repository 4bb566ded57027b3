package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental-backend/models"
	"rental-backend/storage"
)

type ReviewService struct {
	reviews storage.ReviewRepository
	now     func() time.Time
	log     *slog.Logger
}

func NewReviewService(reviews storage.ReviewRepository, now func() time.Time, log *slog.Logger) *ReviewService {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReviewService{reviews: reviews, now: now, log: log}
}

// ListByProperty returns the property's reviews newest first. An unknown
// property simply has no reviews.
func (s *ReviewService) ListByProperty(ctx context.Context, propertyID models.PropertyID) ([]models.Review, error) {
	reviews, err := s.reviews.ListReviews(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

func (s *ReviewService) Stats(ctx context.Context, propertyID models.PropertyID) (models.ReviewStats, error) {
	reviews, err := s.ListByProperty(ctx, propertyID)
	if err != nil {
		return models.ReviewStats{}, err
	}
	return AggregateReviews(reviews), nil
}

// Create stores a review for the property. Id and date are always generated
// here; neither the property nor the rating range is checked.
func (s *ReviewService) Create(ctx context.Context, propertyID models.PropertyID, r models.Review) (models.Review, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.Review{}, fmt.Errorf("generate review id: %w", err)
	}
	r.ID = "review_" + id.String()
	r.PropertyID = propertyID
	r.Date = s.now().UTC()
	r.UserName = strings.TrimSpace(r.UserName)
	if r.Helpful < 0 {
		r.Helpful = 0
	}

	if err := s.reviews.CreateReview(ctx, r); err != nil {
		return models.Review{}, fmt.Errorf("create review: %w", err)
	}
	s.log.InfoContext(ctx, "review created",
		slog.String("review_id", r.ID),
		slog.String("property_id", propertyID.String()),
		slog.Int("rating", r.Rating),
	)
	return r, nil
}

// MarkHelpful adds one helpful vote. Repeated calls keep counting.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string) (models.Review, error) {
	return s.reviews.IncrementHelpful(ctx, reviewID)
}

// Seed stores sample reviews that are not present yet.
func (s *ReviewService) Seed(ctx context.Context, reviews []models.Review) error {
	added, err := s.reviews.SeedReviews(ctx, reviews)
	if err != nil {
		return fmt.Errorf("seed reviews: %w", err)
	}
	s.log.Info("reviews seeded", slog.Int("added", added), slog.Int("total", len(reviews)))
	return nil
}
