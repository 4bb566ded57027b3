package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rental-backend/models"
)

// MemoryStore keeps everything in process memory. Data is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	properties map[models.PropertyID]models.Property
	bookings   []models.Booking
	reviews    []models.Review
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{properties: make(map[models.PropertyID]models.Property)}
}

func (s *MemoryStore) ListProperties(_ context.Context) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetProperty(_ context.Context, id models.PropertyID) (models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.properties[id]
	if !ok {
		return models.Property{}, models.ErrPropertyNotFound
	}
	return p, nil
}

func (s *MemoryStore) SeedProperties(_ context.Context, properties []models.Property) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, p := range properties {
		if _, ok := s.properties[p.ID]; ok {
			continue
		}
		s.properties[p.ID] = p
		added++
	}
	return added, nil
}

func (s *MemoryStore) CreateBooking(_ context.Context, b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.bookings {
		if existing.ID == b.ID {
			return fmt.Errorf("booking %s: %w", b.ID, models.ErrDuplicateID)
		}
	}
	s.bookings = append(s.bookings, b)
	return nil
}

func (s *MemoryStore) ListBookings(_ context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Booking{}, models.ErrBookingNotFound
}

func (s *MemoryStore) ListReviews(_ context.Context, propertyID models.PropertyID) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	SortReviews(out)
	return out, nil
}

func (s *MemoryStore) CreateReview(_ context.Context, r models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reviewIndex(r.ID) >= 0 {
		return fmt.Errorf("review %s: %w", r.ID, models.ErrDuplicateID)
	}
	s.reviews = append(s.reviews, r)
	return nil
}

func (s *MemoryStore) IncrementHelpful(_ context.Context, reviewID string) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.reviewIndex(reviewID)
	if i < 0 {
		return models.Review{}, models.ErrReviewNotFound
	}
	s.reviews[i].Helpful++
	return s.reviews[i], nil
}

func (s *MemoryStore) SeedReviews(_ context.Context, reviews []models.Review) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, r := range reviews {
		if s.reviewIndex(r.ID) >= 0 {
			continue
		}
		s.reviews = append(s.reviews, r)
		added++
	}
	return added, nil
}

func (s *MemoryStore) Close() error { return nil }

// caller holds the lock
func (s *MemoryStore) reviewIndex(id string) int {
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			return i
		}
	}
	return -1
}

// SortReviews orders newest first, breaking ties by id so results are stable.
func SortReviews(reviews []models.Review) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if !reviews[i].Date.Equal(reviews[j].Date) {
			return reviews[i].Date.After(reviews[j].Date)
		}
		return reviews[i].ID < reviews[j].ID
	})
}
