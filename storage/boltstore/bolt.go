// Package boltstore keeps properties, bookings and reviews in a single BoltDB
// file, one bucket per entity with JSON values.
package boltstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"rental-backend/models"
	"rental-backend/storage"
)

var (
	propertiesBucket = []byte("properties")
	bookingsBucket   = []byte("bookings")
	// booking id -> sequence key in bookingsBucket
	bookingIDsBucket = []byte("booking_ids")
	reviewsBucket    = []byte("reviews")
)

type Store struct {
	db *bolt.DB
}

var _ storage.Store = (*Store)(nil)

// New opens (or creates) the database at path and ensures every bucket exists.
func New(path string, timeout time.Duration) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{propertiesBucket, bookingsBucket, bookingIDsBucket, reviewsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// itob encodes big-endian so bucket iteration follows numeric order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func (s *Store) ListProperties(_ context.Context) ([]models.Property, error) {
	items := []models.Property{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(propertiesBucket).ForEach(func(_, v []byte) error {
			var p models.Property
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			items = append(items, p)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return items, nil
}

func (s *Store) GetProperty(_ context.Context, id models.PropertyID) (models.Property, error) {
	var p models.Property
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(propertiesBucket).Get(itob(uint64(id)))
		if v == nil {
			return models.ErrPropertyNotFound
		}
		return json.Unmarshal(v, &p)
	})
	return p, err
}

func (s *Store) SeedProperties(_ context.Context, properties []models.Property) (int, error) {
	added := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(propertiesBucket)
		for _, p := range properties {
			key := itob(uint64(p.ID))
			if b.Get(key) != nil {
				continue
			}
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			if err := b.Put(key, data); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed properties: %w", err)
	}
	return added, nil
}

func (s *Store) CreateBooking(_ context.Context, bk models.Booking) error {
	data, err := json.Marshal(bk)
	if err != nil {
		return fmt.Errorf("encode booking: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		ids := tx.Bucket(bookingIDsBucket)
		if ids.Get([]byte(bk.ID)) != nil {
			return fmt.Errorf("booking %s: %w", bk.ID, models.ErrDuplicateID)
		}

		b := tx.Bucket(bookingsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := itob(seq)
		if err := b.Put(key, data); err != nil {
			return err
		}
		return ids.Put([]byte(bk.ID), key)
	})
}

func (s *Store) ListBookings(_ context.Context) ([]models.Booking, error) {
	items := []models.Booking{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bookingsBucket).ForEach(func(_, v []byte) error {
			var b models.Booking
			if err := json.Unmarshal(v, &b); err != nil {
				return err
			}
			items = append(items, b)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return items, nil
}

func (s *Store) GetBooking(_ context.Context, id string) (models.Booking, error) {
	var bk models.Booking
	err := s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket(bookingIDsBucket).Get([]byte(id))
		if key == nil {
			return models.ErrBookingNotFound
		}
		v := tx.Bucket(bookingsBucket).Get(key)
		if v == nil {
			return models.ErrBookingNotFound
		}
		return json.Unmarshal(v, &bk)
	})
	return bk, err
}

func (s *Store) ListReviews(_ context.Context, propertyID models.PropertyID) ([]models.Review, error) {
	items := []models.Review{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(reviewsBucket).ForEach(func(_, v []byte) error {
			var r models.Review
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if r.PropertyID == propertyID {
				items = append(items, r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	storage.SortReviews(items)
	return items, nil
}

func (s *Store) CreateReview(_ context.Context, r models.Review) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode review: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(reviewsBucket)
		if b.Get([]byte(r.ID)) != nil {
			return fmt.Errorf("review %s: %w", r.ID, models.ErrDuplicateID)
		}
		return b.Put([]byte(r.ID), data)
	})
}

// IncrementHelpful runs read-modify-write inside one transaction; bolt
// serialises writers so concurrent votes are not lost.
func (s *Store) IncrementHelpful(_ context.Context, reviewID string) (models.Review, error) {
	var r models.Review
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(reviewsBucket)
		v := b.Get([]byte(reviewID))
		if v == nil {
			return models.ErrReviewNotFound
		}
		if err := json.Unmarshal(v, &r); err != nil {
			return err
		}
		r.Helpful++
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		return b.Put([]byte(reviewID), data)
	})
	return r, err
}

func (s *Store) SeedReviews(_ context.Context, reviews []models.Review) (int, error) {
	added := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(reviewsBucket)
		for _, r := range reviews {
			if b.Get([]byte(r.ID)) != nil {
				continue
			}
			data, err := json.Marshal(r)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(r.ID), data); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed reviews: %w", err)
	}
	return added, nil
}
