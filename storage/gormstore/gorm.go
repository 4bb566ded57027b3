// Package gormstore is the GORM-backed storage driver used with MySQL.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rental-backend/models"
	"rental-backend/storage"
)

const mysqlDuplicateEntry = 1062

type Store struct {
	DB *gorm.DB
}

var _ storage.Store = (*Store)(nil)

// New migrates the schema and wraps db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&models.Property{},
		&models.Booking{},
		&models.Review{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqldriver.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	var items []models.Property
	if err := s.DB.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return items, nil
}

func (s *Store) GetProperty(ctx context.Context, id models.PropertyID) (models.Property, error) {
	var p models.Property
	err := s.DB.WithContext(ctx).First(&p, "id = ?", uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Property{}, models.ErrPropertyNotFound
	}
	if err != nil {
		return models.Property{}, fmt.Errorf("get property %d: %w", id, err)
	}
	return p, nil
}

func (s *Store) SeedProperties(ctx context.Context, properties []models.Property) (int, error) {
	added := 0
	for i := range properties {
		res := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&properties[i])
		if res.Error != nil {
			return added, fmt.Errorf("seed property %d: %w", properties[i].ID, res.Error)
		}
		added += int(res.RowsAffected)
	}
	return added, nil
}

func (s *Store) CreateBooking(ctx context.Context, b models.Booking) error {
	err := s.DB.WithContext(ctx).Create(&b).Error
	if isDuplicateKey(err) {
		return fmt.Errorf("booking %s: %w", b.ID, models.ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var items []models.Booking
	if err := s.DB.WithContext(ctx).Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return items, nil
}

func (s *Store) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Booking{}, models.ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("get booking %s: %w", id, err)
	}
	return b, nil
}

func (s *Store) ListReviews(ctx context.Context, propertyID models.PropertyID) ([]models.Review, error) {
	var items []models.Review
	err := s.DB.WithContext(ctx).
		Where("property_id = ?", uint(propertyID)).
		Order("date DESC, id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return items, nil
}

func (s *Store) CreateReview(ctx context.Context, r models.Review) error {
	err := s.DB.WithContext(ctx).Create(&r).Error
	if isDuplicateKey(err) {
		return fmt.Errorf("review %s: %w", r.ID, models.ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (s *Store) IncrementHelpful(ctx context.Context, reviewID string) (models.Review, error) {
	var r models.Review
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumn("helpful", gorm.Expr("helpful + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrReviewNotFound
		}
		return tx.First(&r, "id = ?", reviewID).Error
	})
	if errors.Is(err, models.ErrReviewNotFound) {
		return models.Review{}, err
	}
	if err != nil {
		return models.Review{}, fmt.Errorf("increment helpful %s: %w", reviewID, err)
	}
	return r, nil
}

func (s *Store) SeedReviews(ctx context.Context, reviews []models.Review) (int, error) {
	added := 0
	for i := range reviews {
		res := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&reviews[i])
		if res.Error != nil {
			return added, fmt.Errorf("seed review %s: %w", reviews[i].ID, res.Error)
		}
		added += int(res.RowsAffected)
	}
	return added, nil
}
