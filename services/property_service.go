package services

import (
	"context"
	"fmt"
	"log/slog"

	"rental-backend/models"
	"rental-backend/storage"
)

type PropertyService struct {
	repo storage.PropertyRepository
	log  *slog.Logger
}

func NewPropertyService(repo storage.PropertyRepository, log *slog.Logger) *PropertyService {
	if log == nil {
		log = slog.Default()
	}
	return &PropertyService{repo: repo, log: log}
}

func (s *PropertyService) List(ctx context.Context) ([]models.Property, error) {
	return s.repo.ListProperties(ctx)
}

func (s *PropertyService) GetByID(ctx context.Context, id models.PropertyID) (models.Property, error) {
	return s.repo.GetProperty(ctx, id)
}

// Seed stores any catalog entries the repository does not have yet.
func (s *PropertyService) Seed(ctx context.Context, properties []models.Property) error {
	added, err := s.repo.SeedProperties(ctx, properties)
	if err != nil {
		return fmt.Errorf("seed properties: %w", err)
	}
	if added == 0 {
		s.log.Info("properties already seeded", slog.Int("total", len(properties)))
		return nil
	}
	s.log.Info("properties seeded", slog.Int("added", added), slog.Int("total", len(properties)))
	return nil
}
