package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

// ZoneRepository определяет контракт для работы с бд зон
type ZoneRepository interface {
	CreateMany(ctx context.Context, zones []*models.Zone) (int, error)
	List(ctx context.Context) ([]*models.Zone, error)
	Count(ctx context.Context) (int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ZoneStatus) (*models.Zone, error)
}

type ZoneService interface {
	List(ctx context.Context) ([]*models.Zone, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ZoneStatus) (*models.Zone, error)
}

type zoneService struct {
	repo   ZoneRepository
	logger *logrus.Logger
}

func NewZoneService(repo ZoneRepository, logger *logrus.Logger) ZoneService {
	return &zoneService{
		repo:   repo,
		logger: logger,
	}
}

func (s *zoneService) List(ctx context.Context) ([]*models.Zone, error) {
	zones, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list zones: %w", err)
	}
	return zones, nil
}

func (s *zoneService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ZoneStatus) (*models.Zone, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "UpdateStatus",
		"zone_id": id,
		"status":  status,
	})

	if _, ok := models.ParseZoneStatus(string(status)); !ok {
		return nil, fmt.Errorf("service: unknown zone status %q: %w", status, models.ErrValidation)
	}

	zone, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		log.WithError(err).Warn("Failed to update zone status")
		return nil, fmt.Errorf("service: could not update zone: %w", err)
	}

	log.Info("Zone status updated")
	return zone, nil
}
