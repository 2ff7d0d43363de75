package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт для работы с бд оповещений
type AlertRepository interface {
	Create(ctx context.Context, alert *models.Alert) error
	List(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error)
	Count(ctx context.Context, filter models.AlertFilter) (int, error)
	Update(ctx context.Context, id uuid.UUID, patch models.AlertPatch) (*models.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AlertService interface {
	List(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error)
	Create(ctx context.Context, alert *models.Alert) error
	Update(ctx context.Context, id uuid.UUID, patch models.AlertPatch) (*models.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type alertService struct {
	repo   AlertRepository
	logger *logrus.Logger
}

func NewAlertService(repo AlertRepository, logger *logrus.Logger) AlertService {
	return &alertService{
		repo:   repo,
		logger: logger,
	}
}

func (s *alertService) List(ctx context.Context, filter models.AlertFilter) ([]*models.Alert, error) {
	alerts, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"service": "alert",
			"method":  "List",
		}).Error("Failed to list alerts from repository")
		return nil, fmt.Errorf("service: could not list alerts: %w", err)
	}
	return alerts, nil
}

// Create создает оповещение; статус по умолчанию active
func (s *alertService) Create(ctx context.Context, alert *models.Alert) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "alert",
		"method":  "Create",
		"zone":    alert.Zone,
	})
	log.Info("Attempting to create a new alert")

	if strings.TrimSpace(alert.Message) == "" {
		return fmt.Errorf("service: alert message is required: %w", models.ErrValidation)
	}
	if alert.Status == "" {
		alert.Status = models.AlertStatusActive
	}
	if !validAlertStatus(alert.Status) {
		return fmt.Errorf("service: unknown alert status %q: %w", alert.Status, models.ErrValidation)
	}

	if err := s.repo.Create(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to create alert in repository")
		return fmt.Errorf("service: could not create alert: %w", err)
	}

	log.WithField("alert_id", alert.ID).Info("Alert created successfully")
	return nil
}

func (s *alertService) Update(ctx context.Context, id uuid.UUID, patch models.AlertPatch) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "Update",
		"alert_id": id,
	})

	if patch.Status != nil && !validAlertStatus(*patch.Status) {
		return nil, fmt.Errorf("service: unknown alert status %q: %w", *patch.Status, models.ErrValidation)
	}
	if patch.Message != nil && strings.TrimSpace(*patch.Message) == "" {
		return nil, fmt.Errorf("service: alert message must not be empty: %w", models.ErrValidation)
	}

	alert, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		log.WithError(err).Warn("Failed to update alert in repository")
		return nil, fmt.Errorf("service: could not update alert: %w", err)
	}

	log.Info("Alert updated successfully")
	return alert, nil
}

func (s *alertService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"service":  "alert",
			"method":   "Delete",
			"alert_id": id,
		}).Warn("Failed to delete alert in repository")
		return fmt.Errorf("service: could not delete alert: %w", err)
	}
	return nil
}

func validAlertStatus(status string) bool {
	return status == models.AlertStatusActive || status == models.AlertStatusResolved
}
