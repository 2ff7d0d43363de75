package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/authz"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// IncidentRepository определяет контракт для работы с бд инцидентов
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	Find(ctx context.Context, filter models.IncidentFilter, opts models.ListOptions) ([]*models.Incident, error)
	FindWithReporters(ctx context.Context, opts models.ListOptions) ([]*models.IncidentWithReporter, error)
	Count(ctx context.Context, filter models.IncidentFilter) (int, error)
	Update(ctx context.Context, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error)
}

// IncidentService определяет контракт бизнес-логики жизненного цикла инцидентов
type IncidentService interface {
	Report(ctx context.Context, principal *models.Principal, incident *models.Incident) error
	List(ctx context.Context, principal *models.Principal) ([]*models.Incident, error)
	Get(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.Incident, error)
	Update(ctx context.Context, principal *models.Principal, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error)
	ListAll(ctx context.Context, principal *models.Principal) ([]*models.IncidentWithReporter, error)
}

type incidentService struct {
	repo      IncidentRepository
	authz     *authz.Authorizer
	publisher webhook.WebhookPublisher
	logger    *logrus.Logger
	now       func() time.Time
}

func NewIncidentService(repo IncidentRepository, authorizer *authz.Authorizer, publisher webhook.WebhookPublisher, logger *logrus.Logger) IncidentService {
	return &incidentService{
		repo:      repo,
		authz:     authorizer,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Report создает инцидент от имени принципала. Статус всегда active,
// время создания назначает хранилище
func (s *incidentService) Report(ctx context.Context, principal *models.Principal, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "Report",
		"type":    incident.Type,
	})
	if principal == nil {
		return fmt.Errorf("service: principal required to report incident: %w", models.ErrUnauthorized)
	}
	log.Info("Attempting to report a new incident")

	if strings.TrimSpace(incident.Type) == "" || strings.TrimSpace(incident.Location) == "" {
		return fmt.Errorf("service: incident type and location are required: %w", models.ErrValidation)
	}
	if incident.Priority == "" {
		incident.Priority = models.PriorityMedium
	}
	if !validPriority(incident.Priority) {
		return fmt.Errorf("service: unknown priority %q: %w", incident.Priority, models.ErrValidation)
	}

	reporter := principal.UserID
	incident.ID = uuid.Nil
	incident.ReportedBy = &reporter
	incident.Status = models.IncidentStatusActive
	incident.Timestamp = time.Time{}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident reported successfully")
	s.publish(ctx, webhook.EventIncidentReported, incident)
	return nil
}

// List возвращает инциденты, видимые принципалу, самые свежие первыми
func (s *incidentService) List(ctx context.Context, principal *models.Principal) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "List",
	})

	filter, err := s.authz.IncidentScope(principal)
	if err != nil {
		return nil, fmt.Errorf("service: could not scope incidents: %w", err)
	}

	incidents, err := s.repo.Find(ctx, filter, models.ListOptions{})
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}

	log.WithField("count", len(incidents)).Info("Incidents listed successfully")
	return incidents, nil
}

func (s *incidentService) Get(ctx context.Context, principal *models.Principal, id uuid.UUID) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "Get",
		"incident_id": id,
	})
	if principal == nil {
		return nil, fmt.Errorf("service: principal required: %w", models.ErrUnauthorized)
	}

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident in repository")
		return nil, fmt.Errorf("service: get incident: %w", err)
	}
	if !s.authz.CanModifyIncident(principal, incident) {
		log.Warn("Principal is not allowed to read incident")
		return nil, fmt.Errorf("service: incident %s belongs to another user: %w", id, models.ErrForbidden)
	}
	return incident, nil
}

// Update применяет патч как есть. Не-администратор может менять только свои инциденты
func (s *incidentService) Update(ctx context.Context, principal *models.Principal, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "Update",
		"incident_id": id,
	})
	if principal == nil {
		return nil, fmt.Errorf("service: principal required: %w", models.ErrUnauthorized)
	}
	log.Info("Attempting to update incident")

	if patch.Priority != nil && !validPriority(*patch.Priority) {
		return nil, fmt.Errorf("service: unknown priority %q: %w", *patch.Priority, models.ErrValidation)
	}
	if patch.Status != nil && strings.TrimSpace(*patch.Status) == "" {
		return nil, fmt.Errorf("service: status must not be empty: %w", models.ErrValidation)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent incident")
		return nil, fmt.Errorf("service: incident with id %s not found for update: %w", id, err)
	}
	if !s.authz.CanModifyIncident(principal, existing) {
		log.Warn("Principal is not allowed to update incident")
		return nil, fmt.Errorf("service: incident %s belongs to another user: %w", id, models.ErrForbidden)
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		log.WithError(err).Error("Failed to update incident in repository")
		return nil, fmt.Errorf("service: could not update incident: %w", err)
	}

	log.WithField("status", updated.Status).Info("Incident updated successfully")
	s.publish(ctx, webhook.EventIncidentUpdated, updated)
	return updated, nil
}

// ListAll возвращает все инциденты с данными автора. Только для администраторов
func (s *incidentService) ListAll(ctx context.Context, principal *models.Principal) ([]*models.IncidentWithReporter, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListAll",
	})
	if principal == nil {
		return nil, fmt.Errorf("service: principal required: %w", models.ErrUnauthorized)
	}
	if !s.authz.CanViewAllIncidents(principal) {
		return nil, fmt.Errorf("service: role %q cannot list all incidents: %w", principal.Role, models.ErrForbidden)
	}

	incidents, err := s.repo.FindWithReporters(ctx, models.ListOptions{})
	if err != nil {
		log.WithError(err).Error("Failed to list incidents with reporters")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	return incidents, nil
}

// publish не прерывает операцию при ошибке очереди
func (s *incidentService) publish(ctx context.Context, event string, incident *models.Incident) {
	if err := s.publisher.Publish(ctx, webhook.NewIncidentEvent(event, incident, s.now())); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"incident_id": incident.ID,
			"event":       event,
		}).Warn("Failed to publish incident event")
	}
}

func validPriority(p string) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}
