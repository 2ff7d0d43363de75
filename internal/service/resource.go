package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

// ResourceRepository определяет контракт для работы с бд ресурсов
type ResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) error
	CreateMany(ctx context.Context, resources []*models.Resource) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Resource, error)
	GetByType(ctx context.Context, resourceType string) (*models.Resource, error)
	List(ctx context.Context) ([]*models.Resource, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ResourcePatch) (*models.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reserve(ctx context.Context, resourceType string, n int) (*models.Resource, error)
	Release(ctx context.Context, resourceType string, n int) (*models.Resource, error)
}

// ResourceService - учет доступных и общих единиц по типам ресурсов
type ResourceService interface {
	List(ctx context.Context) ([]*models.Resource, error)
	GetByType(ctx context.Context, resourceType string) (*models.Resource, error)
	Create(ctx context.Context, input models.NewResource) (*models.Resource, error)
	Update(ctx context.Context, id uuid.UUID, patch models.ResourcePatch) (*models.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reserve(ctx context.Context, resourceType string, n int) (*models.Resource, error)
	Release(ctx context.Context, resourceType string, n int) (*models.Resource, error)
}

type resourceService struct {
	repo   ResourceRepository
	logger *logrus.Logger
}

func NewResourceService(repo ResourceRepository, logger *logrus.Logger) ResourceService {
	return &resourceService{
		repo:   repo,
		logger: logger,
	}
}

func (s *resourceService) List(ctx context.Context) ([]*models.Resource, error) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"service": "resource",
			"method":  "List",
		}).Error("Failed to list resources from repository")
		return nil, fmt.Errorf("service: could not list resources: %w", err)
	}
	return resources, nil
}

// GetByType возвращает первую запись типа или нулевую заглушку, если типа нет
func (s *resourceService) GetByType(ctx context.Context, resourceType string) (*models.Resource, error) {
	resource, err := s.repo.GetByType(ctx, resourceType)
	if err != nil {
		if isNotFound(err) {
			return models.ZeroResource(resourceType), nil
		}
		return nil, fmt.Errorf("service: could not get resource by type: %w", err)
	}
	return resource, nil
}

func (s *resourceService) Create(ctx context.Context, input models.NewResource) (*models.Resource, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "resource",
		"method":  "Create",
		"type":    input.Type,
	})
	log.Info("Attempting to create a new resource")

	if strings.TrimSpace(input.Type) == "" || input.Total == nil {
		return nil, fmt.Errorf("service: resource type and total are required: %w", models.ErrValidation)
	}

	resource := &models.Resource{
		Type:      input.Type,
		Total:     *input.Total,
		Available: *input.Total,
		Location:  input.Location,
	}
	if input.Available != nil {
		resource.Available = *input.Available
	}
	if !resource.Valid() {
		return nil, fmt.Errorf("service: resource counts must satisfy 0 <= available <= total: %w", models.ErrValidation)
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		log.WithError(err).Error("Failed to create resource in repository")
		return nil, fmt.Errorf("service: could not create resource: %w", err)
	}

	log.WithField("resource_id", resource.ID).Info("Resource created successfully")
	return resource, nil
}

// Update проверяет инвариант на итоговой записи до записи в хранилище
func (s *resourceService) Update(ctx context.Context, id uuid.UUID, patch models.ResourcePatch) (*models.Resource, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "resource",
		"method":      "Update",
		"resource_id": id,
	})
	log.Info("Attempting to update resource")

	if patch.Type != nil && strings.TrimSpace(*patch.Type) == "" {
		return nil, fmt.Errorf("service: resource type must not be empty: %w", models.ErrValidation)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent resource")
		return nil, fmt.Errorf("service: resource with id %s not found for update: %w", id, err)
	}
	merged := patch.Apply(*existing)
	if !merged.Valid() {
		return nil, fmt.Errorf("service: resource counts must satisfy 0 <= available <= total: %w", models.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		log.WithError(err).Error("Failed to update resource in repository")
		return nil, fmt.Errorf("service: could not update resource: %w", err)
	}

	log.Info("Resource updated successfully")
	return updated, nil
}

func (s *resourceService) Delete(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "resource",
		"method":      "Delete",
		"resource_id": id,
	})

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete resource in repository")
		return fmt.Errorf("service: could not delete resource: %w", err)
	}

	log.Info("Resource deleted successfully")
	return nil
}

// Reserve атомарно уменьшает available на n
func (s *resourceService) Reserve(ctx context.Context, resourceType string, n int) (*models.Resource, error) {
	return s.adjust(ctx, "Reserve", resourceType, n, s.repo.Reserve)
}

// Release атомарно возвращает n единиц, не превышая total
func (s *resourceService) Release(ctx context.Context, resourceType string, n int) (*models.Resource, error) {
	return s.adjust(ctx, "Release", resourceType, n, s.repo.Release)
}

func (s *resourceService) adjust(
	ctx context.Context,
	method, resourceType string,
	n int,
	op func(context.Context, string, int) (*models.Resource, error),
) (*models.Resource, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "resource",
		"method":  method,
		"type":    resourceType,
		"units":   n,
	})

	if strings.TrimSpace(resourceType) == "" || n <= 0 {
		return nil, fmt.Errorf("service: resource type and positive unit count are required: %w", models.ErrValidation)
	}

	resource, err := op(ctx, resourceType, n)
	if err != nil {
		log.WithError(err).Warn("Failed to adjust resource counters")
		return nil, fmt.Errorf("service: could not %s resource: %w", strings.ToLower(method), err)
	}

	log.WithField("available", resource.Available).Info("Resource counters adjusted")
	return resource, nil
}
