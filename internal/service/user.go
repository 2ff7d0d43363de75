package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

// UserRepository определяет контракт для работы с бд пользователей
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
	ExistsWithRole(ctx context.Context, role models.Role) (bool, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserService - административное управление пользователями
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	SetRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo   UserRepository
	logger *logrus.Logger
}

func NewUserService(repo UserRepository, logger *logrus.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list users: %w", err)
	}
	return users, nil
}

func (s *userService) SetRole(ctx context.Context, id uuid.UUID, role models.Role) (*models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "SetRole",
		"user_id": id,
		"role":    role,
	})

	if _, ok := models.ParseRole(string(role)); !ok {
		return nil, fmt.Errorf("service: unknown role %q: %w", role, models.ErrValidation)
	}

	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		log.WithError(err).Warn("Failed to update user role")
		return nil, fmt.Errorf("service: could not set role: %w", err)
	}

	log.Info("User role updated")
	return user, nil
}

// Delete удаляет пользователя. reported_by его инцидентов не меняется
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "Delete",
		"user_id": id,
	})

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete user")
		return fmt.Errorf("service: could not delete user: %w", err)
	}

	log.Info("User deleted")
	return nil
}
