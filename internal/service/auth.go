package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/shenikar/disaster_response_system/internal/auth"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

const minPasswordLength = 6

// AuthService - регистрация, вход и восстановление принципала по токену
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	ResolvePrincipal(ctx context.Context, token string) (*models.Principal, error)
	Me(ctx context.Context, principal *models.Principal) (*models.User, error)
}

type authService struct {
	users  UserRepository
	tokens *auth.TokenManager
	logger *logrus.Logger
}

func NewAuthService(users UserRepository, tokens *auth.TokenManager, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register создает пользователя с ролью user. Повторный email дает ErrConflict
func (s *authService) Register(ctx context.Context, name, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Register",
		"email":   email,
	})

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("service: name is required: %w", models.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("service: invalid email: %w", models.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("service: password must be at least %d characters: %w", minPasswordLength, models.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if isConflict(err) {
			log.Warn("Email already registered")
		} else {
			log.WithError(err).Error("Failed to create user in repository")
		}
		return nil, fmt.Errorf("service: could not register user: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return s.session(user)
}

// Login проверяет учетные данные. Неизвестный email и неверный пароль неразличимы
func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = normalizeEmail(email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Login",
		"email":   email,
	})

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			log.Warn("Login attempt for unknown email")
			return nil, fmt.Errorf("service: %w", models.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("service: could not load user: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		log.Warn("Login attempt with wrong password")
		return nil, fmt.Errorf("service: %w", models.ErrInvalidCredentials)
	}

	log.WithField("user_id", user.ID).Info("User logged in")
	return s.session(user)
}

// ResolvePrincipal проверяет токен и перечитывает пользователя, чтобы роль была актуальной
func (s *authService) ResolvePrincipal(ctx context.Context, token string) (*models.Principal, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("service: user %s no longer exists: %w", id, models.ErrUnauthorized)
		}
		return nil, fmt.Errorf("service: could not load principal: %w", err)
	}

	return &models.Principal{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *authService) Me(ctx context.Context, principal *models.Principal) (*models.User, error) {
	if principal == nil {
		return nil, fmt.Errorf("service: principal required: %w", models.ErrUnauthorized)
	}
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("service: could not load user: %w", err)
	}
	return user, nil
}

func (s *authService) session(user *models.User) (*models.Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return &models.Session{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
