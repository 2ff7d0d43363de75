package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/shenikar/disaster_response_system/internal/auth"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

// AdminAccount - учетные данные администратора по умолчанию
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// DefaultResources - стартовый набор ресурсов
func DefaultResources() []*models.Resource {
	return []*models.Resource{
		{Type: models.ResourceAmbulance, Available: 12, Total: 15, Location: "Central Station"},
		{Type: models.ResourceFireTruck, Available: 8, Total: 12, Location: "Fire Station 1"},
		{Type: models.ResourceRescueTeam, Available: 5, Total: 8, Location: "Rescue HQ"},
		{Type: models.ResourceShelter, Available: 6, Total: 10, Location: "Various"},
	}
}

// DefaultZones - зоны с начальными статусами
func DefaultZones() []*models.Zone {
	return []*models.Zone{
		{Position: 1, Name: "Zone 1", Status: models.ZoneSafe},
		{Position: 2, Name: "Zone 2", Status: models.ZoneWatch},
		{Position: 3, Name: "Zone 3", Status: models.ZoneEvacuate},
	}
}

func defaultAlert() *models.Alert {
	return &models.Alert{
		Message: "Flood Warning - Zone 3",
		Type:    "flood",
		Zone:    "Zone 3",
		Status:  models.AlertStatusActive,
	}
}

// Seeder заполняет пустое хранилище начальными данными.
// Каждая коллекция проверяется отдельно, повторный запуск ничего не дублирует
type Seeder struct {
	users     UserRepository
	resources ResourceRepository
	alerts    AlertRepository
	zones     ZoneRepository
	admin     AdminAccount
	logger    *logrus.Logger

	once sync.Once
	err  error
}

func NewSeeder(
	users UserRepository,
	resources ResourceRepository,
	alerts AlertRepository,
	zones ZoneRepository,
	admin AdminAccount,
	logger *logrus.Logger,
) *Seeder {
	return &Seeder{
		users:     users,
		resources: resources,
		alerts:    alerts,
		zones:     zones,
		admin:     admin,
		logger:    logger,
	}
}

// Seed выполняется не более одного раза за время жизни процесса
func (s *Seeder) Seed(ctx context.Context) error {
	s.once.Do(func() {
		s.err = s.run(ctx)
	})
	return s.err
}

func (s *Seeder) run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"resources", s.seedResources},
		{"alerts", s.seedAlerts},
		{"zones", s.seedZones},
		{"admin", s.seedAdmin},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("service: seeding %s: %w", step.name, err)
		}
	}
	return nil
}

func (s *Seeder) seedResources(ctx context.Context) error {
	count, err := s.resources.Count(ctx)
	if err != nil || count > 0 {
		return err
	}
	inserted, err := s.resources.CreateMany(ctx, DefaultResources())
	if err != nil {
		return err
	}
	s.logger.WithField("count", inserted).Info("Default resources created")
	return nil
}

// seedAlerts: у оповещений нет уникального ключа, два процесса,
// стартующие одновременно на пустой базе, могут создать по одному оповещению
func (s *Seeder) seedAlerts(ctx context.Context) error {
	count, err := s.alerts.Count(ctx, models.AlertFilter{})
	if err != nil || count > 0 {
		return err
	}
	if err := s.alerts.Create(ctx, defaultAlert()); err != nil {
		return err
	}
	s.logger.Info("Default alert created")
	return nil
}

func (s *Seeder) seedZones(ctx context.Context) error {
	count, err := s.zones.Count(ctx)
	if err != nil || count > 0 {
		return err
	}
	inserted, err := s.zones.CreateMany(ctx, DefaultZones())
	if err != nil {
		return err
	}
	s.logger.WithField("count", inserted).Info("Default zones created")
	return nil
}

func (s *Seeder) seedAdmin(ctx context.Context) error {
	exists, err := s.users.ExistsWithRole(ctx, models.RoleAdmin)
	if err != nil || exists {
		return err
	}

	hash, err := auth.HashPassword(s.admin.Password)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:         s.admin.Name,
		Email:        normalizeEmail(s.admin.Email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if isConflict(err) {
			s.logger.WithField("email", admin.Email).Warn("Default admin email is taken by another account, skipping")
			return nil
		}
		return err
	}
	s.logger.WithField("email", admin.Email).Info("Default admin created")
	return nil
}
