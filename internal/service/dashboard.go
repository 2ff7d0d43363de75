package service

import (
	"context"
	"fmt"

	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const recentUpdatesLimit = 5

// DashboardService собирает сводный снимок обстановки
type DashboardService interface {
	Get(ctx context.Context) (*models.Dashboard, error)
}

type dashboardService struct {
	incidents IncidentRepository
	resources ResourceRepository
	alerts    AlertRepository
	zones     ZoneRepository
	logger    *logrus.Logger
}

func NewDashboardService(
	incidents IncidentRepository,
	resources ResourceRepository,
	alerts AlertRepository,
	zones ZoneRepository,
	logger *logrus.Logger,
) DashboardService {
	return &dashboardService{
		incidents: incidents,
		resources: resources,
		alerts:    alerts,
		zones:     zones,
		logger:    logger,
	}
}

// Get выполняет выборки параллельно. Ошибка любой из них отменяет весь снимок
func (s *dashboardService) Get(ctx context.Context) (*models.Dashboard, error) {
	var (
		alerts          []*models.Alert
		resources       []*models.Resource
		zones           []*models.Zone
		recent          []*models.Incident
		activeIncidents int
	)
	activeStatus := models.IncidentStatusActive
	alertStatus := models.AlertStatusActive

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		alerts, err = s.alerts.List(gctx, models.AlertFilter{Status: &alertStatus})
		return err
	})
	g.Go(func() error {
		var err error
		resources, err = s.resources.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		activeIncidents, err = s.incidents.Count(gctx, models.IncidentFilter{Status: &activeStatus})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.incidents.Find(gctx, models.IncidentFilter{}, models.ListOptions{Limit: recentUpdatesLimit})
		return err
	})
	g.Go(func() error {
		var err error
		zones, err = s.zones.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"service": "dashboard",
			"method":  "Get",
		}).Error("Failed to build dashboard")
		return nil, fmt.Errorf("service: could not build dashboard: %w", err)
	}

	return &models.Dashboard{
		Alerts:          alerts,
		Zones:           zones,
		Resources:       groupResources(resources),
		ActiveIncidents: activeIncidents,
		RecentUpdates:   recentUpdates(recent),
	}, nil
}

// groupResources берет первую запись каждого канонического типа
func groupResources(resources []*models.Resource) models.DashboardResources {
	pick := func(resourceType string) *models.Resource {
		for _, r := range resources {
			if r.Type == resourceType {
				return r
			}
		}
		return models.ZeroResource(resourceType)
	}
	return models.DashboardResources{
		Ambulances:  pick(models.ResourceAmbulance),
		FireTrucks:  pick(models.ResourceFireTruck),
		RescueTeams: pick(models.ResourceRescueTeam),
		Shelters:    pick(models.ResourceShelter),
	}
}

func recentUpdates(incidents []*models.Incident) []models.RecentUpdate {
	updates := make([]models.RecentUpdate, 0, len(incidents))
	for _, i := range incidents {
		updates = append(updates, models.RecentUpdate{
			ID:        i.ID,
			Message:   fmt.Sprintf("%s reported at %s", i.Type, i.Location),
			Timestamp: i.Timestamp,
		})
	}
	return updates
}
