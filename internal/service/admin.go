package service

import (
	"context"
	"fmt"

	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// AdminService - операционные счетчики для администраторов
type AdminService interface {
	Summary(ctx context.Context) (*models.AdminSummary, error)
}

type adminService struct {
	users     UserRepository
	incidents IncidentRepository
	resources ResourceRepository
	alerts    AlertRepository
	logger    *logrus.Logger
}

func NewAdminService(
	users UserRepository,
	incidents IncidentRepository,
	resources ResourceRepository,
	alerts AlertRepository,
	logger *logrus.Logger,
) AdminService {
	return &adminService{
		users:     users,
		incidents: incidents,
		resources: resources,
		alerts:    alerts,
		logger:    logger,
	}
}

// Summary считает каждое значение отдельным запросом, общего снимка нет.
// TotalAlerts учитывает только активные оповещения
func (s *adminService) Summary(ctx context.Context) (*models.AdminSummary, error) {
	summary := &models.AdminSummary{}
	active := models.IncidentStatusActive
	resolved := models.IncidentStatusResolved
	activeAlert := models.AlertStatusActive

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&summary.TotalUsers, s.users.Count)
	count(&summary.TotalIncidents, func(ctx context.Context) (int, error) {
		return s.incidents.Count(ctx, models.IncidentFilter{})
	})
	count(&summary.ActiveIncidents, func(ctx context.Context) (int, error) {
		return s.incidents.Count(ctx, models.IncidentFilter{Status: &active})
	})
	count(&summary.ResolvedIncidents, func(ctx context.Context) (int, error) {
		return s.incidents.Count(ctx, models.IncidentFilter{Status: &resolved})
	})
	count(&summary.TotalResources, s.resources.Count)
	count(&summary.TotalAlerts, func(ctx context.Context) (int, error) {
		return s.alerts.Count(ctx, models.AlertFilter{Status: &activeAlert})
	})

	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"service": "admin",
			"method":  "Summary",
		}).Error("Failed to compute admin summary")
		return nil, fmt.Errorf("service: could not compute summary: %w", err)
	}
	return summary, nil
}
