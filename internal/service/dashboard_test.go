package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type dashboardMocks struct {
	incidents *mocks.MockIncidentRepository
	resources *mocks.MockResourceRepository
	alerts    *mocks.MockAlertRepository
	zones     *mocks.MockZoneRepository
}

func newTestDashboardService(t *testing.T) (DashboardService, dashboardMocks) {
	ctrl := gomock.NewController(t)
	m := dashboardMocks{
		incidents: mocks.NewMockIncidentRepository(ctrl),
		resources: mocks.NewMockResourceRepository(ctrl),
		alerts:    mocks.NewMockAlertRepository(ctrl),
		zones:     mocks.NewMockZoneRepository(ctrl),
	}
	return NewDashboardService(m.incidents, m.resources, m.alerts, m.zones, newTestLogger()), m
}

func activeIncidentFilter() models.IncidentFilter {
	status := models.IncidentStatusActive
	return models.IncidentFilter{Status: &status}
}

func activeAlertFilter() models.AlertFilter {
	status := models.AlertStatusActive
	return models.AlertFilter{Status: &status}
}

func TestDashboard_EmptyStore(t *testing.T) {
	service, m := newTestDashboardService(t)
	ctx := gomock.Any()

	m.alerts.EXPECT().List(ctx, activeAlertFilter()).Return([]*models.Alert{}, nil).Times(1)
	m.resources.EXPECT().List(ctx).Return([]*models.Resource{}, nil).Times(1)
	m.incidents.EXPECT().Count(ctx, activeIncidentFilter()).Return(0, nil).Times(1)
	m.incidents.EXPECT().Find(ctx, models.IncidentFilter{}, models.ListOptions{Limit: 5}).Return([]*models.Incident{}, nil).Times(1)
	m.zones.EXPECT().List(ctx).Return([]*models.Zone{}, nil).Times(1)

	dashboard, err := service.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, dashboard.ActiveIncidents)
	assert.Equal(t, 0, dashboard.Resources.Ambulances.Available)
	assert.Equal(t, 0, dashboard.Resources.Ambulances.Total)
	assert.Equal(t, 0, dashboard.Resources.Shelters.Total)
	assert.Empty(t, dashboard.RecentUpdates)
}

func TestDashboard_GroupsAndFeed(t *testing.T) {
	service, m := newTestDashboardService(t)
	ctx := gomock.Any()
	first := &models.Resource{ID: uuid.New(), Type: models.ResourceAmbulance, Available: 12, Total: 15}
	shadowed := &models.Resource{ID: uuid.New(), Type: models.ResourceAmbulance, Available: 1, Total: 1}
	truck := &models.Resource{ID: uuid.New(), Type: models.ResourceFireTruck, Available: 8, Total: 12}
	drone := &models.Resource{ID: uuid.New(), Type: "drone", Available: 3, Total: 5}
	reportedAt := time.Now()
	incident := &models.Incident{ID: uuid.New(), Type: "fire", Location: "Main St", Timestamp: reportedAt}
	zones := []*models.Zone{{Name: "Zone 1", Status: models.ZoneSafe}}
	alerts := []*models.Alert{{Message: "Flood Warning - Zone 3"}}

	m.alerts.EXPECT().List(ctx, activeAlertFilter()).Return(alerts, nil).Times(1)
	m.resources.EXPECT().List(ctx).Return([]*models.Resource{first, shadowed, truck, drone}, nil).Times(1)
	m.incidents.EXPECT().Count(ctx, activeIncidentFilter()).Return(1, nil).Times(1)
	m.incidents.EXPECT().Find(ctx, models.IncidentFilter{}, models.ListOptions{Limit: 5}).Return([]*models.Incident{incident}, nil).Times(1)
	m.zones.EXPECT().List(ctx).Return(zones, nil).Times(1)

	dashboard, err := service.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, first, dashboard.Resources.Ambulances)
	assert.Equal(t, truck, dashboard.Resources.FireTrucks)
	assert.Equal(t, 0, dashboard.Resources.RescueTeams.Total)
	assert.Equal(t, 1, dashboard.ActiveIncidents)
	assert.Equal(t, alerts, dashboard.Alerts)
	assert.Equal(t, zones, dashboard.Zones)
	require.Len(t, dashboard.RecentUpdates, 1)
	assert.Equal(t, "fire reported at Main St", dashboard.RecentUpdates[0].Message)
	assert.Equal(t, incident.ID, dashboard.RecentUpdates[0].ID)
	assert.Equal(t, reportedAt, dashboard.RecentUpdates[0].Timestamp)
}

func TestDashboard_AnyFailureFailsWhole(t *testing.T) {
	service, m := newTestDashboardService(t)
	ctx := gomock.Any()

	m.alerts.EXPECT().List(ctx, gomock.Any()).Return([]*models.Alert{}, nil).AnyTimes()
	m.resources.EXPECT().List(ctx).Return(nil, models.ErrStoreFailure).Times(1)
	m.incidents.EXPECT().Count(ctx, gomock.Any()).Return(0, nil).AnyTimes()
	m.incidents.EXPECT().Find(ctx, gomock.Any(), gomock.Any()).Return([]*models.Incident{}, nil).AnyTimes()
	m.zones.EXPECT().List(ctx).Return([]*models.Zone{}, nil).AnyTimes()

	dashboard, err := service.Get(context.Background())

	assert.ErrorIs(t, err, models.ErrStoreFailure)
	assert.Nil(t, dashboard)
}
