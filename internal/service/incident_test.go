package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/authz"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service/mocks"
	"github.com/shenikar/disaster_response_system/internal/webhook"
	webhook_mocks "github.com/shenikar/disaster_response_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func newTestAuthorizer(t *testing.T) *authz.Authorizer {
	a, err := authz.NewAuthorizer()
	require.NoError(t, err)
	return a
}

// newTestIncidentService создает сервис с моками репозитория и издателя вебхуков
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository, *webhook_mocks.MockWebhookPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	webhookMock := webhook_mocks.NewMockWebhookPublisher(ctrl)

	service := NewIncidentService(repoMock, newTestAuthorizer(t), webhookMock, newTestLogger())
	return service.(*incidentService), repoMock, webhookMock
}

func userPrincipal() *models.Principal {
	return &models.Principal{UserID: uuid.New(), Email: "user@test.com", Role: models.RoleUser}
}

func adminPrincipal() *models.Principal {
	return &models.Principal{UserID: uuid.New(), Email: "admin@test.com", Role: models.RoleAdmin}
}

func TestReport_OverridesStatusAndTimestamp(t *testing.T) {
	// Подготовка
	service, repoMock, webhookMock := newTestIncidentService(t)
	ctx := context.Background()
	principal := userPrincipal()
	callerTime := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := time.Now()
	incident := &models.Incident{
		Type:      "fire",
		Location:  "Main St",
		Status:    "resolved",
		Timestamp: callerTime,
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.Incident) error {
			assert.Equal(t, models.IncidentStatusActive, inc.Status)
			assert.True(t, inc.Timestamp.IsZero())
			inc.ID = uuid.New()
			inc.Timestamp = stored
			return nil
		}).Times(1)
	webhookMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event webhook.IncidentEvent) error {
			assert.Equal(t, webhook.EventIncidentReported, event.Event)
			assert.Equal(t, incident.ID, event.IncidentID)
			return nil
		}).Times(1)

	// Действие
	err := service.Report(ctx, principal, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusActive, incident.Status)
	assert.Equal(t, models.PriorityMedium, incident.Priority)
	assert.Equal(t, stored, incident.Timestamp)
	require.NotNil(t, incident.ReportedBy)
	assert.Equal(t, principal.UserID, *incident.ReportedBy)
}

func TestReport_PublishFailureIsNotFatal(t *testing.T) {
	service, repoMock, webhookMock := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	webhookMock.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down")).Times(1)

	err := service.Report(ctx, userPrincipal(), &models.Incident{Type: "flood", Location: "Zone 3", Priority: models.PriorityHigh})

	assert.NoError(t, err)
}

func TestReport_Validation(t *testing.T) {
	tests := []struct {
		name     string
		incident *models.Incident
	}{
		{name: "missing type", incident: &models.Incident{Location: "Main St"}},
		{name: "missing location", incident: &models.Incident{Type: "fire"}},
		{name: "unknown priority", incident: &models.Incident{Type: "fire", Location: "Main St", Priority: "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repoMock, _ := newTestIncidentService(t)
			repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

			err := service.Report(context.Background(), userPrincipal(), tt.incident)

			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestReport_Anonymous(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := service.Report(context.Background(), nil, &models.Incident{Type: "fire", Location: "Main St"})

	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestList_ScopedForUser(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	principal := userPrincipal()
	own := &models.Incident{ID: uuid.New(), ReportedBy: &principal.UserID}

	// Ожидания
	repoMock.EXPECT().
		Find(ctx, gomock.Any(), models.ListOptions{}).
		DoAndReturn(func(_ context.Context, filter models.IncidentFilter, _ models.ListOptions) ([]*models.Incident, error) {
			require.NotNil(t, filter.ReportedBy)
			assert.Equal(t, principal.UserID, *filter.ReportedBy)
			return []*models.Incident{own}, nil
		}).Times(1)

	// Действие
	incidents, err := service.List(ctx, principal)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, []*models.Incident{own}, incidents)
}

func TestList_UnscopedForAdmin(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()

	repoMock.EXPECT().Find(ctx, models.IncidentFilter{}, models.ListOptions{}).Return([]*models.Incident{}, nil).Times(1)

	incidents, err := service.List(ctx, adminPrincipal())

	require.NoError(t, err)
	assert.Empty(t, incidents)
}

func TestList_Anonymous(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	repoMock.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.List(context.Background(), nil)

	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestList_RepositoryError(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	storeErr := fmt.Errorf("failed to list incidents: %w", models.ErrStoreFailure)

	repoMock.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storeErr).Times(1)

	_, err := service.List(context.Background(), adminPrincipal())

	assert.ErrorIs(t, err, models.ErrStoreFailure)
}

func TestUpdate_AdminKeepsImmutableFields(t *testing.T) {
	// Подготовка
	service, repoMock, webhookMock := newTestIncidentService(t)
	ctx := context.Background()
	reporter := uuid.New()
	created := time.Now().Add(-time.Hour)
	id := uuid.New()
	existing := &models.Incident{ID: id, Status: models.IncidentStatusActive, ReportedBy: &reporter, Timestamp: created}
	resolved := models.IncidentStatusResolved
	patch := models.IncidentPatch{Status: &resolved}
	updated := &models.Incident{ID: id, Status: resolved, ReportedBy: &reporter, Timestamp: created}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, id).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(ctx, id, patch).Return(updated, nil).Times(1)
	webhookMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	// Действие
	result, err := service.Update(ctx, adminPrincipal(), id, patch)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, resolved, result.Status)
	assert.Equal(t, reporter, *result.ReportedBy)
	assert.Equal(t, created, result.Timestamp)
}

func TestUpdate_ReopenResolved(t *testing.T) {
	service, repoMock, webhookMock := newTestIncidentService(t)
	ctx := context.Background()
	principal := userPrincipal()
	id := uuid.New()
	active := models.IncidentStatusActive
	existing := &models.Incident{ID: id, Status: models.IncidentStatusResolved, ReportedBy: &principal.UserID}

	repoMock.EXPECT().GetByID(ctx, id).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(ctx, id, models.IncidentPatch{Status: &active}).
		Return(&models.Incident{ID: id, Status: active, ReportedBy: &principal.UserID}, nil).Times(1)
	webhookMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	result, err := service.Update(ctx, principal, id, models.IncidentPatch{Status: &active})

	require.NoError(t, err)
	assert.Equal(t, active, result.Status)
}

func TestUpdate_ForeignIncidentForbidden(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	owner := uuid.New()
	status := "resolved"

	repoMock.EXPECT().GetByID(ctx, id).Return(&models.Incident{ID: id, ReportedBy: &owner}, nil).Times(1)
	repoMock.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Update(ctx, userPrincipal(), id, models.IncidentPatch{Status: &status})

	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestUpdate_NotFound(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	status := "resolved"

	repoMock.EXPECT().GetByID(ctx, id).Return(nil, fmt.Errorf("failed to get incident: %w", models.ErrNotFound)).Times(1)

	_, err := service.Update(ctx, adminPrincipal(), id, models.IncidentPatch{Status: &status})

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdate_EmptyPatchReturnsCurrent(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	id := uuid.New()
	existing := &models.Incident{ID: id, Status: models.IncidentStatusActive}

	repoMock.EXPECT().GetByID(ctx, id).Return(existing, nil).Times(1)
	repoMock.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := service.Update(ctx, adminPrincipal(), id, models.IncidentPatch{})

	require.NoError(t, err)
	assert.Equal(t, existing, result)
}

func TestGet_Scoping(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	principal := userPrincipal()
	ownID, foreignID := uuid.New(), uuid.New()
	other := uuid.New()

	repoMock.EXPECT().GetByID(ctx, ownID).Return(&models.Incident{ID: ownID, ReportedBy: &principal.UserID}, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, foreignID).Return(&models.Incident{ID: foreignID, ReportedBy: &other}, nil).Times(1)

	own, err := service.Get(ctx, principal, ownID)
	require.NoError(t, err)
	assert.Equal(t, ownID, own.ID)

	_, err = service.Get(ctx, principal, foreignID)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestListAll(t *testing.T) {
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	rows := []*models.IncidentWithReporter{{
		Incident: models.Incident{ID: uuid.New()},
		Reporter: &models.Reporter{ID: uuid.New(), Name: "Jane", Email: "jane@test.com"},
	}}

	repoMock.EXPECT().FindWithReporters(ctx, models.ListOptions{}).Return(rows, nil).Times(1)

	result, err := service.ListAll(ctx, adminPrincipal())
	require.NoError(t, err)
	assert.Equal(t, rows, result)

	_, err = service.ListAll(ctx, userPrincipal())
	assert.ErrorIs(t, err, models.ErrForbidden)
}
