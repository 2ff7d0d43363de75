package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAlertService(t *testing.T) (AlertService, *mocks.MockAlertRepository) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAlertRepository(ctrl)
	return NewAlertService(repoMock, newTestLogger()), repoMock
}

func TestAlertCreate_DefaultsToActive(t *testing.T) {
	service, repoMock := newTestAlertService(t)
	alert := &models.Alert{Message: "Storm", Type: "weather", Zone: "Zone 1"}

	repoMock.EXPECT().Create(gomock.Any(), alert).Return(nil).Times(1)

	err := service.Create(context.Background(), alert)

	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusActive, alert.Status)
}

func TestAlertCreate_Validation(t *testing.T) {
	service, repoMock := newTestAlertService(t)
	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := service.Create(context.Background(), &models.Alert{Type: "weather"})
	assert.ErrorIs(t, err, models.ErrValidation)

	err = service.Create(context.Background(), &models.Alert{Message: "Storm", Status: "pending"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAlertUpdate(t *testing.T) {
	service, repoMock := newTestAlertService(t)
	ctx := context.Background()
	id := uuid.New()
	resolved := models.AlertStatusResolved
	bogus := "closed"

	repoMock.EXPECT().Update(ctx, id, models.AlertPatch{Status: &resolved}).
		Return(&models.Alert{ID: id, Status: resolved}, nil).Times(1)
	repoMock.EXPECT().Update(ctx, uuid.Nil, gomock.Any()).Return(nil, models.ErrNotFound).Times(1)

	alert, err := service.Update(ctx, id, models.AlertPatch{Status: &resolved})
	require.NoError(t, err)
	assert.Equal(t, resolved, alert.Status)

	_, err = service.Update(ctx, id, models.AlertPatch{Status: &bogus})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = service.Update(ctx, uuid.Nil, models.AlertPatch{Status: &resolved})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAlertListAndDelete(t *testing.T) {
	service, repoMock := newTestAlertService(t)
	ctx := context.Background()
	id := uuid.New()
	alerts := []*models.Alert{{ID: id, Message: "Storm"}}

	repoMock.EXPECT().List(ctx, models.AlertFilter{}).Return(alerts, nil).Times(1)
	repoMock.EXPECT().Delete(ctx, id).Return(nil).Times(1)

	result, err := service.List(ctx, models.AlertFilter{})
	require.NoError(t, err)
	assert.Equal(t, alerts, result)

	assert.NoError(t, service.Delete(ctx, id))
}
