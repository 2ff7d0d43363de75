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

func TestZoneUpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockZoneRepository(ctrl)
	service := NewZoneService(repoMock, newTestLogger())
	ctx := context.Background()
	id := uuid.New()

	repoMock.EXPECT().UpdateStatus(ctx, id, models.ZoneEvacuate).
		Return(&models.Zone{ID: id, Name: "Zone 1", Status: models.ZoneEvacuate}, nil).Times(1)

	zone, err := service.UpdateStatus(ctx, id, models.ZoneEvacuate)
	require.NoError(t, err)
	assert.Equal(t, models.ZoneEvacuate, zone.Status)

	_, err = service.UpdateStatus(ctx, id, models.ZoneStatus("flooded"))
	assert.ErrorIs(t, err, models.ErrValidation)
}
