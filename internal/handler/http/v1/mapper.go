package v1

import (
	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/models"
)

func ModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

func ModelsToUserResponses(users []*models.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ModelToUserResponse(user)
	}
	return responses
}

// DTOToIncidentModel преобразует DTO сообщения в доменную модель.
// Статус и время создания назначает сервис
func DTOToIncidentModel(dto ReportIncidentRequest) *models.Incident {
	return &models.Incident{
		Type:        dto.Type,
		Location:    dto.Location,
		Description: dto.Description,
		Priority:    dto.Priority,
	}
}

func DTOToIncidentPatch(dto UpdateIncidentRequest) models.IncidentPatch {
	return models.IncidentPatch{
		Type:        dto.Type,
		Location:    dto.Location,
		Description: dto.Description,
		Status:      dto.Status,
		Priority:    dto.Priority,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) IncidentResponse {
	return IncidentResponse{
		ID:          model.ID,
		Type:        model.Type,
		Location:    model.Location,
		Description: model.Description,
		Status:      model.Status,
		Priority:    model.Priority,
		ReportedBy:  model.ReportedBy,
		Timestamp:   model.Timestamp,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(incidents []*models.Incident) []IncidentResponse {
	responses := make([]IncidentResponse, len(incidents))
	for i, model := range incidents {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelsToAdminIncidentResponses(incidents []*models.IncidentWithReporter) []AdminIncidentResponse {
	responses := make([]AdminIncidentResponse, len(incidents))
	for i, model := range incidents {
		responses[i] = AdminIncidentResponse{IncidentResponse: ModelToIncidentResponse(&model.Incident)}
		if model.Reporter != nil {
			responses[i].Reporter = &ReporterResponse{
				ID:    model.Reporter.ID,
				Name:  model.Reporter.Name,
				Email: model.Reporter.Email,
			}
		}
	}
	return responses
}

func ModelToResourceResponse(model *models.Resource) ResourceResponse {
	resp := ResourceResponse{
		Type:      model.Type,
		Available: model.Available,
		Total:     model.Total,
		Location:  model.Location,
	}
	if model.ID != uuid.Nil {
		id := model.ID
		resp.ID = &id
	}
	return resp
}

func ModelsToResourceResponses(resources []*models.Resource) []ResourceResponse {
	responses := make([]ResourceResponse, len(resources))
	for i, model := range resources {
		responses[i] = ModelToResourceResponse(model)
	}
	return responses
}

func DTOToNewResource(dto CreateResourceRequest) models.NewResource {
	return models.NewResource{
		Type:      dto.Type,
		Available: dto.Available,
		Total:     dto.Total,
		Location:  dto.Location,
	}
}

func DTOToResourcePatch(dto UpdateResourceRequest) models.ResourcePatch {
	return models.ResourcePatch{
		Type:      dto.Type,
		Available: dto.Available,
		Total:     dto.Total,
		Location:  dto.Location,
	}
}

func ModelToAlertResponse(model *models.Alert) AlertResponse {
	return AlertResponse{
		ID:        model.ID,
		Message:   model.Message,
		Type:      model.Type,
		Zone:      model.Zone,
		Status:    model.Status,
		Timestamp: model.Timestamp,
	}
}

func ModelsToAlertResponses(alerts []*models.Alert) []AlertResponse {
	responses := make([]AlertResponse, len(alerts))
	for i, model := range alerts {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}

func DTOToAlertModel(dto CreateAlertRequest) *models.Alert {
	return &models.Alert{
		Message: dto.Message,
		Type:    dto.Type,
		Zone:    dto.Zone,
		Status:  dto.Status,
	}
}

func DTOToAlertPatch(dto UpdateAlertRequest) models.AlertPatch {
	return models.AlertPatch{
		Message: dto.Message,
		Type:    dto.Type,
		Zone:    dto.Zone,
		Status:  dto.Status,
	}
}

func ModelToZoneResponse(model *models.Zone) ZoneResponse {
	return ZoneResponse{
		ID:       model.ID,
		Position: model.Position,
		Name:     model.Name,
		Status:   string(model.Status),
	}
}

func ModelsToZoneResponses(zones []*models.Zone) []ZoneResponse {
	responses := make([]ZoneResponse, len(zones))
	for i, model := range zones {
		responses[i] = ModelToZoneResponse(model)
	}
	return responses
}

func ModelToDashboardResponse(model *models.Dashboard) DashboardResponse {
	updates := make([]RecentUpdateResponse, len(model.RecentUpdates))
	for i, u := range model.RecentUpdates {
		updates[i] = RecentUpdateResponse{ID: u.ID, Message: u.Message, Timestamp: u.Timestamp}
	}
	return DashboardResponse{
		Alerts: ModelsToAlertResponses(model.Alerts),
		Zones:  ModelsToZoneResponses(model.Zones),
		Resources: DashboardResourcesResponse{
			Ambulances:  ModelToResourceResponse(model.Resources.Ambulances),
			FireTrucks:  ModelToResourceResponse(model.Resources.FireTrucks),
			RescueTeams: ModelToResourceResponse(model.Resources.RescueTeams),
			Shelters:    ModelToResourceResponse(model.Resources.Shelters),
		},
		ActiveIncidents: model.ActiveIncidents,
		RecentUpdates:   updates,
	}
}

func ModelToSummaryResponse(model *models.AdminSummary) SummaryResponse {
	return SummaryResponse{
		TotalUsers:        model.TotalUsers,
		TotalIncidents:    model.TotalIncidents,
		ActiveIncidents:   model.ActiveIncidents,
		ResolvedIncidents: model.ResolvedIncidents,
		TotalResources:    model.TotalResources,
		TotalAlerts:       model.TotalAlerts,
	}
}
