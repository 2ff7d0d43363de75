package v1

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest DTO для регистрации
// @Description DTO для регистрации
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest DTO для входа
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse DTO пользователя без хэша пароля
// @Description DTO пользователя
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse DTO ответа на регистрацию и вход
// @Description DTO ответа на регистрацию и вход
type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// ReportIncidentRequest DTO для сообщения об инциденте
// @Description DTO для сообщения об инциденте
type ReportIncidentRequest struct {
	Type        string `json:"type" validate:"required,max=100"`
	Location    string `json:"location" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// UpdateIncidentRequest DTO для частичного обновления инцидента
// @Description DTO для частичного обновления инцидента
type UpdateIncidentRequest struct {
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	Location    *string `json:"location,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,min=1,max=50"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	ReportedBy  *uuid.UUID `json:"reportedBy"`
	Timestamp   time.Time  `json:"timestamp"`
}

// ReportIncidentResponse DTO ответа на сообщение об инциденте
// @Description DTO ответа на сообщение об инциденте
type ReportIncidentResponse struct {
	Success    bool             `json:"success"`
	IncidentID uuid.UUID        `json:"incidentId"`
	Incident   IncidentResponse `json:"incident"`
}

// ReporterResponse DTO автора инцидента
type ReporterResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AdminIncidentResponse DTO инцидента с данными автора
// @Description DTO инцидента с данными автора
type AdminIncidentResponse struct {
	IncidentResponse
	Reporter *ReporterResponse `json:"reporter"`
}

// ResourceResponse DTO ресурса. ID отсутствует у нулевой заглушки
// @Description DTO ресурса
type ResourceResponse struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Type      string     `json:"type"`
	Available int        `json:"available"`
	Total     int        `json:"total"`
	Location  string     `json:"location,omitempty"`
}

// CreateResourceRequest DTO для создания ресурса
// @Description DTO для создания ресурса
type CreateResourceRequest struct {
	Type      string `json:"type" validate:"required,max=100"`
	Available *int   `json:"available,omitempty" validate:"omitempty,gte=0"`
	Total     *int   `json:"total" validate:"required,gte=0"`
	Location  string `json:"location,omitempty" validate:"max=255"`
}

// UpdateResourceRequest DTO для обновления ресурса
// @Description DTO для обновления ресурса
type UpdateResourceRequest struct {
	Type      *string `json:"type,omitempty" validate:"omitempty,min=1,max=100"`
	Available *int    `json:"available,omitempty" validate:"omitempty,gte=0"`
	Total     *int    `json:"total,omitempty" validate:"omitempty,gte=0"`
	Location  *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

// AdjustResourceRequest DTO для резервирования и возврата единиц
// @Description DTO для резервирования и возврата единиц
type AdjustResourceRequest struct {
	Type  string `json:"type" validate:"required"`
	Units int    `json:"units" validate:"required,gt=0"`
}

// AlertResponse DTO оповещения
// @Description DTO оповещения
type AlertResponse struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Zone      string    `json:"zone"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateAlertRequest DTO для создания оповещения
// @Description DTO для создания оповещения
type CreateAlertRequest struct {
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"max=100"`
	Zone    string `json:"zone" validate:"max=100"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=active resolved"`
}

// UpdateAlertRequest DTO для обновления оповещения
// @Description DTO для обновления оповещения
type UpdateAlertRequest struct {
	Message *string `json:"message,omitempty" validate:"omitempty,min=1"`
	Type    *string `json:"type,omitempty" validate:"omitempty,max=100"`
	Zone    *string `json:"zone,omitempty" validate:"omitempty,max=100"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=active resolved"`
}

// ZoneResponse DTO зоны
// @Description DTO зоны
type ZoneResponse struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
	Name     string    `json:"name"`
	Status   string    `json:"status"`
}

// UpdateZoneRequest DTO для смены статуса зоны
// @Description DTO для смены статуса зоны
type UpdateZoneRequest struct {
	Status string `json:"status" validate:"required,oneof=safe watch evacuate"`
}

// SetRoleRequest DTO для смены роли пользователя
// @Description DTO для смены роли пользователя
type SetRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// RecentUpdateResponse DTO записи ленты
type RecentUpdateResponse struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardResourcesResponse DTO ресурсов по каноническим типам
type DashboardResourcesResponse struct {
	Ambulances  ResourceResponse `json:"ambulances"`
	FireTrucks  ResourceResponse `json:"fireTrucks"`
	RescueTeams ResourceResponse `json:"rescueTeams"`
	Shelters    ResourceResponse `json:"shelters"`
}

// DashboardResponse DTO сводного снимка
// @Description DTO сводного снимка
type DashboardResponse struct {
	Alerts          []AlertResponse            `json:"alerts"`
	Zones           []ZoneResponse             `json:"zones"`
	Resources       DashboardResourcesResponse `json:"resources"`
	ActiveIncidents int                        `json:"activeIncidents"`
	RecentUpdates   []RecentUpdateResponse     `json:"recentUpdates"`
}

// SummaryResponse DTO административной сводки
// @Description DTO административной сводки
type SummaryResponse struct {
	TotalUsers        int `json:"totalUsers"`
	TotalIncidents    int `json:"totalIncidents"`
	ActiveIncidents   int `json:"activeIncidents"`
	ResolvedIncidents int `json:"resolvedIncidents"`
	TotalResources    int `json:"totalResources"`
	TotalAlerts       int `json:"totalAlerts"`
}
