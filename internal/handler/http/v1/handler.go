package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/authz"
	"github.com/shenikar/disaster_response_system/internal/config"
	"github.com/shenikar/disaster_response_system/internal/ratelimit"
	"github.com/shenikar/disaster_response_system/internal/service"
	"github.com/sirupsen/logrus"
)

// Services - набор сервисов, которые обслуживает транспорт
type Services struct {
	Auth      service.AuthService
	Incidents service.IncidentService
	Resources service.ResourceService
	Alerts    service.AlertService
	Zones     service.ZoneService
	Users     service.UserService
	Dashboard service.DashboardService
	Admin     service.AdminService
}

type Handler struct {
	auth       service.AuthService
	incidents  service.IncidentService
	resources  service.ResourceService
	alerts     service.AlertService
	zones      service.ZoneService
	users      service.UserService
	dashboard  service.DashboardService
	admin      service.AdminService
	authorizer *authz.Authorizer
	limiter    ratelimit.Limiter
	logger     *logrus.Logger
	validate   *validator.Validate
	cfg        *config.Config
}

func NewHandler(services Services, authorizer *authz.Authorizer, limiter ratelimit.Limiter, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		auth:       services.Auth,
		incidents:  services.Incidents,
		resources:  services.Resources,
		alerts:     services.Alerts,
		zones:      services.Zones,
		users:      services.Users,
		dashboard:  services.Dashboard,
		admin:      services.Admin,
		authorizer: authorizer,
		limiter:    limiter,
		logger:     logger,
		validate:   validator.New(),
		cfg:        cfg,
	}
}

// bindAndValidate разбирает JSON и проверяет теги validate. При ошибке ответ уже записан
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + what + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Situational dashboard
// @Description Active alerts, zones, resources by canonical type, active incident count and the five most recent incidents. Anonymous access depends on REQUIRE_AUTH_FOR_DASHBOARD.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "getDashboard")

	dashboard, err := h.dashboard.Get(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDashboardResponse(dashboard))
}

// @Summary Report an incident
// @Description Report a new incident. Status is always "active", priority defaults to "medium".
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body ReportIncidentRequest true "Incident report"
// @Success 201 {object} ReportIncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]interface{} "Rate limit exceeded"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) reportIncident(c *gin.Context) {
	var input ReportIncidentRequest
	log := h.logger.WithField("method", "reportIncident")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToIncidentModel(input)
	if err := h.incidents.Report(c.Request.Context(), principalFrom(c), model); err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ReportIncidentResponse{
		Success:    true,
		IncidentID: model.ID,
		Incident:   ModelToIncidentResponse(model),
	})
}

// @Summary List incidents
// @Description Users see the incidents they reported, admins see all. Most recent first.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	incidents, err := h.incidents.List(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Incident belongs to another user"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidents.Get(c.Request.Context(), principalFrom(c), id)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Update an incident
// @Description Partial update. Any status string is accepted; reportedBy and timestamp are immutable.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param incident body UpdateIncidentRequest true "Incident patch"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Incident belongs to another user"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [put]
func (h *Handler) updateIncident(c *gin.Context) {
	id, ok := parseID(c, "incident")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateIncident").WithField("id", id)

	var input UpdateIncidentRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	incident, err := h.incidents.Update(c.Request.Context(), principalFrom(c), id, DTOToIncidentPatch(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
