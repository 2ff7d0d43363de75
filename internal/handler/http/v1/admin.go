package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/disaster_response_system/internal/models"
)

// @Summary Admin summary
// @Description Counts of users, incidents by status, resources and active alerts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	log := h.logger.WithField("method", "getSummary")

	summary, err := h.admin.Summary(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSummaryResponse(summary))
}

// @Summary List all incidents
// @Description All incidents with reporter name and email, most recent first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AdminIncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /admin/incidents [get]
func (h *Handler) listAllIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listAllIncidents")

	incidents, err := h.incidents.ListAll(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAdminIncidentResponses(incidents))
}

// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /admin/users [get]
func (h *Handler) listUsers(c *gin.Context) {
	log := h.logger.WithField("method", "listUsers")

	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToUserResponses(users))
}

// @Summary Change user role
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param role body SetRoleRequest true "New role"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string]string "Invalid user ID or request body"
// @Failure 404 {object} map[string]string "User not found"
// @Router /admin/users/{id}/role [put]
func (h *Handler) setUserRole(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "setUserRole").WithField("id", id)

	var input SetRoleRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	user, err := h.users.SetRole(c.Request.Context(), id, models.Role(input.Role))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Delete user
// @Tags Admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 404 {object} map[string]string "User not found"
// @Router /admin/users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c, "user")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteUser").WithField("id", id)

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List resources
// @Tags Resources
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ResourceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /admin/resources [get]
func (h *Handler) listResources(c *gin.Context) {
	log := h.logger.WithField("method", "listResources")

	resources, err := h.resources.List(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToResourceResponses(resources))
}

// @Summary Create resource
// @Description available defaults to total when omitted; 0 <= available <= total
// @Tags Resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource body CreateResourceRequest true "Resource"
// @Success 201 {object} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Resource type already exists"
// @Router /admin/resources [post]
func (h *Handler) createResource(c *gin.Context) {
	var input CreateResourceRequest
	log := h.logger.WithField("method", "createResource")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	resource, err := h.resources.Create(c.Request.Context(), DTOToNewResource(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToResourceResponse(resource))
}

// @Summary Update resource
// @Tags Resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param resource body UpdateResourceRequest true "Resource patch"
// @Success 200 {object} ResourceResponse
// @Failure 400 {object} map[string]string "Invalid resource ID or request body"
// @Failure 404 {object} map[string]string "Resource not found"
// @Router /admin/resources/{id} [put]
func (h *Handler) updateResource(c *gin.Context) {
	id, ok := parseID(c, "resource")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateResource").WithField("id", id)

	var input UpdateResourceRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	resource, err := h.resources.Update(c.Request.Context(), id, DTOToResourcePatch(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToResourceResponse(resource))
}

// @Summary Delete resource
// @Tags Resources
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Resource not found"
// @Router /admin/resources/{id} [delete]
func (h *Handler) deleteResource(c *gin.Context) {
	id, ok := parseID(c, "resource")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteResource").WithField("id", id)

	if err := h.resources.Delete(c.Request.Context(), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reserve resource units
// @Tags Resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdjustResourceRequest true "Type and units"
// @Success 200 {object} ResourceResponse
// @Failure 404 {object} map[string]string "Resource type not found"
// @Failure 409 {object} map[string]string "Insufficient resources"
// @Router /admin/resources/reserve [post]
func (h *Handler) reserveResource(c *gin.Context) {
	var input AdjustResourceRequest
	log := h.logger.WithField("method", "reserveResource")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	resource, err := h.resources.Reserve(c.Request.Context(), input.Type, input.Units)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToResourceResponse(resource))
}

// @Summary Release resource units
// @Tags Resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AdjustResourceRequest true "Type and units"
// @Success 200 {object} ResourceResponse
// @Failure 404 {object} map[string]string "Resource type not found"
// @Failure 409 {object} map[string]string "Release would exceed total"
// @Router /admin/resources/release [post]
func (h *Handler) releaseResource(c *gin.Context) {
	var input AdjustResourceRequest
	log := h.logger.WithField("method", "releaseResource")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	resource, err := h.resources.Release(c.Request.Context(), input.Type, input.Units)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToResourceResponse(resource))
}

// @Summary List alerts
// @Description All alerts regardless of status, most recent first
// @Tags Alerts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AlertResponse
// @Router /admin/alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	log := h.logger.WithField("method", "listAlerts")

	alerts, err := h.alerts.List(c.Request.Context(), models.AlertFilter{})
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToAlertResponses(alerts))
}

// @Summary Create alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param alert body CreateAlertRequest true "Alert"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /admin/alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert := DTOToAlertModel(input)
	if err := h.alerts.Create(c.Request.Context(), alert); err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(alert))
}

// @Summary Update alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Param alert body UpdateAlertRequest true "Alert patch"
// @Success 200 {object} AlertResponse
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /admin/alerts/{id} [put]
func (h *Handler) updateAlert(c *gin.Context) {
	id, ok := parseID(c, "alert")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateAlert").WithField("id", id)

	var input UpdateAlertRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert, err := h.alerts.Update(c.Request.Context(), id, DTOToAlertPatch(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Delete alert
// @Tags Alerts
// @Security BearerAuth
// @Param id path string true "Alert ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /admin/alerts/{id} [delete]
func (h *Handler) deleteAlert(c *gin.Context) {
	id, ok := parseID(c, "alert")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteAlert").WithField("id", id)

	if err := h.alerts.Delete(c.Request.Context(), id); err != nil {
		respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List zones
// @Tags Zones
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ZoneResponse
// @Router /admin/zones [get]
func (h *Handler) listZones(c *gin.Context) {
	log := h.logger.WithField("method", "listZones")

	zones, err := h.zones.List(c.Request.Context())
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToZoneResponses(zones))
}

// @Summary Update zone status
// @Tags Zones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Zone ID"
// @Param zone body UpdateZoneRequest true "New status"
// @Success 200 {object} ZoneResponse
// @Failure 400 {object} map[string]string "Invalid zone ID or status"
// @Failure 404 {object} map[string]string "Zone not found"
// @Router /admin/zones/{id} [put]
func (h *Handler) updateZone(c *gin.Context) {
	id, ok := parseID(c, "zone")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateZone").WithField("id", id)

	var input UpdateZoneRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	zone, err := h.zones.UpdateStatus(c.Request.Context(), id, models.ZoneStatus(input.Status))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToZoneResponse(zone))
}
