package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/me", h.authenticate(false), h.me)
	}

	// Анонимный доступ к панели регулируется конфигурацией
	api.GET("/dashboard", h.authenticate(!h.cfg.RequireAuthForDashboard), h.getDashboard)

	incidents := api.Group("/incidents", h.authenticate(false))
	{
		incidents.POST("", h.rateLimitReports(), h.reportIncident)
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.PUT("/:id", h.updateIncident)
	}

	admin := api.Group("/admin", h.authenticate(false))
	{
		admin.GET("/summary", h.requireCapability(h.authorizer.CanViewSummary), h.getSummary)
		admin.GET("/incidents", h.requireCapability(h.authorizer.CanViewAllIncidents), h.listAllIncidents)

		users := admin.Group("/users", h.requireCapability(h.authorizer.CanManageUsers))
		{
			users.GET("", h.listUsers)
			users.PUT("/:id/role", h.setUserRole)
			users.DELETE("/:id", h.deleteUser)
		}

		resources := admin.Group("/resources", h.requireCapability(h.authorizer.CanManageResources))
		{
			resources.GET("", h.listResources)
			resources.POST("", h.createResource)
			resources.POST("/reserve", h.reserveResource)
			resources.POST("/release", h.releaseResource)
			resources.PUT("/:id", h.updateResource)
			resources.DELETE("/:id", h.deleteResource)
		}

		alerts := admin.Group("/alerts", h.requireCapability(h.authorizer.CanManageAlerts))
		{
			alerts.GET("", h.listAlerts)
			alerts.POST("", h.createAlert)
			alerts.PUT("/:id", h.updateAlert)
			alerts.DELETE("/:id", h.deleteAlert)
		}

		zones := admin.Group("/zones", h.requireCapability(h.authorizer.CanManageZones))
		{
			zones.GET("", h.listZones)
			zones.PUT("/:id", h.updateZone)
		}
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
