package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/sirupsen/logrus"
)

// statusFor сопоставляет ошибку предметной области со статусом и сообщением ответа
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, "validation failed"
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, models.ErrInsufficientResources):
		return http.StatusConflict, "insufficient resources"
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, "already exists"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondError пишет ответ с ошибкой. Текст ошибки хранилища в ответ не попадает
func respondError(c *gin.Context, log *logrus.Entry, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
