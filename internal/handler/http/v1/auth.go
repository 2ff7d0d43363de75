package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/disaster_response_system/internal/models"
)

const principalKey = "principal"

// bearerToken достает токен из заголовка Authorization: Bearer
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", true
	}
	return parts[1], true
}

func principalFrom(c *gin.Context) *models.Principal {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	principal, _ := value.(*models.Principal)
	return principal
}

// authenticate восстанавливает принципала по токену.
// При optional запрос без заголовка проходит анонимно, но переданный токен все равно проверяется
func (h *Handler) authenticate(optional bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := h.logger.WithField("method", "authenticate")

		token, present := bearerToken(c)
		if !present {
			if optional {
				c.Next()
				return
			}
			log.Warn("Authorization token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token is required"})
			return
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header format must be Bearer {token}"})
			return
		}

		principal, err := h.auth.ResolvePrincipal(c.Request.Context(), token)
		if err != nil {
			respondError(c, log, err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// requireCapability пропускает только принципалов с правом
func (h *Handler) requireCapability(check func(*models.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := principalFrom(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !check(principal) {
			h.logger.WithField("method", "requireCapability").
				WithField("user_id", principal.UserID).
				Warn("Access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// rateLimitReports ограничивает частоту сообщений об инцидентах на пользователя.
// При недоступном Redis запрос пропускается
func (h *Handler) rateLimitReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := principalFrom(c)
		if principal == nil || h.limiter == nil {
			c.Next()
			return
		}
		log := h.logger.WithField("method", "rateLimitReports").WithField("user_id", principal.UserID)

		result, err := h.limiter.Allow(c.Request.Context(), "reports:"+principal.UserID.String())
		if err != nil {
			log.WithError(err).Error("Rate limiter unavailable")
			c.Next()
			return
		}
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			log.Warn("Report rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}
		c.Next()
	}
}

// @Summary Register a new user
// @Description Create a user account with role "user" and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	session, err := h.auth.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{Success: true, Token: session.Token, User: ModelToUserResponse(session.User)})
}

// @Summary Log in
// @Description Exchange email and password for a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	session, err := h.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Success: true, Token: session.Token, User: ModelToUserResponse(session.User)})
}

// @Summary Current user
// @Description Get the account of the authenticated user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	log := h.logger.WithField("method", "me")

	user, err := h.auth.Me(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToUserResponse(user))
}
