package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/disaster_response_system/internal/authz"
	"github.com/shenikar/disaster_response_system/internal/config"
	"github.com/shenikar/disaster_response_system/internal/models"
	"github.com/shenikar/disaster_response_system/internal/ratelimit"
	ratelimit_mocks "github.com/shenikar/disaster_response_system/internal/ratelimit/mocks"
	"github.com/shenikar/disaster_response_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

type testDeps struct {
	router    *gin.Engine
	auth      *mocks.MockAuthService
	incidents *mocks.MockIncidentService
	resources *mocks.MockResourceService
	alerts    *mocks.MockAlertService
	zones     *mocks.MockZoneService
	users     *mocks.MockUserService
	dashboard *mocks.MockDashboardService
	admin     *mocks.MockAdminService
	limiter   *ratelimit_mocks.MockLimiter
	user      *models.Principal
	adminUser *models.Principal
}

// newTestHandler создает Handler с мокированными сервисами и настоящей политикой доступа
func newTestHandler(t *testing.T, cfg *config.Config) *testDeps {
	ctrl := gomock.NewController(t)
	d := &testDeps{
		auth:      mocks.NewMockAuthService(ctrl),
		incidents: mocks.NewMockIncidentService(ctrl),
		resources: mocks.NewMockResourceService(ctrl),
		alerts:    mocks.NewMockAlertService(ctrl),
		zones:     mocks.NewMockZoneService(ctrl),
		users:     mocks.NewMockUserService(ctrl),
		dashboard: mocks.NewMockDashboardService(ctrl),
		admin:     mocks.NewMockAdminService(ctrl),
		limiter:   ratelimit_mocks.NewMockLimiter(ctrl),
		user:      &models.Principal{UserID: uuid.New(), Email: "user@example.com", Role: models.RoleUser},
		adminUser: &models.Principal{UserID: uuid.New(), Email: "admin@example.com", Role: models.RoleAdmin},
	}

	d.auth.EXPECT().ResolvePrincipal(gomock.Any(), userToken).Return(d.user, nil).AnyTimes()
	d.auth.EXPECT().ResolvePrincipal(gomock.Any(), adminToken).Return(d.adminUser, nil).AnyTimes()

	authorizer, err := authz.NewAuthorizer()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	if cfg == nil {
		cfg = &config.Config{}
	}

	handler := NewHandler(Services{
		Auth:      d.auth,
		Incidents: d.incidents,
		Resources: d.resources,
		Alerts:    d.alerts,
		Zones:     d.zones,
		Users:     d.users,
		Dashboard: d.dashboard,
		Admin:     d.admin,
	}, authorizer, d.limiter, logger, cfg)

	gin.SetMode(gin.TestMode)
	d.router = gin.New()
	handler.RegisterRoutes(d.router.Group("/api/v1"))

	return d
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func allowAll(d *testDeps) {
	d.limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(ratelimit.Result{Allowed: true}, nil).AnyTimes()
}

func TestRegister_Success(t *testing.T) {
	d := newTestHandler(t, nil)
	user := &models.User{ID: uuid.New(), Name: "Jane", Email: "jane@example.com", Role: models.RoleUser}

	d.auth.EXPECT().
		Register(gomock.Any(), "Jane", "jane@example.com", "secret1").
		Return(&models.Session{User: user, Token: "issued"}, nil).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/auth/register",
		jsonBody(t, RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1"}), "")

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "issued", resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "user", resp.User.Role)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegister_ValidationError(t *testing.T) {
	d := newTestHandler(t, nil)

	d.auth.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(d.router, "POST", "/api/v1/auth/register",
		jsonBody(t, RegisterRequest{Name: "Jane", Email: "not-an-email", Password: "secret1"}), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Email' failed on the 'email' tag")
}

func TestRegister_EmailTaken(t *testing.T) {
	d := newTestHandler(t, nil)

	d.auth.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: register: %w", models.ErrConflict)).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/auth/register",
		jsonBody(t, RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret1"}), "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	d := newTestHandler(t, nil)

	d.auth.EXPECT().
		Login(gomock.Any(), "jane@example.com", "wrong").
		Return(nil, models.ErrInvalidCredentials).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/auth/login",
		jsonBody(t, LoginRequest{Email: "jane@example.com", Password: "wrong"}), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestMe_RequiresToken(t *testing.T) {
	d := newTestHandler(t, nil)

	w := makeRequest(d.router, "GET", "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	d.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer")
}

func TestMe_Success(t *testing.T) {
	d := newTestHandler(t, nil)
	user := &models.User{ID: d.user.UserID, Name: "Jane", Email: d.user.Email, Role: models.RoleUser}

	d.auth.EXPECT().Me(gomock.Any(), d.user).Return(user, nil).Times(1)

	w := makeRequest(d.router, "GET", "/api/v1/auth/me", nil, userToken)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.ID)
}

func TestReportIncident_Success(t *testing.T) {
	d := newTestHandler(t, nil)
	allowAll(d)
	incidentID := uuid.New()
	now := time.Now().UTC()

	d.incidents.EXPECT().
		Report(gomock.Any(), d.user, gomock.Any()).
		DoAndReturn(func(_ context.Context, p *models.Principal, inc *models.Incident) error {
			assert.Equal(t, "fire", inc.Type)
			assert.Equal(t, "Main St", inc.Location)
			inc.ID = incidentID
			inc.Status = models.IncidentStatusActive
			inc.Priority = models.PriorityMedium
			inc.ReportedBy = &p.UserID
			inc.Timestamp = now
			return nil
		}).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/incidents",
		jsonBody(t, ReportIncidentRequest{Type: "fire", Location: "Main St"}), userToken)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ReportIncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, incidentID, resp.IncidentID)
	assert.Equal(t, "active", resp.Incident.Status)
	assert.Equal(t, "medium", resp.Incident.Priority)
	assert.Contains(t, w.Body.String(), `"incidentId"`)
	assert.Contains(t, w.Body.String(), `"reportedBy"`)
}

func TestReportIncident_InvalidJSON(t *testing.T) {
	d := newTestHandler(t, nil)
	allowAll(d)

	d.incidents.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(d.router, "POST", "/api/v1/incidents", bytes.NewBufferString(`{"type": "fire"`), userToken)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestReportIncident_ValidationError(t *testing.T) {
	d := newTestHandler(t, nil)
	allowAll(d)

	d.incidents.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(d.router, "POST", "/api/v1/incidents",
		jsonBody(t, ReportIncidentRequest{Location: "Main St"}), userToken)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Type' failed on the 'required' tag")
}

func TestReportIncident_Unauthenticated(t *testing.T) {
	d := newTestHandler(t, nil)

	d.incidents.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(d.router, "POST", "/api/v1/incidents",
		jsonBody(t, ReportIncidentRequest{Type: "fire", Location: "Main St"}), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReportIncident_RateLimited(t *testing.T) {
	d := newTestHandler(t, nil)

	d.limiter.EXPECT().
		Allow(gomock.Any(), "reports:"+d.user.UserID.String()).
		Return(ratelimit.Result{Allowed: false, RetryAfter: 42 * time.Second}, nil).
		Times(1)
	d.incidents.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(d.router, "POST", "/api/v1/incidents",
		jsonBody(t, ReportIncidentRequest{Type: "fire", Location: "Main St"}), userToken)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"retry_after":42`)
}

func TestReportIncident_LimiterUnavailable(t *testing.T) {
	d := newTestHandler(t, nil)

	d.limiter.EXPECT().
		Allow(gomock.Any(), gomock.Any()).
		Return(ratelimit.Result{}, errors.New("redis: connection refused")).
		Times(1)
	d.incidents.EXPECT().Report(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/incidents",
		jsonBody(t, ReportIncidentRequest{Type: "fire", Location: "Main St"}), userToken)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestReportIncident_ServiceError(t *testing.T) {
	d := newTestHandler(t, nil)
	allowAll(d)

	d.incidents.EXPECT().
		Report(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("repository: create incident: %w", models.ErrStoreFailure)).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/incidents",
		jsonBody(t, ReportIncidentRequest{Type: "fire", Location: "Main St"}), userToken)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestListIncidents_PassesPrincipal(t *testing.T) {
	d := newTestHandler(t, nil)
	reporter := d.user.UserID
	incidents := []*models.Incident{
		{ID: uuid.New(), Type: "flood", Location: "A", Status: "active", Priority: "high", ReportedBy: &reporter},
		{ID: uuid.New(), Type: "fire", Location: "B", Status: "resolved", Priority: "low", ReportedBy: &reporter},
	}

	d.incidents.EXPECT().List(gomock.Any(), d.user).Return(incidents, nil).Times(1)

	w := makeRequest(d.router, "GET", "/api/v1/incidents", nil, userToken)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, incidents[0].ID, resp[0].ID)
	assert.Equal(t, incidents[1].ID, resp[1].ID)
}

func TestGetIncident_InvalidID(t *testing.T) {
	d := newTestHandler(t, nil)

	d.incidents.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(d.router, "GET", "/api/v1/incidents/invalid-uuid", nil, userToken)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestGetIncident_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", fmt.Errorf("service: get incident: %w", models.ErrNotFound), http.StatusNotFound},
		{"other user's incident", fmt.Errorf("service: get incident: %w", models.ErrForbidden), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandler(t, nil)
			incidentID := uuid.New()

			d.incidents.EXPECT().Get(gomock.Any(), d.user, incidentID).Return(nil, tt.err).Times(1)

			w := makeRequest(d.router, "GET", "/api/v1/incidents/"+incidentID.String(), nil, userToken)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestUpdateIncident_Success(t *testing.T) {
	d := newTestHandler(t, nil)
	incidentID := uuid.New()
	status := "in_progress"

	d.incidents.EXPECT().
		Update(gomock.Any(), d.user, incidentID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Principal, id uuid.UUID, patch models.IncidentPatch) (*models.Incident, error) {
			require.NotNil(t, patch.Status)
			assert.Equal(t, status, *patch.Status)
			assert.Nil(t, patch.Type)
			return &models.Incident{ID: id, Type: "fire", Location: "Main St", Status: status, Priority: "medium"}, nil
		}).
		Times(1)

	w := makeRequest(d.router, "PUT", "/api/v1/incidents/"+incidentID.String(),
		jsonBody(t, UpdateIncidentRequest{Status: &status}), userToken)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, status, resp.Status)
}

func testDashboard() *models.Dashboard {
	zero := func(t string) *models.Resource { return &models.Resource{Type: t} }
	return &models.Dashboard{
		Alerts: []*models.Alert{{ID: uuid.New(), Message: "Flood Warning - Zone 3", Type: "flood", Zone: "Zone 3", Status: "active"}},
		Zones:  []*models.Zone{{ID: uuid.New(), Position: 1, Name: "Zone 1", Status: models.ZoneSafe}},
		Resources: models.DashboardResources{
			Ambulances:  &models.Resource{ID: uuid.New(), Type: "ambulance", Available: 12, Total: 15},
			FireTrucks:  zero("fire_truck"),
			RescueTeams: zero("rescue_team"),
			Shelters:    zero("shelter"),
		},
		ActiveIncidents: 3,
		RecentUpdates:   []models.RecentUpdate{},
	}
}

func TestDashboard_AnonymousAllowed(t *testing.T) {
	d := newTestHandler(t, &config.Config{RequireAuthForDashboard: false})

	d.dashboard.EXPECT().Get(gomock.Any()).Return(testDashboard(), nil).Times(1)

	w := makeRequest(d.router, "GET", "/api/v1/dashboard", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.ActiveIncidents)
	assert.Equal(t, 12, resp.Resources.Ambulances.Available)
	assert.Nil(t, resp.Resources.FireTrucks.ID)
	assert.Contains(t, w.Body.String(), `"fireTrucks"`)
	assert.Contains(t, w.Body.String(), `"recentUpdates":[]`)
}

func TestDashboard_InvalidTokenRejectedEvenWhenOptional(t *testing.T) {
	d := newTestHandler(t, &config.Config{RequireAuthForDashboard: false})

	d.auth.EXPECT().
		ResolvePrincipal(gomock.Any(), "garbage").
		Return(nil, models.ErrUnauthorized).
		Times(1)
	d.dashboard.EXPECT().Get(gomock.Any()).Times(0)

	w := makeRequest(d.router, "GET", "/api/v1/dashboard", nil, "garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboard_AuthRequired(t *testing.T) {
	d := newTestHandler(t, &config.Config{RequireAuthForDashboard: true})

	d.dashboard.EXPECT().Get(gomock.Any()).Return(testDashboard(), nil).Times(1)

	w := makeRequest(d.router, "GET", "/api/v1/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = makeRequest(d.router, "GET", "/api/v1/dashboard", nil, userToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRoutes_ForbiddenForUsers(t *testing.T) {
	d := newTestHandler(t, nil)

	d.admin.EXPECT().Summary(gomock.Any()).Times(0)
	d.incidents.EXPECT().ListAll(gomock.Any(), gomock.Any()).Times(0)
	d.users.EXPECT().List(gomock.Any()).Times(0)
	d.resources.EXPECT().List(gomock.Any()).Times(0)
	d.alerts.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)
	d.zones.EXPECT().List(gomock.Any()).Times(0)

	for _, path := range []string{
		"/api/v1/admin/summary",
		"/api/v1/admin/incidents",
		"/api/v1/admin/users",
		"/api/v1/admin/resources",
		"/api/v1/admin/alerts",
		"/api/v1/admin/zones",
	} {
		w := makeRequest(d.router, "GET", path, nil, userToken)
		assert.Equal(t, http.StatusForbidden, w.Code, path)

		w = makeRequest(d.router, "GET", path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestGetSummary_Admin(t *testing.T) {
	d := newTestHandler(t, nil)

	d.admin.EXPECT().Summary(gomock.Any()).Return(&models.AdminSummary{
		TotalUsers: 2, TotalIncidents: 5, ActiveIncidents: 3, ResolvedIncidents: 1, TotalResources: 4, TotalAlerts: 1,
	}, nil).Times(1)

	w := makeRequest(d.router, "GET", "/api/v1/admin/summary", nil, adminToken)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.ActiveIncidents)
	assert.Contains(t, w.Body.String(), `"totalUsers":2`)
}

func TestListAllIncidents_IncludesReporter(t *testing.T) {
	d := newTestHandler(t, nil)
	reporter := uuid.New()

	d.incidents.EXPECT().ListAll(gomock.Any(), d.adminUser).Return([]*models.IncidentWithReporter{
		{
			Incident: models.Incident{ID: uuid.New(), Type: "fire", Location: "A", Status: "active", Priority: "high", ReportedBy: &reporter},
			Reporter: &models.Reporter{Name: "Jane", Email: "jane@example.com"},
		},
	}, nil).Times(1)

	w := makeRequest(d.router, "GET", "/api/v1/admin/incidents", nil, adminToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jane@example.com")
}

func TestCreateResource_Success(t *testing.T) {
	d := newTestHandler(t, nil)
	total := 10

	d.resources.EXPECT().
		Create(gomock.Any(), models.NewResource{Type: "boat", Total: &total, Location: "Harbor"}).
		Return(&models.Resource{ID: uuid.New(), Type: "boat", Available: 10, Total: 10, Location: "Harbor"}, nil).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/admin/resources",
		jsonBody(t, CreateResourceRequest{Type: "boat", Total: &total, Location: "Harbor"}), adminToken)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp ResourceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Available)
}

func TestReserveResource_Insufficient(t *testing.T) {
	d := newTestHandler(t, nil)

	d.resources.EXPECT().
		Reserve(gomock.Any(), "ambulance", 50).
		Return(nil, fmt.Errorf("service: reserve ambulance: %w", models.ErrInsufficientResources)).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/admin/resources/reserve",
		jsonBody(t, AdjustResourceRequest{Type: "ambulance", Units: 50}), adminToken)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient resources")
}

func TestDeleteUser_NoContent(t *testing.T) {
	d := newTestHandler(t, nil)
	userID := uuid.New()

	d.users.EXPECT().Delete(gomock.Any(), userID).Return(nil).Times(1)

	w := makeRequest(d.router, "DELETE", "/api/v1/admin/users/"+userID.String(), nil, adminToken)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestSetUserRole_Success(t *testing.T) {
	d := newTestHandler(t, nil)
	userID := uuid.New()

	d.users.EXPECT().
		SetRole(gomock.Any(), userID, models.RoleAdmin).
		Return(&models.User{ID: userID, Name: "Jane", Email: "jane@example.com", Role: models.RoleAdmin}, nil).
		Times(1)

	w := makeRequest(d.router, "PUT", "/api/v1/admin/users/"+userID.String()+"/role",
		jsonBody(t, SetRoleRequest{Role: "admin"}), adminToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestUpdateZone_InvalidStatus(t *testing.T) {
	d := newTestHandler(t, nil)

	d.zones.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(d.router, "PUT", "/api/v1/admin/zones/"+uuid.NewString(),
		jsonBody(t, UpdateZoneRequest{Status: "panic"}), adminToken)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAlert_Success(t *testing.T) {
	d := newTestHandler(t, nil)
	alertID := uuid.New()

	d.alerts.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *models.Alert) error {
			alert.ID = alertID
			alert.Status = models.AlertStatusActive
			return nil
		}).
		Times(1)

	w := makeRequest(d.router, "POST", "/api/v1/admin/alerts",
		jsonBody(t, CreateAlertRequest{Message: "Evacuate", Type: "flood", Zone: "Zone 3"}), adminToken)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, alertID, resp.ID)
	assert.Equal(t, "active", resp.Status)
}

func TestHealthCheck(t *testing.T) {
	d := newTestHandler(t, nil)

	w := makeRequest(d.router, "GET", "/api/v1/system/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{models.ErrValidation, http.StatusBadRequest},
		{models.ErrInvalidCredentials, http.StatusUnauthorized},
		{models.ErrUnauthorized, http.StatusUnauthorized},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrNotFound, http.StatusNotFound},
		{models.ErrInsufficientResources, http.StatusConflict},
		{models.ErrConflict, http.StatusConflict},
		{models.ErrStoreFailure, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, _ := statusFor(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.expected, code)
		})
	}
}
