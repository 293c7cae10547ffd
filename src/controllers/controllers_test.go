package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/services/auth"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) List(ctx context.Context, params models.PaginationParams, status string) ([]models.Employee, int64, error) {
	args := m.Called(ctx, params, status)
	return args.Get(0).([]models.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeService) Create(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeService) Update(ctx context.Context, id string, in models.EmployeeInput) (*models.Employee, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type recordedAudit struct {
	actor  models.Actor
	action string
	entity string
}

type fakeAuditor struct {
	entries []recordedAudit
}

func (f *fakeAuditor) Record(_ context.Context, actor models.Actor, action, entity, _, _ string) {
	f.entries = append(f.entries, recordedAudit{actor, action, entity})
}

func TestEmployeeListPagination(t *testing.T) {
	svc := new(MockEmployeeService)
	svc.On("List", mock.Anything, mock.MatchedBy(func(p models.PaginationParams) bool {
		return p.Page == 2 && p.Limit == 100 && p.Search == "ana"
	}), "active").Return([]models.Employee{{Name: "Ana"}}, int64(101), nil)

	ec := NewEmployeeController(svc, nil)
	app := fiber.New()
	app.Get("/admin/employees", ec.List)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/employees?page=2&limit=500&search=%20ana%20&status=active", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := readBody(t, resp.Body)
	assert.Contains(t, body, `"totalPages":2`)
	assert.Contains(t, body, `"hasPrevious":true`)
	svc.AssertExpectations(t)
}

func TestEmployeeCreateAudits(t *testing.T) {
	id := primitive.NewObjectID()
	svc := new(MockEmployeeService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in models.EmployeeInput) bool { return in.Email == "ana@pulsepad.io" })).
		Return(&models.Employee{ID: id, Name: "Ana"}, nil)

	auditor := &fakeAuditor{}
	ec := NewEmployeeController(svc, auditor)
	app := fiber.New()
	app.Use(withActor("admin-1", models.RoleAdmin, ""))
	app.Post("/admin/employees", ec.Create)

	resp, err := app.Test(jsonRequest("POST", "/admin/employees", `{"name":"Ana","email":"ana@pulsepad.io","position":"Engineer"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Len(t, auditor.entries, 1)
	assert.Equal(t, models.ActionCreate, auditor.entries[0].action)
	assert.Equal(t, "admin-1", auditor.entries[0].actor.UserID)
}

func TestEmployeeCreateValidation(t *testing.T) {
	svc := new(MockEmployeeService)
	app := fiber.New()
	app.Post("/admin/employees", NewEmployeeController(svc, nil).Create)

	resp, err := app.Test(jsonRequest("POST", "/admin/employees", `{"name":"A","email":"not-mail"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp.Body), "Email failed on 'email'")
}

func TestEmployeeGetUnexpectedError(t *testing.T) {
	svc := new(MockEmployeeService)
	svc.On("Get", mock.Anything, "x").Return(nil, errors.New("connection reset"))
	app := fiber.New()
	app.Get("/admin/employees/:id", NewEmployeeController(svc, nil).Get)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/employees/x", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, readBody(t, resp.Body), "connection reset")
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password, requestID string) (*auth.LoginResult, error) {
	args := m.Called(ctx, email, password, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) GoogleAuthURL() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, in auth.GoogleCredential, requestID string) (*auth.LoginResult, error) {
	args := m.Called(ctx, in, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) Verify(ctx context.Context, claims *utils.JWTClaims) (*models.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	return m.Called(ctx, claims).Error(0)
}

func TestAuthLogin(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "ana@pulsepad.io", "secret123", "").
		Return(&auth.LoginResult{Token: "jwt-token", ExpiresIn: 86400, User: &models.User{Email: "ana@pulsepad.io"}}, nil)
	svc.On("Login", mock.Anything, "bob@pulsepad.io", mock.Anything, "").
		Return(nil, fmt.Errorf("%w: too many login attempts", apperr.ErrRateLimited))

	app := fiber.New()
	app.Post("/auth/login", NewAuthController(svc).Login)

	resp, err := app.Test(jsonRequest("POST", "/auth/login", `{"email":"ana@pulsepad.io","password":"secret123"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp.Body), `"token":"jwt-token"`)

	resp, err = app.Test(jsonRequest("POST", "/auth/login", `{"email":"bob@pulsepad.io","password":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/auth/login", `{"email":"bob@pulsepad.io"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthGoogleUnknownUser(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("GoogleLogin", mock.Anything, auth.GoogleCredential{Credential: "ya29.token"}, "").
		Return(nil, fmt.Errorf("%w: user is not registered", apperr.ErrUnauthorized))

	app := fiber.New()
	app.Post("/auth/google", NewAuthController(svc).GoogleLogin)

	resp, err := app.Test(jsonRequest("POST", "/auth/google", `{"credential":"ya29.token"}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthVerifyWithoutClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/auth/verify", NewAuthController(new(MockAuthService)).Verify)

	resp, err := app.Test(httptest.NewRequest("GET", "/auth/verify", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUserDeleteSelf(t *testing.T) {
	app := fiber.New()
	app.Use(withActor("admin-1", models.RoleAdmin, ""))
	app.Delete("/admin/users/:id", NewUserController(nil, nil).Delete)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/admin/users/admin-1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("down") }

	app := fiber.New()
	app.Get("/up", NewHealthController(map[string]HealthCheck{"mongo": ok, "redis": nil}).Health)
	app.Get("/down", NewHealthController(map[string]HealthCheck{"mongo": down}).Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/up", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","dependencies":{"mongo":"up","redis":"disabled"}}`, readBody(t, resp.Body))

	resp, err = app.Test(httptest.NewRequest("GET", "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
