package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (*responses.Doctor, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) FindAllDoctors(ctx context.Context, request *requests.FindAllDoctors) ([]responses.Doctor, int, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]responses.Doctor), args.Int(1), args.Error(2)
}

func (m *MockDoctorUsecase) FindDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*responses.Doctor, error) {
	args := m.Called(ctx, doctorID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) UpdateDoctorAvailability(ctx context.Context, session *models.Session, doctorID string, request *requests.UpdateDoctorAvailability) (*responses.Doctor, error) {
	args := m.Called(ctx, session, doctorID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Doctor), args.Error(1)
}

func (m *MockDoctorUsecase) FindDoctorSlots(ctx context.Context, request *requests.FindDoctorSlots) (*responses.DoctorSlots, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.DoctorSlots), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) CreateSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionService) RemoveSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

const testJWTSecret = "router-test-secret"

type doctorRouterHarness struct {
	router   chi.Router
	usecase  *MockDoctorUsecase
	sessions *MockSessionService
}

func newDoctorRouterHarness() *doctorRouterHarness {
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		JWT: config.JWT{
			Secret:        testJWTSecret,
			ExpTimeInHour: 1,
		},
	}

	mockUsecase := new(MockDoctorUsecase)
	mockSessions := new(MockSessionService)

	// The controller constructor hands out a process-wide singleton, so the
	// tests assemble the struct themselves.
	doctorController := &controllers.DoctorController{
		Log:           logger,
		DoctorUsecase: mockUsecase,
	}
	middlewareInstance := &middlewares.Middlewares{
		Log:            logger,
		SessionService: mockSessions,
		InternalConfig: internalConfig,
	}

	router := chi.NewRouter()
	attachDoctorRoutes(router, middlewareInstance, doctorController)

	return &doctorRouterHarness{
		router:   router,
		usecase:  mockUsecase,
		sessions: mockSessions,
	}
}

func mintToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateSessionJWT("session-1", testJWTSecret, 1)
	require.NoError(t, err)
	return token
}

func sessionWithRole(role, doctorID string) *models.Session {
	return &models.Session{
		SessionID: "session-1",
		UserID:    "user-1",
		Email:     "someone@medicore.test",
		FullName:  "Someone",
		Role:      role,
		DoctorID:  doctorID,
	}
}

func createDoctorBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(requests.CreateDoctor{
		FullName:        "Dr. Maya Putri",
		Email:           "maya.putri@medicore.test",
		PhoneNumber:     "+628111222333",
		Specialty:       "pediatrics",
		LicenseNumber:   "STR-2021-0099",
		ConsultationFee: 250000,
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func availabilityBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(requests.UpdateDoctorAvailability{
		Availability: requests.WeeklyAvailability{
			Monday: requests.DayAvailability{Available: true, Start: "09:00", End: "17:00"},
		},
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestDoctorRouter_RoleEnforcement(t *testing.T) {
	t.Run("Admin Creates A Doctor", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		harness.sessions.On("GetSession", mock.Anything, "session-1").Return(sessionWithRole(constvars.RoleAdmin, ""), nil)
		harness.usecase.On("CreateDoctor", mock.Anything, mock.AnythingOfType("*requests.CreateDoctor")).
			Return(&responses.Doctor{ID: "doc-4", Code: "DOC-000004", FullName: "Dr. Maya Putri"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/", createDoctorBody(t))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+mintToken(t))

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		harness.usecase.AssertExpectations(t)
	})

	t.Run("Receptionist Cannot Create A Doctor", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		harness.sessions.On("GetSession", mock.Anything, "session-1").Return(sessionWithRole(constvars.RoleReceptionist, ""), nil)

		req := httptest.NewRequest(http.MethodPost, "/", createDoctorBody(t))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+mintToken(t))

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		harness.usecase.AssertNotCalled(t, "CreateDoctor", mock.Anything, mock.Anything)
	})

	t.Run("Doctor Updates Their Own Availability", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		harness.sessions.On("GetSession", mock.Anything, "session-1").Return(sessionWithRole(constvars.RoleDoctor, "doc-1"), nil)
		harness.usecase.On("UpdateDoctorAvailability",
			mock.Anything,
			mock.MatchedBy(func(session *models.Session) bool {
				return session != nil && session.DoctorID == "doc-1"
			}),
			"doc-1",
			mock.AnythingOfType("*requests.UpdateDoctorAvailability"),
		).Return(&responses.Doctor{ID: "doc-1"}, nil)

		req := httptest.NewRequest(http.MethodPut, "/doc-1/availability", availabilityBody(t))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+mintToken(t))

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		harness.usecase.AssertExpectations(t)
	})

	t.Run("Patient Cannot Touch Availability", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		harness.sessions.On("GetSession", mock.Anything, "session-1").Return(sessionWithRole(constvars.RolePatient, ""), nil)

		req := httptest.NewRequest(http.MethodPut, "/doc-1/availability", availabilityBody(t))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+mintToken(t))

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		harness.usecase.AssertNotCalled(t, "UpdateDoctorAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Any Signed In Role Reads The Slot Grid", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		harness.sessions.On("GetSession", mock.Anything, "session-1").Return(sessionWithRole(constvars.RolePatient, ""), nil)
		harness.usecase.On("FindDoctorSlots", mock.Anything, mock.MatchedBy(func(request *requests.FindDoctorSlots) bool {
			return request.DoctorID == "doc-1" && request.Date == "2026-03-02"
		})).Return(&responses.DoctorSlots{
			DoctorID:     "doc-1",
			Date:         "2026-03-02",
			DoctorStatus: "active",
			Slots:        []responses.DoctorSlot{{Time: "09:00", Bookable: true}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/doc-1/slots?date=2026-03-02", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+mintToken(t))

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "\"bookable\":true")
		harness.usecase.AssertExpectations(t)
	})
}

func TestDoctorRouter_Authentication(t *testing.T) {
	t.Run("Missing Token Rejected", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		req := httptest.NewRequest(http.MethodGet, "/doc-1/slots?date=2026-03-02", nil)

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		harness.sessions.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("Garbage Token Rejected", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		req := httptest.NewRequest(http.MethodGet, "/doc-1/slots?date=2026-03-02", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer not-a-jwt")

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		harness.sessions.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("Expired Session Rejected", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		harness.sessions.On("GetSession", mock.Anything, "session-1").Return(nil, exceptions.ErrTokenInvalidOrExpired(nil))

		req := httptest.NewRequest(http.MethodGet, "/doc-1/slots?date=2026-03-02", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+mintToken(t))

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		harness.usecase.AssertNotCalled(t, "FindDoctorSlots", mock.Anything, mock.Anything)
	})

	t.Run("Malformed Body Rejected Before The Usecase", func(t *testing.T) {
		harness := newDoctorRouterHarness()

		harness.sessions.On("GetSession", mock.Anything, "session-1").Return(sessionWithRole(constvars.RoleAdmin, ""), nil)

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("not json"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+mintToken(t))

		rr := httptest.NewRecorder()
		harness.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		harness.usecase.AssertNotCalled(t, "CreateDoctor", mock.Anything, mock.Anything)
	})
}
