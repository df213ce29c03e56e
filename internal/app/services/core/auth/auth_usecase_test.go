package auth

import (
	"context"
	"testing"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, userModel *models.User) (string, error) {
	args := m.Called(ctx, userModel)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, userModel *models.User) error {
	args := m.Called(ctx, userModel)
	return args.Error(0)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	args := m.Called(ctx, patient)
	return args.String(0), args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context, search string, page, pageSize int) ([]models.Patient, int, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Patient), args.Int(1), args.Error(2)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindByEmail(ctx context.Context, email string) (*models.Patient, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatientRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) (string, error) {
	args := m.Called(ctx, doctor)
	return args.String(0), args.Error(1)
}

func (m *MockDoctorRepository) FindAll(ctx context.Context, search, specialty, status string, page, pageSize int) ([]models.Doctor, int, error) {
	args := m.Called(ctx, search, specialty, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Doctor), args.Int(1), args.Error(2)
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) FindByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Doctor, error) {
	args := m.Called(ctx, licenseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doctor), args.Error(1)
}

func (m *MockDoctorRepository) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
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

type authMocks struct {
	users     *MockUserRepository
	patients  *MockPatientRepository
	doctors   *MockDoctorRepository
	sequences *MockSequenceRepository
	sessions  *MockSessionService
}

func newTestAuthUsecase() (*authUsecase, *authMocks) {
	mocks := &authMocks{
		users:     new(MockUserRepository),
		patients:  new(MockPatientRepository),
		doctors:   new(MockDoctorRepository),
		sequences: new(MockSequenceRepository),
		sessions:  new(MockSessionService),
	}
	uc := &authUsecase{
		UserRepository:     mocks.users,
		PatientRepository:  mocks.patients,
		DoctorRepository:   mocks.doctors,
		SequenceRepository: mocks.sequences,
		SessionService:     mocks.sessions,
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{
				Secret:        "test-secret",
				ExpTimeInHour: 12,
			},
		},
		Log: zap.NewNop(),
	}
	return uc, mocks
}

func registerRequest() *requests.RegisterPatient {
	return &requests.RegisterPatient{
		Email:          "budi.santoso@mail.test",
		Password:       "Sup3rSecret!",
		RetypePassword: "Sup3rSecret!",
		FullName:       "Budi Santoso",
		PhoneNumber:    "+628123456789",
		DateOfBirth:    "1988-04-12",
		Gender:         "male",
	}
}

func requireAuthError(t *testing.T, err error) *exceptions.CustomError {
	t.Helper()
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok, "expected a CustomError, got %T", err)
	return customErr
}

func TestAuthUsecase_RegisterPatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Patient And Portal Account", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()
		request := registerRequest()

		mocks.users.On("FindByEmail", ctx, request.Email).Return(nil, nil)
		mocks.patients.On("FindByEmail", ctx, request.Email).Return(nil, nil)
		mocks.sequences.On("Next", ctx, constvars.SequencePatients).Return(int64(4), nil)

		var createdPatient *models.Patient
		mocks.patients.On("CreatePatient", ctx, mock.AnythingOfType("*models.Patient")).
			Run(func(args mock.Arguments) {
				createdPatient = args.Get(1).(*models.Patient)
			}).
			Return("pat-1", nil)

		var createdUser *models.User
		mocks.users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				createdUser = args.Get(1).(*models.User)
			}).
			Return("user-1", nil)
		mocks.patients.On("UpdatePatient", ctx, mock.AnythingOfType("*models.Patient")).Return(nil)

		response, err := uc.RegisterPatient(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "user-1", response.UserID)
		assert.Equal(t, "pat-1", response.PatientID)
		assert.Equal(t, "PAT-000004", response.PatientCode)
		assert.Equal(t, request.Email, response.Email)

		require.NotNil(t, createdPatient)
		assert.Equal(t, "PAT-000004", createdPatient.Code)
		assert.Equal(t, request.PhoneNumber, createdPatient.PhoneNumber)
		assert.True(t, createdPatient.Active)

		require.NotNil(t, createdUser)
		assert.Equal(t, constvars.RolePatient, createdUser.Role)
		assert.Equal(t, "pat-1", createdUser.PatientID)
		assert.True(t, createdUser.Active)
		assert.True(t, utils.CheckPasswordHash(request.Password, createdUser.Password), "password must be stored hashed")
		assert.Equal(t, "user-1", createdPatient.UserID, "patient record must link back to the new account")
	})

	t.Run("Adopts A Walk In Record", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()
		request := registerRequest()

		walkIn := &models.Patient{
			ID:       "pat-7",
			Code:     "PAT-000002",
			FullName: "Budi Santoso",
			Email:    request.Email,
			Active:   true,
		}
		mocks.users.On("FindByEmail", ctx, request.Email).Return(nil, nil)
		mocks.patients.On("FindByEmail", ctx, request.Email).Return(walkIn, nil)
		mocks.users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).Return("user-2", nil)
		mocks.patients.On("UpdatePatient", ctx, mock.AnythingOfType("*models.Patient")).Return(nil)

		response, err := uc.RegisterPatient(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "pat-7", response.PatientID)
		assert.Equal(t, "PAT-000002", response.PatientCode)
		assert.Equal(t, "user-2", walkIn.UserID)
		mocks.sequences.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
		mocks.patients.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Email Rejected", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()
		request := registerRequest()

		mocks.users.On("FindByEmail", ctx, request.Email).Return(&models.User{ID: "user-1", Email: request.Email}, nil)

		response, err := uc.RegisterPatient(ctx, request)

		require.Nil(t, response)
		customErr := requireAuthError(t, err)
		assert.Equal(t, 400, customErr.StatusCode)
		mocks.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("Patient Already Linked Rejected", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()
		request := registerRequest()

		linked := &models.Patient{ID: "pat-7", Code: "PAT-000002", Email: request.Email, UserID: "user-9"}
		mocks.users.On("FindByEmail", ctx, request.Email).Return(nil, nil)
		mocks.patients.On("FindByEmail", ctx, request.Email).Return(linked, nil)

		response, err := uc.RegisterPatient(ctx, request)

		require.Nil(t, response)
		customErr := requireAuthError(t, err)
		assert.Equal(t, 400, customErr.StatusCode)
		mocks.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_LoginUser(t *testing.T) {
	ctx := context.Background()

	hashed, err := utils.HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	account := func() *models.User {
		return &models.User{
			ID:        "user-1",
			Email:     "budi.santoso@mail.test",
			Password:  hashed,
			FullName:  "Budi Santoso",
			Role:      constvars.RolePatient,
			PatientID: "pat-1",
			Active:    true,
		}
	}

	t.Run("Valid Credentials Issue A Token", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		var createdSession *models.Session
		mocks.users.On("FindByEmail", ctx, "budi.santoso@mail.test").Return(account(), nil)
		mocks.sessions.On("CreateSession", ctx, mock.AnythingOfType("*models.Session")).
			Run(func(args mock.Arguments) {
				createdSession = args.Get(1).(*models.Session)
			}).
			Return(nil)

		response, err := uc.LoginUser(ctx, &requests.LoginUser{
			Email:    "budi.santoso@mail.test",
			Password: "Sup3rSecret!",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, constvars.RolePatient, response.Role)
		assert.Equal(t, "Budi Santoso", response.FullName)
		assert.Equal(t, int64(12*3600), response.ExpiresIn)

		require.NotNil(t, createdSession)
		assert.NotEmpty(t, createdSession.SessionID)
		assert.Equal(t, "user-1", createdSession.UserID)
		assert.Equal(t, "pat-1", createdSession.PatientID)
		assert.Equal(t, constvars.RolePatient, createdSession.Role)
	})

	t.Run("Unknown Email Rejected", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.users.On("FindByEmail", ctx, "nobody@mail.test").Return(nil, nil)

		response, err := uc.LoginUser(ctx, &requests.LoginUser{
			Email:    "nobody@mail.test",
			Password: "Sup3rSecret!",
		})

		require.Nil(t, response)
		customErr := requireAuthError(t, err)
		assert.Equal(t, 401, customErr.StatusCode)
		mocks.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})

	t.Run("Deactivated Account Rejected", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		deactivated := account()
		deactivated.Active = false
		mocks.users.On("FindByEmail", ctx, "budi.santoso@mail.test").Return(deactivated, nil)

		response, err := uc.LoginUser(ctx, &requests.LoginUser{
			Email:    "budi.santoso@mail.test",
			Password: "Sup3rSecret!",
		})

		require.Nil(t, response)
		customErr := requireAuthError(t, err)
		assert.Equal(t, 401, customErr.StatusCode, "deactivated accounts must be indistinguishable from unknown ones")
	})

	t.Run("Wrong Password Rejected", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.users.On("FindByEmail", ctx, "budi.santoso@mail.test").Return(account(), nil)

		response, err := uc.LoginUser(ctx, &requests.LoginUser{
			Email:    "budi.santoso@mail.test",
			Password: "not-the-password",
		})

		require.Nil(t, response)
		customErr := requireAuthError(t, err)
		assert.Equal(t, 401, customErr.StatusCode)
		mocks.sessions.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_CreateStaffUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates A Receptionist", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		var createdUser *models.User
		mocks.users.On("FindByEmail", ctx, "frontdesk@medicore.test").Return(nil, nil)
		mocks.users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				createdUser = args.Get(1).(*models.User)
			}).
			Return("user-3", nil)

		response, err := uc.CreateStaffUser(ctx, &requests.CreateStaffUser{
			Email:    "frontdesk@medicore.test",
			Password: "FrontDesk123!",
			FullName: "Lina Hartono",
			Role:     constvars.RoleReceptionist,
		})

		require.NoError(t, err)
		assert.Equal(t, "user-3", response.UserID)
		assert.Equal(t, constvars.RoleReceptionist, response.Role)
		assert.Empty(t, response.DoctorID)

		require.NotNil(t, createdUser)
		assert.True(t, createdUser.Active)
		assert.True(t, utils.CheckPasswordHash("FrontDesk123!", createdUser.Password))
		mocks.doctors.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Doctor Account Verifies The Link", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.users.On("FindByEmail", ctx, "ratna.kusuma@medicore.test").Return(nil, nil)
		mocks.doctors.On("FindByID", ctx, "doc-1").Return(&models.Doctor{ID: "doc-1", FullName: "Dr. Ratna Kusuma"}, nil)

		var createdUser *models.User
		mocks.users.On("CreateUser", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				createdUser = args.Get(1).(*models.User)
			}).
			Return("user-4", nil)

		response, err := uc.CreateStaffUser(ctx, &requests.CreateStaffUser{
			Email:    "ratna.kusuma@medicore.test",
			Password: "Doctor123!",
			FullName: "Ratna Kusuma",
			Role:     constvars.RoleDoctor,
			DoctorID: "doc-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "doc-1", response.DoctorID)
		require.NotNil(t, createdUser)
		assert.Equal(t, "doc-1", createdUser.DoctorID)
	})

	t.Run("Unknown Doctor Link Rejected", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.users.On("FindByEmail", ctx, "ghost@medicore.test").Return(nil, nil)
		mocks.doctors.On("FindByID", ctx, "doc-404").Return(nil, nil)

		response, err := uc.CreateStaffUser(ctx, &requests.CreateStaffUser{
			Email:    "ghost@medicore.test",
			Password: "Doctor123!",
			FullName: "Ghost Doctor",
			Role:     constvars.RoleDoctor,
			DoctorID: "doc-404",
		})

		require.Nil(t, response)
		customErr := requireAuthError(t, err)
		assert.Equal(t, 404, customErr.StatusCode)
		mocks.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_Sessions(t *testing.T) {
	ctx := context.Background()

	t.Run("Logout Removes The Session", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.sessions.On("RemoveSession", ctx, "session-1").Return(nil)

		err := uc.LogoutUser(ctx, "session-1")

		require.NoError(t, err)
		mocks.sessions.AssertExpectations(t)
	})

	t.Run("Logout Propagates Store Errors", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.sessions.On("RemoveSession", ctx, "session-1").Return(assert.AnError)

		err := uc.LogoutUser(ctx, "session-1")

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("WhoAmI Maps The Session", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.sessions.On("GetSession", ctx, "session-1").Return(&models.Session{
			SessionID: "session-1",
			UserID:    "user-1",
			Email:     "budi.santoso@mail.test",
			FullName:  "Budi Santoso",
			Role:      constvars.RolePatient,
			PatientID: "pat-1",
		}, nil)

		response, err := uc.WhoAmI(ctx, "session-1")

		require.NoError(t, err)
		assert.Equal(t, "user-1", response.UserID)
		assert.Equal(t, "budi.santoso@mail.test", response.Email)
		assert.Equal(t, constvars.RolePatient, response.Role)
		assert.Equal(t, "pat-1", response.PatientID)
		assert.Empty(t, response.DoctorID)
	})

	t.Run("WhoAmI Propagates Lookup Failures", func(t *testing.T) {
		uc, mocks := newTestAuthUsecase()

		mocks.sessions.On("GetSession", ctx, "session-gone").Return(nil, assert.AnError)

		response, err := uc.WhoAmI(ctx, "session-gone")

		require.Nil(t, response)
		assert.ErrorIs(t, err, assert.AnError)
	})
}
