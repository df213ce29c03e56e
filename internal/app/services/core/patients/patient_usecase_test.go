package patients

import (
	"context"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(ctx context.Context, file io.Reader, fileHeader *multipart.FileHeader, bucketName, fileName string) (string, error) {
	args := m.Called(ctx, file, fileHeader, bucketName, fileName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type patientMocks struct {
	patients  *MockPatientRepository
	users     *MockUserRepository
	sequences *MockSequenceRepository
	storage   *MockStorage
}

func newTestPatientUsecase() (*patientUsecase, *patientMocks) {
	mocks := &patientMocks{
		patients:  new(MockPatientRepository),
		users:     new(MockUserRepository),
		sequences: new(MockSequenceRepository),
		storage:   new(MockStorage),
	}
	uc := &patientUsecase{
		PatientRepository:  mocks.patients,
		UserRepository:     mocks.users,
		SequenceRepository: mocks.sequences,
		Storage:            mocks.storage,
		InternalConfig: &config.InternalConfig{
			Minio: config.MinioInternal{
				BucketName:                 "medicore-test",
				PhotoMaxUploadSizeInMB:     2,
				PresignedUrlExpiryInMinute: 15,
			},
		},
		Log: zap.NewNop(),
	}
	return uc, mocks
}

func storedPatient() *models.Patient {
	return &models.Patient{
		ID:          "pat-1",
		Code:        "PAT-000001",
		UserID:      "user-1",
		FullName:    "Siti Aminah",
		Email:       "siti.aminah@mail.test",
		PhoneNumber: "+628111222333",
		DateOfBirth: "1990-06-15",
		Gender:      "female",
		Active:      true,
	}
}

func patientSession(patientID string) *models.Session {
	return &models.Session{
		SessionID: "session-1",
		UserID:    "user-1",
		Role:      constvars.RolePatient,
		PatientID: patientID,
	}
}

func staffSession() *models.Session {
	return &models.Session{
		SessionID: "session-2",
		UserID:    "user-9",
		Role:      constvars.RoleReceptionist,
	}
}

func requirePatientError(t *testing.T, err error) *exceptions.CustomError {
	t.Helper()
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok, "expected a CustomError, got %T", err)
	return customErr
}

func TestPatientUsecase_AccessControl(t *testing.T) {
	ctx := context.Background()

	t.Run("Patient Reads Their Own Record", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		mocks.patients.On("FindByID", ctx, "pat-1").Return(storedPatient(), nil)

		response, err := uc.FindPatientByID(ctx, patientSession("pat-1"), "pat-1")

		require.NoError(t, err)
		assert.Equal(t, "PAT-000001", response.Code)
		assert.Equal(t, "Siti Aminah", response.FullName)
	})

	t.Run("Patient Cannot Read A Stranger", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()

		_, err := uc.FindPatientByID(ctx, patientSession("pat-2"), "pat-1")

		customErr := requirePatientError(t, err)
		assert.Equal(t, 403, customErr.StatusCode)
		mocks.patients.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Missing Session Rejected", func(t *testing.T) {
		uc, _ := newTestPatientUsecase()

		_, err := uc.FindPatientByID(ctx, nil, "pat-1")

		customErr := requirePatientError(t, err)
		assert.Equal(t, 401, customErr.StatusCode)
	})

	t.Run("Staff Reads Any Record", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		mocks.patients.On("FindByID", ctx, "pat-1").Return(storedPatient(), nil)

		response, err := uc.FindPatientByID(ctx, staffSession(), "pat-1")

		require.NoError(t, err)
		assert.Equal(t, "pat-1", response.ID)
	})

	t.Run("Unknown Patient Rejected", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		mocks.patients.On("FindByID", ctx, "pat-404").Return(nil, nil)

		_, err := uc.FindPatientByID(ctx, staffSession(), "pat-404")

		customErr := requirePatientError(t, err)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}

func TestPatientUsecase_UpdatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Patient Edits Their Own Contact Details", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		stored := storedPatient()
		mocks.patients.On("FindByID", ctx, "pat-1").Return(stored, nil)
		mocks.patients.On("UpdatePatient", ctx, stored).Return(nil)

		response, err := uc.UpdatePatient(ctx, patientSession("pat-1"), "pat-1", &requests.UpdatePatient{
			PhoneNumber: "+628999888777",
			Address:     "Jl. Merdeka No. 10, Bandung",
		})

		require.NoError(t, err)
		assert.Equal(t, "+628999888777", stored.PhoneNumber)
		assert.Equal(t, "Jl. Merdeka No. 10, Bandung", stored.Address)
		// Unset fields never clobber what is already on the record.
		assert.Equal(t, "Siti Aminah", stored.FullName)
		assert.Equal(t, "+628999888777", response.PhoneNumber)
	})

	t.Run("Patient Cannot Edit A Stranger", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()

		_, err := uc.UpdatePatient(ctx, patientSession("pat-2"), "pat-1", &requests.UpdatePatient{
			PhoneNumber: "+628999888777",
		})

		customErr := requirePatientError(t, err)
		assert.Equal(t, 403, customErr.StatusCode)
		mocks.patients.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mocks.patients.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything)
	})
}

func TestPatientUsecase_DeactivatePatient(t *testing.T) {
	ctx := context.Background()

	t.Run("Deactivation Locks The Portal Account", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		stored := storedPatient()
		account := &models.User{ID: "user-1", Email: stored.Email, Role: constvars.RolePatient, Active: true}
		mocks.patients.On("FindByID", ctx, "pat-1").Return(stored, nil)
		mocks.patients.On("UpdatePatient", ctx, stored).Return(nil)
		mocks.users.On("FindByID", ctx, "user-1").Return(account, nil)
		mocks.users.On("UpdateUser", ctx, account).Return(nil)

		err := uc.DeactivatePatient(ctx, "pat-1")

		require.NoError(t, err)
		assert.False(t, stored.Active)
		assert.NotNil(t, stored.DeletedAt)
		assert.False(t, account.Active)
	})

	t.Run("Walk In Records Have No Account To Lock", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		stored := storedPatient()
		stored.UserID = ""
		mocks.patients.On("FindByID", ctx, "pat-1").Return(stored, nil)
		mocks.patients.On("UpdatePatient", ctx, stored).Return(nil)

		err := uc.DeactivatePatient(ctx, "pat-1")

		require.NoError(t, err)
		assert.False(t, stored.Active)
		mocks.users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Unknown Patient Rejected", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		mocks.patients.On("FindByID", ctx, "pat-404").Return(nil, nil)

		err := uc.DeactivatePatient(ctx, "pat-404")

		customErr := requirePatientError(t, err)
		assert.Equal(t, 404, customErr.StatusCode)
		mocks.patients.AssertNotCalled(t, "UpdatePatient", mock.Anything, mock.Anything)
	})
}

func TestPatientUsecase_PhotoURL(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored Photo Is Presigned On Read", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		stored := storedPatient()
		stored.PhotoObjectName = "patients/pat-1.jpg"
		mocks.patients.On("FindByID", ctx, "pat-1").Return(stored, nil)
		mocks.storage.
			On("GetObjectUrlWithExpiryTime", ctx, "medicore-test", "patients/pat-1.jpg", 15*time.Minute).
			Return("https://minio.test/patients/pat-1.jpg?sig=abc", nil)

		response, err := uc.FindPatientByID(ctx, staffSession(), "pat-1")

		require.NoError(t, err)
		assert.Equal(t, "https://minio.test/patients/pat-1.jpg?sig=abc", response.PhotoURL)
	})

	t.Run("Presign Failure Does Not Cost The Read", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		stored := storedPatient()
		stored.PhotoObjectName = "patients/pat-1.jpg"
		mocks.patients.On("FindByID", ctx, "pat-1").Return(stored, nil)
		mocks.storage.
			On("GetObjectUrlWithExpiryTime", ctx, "medicore-test", "patients/pat-1.jpg", 15*time.Minute).
			Return("", assert.AnError)

		response, err := uc.FindPatientByID(ctx, staffSession(), "pat-1")

		require.NoError(t, err)
		assert.Empty(t, response.PhotoURL)
	})

	t.Run("Records Without A Photo Skip The Presigner", func(t *testing.T) {
		uc, mocks := newTestPatientUsecase()
		mocks.patients.On("FindByID", ctx, "pat-1").Return(storedPatient(), nil)

		response, err := uc.FindPatientByID(ctx, staffSession(), "pat-1")

		require.NoError(t, err)
		assert.Empty(t, response.PhotoURL)
		mocks.storage.AssertNotCalled(t, "GetObjectUrlWithExpiryTime", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
