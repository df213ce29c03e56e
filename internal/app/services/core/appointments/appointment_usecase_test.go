package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
	"medicore-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(ctx context.Context, filter *requests.FindAllAppointments) ([]models.Appointment, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Appointment), args.Int(1), args.Error(2)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindBlockingByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindNoShowCandidates(ctx context.Context, cutoffDate string) ([]models.Appointment, error) {
	args := m.Called(ctx, cutoffDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) CountTodayByStatus(ctx context.Context, date string) (map[string]int64, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
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

type MockBillUsecase struct {
	mock.Mock
}

func (m *MockBillUsecase) CreateBill(ctx context.Context, request *requests.CreateBill) (*responses.Bill, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Bill), args.Error(1)
}

func (m *MockBillUsecase) CreateConsultationBill(ctx context.Context, appointment *models.Appointment, fee float64) (*responses.Bill, error) {
	args := m.Called(ctx, appointment, fee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Bill), args.Error(1)
}

func (m *MockBillUsecase) FindAllBills(ctx context.Context, session *models.Session, request *requests.FindAllBills) ([]responses.Bill, int, error) {
	args := m.Called(ctx, session, request)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]responses.Bill), args.Int(1), args.Error(2)
}

func (m *MockBillUsecase) FindBillByID(ctx context.Context, session *models.Session, billID string) (*responses.Bill, error) {
	args := m.Called(ctx, session, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Bill), args.Error(1)
}

func (m *MockBillUsecase) UpdateBill(ctx context.Context, billID string, request *requests.UpdateBill) (*responses.Bill, error) {
	args := m.Called(ctx, billID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Bill), args.Error(1)
}

func (m *MockBillUsecase) RecordPayment(ctx context.Context, session *models.Session, billID string, request *requests.RecordPayment) (*responses.Bill, error) {
	args := m.Called(ctx, session, billID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Bill), args.Error(1)
}

func (m *MockBillUsecase) CancelBill(ctx context.Context, billID string, request *requests.CancelBill) (*responses.Bill, error) {
	args := m.Called(ctx, billID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.Bill), args.Error(1)
}

func (m *MockBillUsecase) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockLockService struct {
	mock.Mock
}

func (m *MockLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

type appointmentMocks struct {
	appointments *MockAppointmentRepository
	patients     *MockPatientRepository
	doctors      *MockDoctorRepository
	sequences    *MockSequenceRepository
	bills        *MockBillUsecase
	locks        *MockLockService
	events       *MockEventPublisher
}

func newTestAppointmentUsecase(now time.Time) (*appointmentUsecase, *appointmentMocks) {
	mocks := &appointmentMocks{
		appointments: new(MockAppointmentRepository),
		patients:     new(MockPatientRepository),
		doctors:      new(MockDoctorRepository),
		sequences:    new(MockSequenceRepository),
		bills:        new(MockBillUsecase),
		locks:        new(MockLockService),
		events:       new(MockEventPublisher),
	}
	uc := &appointmentUsecase{
		AppointmentRepository: mocks.appointments,
		PatientRepository:     mocks.patients,
		DoctorRepository:      mocks.doctors,
		SequenceRepository:    mocks.sequences,
		BillUsecase:           mocks.bills,
		LockService:           mocks.locks,
		EventPublisher:        mocks.events,
		InternalConfig: &config.InternalConfig{
			Worker: config.Worker{NoShowGraceInMinute: 60},
		},
		Log:   zap.NewNop(),
		nowFn: func() time.Time { return now },
	}
	return uc, mocks
}

func weekdayDoctor() *models.Doctor {
	weekday := models.DayAvailability{Available: true, Start: "09:00", End: "17:00"}
	return &models.Doctor{
		ID:              "doc-1",
		FullName:        "Dr. Ratna Kusuma",
		ConsultationFee: 350000,
		Status:          models.DoctorActive,
		WeeklyAvailability: models.WeeklyAvailability{
			Monday:    weekday,
			Tuesday:   weekday,
			Wednesday: weekday,
			Thursday:  weekday,
			Friday:    weekday,
		},
	}
}

func activePatient() *models.Patient {
	return &models.Patient{ID: "pat-1", FullName: "Budi Santoso", Active: true}
}

func staffSession() *models.Session {
	return &models.Session{SessionID: "sess-1", UserID: "user-1", Role: constvars.RoleReceptionist}
}

func patientSession(patientID string) *models.Session {
	return &models.Session{SessionID: "sess-2", UserID: "user-2", Role: constvars.RolePatient, PatientID: patientID}
}

func bookingRequest() *requests.CreateAppointment {
	return &requests.CreateAppointment{
		PatientID:       "pat-1",
		DoctorID:        "doc-1",
		Date:            "2026-03-02",
		Time:            "09:00",
		DurationMinutes: 30,
		Type:            "consultation",
	}
}

// 2026-03-01 is a Sunday, so 2026-03-02 is a bookable Monday.
var bookingClock = time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)

func expectSlotLock(mocks *appointmentMocks) {
	mocks.locks.On("TryLock", mock.Anything, mock.AnythingOfType("string"), bookingLockTTL).Return(true, "lock-token", nil)
	mocks.locks.On("Unlock", mock.Anything, mock.AnythingOfType("string"), "lock-token").Return(nil)
}

func TestAppointmentUsecase_CreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Books An Open Slot", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		expectSlotLock(mocks)
		mocks.appointments.On("FindBlockingByDoctorAndDate", mock.Anything, "doc-1", "2026-03-02").Return([]models.Appointment{}, nil)
		mocks.sequences.On("Next", mock.Anything, constvars.SequenceAppointments).Return(int64(7), nil)

		var created *models.Appointment
		mocks.appointments.On("CreateAppointment", mock.Anything, mock.AnythingOfType("*models.Appointment")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*models.Appointment)
			}).
			Return("apt-1", nil)
		mocks.events.On("Publish", mock.Anything, constvars.EventAppointmentScheduledKey, mock.Anything).Return(nil)

		response, err := uc.CreateAppointment(ctx, staffSession(), bookingRequest())

		require.NoError(t, err)
		require.NotNil(t, response)
		assert.Equal(t, "apt-1", response.ID)
		assert.Equal(t, "APT-000007", response.Code)
		assert.Equal(t, string(models.AppointmentScheduled), response.Status)
		assert.Equal(t, "Budi Santoso", response.PatientName)
		assert.Equal(t, "Dr. Ratna Kusuma", response.DoctorName)

		require.NotNil(t, created)
		assert.Equal(t, "09:00", created.Time)
		assert.Equal(t, models.PriorityNormal, created.Priority)
		mocks.appointments.AssertExpectations(t)
		mocks.events.AssertExpectations(t)
		mocks.locks.AssertExpectations(t)
	})

	t.Run("Rejects A Taken Slot", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		expectSlotLock(mocks)
		mocks.appointments.On("FindBlockingByDoctorAndDate", mock.Anything, "doc-1", "2026-03-02").Return([]models.Appointment{
			{DoctorID: "doc-1", Date: "2026-03-02", Time: "09:00", Status: models.AppointmentConfirmed},
		}, nil)

		_, err := uc.CreateAppointment(ctx, staffSession(), bookingRequest())

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		mocks.appointments.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
		mocks.locks.AssertCalled(t, "Unlock", mock.Anything, mock.AnythingOfType("string"), "lock-token")
	})

	t.Run("Cancelled Appointment Frees The Slot", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		expectSlotLock(mocks)
		mocks.appointments.On("FindBlockingByDoctorAndDate", mock.Anything, "doc-1", "2026-03-02").Return([]models.Appointment{
			{DoctorID: "doc-1", Date: "2026-03-02", Time: "09:00", Status: models.AppointmentCancelled},
		}, nil)
		mocks.sequences.On("Next", mock.Anything, constvars.SequenceAppointments).Return(int64(8), nil)
		mocks.appointments.On("CreateAppointment", mock.Anything, mock.AnythingOfType("*models.Appointment")).Return("apt-2", nil)
		mocks.events.On("Publish", mock.Anything, constvars.EventAppointmentScheduledKey, mock.Anything).Return(nil)

		response, err := uc.CreateAppointment(ctx, staffSession(), bookingRequest())

		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentScheduled), response.Status)
	})

	t.Run("Lock Contention Returns Conflict", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		mocks.locks.On("TryLock", mock.Anything, mock.AnythingOfType("string"), bookingLockTTL).Return(false, "", nil)

		_, err := uc.CreateAppointment(ctx, staffSession(), bookingRequest())

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		mocks.appointments.AssertNotCalled(t, "FindBlockingByDoctorAndDate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Patient Books For Self", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-9").Return(&models.Patient{ID: "pat-9", FullName: "Sari Dewi", Active: true}, nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		expectSlotLock(mocks)
		mocks.appointments.On("FindBlockingByDoctorAndDate", mock.Anything, "doc-1", "2026-03-02").Return([]models.Appointment{}, nil)
		mocks.sequences.On("Next", mock.Anything, constvars.SequenceAppointments).Return(int64(9), nil)

		var created *models.Appointment
		mocks.appointments.On("CreateAppointment", mock.Anything, mock.AnythingOfType("*models.Appointment")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*models.Appointment)
			}).
			Return("apt-3", nil)
		mocks.events.On("Publish", mock.Anything, constvars.EventAppointmentScheduledKey, mock.Anything).Return(nil)

		request := bookingRequest()
		request.PatientID = ""

		_, err := uc.CreateAppointment(ctx, patientSession("pat-9"), request)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "pat-9", created.PatientID)
	})

	t.Run("Patient Cannot Book For Someone Else", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)

		request := bookingRequest()
		request.PatientID = "pat-1"

		_, err := uc.CreateAppointment(ctx, patientSession("pat-9"), request)

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		mocks.patients.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Past Slot Rejected", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		expectSlotLock(mocks)
		mocks.appointments.On("FindBlockingByDoctorAndDate", mock.Anything, "doc-1", "2026-02-23").Return([]models.Appointment{}, nil)

		request := bookingRequest()
		request.Date = "2026-02-23"

		_, err := uc.CreateAppointment(ctx, staffSession(), request)

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusUnprocessableEntity, customErr.StatusCode)
	})

	t.Run("Inactive Patient Rejected", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(&models.Patient{ID: "pat-1", Active: false}, nil)

		_, err := uc.CreateAppointment(ctx, staffSession(), bookingRequest())

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("Unknown Doctor Rejected", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(nil, nil)

		_, err := uc.CreateAppointment(ctx, staffSession(), bookingRequest())

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestAppointmentUsecase_UpdateAppointmentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Transition Persists", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		appointment := &models.Appointment{ID: "apt-1", PatientID: "pat-1", DoctorID: "doc-1", Status: models.AppointmentScheduled}
		mocks.appointments.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)
		mocks.appointments.On("UpdateAppointment", mock.Anything, appointment).Return(nil)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)

		response, err := uc.UpdateAppointmentStatus(ctx, "apt-1", &requests.UpdateAppointmentStatus{Status: "confirmed"})

		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentConfirmed), response.Status)
		mocks.bills.AssertNotCalled(t, "CreateConsultationBill", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Transition Rejected", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		appointment := &models.Appointment{ID: "apt-1", Status: models.AppointmentCompleted}
		mocks.appointments.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)

		_, err := uc.UpdateAppointmentStatus(ctx, "apt-1", &requests.UpdateAppointmentStatus{Status: "confirmed"})

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		mocks.appointments.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
	})

	t.Run("Completion Bills The Consultation Fee", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		appointment := &models.Appointment{ID: "apt-1", PatientID: "pat-1", DoctorID: "doc-1", Status: models.AppointmentInProgress}
		mocks.appointments.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)
		mocks.appointments.On("UpdateAppointment", mock.Anything, appointment).Return(nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.bills.On("CreateConsultationBill", mock.Anything, appointment, 350000.0).Return(&responses.Bill{}, nil)

		response, err := uc.UpdateAppointmentStatus(ctx, "apt-1", &requests.UpdateAppointmentStatus{Status: "completed"})

		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentCompleted), response.Status)
		mocks.bills.AssertExpectations(t)
	})

	t.Run("Billing Failure Does Not Fail The Visit", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		appointment := &models.Appointment{ID: "apt-1", PatientID: "pat-1", DoctorID: "doc-1", Status: models.AppointmentInProgress}
		mocks.appointments.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)
		mocks.appointments.On("UpdateAppointment", mock.Anything, appointment).Return(nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		mocks.patients.On("FindByID", mock.Anything, "pat-1").Return(activePatient(), nil)
		mocks.bills.On("CreateConsultationBill", mock.Anything, appointment, 350000.0).Return(nil, errors.New("broker down"))

		response, err := uc.UpdateAppointmentStatus(ctx, "apt-1", &requests.UpdateAppointmentStatus{Status: "completed"})

		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentCompleted), response.Status)
	})
}

func TestAppointmentUsecase_CancelAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("Owning Patient Cancels", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		appointment := &models.Appointment{ID: "apt-1", PatientID: "pat-9", DoctorID: "doc-1", Status: models.AppointmentScheduled}
		mocks.appointments.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)
		mocks.appointments.On("UpdateAppointment", mock.Anything, appointment).Return(nil)
		mocks.patients.On("FindByID", mock.Anything, "pat-9").Return(&models.Patient{ID: "pat-9", FullName: "Sari Dewi", Active: true}, nil)
		mocks.doctors.On("FindByID", mock.Anything, "doc-1").Return(weekdayDoctor(), nil)
		mocks.events.On("Publish", mock.Anything, constvars.EventAppointmentCancelledKey, mock.Anything).Return(nil)

		response, err := uc.CancelAppointment(ctx, patientSession("pat-9"), "apt-1", &requests.CancelAppointment{Reason: "Conflicting schedule"})

		require.NoError(t, err)
		assert.Equal(t, string(models.AppointmentCancelled), response.Status)
		assert.Equal(t, "Conflicting schedule", response.CancellationReason)
		mocks.events.AssertExpectations(t)
	})

	t.Run("Reason Is Required", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)

		_, err := uc.CancelAppointment(ctx, staffSession(), "apt-1", &requests.CancelAppointment{})

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		mocks.appointments.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Non Owner Patient Blocked", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		appointment := &models.Appointment{ID: "apt-1", PatientID: "pat-1", Status: models.AppointmentScheduled}
		mocks.appointments.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)

		_, err := uc.CancelAppointment(ctx, patientSession("pat-9"), "apt-1", &requests.CancelAppointment{Reason: "Not mine"})

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusForbidden, customErr.StatusCode)
		mocks.appointments.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
	})

	t.Run("Completed Appointment Stays Completed", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(bookingClock)
		appointment := &models.Appointment{ID: "apt-1", PatientID: "pat-1", Status: models.AppointmentCompleted}
		mocks.appointments.On("FindByID", mock.Anything, "apt-1").Return(appointment, nil)

		_, err := uc.CancelAppointment(ctx, staffSession(), "apt-1", &requests.CancelAppointment{Reason: "Too late"})

		customErr := requireCustomError(t, err)
		assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
		mocks.appointments.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
	})
}

func TestAppointmentUsecase_SweepNoShows(t *testing.T) {
	ctx := context.Background()
	// Monday noon with a sixty minute grace period.
	sweepClock := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)

	t.Run("Flips Only Lapsed Appointments", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(sweepClock)
		candidates := []models.Appointment{
			{ID: "apt-lapsed", Date: "2026-03-02", Time: "09:00", Status: models.AppointmentScheduled},
			{ID: "apt-in-grace", Date: "2026-03-02", Time: "11:30", Status: models.AppointmentConfirmed},
			{ID: "apt-unparseable", Date: "2026-03-02", Time: "quarter past", Status: models.AppointmentScheduled},
			{ID: "apt-in-progress", Date: "2026-03-02", Time: "08:00", Status: models.AppointmentInProgress},
		}
		mocks.appointments.On("FindNoShowCandidates", mock.Anything, "2026-03-02").Return(candidates, nil)
		mocks.appointments.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
			return a.ID == "apt-lapsed" && a.Status == models.AppointmentNoShow
		})).Return(nil).Once()

		flipped, err := uc.SweepNoShows(ctx, sweepClock)

		require.NoError(t, err)
		assert.Equal(t, 1, flipped)
		mocks.appointments.AssertExpectations(t)
	})

	t.Run("Update Failure Skips The Record", func(t *testing.T) {
		uc, mocks := newTestAppointmentUsecase(sweepClock)
		candidates := []models.Appointment{
			{ID: "apt-a", Date: "2026-03-02", Time: "09:00", Status: models.AppointmentScheduled},
			{ID: "apt-b", Date: "2026-03-02", Time: "09:30", Status: models.AppointmentScheduled},
		}
		mocks.appointments.On("FindNoShowCandidates", mock.Anything, "2026-03-02").Return(candidates, nil)
		mocks.appointments.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
			return a.ID == "apt-a"
		})).Return(errors.New("write conflict"))
		mocks.appointments.On("UpdateAppointment", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
			return a.ID == "apt-b"
		})).Return(nil)

		flipped, err := uc.SweepNoShows(ctx, sweepClock)

		require.NoError(t, err)
		assert.Equal(t, 1, flipped)
	})
}

func requireCustomError(t *testing.T, err error) *exceptions.CustomError {
	t.Helper()
	require.Error(t, err)
	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok, "expected a CustomError, got %T", err)
	return customErr
}
