package dashboard

import (
	"context"
	"sync"
	"time"

	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/responses"

	"go.uber.org/zap"
)

type dashboardUsecase struct {
	PatientRepository     contracts.PatientRepository
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	BillRepository        contracts.BillRepository
	Log                   *zap.Logger

	// nowFn is swapped for a fixed clock in tests.
	nowFn func() time.Time
}

var (
	dashboardUsecaseInstance contracts.DashboardUsecase
	onceDashboardUsecase     sync.Once
)

func NewDashboardUsecase(
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	billRepository contracts.BillRepository,
	logger *zap.Logger,
) contracts.DashboardUsecase {
	onceDashboardUsecase.Do(func() {
		dashboardUsecaseInstance = &dashboardUsecase{
			PatientRepository:     patientRepository,
			DoctorRepository:      doctorRepository,
			AppointmentRepository: appointmentRepository,
			BillRepository:        billRepository,
			Log:                   logger,
			nowFn:                 time.Now,
		}
	})
	return dashboardUsecaseInstance
}

func (uc *dashboardUsecase) GetDashboard(ctx context.Context) (*responses.Dashboard, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dashboardUsecase.GetDashboard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	totalPatients, err := uc.PatientRepository.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	activePatients, err := uc.PatientRepository.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	doctorsByStatus, err := uc.DoctorRepository.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	doctors := responses.DashboardDoctors{
		Active:   doctorsByStatus[string(models.DoctorActive)],
		OnLeave:  doctorsByStatus[string(models.DoctorOnLeave)],
		Inactive: doctorsByStatus[string(models.DoctorInactive)],
	}
	doctors.Total = doctors.Active + doctors.OnLeave + doctors.Inactive

	today := uc.nowFn().Format(models.AppointmentDateLayout)
	appointmentsByStatus, err := uc.AppointmentRepository.CountTodayByStatus(ctx, today)
	if err != nil {
		return nil, err
	}
	appointments := responses.DashboardAppointments{ByStatus: appointmentsByStatus}
	for _, count := range appointmentsByStatus {
		appointments.TotalToday += count
	}

	billsByStatus, err := uc.BillRepository.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := uc.BillRepository.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}
	outstanding, err := uc.BillRepository.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("dashboardUsecase.GetDashboard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	return &responses.Dashboard{
		Patients: responses.DashboardPatients{
			Total:  totalPatients,
			Active: activePatients,
		},
		Doctors:      doctors,
		Appointments: appointments,
		Billing: responses.DashboardBilling{
			ByStatus:     billsByStatus,
			TotalRevenue: totalRevenue,
			Outstanding:  outstanding,
		},
	}, nil
}
