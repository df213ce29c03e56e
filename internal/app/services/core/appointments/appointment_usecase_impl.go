package appointments

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/app/services/core/availability"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// bookingLockTTL bounds the check-then-insert window of a single booking.
const bookingLockTTL = 10 * time.Second

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	PatientRepository     contracts.PatientRepository
	DoctorRepository      contracts.DoctorRepository
	SequenceRepository    contracts.SequenceRepository
	BillUsecase           contracts.BillUsecase
	LockService           contracts.LockerService
	EventPublisher        contracts.EventPublisher
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger

	// nowFn is swapped for a fixed clock in tests.
	nowFn func() time.Time
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	sequenceRepository contracts.SequenceRepository,
	billUsecase contracts.BillUsecase,
	lockService contracts.LockerService,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			PatientRepository:     patientRepository,
			DoctorRepository:      doctorRepository,
			SequenceRepository:    sequenceRepository,
			BillUsecase:           billUsecase,
			LockService:           lockService,
			EventPublisher:        eventPublisher,
			InternalConfig:        internalConfig,
			Log:                   logger,
			nowFn:                 time.Now,
		}
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.String(constvars.LoggingTimeKey, request.Time),
	)

	if session == nil {
		return nil, exceptions.ErrMissingSessionData(nil)
	}
	if session.IsPatient() {
		if request.PatientID == "" {
			request.PatientID = session.PatientID
		}
		if request.PatientID != session.PatientID {
			return nil, exceptions.ErrNotResourceOwner(nil)
		}
	}

	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || !patient.Active {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	clock, ok := availability.ParseClock(request.Time)
	if !ok {
		return nil, exceptions.ErrOutsideWorkingHours(nil)
	}

	// The lock serializes concurrent bookings for the same slot; the
	// partial unique index remains the backstop should it ever fail open.
	lockKey := fmt.Sprintf(constvars.RedisAppointmentLockKeyFormat, doctor.ID, request.Date, clock.String())
	acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, bookingLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSlotTaken(nil)
	}
	defer func() {
		if err := uc.LockService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Warn("appointmentUsecase.CreateAppointment unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	existing, err := uc.AppointmentRepository.FindBlockingByDoctorAndDate(ctx, doctor.ID, request.Date)
	if err != nil {
		return nil, err
	}

	booking, err := availability.Decide(availability.BookingRequest{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		Date:            request.Date,
		Time:            request.Time,
		DurationMinutes: request.DurationMinutes,
	}, doctor, availability.BookedSlotsFromAppointments(existing), uc.nowFn(), time.Local)
	if err != nil {
		return nil, mapBookingError(err)
	}

	sequence, err := uc.SequenceRepository.Next(ctx, constvars.SequenceAppointments)
	if err != nil {
		return nil, err
	}

	priority := models.AppointmentPriority(request.Priority)
	if priority == "" {
		priority = models.PriorityNormal
	}

	appointment := &models.Appointment{
		Code:            utils.GenerateSequentialCode(constvars.CodePrefixAppointment, sequence),
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		Date:            booking.Date,
		Time:            booking.Time,
		DurationMinutes: booking.DurationMinutes,
		Type:            models.AppointmentType(request.Type),
		Priority:        priority,
		Status:          booking.Status,
		Reason:          request.Reason,
		Notes:           request.Notes,
	}
	appointment.SetCreatedAtUpdatedAt()

	appointmentID, err := uc.AppointmentRepository.CreateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}
	appointment.ID = appointmentID

	uc.publishEvent(ctx, constvars.EventAppointmentScheduledKey, appointment)

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingDateKey, appointment.Date),
		zap.String(constvars.LoggingTimeKey, appointment.Time),
	)

	response := utils.ConvertAppointmentToResponse(appointment, uc.nowFn())
	response.PatientName = patient.FullName
	response.DoctorName = doctor.FullName
	return &response, nil
}

func (uc *appointmentUsecase) FindAllAppointments(ctx context.Context, session *models.Session, request *requests.FindAllAppointments) ([]responses.Appointment, int, error) {
	if session == nil {
		return nil, 0, exceptions.ErrMissingSessionData(nil)
	}
	// Patients and doctors only ever see their own schedule.
	if session.IsPatient() {
		request.PatientID = session.PatientID
	}
	if session.IsDoctor() {
		request.DoctorID = session.DoctorID
	}

	appointments, total, err := uc.AppointmentRepository.FindAll(ctx, request)
	if err != nil {
		return nil, 0, err
	}

	now := uc.nowFn()
	results := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		results = append(results, utils.ConvertAppointmentToResponse(&appointments[i], now))
	}
	return results, total, nil
}

func (uc *appointmentUsecase) FindAppointmentByID(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error) {
	appointment, err := uc.findOwnedAppointment(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}

	response := utils.ConvertAppointmentToResponse(appointment, uc.nowFn())
	uc.attachNames(ctx, appointment, &response)
	return &response, nil
}

func (uc *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, request.Status),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	next := models.AppointmentStatus(request.Status)
	if !appointment.Status.CanTransitionTo(next) {
		return nil, exceptions.ErrInvalidStatusTransition(nil)
	}

	previous := appointment.Status
	appointment.Status = next
	if request.Notes != "" {
		appointment.Notes = request.Notes
	}
	appointment.SetUpdatedAt()

	err = uc.AppointmentRepository.UpdateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}

	// Completing a visit bills the doctor's consultation fee.
	if previous == models.AppointmentInProgress && next == models.AppointmentCompleted {
		doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor != nil {
			if _, err := uc.BillUsecase.CreateConsultationBill(ctx, appointment, doctor.ConsultationFee); err != nil {
				uc.Log.Error("appointmentUsecase.UpdateAppointmentStatus consultation bill failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
					zap.Error(err),
				)
			}
		}
	}

	uc.Log.Info("appointmentUsecase.UpdateAppointmentStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingStatusKey, string(next)),
	)

	response := utils.ConvertAppointmentToResponse(appointment, uc.nowFn())
	uc.attachNames(ctx, appointment, &response)
	return &response, nil
}

func (uc *appointmentUsecase) CancelAppointment(ctx context.Context, session *models.Session, appointmentID string, request *requests.CancelAppointment) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.CancelAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	if request.Reason == "" {
		return nil, exceptions.ErrCancellationReasonRequired(nil)
	}

	appointment, err := uc.findOwnedAppointment(ctx, session, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(models.AppointmentCancelled) {
		return nil, exceptions.ErrInvalidStatusTransition(nil)
	}

	appointment.Status = models.AppointmentCancelled
	appointment.CancellationReason = request.Reason
	appointment.SetUpdatedAt()

	err = uc.AppointmentRepository.UpdateAppointment(ctx, appointment)
	if err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, constvars.EventAppointmentCancelledKey, appointment)

	uc.Log.Info("appointmentUsecase.CancelAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	response := utils.ConvertAppointmentToResponse(appointment, uc.nowFn())
	uc.attachNames(ctx, appointment, &response)
	return &response, nil
}

// SweepNoShows flips scheduled and confirmed appointments whose start time
// plus the grace period has lapsed. Returns how many were flipped.
func (uc *appointmentUsecase) SweepNoShows(ctx context.Context, now time.Time) (int, error) {
	cutoffDate := now.Format(models.AppointmentDateLayout)
	appointments, err := uc.AppointmentRepository.FindNoShowCandidates(ctx, cutoffDate)
	if err != nil {
		return 0, err
	}

	grace := time.Duration(uc.InternalConfig.Worker.NoShowGraceInMinute) * time.Minute
	flipped := 0
	for i := range appointments {
		appointment := &appointments[i]

		startsAt, err := utils.CombineDateTime(appointment.Date, appointment.Time, time.Local)
		if err != nil {
			uc.Log.Warn("appointmentUsecase.SweepNoShows skipping unparseable appointment",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.String(constvars.LoggingDateKey, appointment.Date),
				zap.String(constvars.LoggingTimeKey, appointment.Time),
			)
			continue
		}
		if !now.After(startsAt.Add(grace)) {
			continue
		}
		if !appointment.Status.CanTransitionTo(models.AppointmentNoShow) {
			continue
		}

		appointment.Status = models.AppointmentNoShow
		appointment.SetUpdatedAt()
		if err := uc.AppointmentRepository.UpdateAppointment(ctx, appointment); err != nil {
			uc.Log.Error("appointmentUsecase.SweepNoShows update failed",
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.Error(err),
			)
			continue
		}
		flipped++
	}
	return flipped, nil
}

// findOwnedAppointment loads an appointment and enforces that patients and
// doctors only reach their own records.
func (uc *appointmentUsecase) findOwnedAppointment(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error) {
	if session == nil {
		return nil, exceptions.ErrMissingSessionData(nil)
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	if session.IsPatient() && appointment.PatientID != session.PatientID {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}
	if session.IsDoctor() && appointment.DoctorID != session.DoctorID {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}
	return appointment, nil
}

// attachNames decorates a single-appointment response. Lookup failures only
// cost the display names.
func (uc *appointmentUsecase) attachNames(ctx context.Context, appointment *models.Appointment, response *responses.Appointment) {
	if patient, err := uc.PatientRepository.FindByID(ctx, appointment.PatientID); err == nil && patient != nil {
		response.PatientName = patient.FullName
	}
	if doctor, err := uc.DoctorRepository.FindByID(ctx, appointment.DoctorID); err == nil && doctor != nil {
		response.DoctorName = doctor.FullName
	}
}

func (uc *appointmentUsecase) publishEvent(ctx context.Context, routingKey string, appointment *models.Appointment) {
	payload := map[string]interface{}{
		"appointment_id": appointment.ID,
		"code":           appointment.Code,
		"patient_id":     appointment.PatientID,
		"doctor_id":      appointment.DoctorID,
		"date":           appointment.Date,
		"time":           appointment.Time,
		"status":         appointment.Status,
	}
	if err := uc.EventPublisher.Publish(ctx, routingKey, payload); err != nil {
		uc.Log.Warn("appointmentUsecase event publish failed",
			zap.String(constvars.LoggingEventKey, routingKey),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, availability.ErrDoctorUnavailable):
		return exceptions.ErrDoctorNotBookable(err)
	case errors.Is(err, availability.ErrPastDateTime):
		return exceptions.ErrAppointmentInPast(err)
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		return exceptions.ErrOutsideWorkingHours(err)
	case errors.Is(err, availability.ErrSlotConflict):
		return exceptions.ErrSlotTaken(err)
	default:
		return err
	}
}
