package doctors

import (
	"context"
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

type doctorUsecase struct {
	DoctorRepository      contracts.DoctorRepository
	AppointmentRepository contracts.AppointmentRepository
	SequenceRepository    contracts.SequenceRepository
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	doctorUsecaseInstance contracts.DoctorUsecase
	onceDoctorUsecase     sync.Once
)

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	appointmentRepository contracts.AppointmentRepository,
	sequenceRepository contracts.SequenceRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	onceDoctorUsecase.Do(func() {
		doctorUsecaseInstance = &doctorUsecase{
			DoctorRepository:      doctorRepository,
			AppointmentRepository: appointmentRepository,
			SequenceRepository:    sequenceRepository,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return doctorUsecaseInstance
}

func (uc *doctorUsecase) CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.CreateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existingDoctor, err := uc.DoctorRepository.FindByLicenseNumber(ctx, request.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if existingDoctor != nil {
		return nil, exceptions.ErrLicenseAlreadyExist(nil)
	}

	weekly := models.WeeklyAvailability{}
	if request.Availability != nil {
		weekly = convertWeeklyAvailability(*request.Availability)
		if err := availability.ValidateWeekly(weekly); err != nil {
			return nil, exceptions.ErrInvalidAvailability(err)
		}
	}

	sequence, err := uc.SequenceRepository.Next(ctx, constvars.SequenceDoctors)
	if err != nil {
		return nil, err
	}

	doctor := &models.Doctor{
		Code:               utils.GenerateSequentialCode(constvars.CodePrefixDoctor, sequence),
		FullName:           request.FullName,
		Email:              request.Email,
		PhoneNumber:        request.PhoneNumber,
		Specialty:          request.Specialty,
		LicenseNumber:      request.LicenseNumber,
		ConsultationFee:    request.ConsultationFee,
		Status:             models.DoctorActive,
		WeeklyAvailability: weekly,
	}
	doctor.SetCreatedAtUpdatedAt()

	doctorID, err := uc.DoctorRepository.CreateDoctor(ctx, doctor)
	if err != nil {
		return nil, err
	}
	doctor.ID = doctorID

	uc.Log.Info("doctorUsecase.CreateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	response := utils.ConvertDoctorToResponse(doctor)
	return &response, nil
}

func (uc *doctorUsecase) FindAllDoctors(ctx context.Context, request *requests.FindAllDoctors) ([]responses.Doctor, int, error) {
	doctors, total, err := uc.DoctorRepository.FindAll(ctx, request.Search, request.Specialty, request.Status, request.Page, request.PageSize)
	if err != nil {
		return nil, 0, err
	}

	results := make([]responses.Doctor, 0, len(doctors))
	for i := range doctors {
		results = append(results, utils.ConvertDoctorToResponse(&doctors[i]))
	}
	return results, total, nil
}

func (uc *doctorUsecase) FindDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	response := utils.ConvertDoctorToResponse(doctor)
	return &response, nil
}

func (uc *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	if request.FullName != "" {
		doctor.FullName = request.FullName
	}
	if request.PhoneNumber != "" {
		doctor.PhoneNumber = request.PhoneNumber
	}
	if request.Specialty != "" {
		doctor.Specialty = request.Specialty
	}
	if request.ConsultationFee > 0 {
		doctor.ConsultationFee = request.ConsultationFee
	}
	if request.Status != "" {
		doctor.Status = models.DoctorStatus(request.Status)
	}
	doctor.SetUpdatedAt()

	err = uc.DoctorRepository.UpdateDoctor(ctx, doctor)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("doctorUsecase.UpdateDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	response := utils.ConvertDoctorToResponse(doctor)
	return &response, nil
}

func (uc *doctorUsecase) UpdateDoctorAvailability(ctx context.Context, session *models.Session, doctorID string, request *requests.UpdateDoctorAvailability) (*responses.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.UpdateDoctorAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if session == nil {
		return nil, exceptions.ErrMissingSessionData(nil)
	}
	if session.IsDoctor() && session.DoctorID != doctorID {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	weekly := convertWeeklyAvailability(request.Availability)
	if err := availability.ValidateWeekly(weekly); err != nil {
		return nil, exceptions.ErrInvalidAvailability(err)
	}

	doctor.WeeklyAvailability = weekly
	doctor.SetUpdatedAt()

	err = uc.DoctorRepository.UpdateDoctor(ctx, doctor)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("doctorUsecase.UpdateDoctorAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	response := utils.ConvertDoctorToResponse(doctor)
	return &response, nil
}

func (uc *doctorUsecase) FindDoctorSlots(ctx context.Context, request *requests.FindDoctorSlots) (*responses.DoctorSlots, error) {
	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil)
	}

	response := &responses.DoctorSlots{
		DoctorID:     doctor.ID,
		Date:         request.Date,
		DoctorStatus: string(doctor.Status),
		Slots:        []responses.DoctorSlot{},
	}

	// Non-active doctors expose an empty grid instead of an error so the
	// schedule page can still render.
	if doctor.Status != models.DoctorActive {
		return response, nil
	}

	date, err := time.ParseInLocation(models.AppointmentDateLayout, request.Date, time.Local)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	appointments, err := uc.AppointmentRepository.FindBlockingByDoctorAndDate(ctx, doctor.ID, request.Date)
	if err != nil {
		return nil, err
	}
	booked := availability.BookedSlotsFromAppointments(appointments)

	for _, slot := range availability.Slots(doctor.WeeklyAvailability, date, availability.DefaultSlotMinutes) {
		response.Slots = append(response.Slots, responses.DoctorSlot{
			Time:     slot.String(),
			Bookable: !availability.HasConflict(booked, doctor.ID, request.Date, slot),
		})
	}
	return response, nil
}

func convertWeeklyAvailability(request requests.WeeklyAvailability) models.WeeklyAvailability {
	convert := func(day requests.DayAvailability) models.DayAvailability {
		return models.DayAvailability{
			Available: day.Available,
			Start:     day.Start,
			End:       day.End,
		}
	}
	return models.WeeklyAvailability{
		Monday:    convert(request.Monday),
		Tuesday:   convert(request.Tuesday),
		Wednesday: convert(request.Wednesday),
		Thursday:  convert(request.Thursday),
		Friday:    convert(request.Friday),
		Saturday:  convert(request.Saturday),
		Sunday:    convert(request.Sunday),
	}
}
