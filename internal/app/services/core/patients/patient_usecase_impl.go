package patients

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type patientUsecase struct {
	PatientRepository  contracts.PatientRepository
	UserRepository     contracts.UserRepository
	SequenceRepository contracts.SequenceRepository
	Storage            contracts.Storage
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	patientUsecaseInstance contracts.PatientUsecase
	oncePatientUsecase     sync.Once
)

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	userRepository contracts.UserRepository,
	sequenceRepository contracts.SequenceRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PatientUsecase {
	oncePatientUsecase.Do(func() {
		patientUsecaseInstance = &patientUsecase{
			PatientRepository:  patientRepository,
			UserRepository:     userRepository,
			SequenceRepository: sequenceRepository,
			Storage:            storage,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
	})
	return patientUsecaseInstance
}

func (uc *patientUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (*responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.CreatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existingPatient, err := uc.PatientRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingPatient != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	sequence, err := uc.SequenceRepository.Next(ctx, constvars.SequencePatients)
	if err != nil {
		return nil, err
	}

	patient := &models.Patient{
		Code:         utils.GenerateSequentialCode(constvars.CodePrefixPatient, sequence),
		FullName:     request.FullName,
		Email:        request.Email,
		PhoneNumber:  request.PhoneNumber,
		DateOfBirth:  request.DateOfBirth,
		Gender:       request.Gender,
		Address:      request.Address,
		BloodType:    request.BloodType,
		Allergies:    request.Allergies,
		MedicalNotes: request.MedicalNotes,
		Active:       true,
	}
	if request.EmergencyContact != nil {
		patient.EmergencyContact = &models.EmergencyContact{
			Name:         request.EmergencyContact.Name,
			PhoneNumber:  request.EmergencyContact.PhoneNumber,
			Relationship: request.EmergencyContact.Relationship,
		}
	}
	patient.SetCreatedAtUpdatedAt()

	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		return nil, err
	}
	patient.ID = patientID

	uc.Log.Info("patientUsecase.CreatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	response := utils.ConvertPatientToResponse(patient, "")
	return &response, nil
}

func (uc *patientUsecase) FindAllPatients(ctx context.Context, request *requests.FindAllPatients) ([]responses.Patient, int, error) {
	patients, total, err := uc.PatientRepository.FindAll(ctx, request.Search, request.Page, request.PageSize)
	if err != nil {
		return nil, 0, err
	}

	results := make([]responses.Patient, 0, len(patients))
	for i := range patients {
		results = append(results, utils.ConvertPatientToResponse(&patients[i], uc.photoURL(ctx, &patients[i])))
	}
	return results, total, nil
}

func (uc *patientUsecase) FindPatientByID(ctx context.Context, session *models.Session, patientID string) (*responses.Patient, error) {
	if err := uc.ensureCanAccessPatient(session, patientID); err != nil {
		return nil, err
	}

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	response := utils.ConvertPatientToResponse(patient, uc.photoURL(ctx, patient))
	return &response, nil
}

func (uc *patientUsecase) UpdatePatient(ctx context.Context, session *models.Session, patientID string, request *requests.UpdatePatient) (*responses.Patient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.UpdatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if err := uc.ensureCanAccessPatient(session, patientID); err != nil {
		return nil, err
	}

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	if request.FullName != "" {
		patient.FullName = request.FullName
	}
	if request.PhoneNumber != "" {
		patient.PhoneNumber = request.PhoneNumber
	}
	if request.Address != "" {
		patient.Address = request.Address
	}
	if request.BloodType != "" {
		patient.BloodType = request.BloodType
	}
	if request.Allergies != nil {
		patient.Allergies = request.Allergies
	}
	if request.MedicalNotes != "" {
		patient.MedicalNotes = request.MedicalNotes
	}
	if request.EmergencyContact != nil {
		patient.EmergencyContact = &models.EmergencyContact{
			Name:         request.EmergencyContact.Name,
			PhoneNumber:  request.EmergencyContact.PhoneNumber,
			Relationship: request.EmergencyContact.Relationship,
		}
	}
	patient.SetUpdatedAt()

	err = uc.PatientRepository.UpdatePatient(ctx, patient)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("patientUsecase.UpdatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	response := utils.ConvertPatientToResponse(patient, uc.photoURL(ctx, patient))
	return &response, nil
}

func (uc *patientUsecase) DeactivatePatient(ctx context.Context, patientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.DeactivatePatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return exceptions.ErrPatientNotFound(nil)
	}

	patient.Active = false
	patient.SetDeletedAt()
	err = uc.PatientRepository.UpdatePatient(ctx, patient)
	if err != nil {
		return err
	}

	// Lock out the linked portal account as well, if one exists.
	if patient.UserID != "" {
		user, err := uc.UserRepository.FindByID(ctx, patient.UserID)
		if err != nil {
			return err
		}
		if user != nil {
			user.Active = false
			user.SetUpdatedAt()
			if err := uc.UserRepository.UpdateUser(ctx, user); err != nil {
				return err
			}
		}
	}

	uc.Log.Info("patientUsecase.DeactivatePatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}

func (uc *patientUsecase) UploadPatientPhoto(ctx context.Context, session *models.Session, patientID string, file multipart.File, fileHeader *multipart.FileHeader) (*responses.UploadPhoto, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("patientUsecase.UploadPatientPhoto called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if err := uc.ensureCanAccessPatient(session, patientID); err != nil {
		return nil, err
	}

	err := utils.ValidateImage(fileHeader, uc.InternalConfig.Minio.PhotoMaxUploadSizeInMB)
	if err != nil {
		return nil, exceptions.ErrImageValidation(err)
	}

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	fileName := utils.GenerateFileName("patients", patient.ID, strings.ToLower(filepath.Ext(fileHeader.Filename)))
	objectName, err := uc.Storage.UploadFile(ctx, file, fileHeader, uc.InternalConfig.Minio.BucketName, fileName)
	if err != nil {
		return nil, err
	}

	patient.PhotoObjectName = objectName
	patient.SetUpdatedAt()
	err = uc.PatientRepository.UpdatePatient(ctx, patient)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("patientUsecase.UploadPatientPhoto succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	return &responses.UploadPhoto{
		ObjectName: objectName,
		PhotoURL:   uc.photoURL(ctx, patient),
	}, nil
}

// ensureCanAccessPatient lets staff touch any record while patients are
// pinned to their own.
func (uc *patientUsecase) ensureCanAccessPatient(session *models.Session, patientID string) error {
	if session == nil {
		return exceptions.ErrMissingSessionData(nil)
	}
	if session.IsPatient() && session.PatientID != patientID {
		return exceptions.ErrNotResourceOwner(nil)
	}
	return nil
}

// photoURL presigns the stored photo object. Failures only cost the URL,
// never the request.
func (uc *patientUsecase) photoURL(ctx context.Context, patient *models.Patient) string {
	if patient.PhotoObjectName == "" {
		return ""
	}
	expiry := time.Duration(uc.InternalConfig.Minio.PresignedUrlExpiryInMinute) * time.Minute
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.InternalConfig.Minio.BucketName, patient.PhotoObjectName, expiry)
	if err != nil {
		uc.Log.Warn("patientUsecase.photoURL presign failed",
			zap.String(constvars.LoggingPatientIDKey, patient.ID),
			zap.Error(err),
		)
		return ""
	}
	return url
}
