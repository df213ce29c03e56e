package auth

import (
	"context"
	"sync"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository     contracts.UserRepository
	PatientRepository  contracts.PatientRepository
	DoctorRepository   contracts.DoctorRepository
	SequenceRepository contracts.SequenceRepository
	SessionService     contracts.SessionService
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	patientRepository contracts.PatientRepository,
	doctorRepository contracts.DoctorRepository,
	sequenceRepository contracts.SequenceRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			UserRepository:     userRepository,
			PatientRepository:  patientRepository,
			DoctorRepository:   doctorRepository,
			SequenceRepository: sequenceRepository,
			SessionService:     sessionService,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
	})
	return authUsecaseInstance
}

func (uc *authUsecase) RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.RegisterPatient, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RegisterPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existingUser, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		uc.Log.Error("authUsecase.RegisterPatient error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHashPassword(err)
	}

	patient, err := uc.findOrCreatePatient(ctx, request)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     request.Email,
		Password:  hashedPassword,
		FullName:  request.FullName,
		Role:      constvars.RolePatient,
		PatientID: patient.ID,
		Active:    true,
	}
	user.SetCreatedAtUpdatedAt()

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	patient.UserID = userID
	patient.SetUpdatedAt()
	if err := uc.PatientRepository.UpdatePatient(ctx, patient); err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.RegisterPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingPatientIDKey, patient.ID),
	)

	return &responses.RegisterPatient{
		UserID:      userID,
		PatientID:   patient.ID,
		PatientCode: patient.Code,
		Email:       request.Email,
		FullName:    request.FullName,
	}, nil
}

func (uc *authUsecase) CreateStaffUser(ctx context.Context, request *requests.CreateStaffUser) (*responses.WhoAmI, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.CreateStaffUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("role", request.Role),
	)

	existingUser, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	if request.Role == constvars.RoleDoctor && request.DoctorID != "" {
		doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, exceptions.ErrDoctorNotFound(nil)
		}
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		uc.Log.Error("authUsecase.CreateStaffUser error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHashPassword(err)
	}

	user := &models.User{
		Email:    request.Email,
		Password: hashedPassword,
		FullName: request.FullName,
		Role:     request.Role,
		DoctorID: request.DoctorID,
		Active:   true,
	}
	user.SetCreatedAtUpdatedAt()

	userID, err := uc.UserRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.CreateStaffUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String("role", request.Role),
	)

	return &responses.WhoAmI{
		UserID:   userID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		DoctorID: user.DoctorID,
	}, nil
}

func (uc *authUsecase) LoginUser(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LoginUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	// Deactivated accounts fail the same way as unknown ones.
	if user == nil || !user.Active {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	if !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidEmailOrPassword(nil)
	}

	session := &models.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		PatientID: user.PatientID,
		DoctorID:  user.DoctorID,
	}
	if err := uc.SessionService.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		uc.Log.Error("authUsecase.LoginUser error generating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.Log.Info("authUsecase.LoginUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String("role", user.Role),
	)

	return &responses.LoginUser{
		Token:     token,
		Role:      user.Role,
		FullName:  user.FullName,
		ExpiresIn: int64(uc.InternalConfig.JWT.ExpTimeInHour) * 3600,
	}, nil
}

func (uc *authUsecase) LogoutUser(ctx context.Context, sessionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.LogoutUser called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.SessionService.RemoveSession(ctx, sessionID)
	if err != nil {
		uc.Log.Error("authUsecase.LogoutUser error removing session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.LogoutUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) WhoAmI(ctx context.Context, sessionID string) (*responses.WhoAmI, error) {
	session, err := uc.SessionService.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &responses.WhoAmI{
		UserID:    session.UserID,
		Email:     session.Email,
		FullName:  session.FullName,
		Role:      session.Role,
		PatientID: session.PatientID,
		DoctorID:  session.DoctorID,
	}, nil
}

// findOrCreatePatient reuses a walk-in patient record that carries the
// registrant's email but no portal account yet; otherwise it creates a
// fresh record.
func (uc *authUsecase) findOrCreatePatient(ctx context.Context, request *requests.RegisterPatient) (*models.Patient, error) {
	existingPatient, err := uc.PatientRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existingPatient != nil {
		if existingPatient.UserID != "" {
			return nil, exceptions.ErrEmailAlreadyExist(nil)
		}
		return existingPatient, nil
	}

	sequence, err := uc.SequenceRepository.Next(ctx, constvars.SequencePatients)
	if err != nil {
		return nil, err
	}

	patient := &models.Patient{
		Code:        utils.GenerateSequentialCode(constvars.CodePrefixPatient, sequence),
		FullName:    request.FullName,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
		DateOfBirth: request.DateOfBirth,
		Gender:      request.Gender,
		Active:      true,
	}
	patient.SetCreatedAtUpdatedAt()

	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		return nil, err
	}
	patient.ID = patientID
	return patient, nil
}
