package contracts

import (
	"context"
	"mime/multipart"

	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, request *requests.CreatePatient) (*responses.Patient, error)
	FindAllPatients(ctx context.Context, request *requests.FindAllPatients) ([]responses.Patient, int, error)
	FindPatientByID(ctx context.Context, session *models.Session, patientID string) (*responses.Patient, error)
	UpdatePatient(ctx context.Context, session *models.Session, patientID string, request *requests.UpdatePatient) (*responses.Patient, error)
	DeactivatePatient(ctx context.Context, patientID string) error
	UploadPatientPhoto(ctx context.Context, session *models.Session, patientID string, file multipart.File, fileHeader *multipart.FileHeader) (*responses.UploadPhoto, error)
}

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (patientID string, err error)
	FindAll(ctx context.Context, search string, page, pageSize int) ([]models.Patient, int, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByEmail(ctx context.Context, email string) (*models.Patient, error)
	UpdatePatient(ctx context.Context, patient *models.Patient) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
