package contracts

import (
	"context"

	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, request *requests.CreateDoctor) (*responses.Doctor, error)
	FindAllDoctors(ctx context.Context, request *requests.FindAllDoctors) ([]responses.Doctor, int, error)
	FindDoctorByID(ctx context.Context, doctorID string) (*responses.Doctor, error)
	UpdateDoctor(ctx context.Context, doctorID string, request *requests.UpdateDoctor) (*responses.Doctor, error)
	UpdateDoctorAvailability(ctx context.Context, session *models.Session, doctorID string, request *requests.UpdateDoctorAvailability) (*responses.Doctor, error)
	FindDoctorSlots(ctx context.Context, request *requests.FindDoctorSlots) (*responses.DoctorSlots, error)
}

type DoctorRepository interface {
	CreateDoctor(ctx context.Context, doctor *models.Doctor) (doctorID string, err error)
	FindAll(ctx context.Context, search, specialty, status string, page, pageSize int) ([]models.Doctor, int, error)
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	FindByLicenseNumber(ctx context.Context, licenseNumber string) (*models.Doctor, error)
	UpdateDoctor(ctx context.Context, doctor *models.Doctor) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
