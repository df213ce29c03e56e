package contracts

import (
	"context"
	"time"

	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*responses.Appointment, error)
	FindAllAppointments(ctx context.Context, session *models.Session, request *requests.FindAllAppointments) ([]responses.Appointment, int, error)
	FindAppointmentByID(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID string, request *requests.UpdateAppointmentStatus) (*responses.Appointment, error)
	CancelAppointment(ctx context.Context, session *models.Session, appointmentID string, request *requests.CancelAppointment) (*responses.Appointment, error)
	SweepNoShows(ctx context.Context, now time.Time) (int, error)
}

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (appointmentID string, err error)
	FindAll(ctx context.Context, filter *requests.FindAllAppointments) ([]models.Appointment, int, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindBlockingByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	FindNoShowCandidates(ctx context.Context, cutoffDate string) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	CountTodayByStatus(ctx context.Context, date string) (map[string]int64, error)
}
