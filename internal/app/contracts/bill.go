package contracts

import (
	"context"
	"time"

	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/dto/responses"
)

type BillUsecase interface {
	CreateBill(ctx context.Context, request *requests.CreateBill) (*responses.Bill, error)
	CreateConsultationBill(ctx context.Context, appointment *models.Appointment, fee float64) (*responses.Bill, error)
	FindAllBills(ctx context.Context, session *models.Session, request *requests.FindAllBills) ([]responses.Bill, int, error)
	FindBillByID(ctx context.Context, session *models.Session, billID string) (*responses.Bill, error)
	UpdateBill(ctx context.Context, billID string, request *requests.UpdateBill) (*responses.Bill, error)
	RecordPayment(ctx context.Context, session *models.Session, billID string, request *requests.RecordPayment) (*responses.Bill, error)
	CancelBill(ctx context.Context, billID string, request *requests.CancelBill) (*responses.Bill, error)
	SweepOverdue(ctx context.Context, now time.Time) (int, error)
}

type BillRepository interface {
	CreateBill(ctx context.Context, bill *models.Bill) (billID string, err error)
	FindAll(ctx context.Context, filter *requests.FindAllBills) ([]models.Bill, int, error)
	FindByID(ctx context.Context, billID string) (*models.Bill, error)
	FindOpenPastDue(ctx context.Context, now time.Time) ([]models.Bill, error)
	UpdateBill(ctx context.Context, bill *models.Bill) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	SumOutstanding(ctx context.Context) (float64, error)
}
