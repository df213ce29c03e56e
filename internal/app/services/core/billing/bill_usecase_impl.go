package billing

import (
	"context"
	"fmt"
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

// consultationDueInDays is the net term applied to auto-drafted bills.
const consultationDueInDays = 30

type billUsecase struct {
	BillRepository     contracts.BillRepository
	PatientRepository  contracts.PatientRepository
	SequenceRepository contracts.SequenceRepository
	EventPublisher     contracts.EventPublisher
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger

	// nowFn is swapped for a fixed clock in tests.
	nowFn func() time.Time
}

var (
	billUsecaseInstance contracts.BillUsecase
	onceBillUsecase     sync.Once
)

func NewBillUsecase(
	billRepository contracts.BillRepository,
	patientRepository contracts.PatientRepository,
	sequenceRepository contracts.SequenceRepository,
	eventPublisher contracts.EventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BillUsecase {
	onceBillUsecase.Do(func() {
		billUsecaseInstance = &billUsecase{
			BillRepository:     billRepository,
			PatientRepository:  patientRepository,
			SequenceRepository: sequenceRepository,
			EventPublisher:     eventPublisher,
			InternalConfig:     internalConfig,
			Log:                logger,
			nowFn:              time.Now,
		}
	})
	return billUsecaseInstance
}

func (uc *billUsecase) CreateBill(ctx context.Context, request *requests.CreateBill) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billUsecase.CreateBill called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	patient, err := uc.PatientRepository.FindByID(ctx, request.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	items, err := buildLineItems(request.Items)
	if err != nil {
		return nil, exceptions.ErrInvalidLineItem(err)
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	sequence, err := uc.SequenceRepository.Next(ctx, constvars.SequenceBills)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn()
	bill := Recompute(models.Bill{
		Number:        utils.GenerateSequentialCode(constvars.CodePrefixBill, sequence),
		PatientID:     patient.ID,
		AppointmentID: request.AppointmentID,
		Items:         items,
		Discount:      request.Discount,
		Tax:           request.Tax,
		DueDate:       dueDate,
		Notes:         request.Notes,
	}, now)
	bill.SetCreatedAtUpdatedAt()

	billID, err := uc.BillRepository.CreateBill(ctx, &bill)
	if err != nil {
		return nil, err
	}
	bill.ID = billID

	uc.Log.Info("billUsecase.CreateBill succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.String(constvars.LoggingStatusKey, string(bill.Status)),
	)

	response := utils.ConvertBillToResponse(&bill, PaymentPercentage(bill))
	return &response, nil
}

// CreateConsultationBill drafts the bill that completing a visit owes. The
// receptionist edits or settles it afterwards.
func (uc *billUsecase) CreateConsultationBill(ctx context.Context, appointment *models.Appointment, fee float64) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billUsecase.CreateConsultationBill called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	item, err := NewLineItem("Consultation fee", 1, fee)
	if err != nil {
		return nil, exceptions.ErrInvalidLineItem(err)
	}

	sequence, err := uc.SequenceRepository.Next(ctx, constvars.SequenceBills)
	if err != nil {
		return nil, err
	}

	now := uc.nowFn()
	bill := Recompute(models.Bill{
		Number:        utils.GenerateSequentialCode(constvars.CodePrefixBill, sequence),
		PatientID:     appointment.PatientID,
		AppointmentID: appointment.ID,
		Items:         []models.BillLineItem{item},
		DueDate:       endOfDay(now.AddDate(0, 0, consultationDueInDays)),
		Notes:         fmt.Sprintf("Auto-generated for appointment %s", appointment.Code),
	}, now)
	bill.SetCreatedAtUpdatedAt()

	billID, err := uc.BillRepository.CreateBill(ctx, &bill)
	if err != nil {
		return nil, err
	}
	bill.ID = billID

	uc.Log.Info("billUsecase.CreateConsultationBill succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)

	response := utils.ConvertBillToResponse(&bill, PaymentPercentage(bill))
	return &response, nil
}

func (uc *billUsecase) FindAllBills(ctx context.Context, session *models.Session, request *requests.FindAllBills) ([]responses.Bill, int, error) {
	if session == nil {
		return nil, 0, exceptions.ErrMissingSessionData(nil)
	}
	if session.IsPatient() {
		request.PatientID = session.PatientID
	}

	bills, total, err := uc.BillRepository.FindAll(ctx, request)
	if err != nil {
		return nil, 0, err
	}

	results := make([]responses.Bill, 0, len(bills))
	for i := range bills {
		results = append(results, utils.ConvertBillToResponse(&bills[i], PaymentPercentage(bills[i])))
	}
	return results, total, nil
}

func (uc *billUsecase) FindBillByID(ctx context.Context, session *models.Session, billID string) (*responses.Bill, error) {
	if session == nil {
		return nil, exceptions.ErrMissingSessionData(nil)
	}

	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	if session.IsPatient() && bill.PatientID != session.PatientID {
		return nil, exceptions.ErrNotResourceOwner(nil)
	}

	response := utils.ConvertBillToResponse(bill, PaymentPercentage(*bill))
	return &response, nil
}

func (uc *billUsecase) UpdateBill(ctx context.Context, billID string, request *requests.UpdateBill) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billUsecase.UpdateBill called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
	)

	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	if bill.Status == models.BillCancelled {
		return nil, exceptions.ErrBillEditLocked(nil)
	}

	if len(request.Items) > 0 {
		items, err := buildLineItems(request.Items)
		if err != nil {
			return nil, exceptions.ErrInvalidLineItem(err)
		}
		bill.Items = items
	}
	if request.Discount != nil {
		bill.Discount = *request.Discount
	}
	if request.Tax != nil {
		bill.Tax = *request.Tax
	}
	if request.DueDate != "" {
		dueDate, err := parseDueDate(request.DueDate)
		if err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		bill.DueDate = dueDate
	}
	if request.Notes != "" {
		bill.Notes = request.Notes
	}

	updated := Recompute(*bill, uc.nowFn())
	updated.SetUpdatedAt()

	err = uc.BillRepository.UpdateBill(ctx, &updated)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("billUsecase.UpdateBill succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.String(constvars.LoggingStatusKey, string(updated.Status)),
	)

	response := utils.ConvertBillToResponse(&updated, PaymentPercentage(updated))
	return &response, nil
}

func (uc *billUsecase) RecordPayment(ctx context.Context, session *models.Session, billID string, request *requests.RecordPayment) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billUsecase.RecordPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
	)

	if session == nil {
		return nil, exceptions.ErrMissingSessionData(nil)
	}

	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	if bill.Status == models.BillCancelled {
		return nil, exceptions.ErrBillEditLocked(nil)
	}

	receivedBy := session.FullName
	if receivedBy == "" {
		receivedBy = session.UserID
	}

	now := uc.nowFn()
	bill.Payments = append(bill.Payments, models.BillPayment{
		Amount:     request.Amount,
		Method:     models.PaymentMethod(request.Method),
		Reference:  request.Reference,
		ReceivedBy: receivedBy,
		PaidAt:     now,
	})
	bill.PaidAmount += request.Amount

	wasPaid := bill.Status == models.BillPaid
	updated := Recompute(*bill, now)
	updated.SetUpdatedAt()

	err = uc.BillRepository.UpdateBill(ctx, &updated)
	if err != nil {
		return nil, err
	}

	if !wasPaid && updated.Status == models.BillPaid {
		uc.publishBillPaid(ctx, &updated)
	}

	uc.Log.Info("billUsecase.RecordPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.String(constvars.LoggingStatusKey, string(updated.Status)),
	)

	response := utils.ConvertBillToResponse(&updated, PaymentPercentage(updated))
	return &response, nil
}

func (uc *billUsecase) CancelBill(ctx context.Context, billID string, request *requests.CancelBill) (*responses.Bill, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("billUsecase.CancelBill called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
	)

	bill, err := uc.BillRepository.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, exceptions.ErrBillNotFound(nil)
	}
	if bill.Status == models.BillCancelled {
		return nil, exceptions.ErrBillEditLocked(nil)
	}

	bill.Status = models.BillCancelled
	if bill.Notes != "" {
		bill.Notes = fmt.Sprintf("%s\nCancelled: %s", bill.Notes, request.Reason)
	} else {
		bill.Notes = fmt.Sprintf("Cancelled: %s", request.Reason)
	}

	updated := Recompute(*bill, uc.nowFn())
	updated.SetUpdatedAt()

	err = uc.BillRepository.UpdateBill(ctx, &updated)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("billUsecase.CancelBill succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBillIDKey, billID),
	)

	response := utils.ConvertBillToResponse(&updated, PaymentPercentage(updated))
	return &response, nil
}

// SweepOverdue re-derives open past-due bills and persists the ones whose
// status actually moved. Returns how many moved.
func (uc *billUsecase) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	bills, err := uc.BillRepository.FindOpenPastDue(ctx, now)
	if err != nil {
		return 0, err
	}

	moved := 0
	for i := range bills {
		updated := Recompute(bills[i], now)
		if updated.Status == bills[i].Status {
			continue
		}
		updated.SetUpdatedAt()
		if err := uc.BillRepository.UpdateBill(ctx, &updated); err != nil {
			uc.Log.Error("billUsecase.SweepOverdue update failed",
				zap.String(constvars.LoggingBillIDKey, updated.ID),
				zap.Error(err),
			)
			continue
		}
		moved++
	}
	return moved, nil
}

func (uc *billUsecase) publishBillPaid(ctx context.Context, bill *models.Bill) {
	payload := map[string]interface{}{
		"bill_id":     bill.ID,
		"number":      bill.Number,
		"patient_id":  bill.PatientID,
		"total":       bill.Total,
		"paid_amount": bill.PaidAmount,
		"status":      bill.Status,
	}
	if err := uc.EventPublisher.Publish(ctx, constvars.EventBillPaidKey, payload); err != nil {
		uc.Log.Warn("billUsecase event publish failed",
			zap.String(constvars.LoggingEventKey, constvars.EventBillPaidKey),
			zap.String(constvars.LoggingBillIDKey, bill.ID),
			zap.Error(err),
		)
	}
}

func buildLineItems(rows []requests.BillLineItem) ([]models.BillLineItem, error) {
	items := make([]models.BillLineItem, 0, len(rows))
	for _, row := range rows {
		item, err := NewLineItem(row.Description, row.Quantity, row.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseDueDate reads a YYYY-MM-DD due date as the end of that local day, so
// a bill due today does not age into overdue until tomorrow.
func parseDueDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation(models.AppointmentDateLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return endOfDay(parsed), nil
}

func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).Add(24*time.Hour - time.Second)
}
