package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/dto/requests"
	"medicore-service/internal/pkg/exceptions"
	"medicore-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BillController struct {
	Log         *zap.Logger
	BillUsecase contracts.BillUsecase
}

var (
	billControllerInstance *BillController
	onceBillController     sync.Once
)

func NewBillController(logger *zap.Logger, billUsecase contracts.BillUsecase) *BillController {
	onceBillController.Do(func() {
		billControllerInstance = &BillController{
			Log:         logger,
			BillUsecase: billUsecase,
		}
	})
	return billControllerInstance
}

func (ctrl *BillController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.CreateBill)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreateBillRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BillUsecase.CreateBill(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "bill_created", requestID,
		zap.String(constvars.LoggingBillIDKey, response.ID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBillSuccessMessage, response)
}

func (ctrl *BillController) FindAll(w http.ResponseWriter, r *http.Request) {
	request := utils.BuildFindAllBillsRequest(r)

	session, _ := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.BillUsecase.FindAllBills(ctx, session, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetBillSuccessMessage, pagination, result)
}

func (ctrl *BillController) FindByID(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, constvars.URLParamBillID)
	if err := utils.ValidateUrlParamID(billID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamBillID))
		return
	}

	session, _ := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BillUsecase.FindBillByID(ctx, session, billID)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBillSuccessMessage, response)
}

func (ctrl *BillController) Update(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, constvars.URLParamBillID)
	if err := utils.ValidateUrlParamID(billID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamBillID))
		return
	}

	request := new(requests.UpdateBill)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeUpdateBillRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BillUsecase.UpdateBill(ctx, billID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateBillSuccessMessage, response)
}

func (ctrl *BillController) RecordPayment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	billID := chi.URLParam(r, constvars.URLParamBillID)
	if err := utils.ValidateUrlParamID(billID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamBillID))
		return
	}

	request := new(requests.RecordPayment)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeRecordPaymentRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	session, _ := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BillUsecase.RecordPayment(ctx, session, billID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "payment_recorded", requestID,
		zap.String(constvars.LoggingBillIDKey, billID),
		zap.Float64("amount", request.Amount),
		zap.String("method", request.Method),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RecordPaymentSuccessMessage, response)
}

func (ctrl *BillController) Cancel(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	billID := chi.URLParam(r, constvars.URLParamBillID)
	if err := utils.ValidateUrlParamID(billID); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamBillID))
		return
	}

	request := new(requests.CancelBill)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCancelBillRequest(request)

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BillUsecase.CancelBill(ctx, billID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "bill_cancelled", requestID,
		zap.String(constvars.LoggingBillIDKey, billID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelBillSuccessMessage, response)
}
