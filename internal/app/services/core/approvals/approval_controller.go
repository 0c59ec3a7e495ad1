package approvals

import (
	"context"
	"net/http"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/exceptions"
	"pathsys-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ApprovalController struct {
	Log             *zap.Logger
	ApprovalUsecase ApprovalUsecase
}

func NewApprovalController(logger *zap.Logger, approvalUsecase ApprovalUsecase) *ApprovalController {
	return &ApprovalController{
		Log:             logger,
		ApprovalUsecase: approvalUsecase,
	}
}

func (ctrl *ApprovalController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)

	request := new(requests.CreateApproval)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.CreateApproval(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ApprovalController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingApprovalCodeKey, result.ApprovalCode),
		zap.String(constvars.LoggingCaseCodeKey, result.OriginalCaseCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) Get(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, "approvalCode")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.GetApproval(ctx, approvalCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetApprovalSuccessMessage, result)
}

func (ctrl *ApprovalController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := &requests.ListApprovals{
		State:            query.Get("state"),
		OriginalCaseCode: query.Get("original_case"),
		Skip:             utils.GetQueryInt(r, "skip", 0),
		Limit:            utils.GetQueryInt(r, "limit", 0),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.ApprovalUsecase.ListApprovals(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	limit := request.Limit
	if limit == 0 {
		limit = constvars.ListingDefaultLimit
	}
	pagination := utils.BuildPaginationResponse(int(total), request.Skip/limit+1, limit, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListApprovalsSuccessMessage, pagination, result)
}

func (ctrl *ApprovalController) Manage(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)
	approvalCode := chi.URLParam(r, "approvalCode")

	managedBy := ""
	if caller := utils.GetCurrentUser(r); caller != nil {
		managedBy = caller.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.ManageApproval(ctx, approvalCode, managedBy)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ApprovalController.Manage succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingApprovalCodeKey, approvalCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ManageApprovalSuccess, result)
}

func (ctrl *ApprovalController) Approve(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)
	approvalCode := chi.URLParam(r, "approvalCode")

	approvedBy := ""
	if caller := utils.GetCurrentUser(r); caller != nil {
		approvedBy = caller.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.ApproveRequest(ctx, approvalCode, approvedBy)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	newCaseCode := ""
	if result.NewCase != nil {
		newCaseCode = result.NewCase.CaseCode
	}
	ctrl.Log.Info("ApprovalController.Approve succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingApprovalCodeKey, approvalCode),
		zap.String(constvars.LoggingCaseCodeKey, newCaseCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApproveRequestSuccess, result)
}

func (ctrl *ApprovalController) Reject(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)
	approvalCode := chi.URLParam(r, "approvalCode")

	managedBy := ""
	if caller := utils.GetCurrentUser(r); caller != nil {
		managedBy = caller.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.RejectRequest(ctx, approvalCode, managedBy)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("ApprovalController.Reject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingApprovalCodeKey, approvalCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RejectRequestSuccess, result)
}

func (ctrl *ApprovalController) Update(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, "approvalCode")

	request := new(requests.UpdateApproval)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.UpdateApproval(ctx, approvalCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateApprovalSuccess, result)
}

func (ctrl *ApprovalController) UpdateTests(w http.ResponseWriter, r *http.Request) {
	approvalCode := chi.URLParam(r, "approvalCode")

	request := new(requests.UpdateComplementaryTests)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ApprovalUsecase.UpdateComplementaryTests(ctx, approvalCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateComplementarySuccess, result)
}
