package cases

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

type CaseController struct {
	Log         *zap.Logger
	CaseUsecase CaseUsecase
}

func NewCaseController(logger *zap.Logger, caseUsecase CaseUsecase) *CaseController {
	return &CaseController{
		Log:         logger,
		CaseUsecase: caseUsecase,
	}
}

func (ctrl *CaseController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)

	request := new(requests.CreateCase)
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

	result, err := ctrl.CaseUsecase.CreateCase(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("CaseController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseCodeKey, result.CaseCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateCaseSuccessMessage, result)
}

func (ctrl *CaseController) Get(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, "caseCode")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CaseUsecase.GetCase(ctx, caseCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseSuccessMessage, result)
}

func (ctrl *CaseController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)
	caseCode := chi.URLParam(r, "caseCode")

	request := new(requests.UpdateCase)
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

	result, err := ctrl.CaseUsecase.UpdateCase(ctx, caseCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("CaseController.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseCodeKey, caseCode),
		zap.String(constvars.LoggingStateKey, result.State),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateCaseSuccessMessage, result)
}

func (ctrl *CaseController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)
	caseCode := chi.URLParam(r, "caseCode")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CaseUsecase.DeleteCase(ctx, caseCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("CaseController.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseCodeKey, caseCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteCaseSuccessMessage, result)
}

func (ctrl *CaseController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	request := &requests.ListCases{
		FreeText:    query.Get("q"),
		Pathologist: query.Get("pathologist"),
		Entity:      query.Get("entity"),
		State:       query.Get("state"),
		TestID:      query.Get("test"),
		DateFrom:    query.Get("date_from"),
		DateTo:      query.Get("date_to"),
		Skip:        utils.GetQueryInt(r, "skip", 0),
		Limit:       utils.GetQueryInt(r, "limit", 0),
	}
	caller := utils.GetCurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.CaseUsecase.ListCases(ctx, request, caller)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	limit := request.Limit
	if limit == 0 {
		limit = constvars.ListingDefaultLimit
	}
	pagination := utils.BuildPaginationResponse(int(total), request.Skip/limit+1, limit, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListCasesSuccessMessage, pagination, result)
}

func (ctrl *CaseController) Sign(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)
	caseCode := chi.URLParam(r, "caseCode")

	request := new(requests.SignCase)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CaseUsecase.SignCase(ctx, caseCode, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("CaseController.Sign succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCaseCodeKey, caseCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SignCaseSuccessMessage, result)
}

func (ctrl *CaseController) AddNote(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, "caseCode")

	request := new(requests.AddCaseNote)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	author := ""
	if caller := utils.GetCurrentUser(r); caller != nil {
		author = caller.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CaseUsecase.AddNote(ctx, caseCode, author, request.Text)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AddCaseNoteSuccessMessage, result)
}

func (ctrl *CaseController) ReportSnapshot(w http.ResponseWriter, r *http.Request) {
	caseCode := chi.URLParam(r, "caseCode")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.CaseUsecase.GetReportSnapshot(ctx, caseCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCaseSnapshotSuccess, result)
}
