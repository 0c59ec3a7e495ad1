package tickets

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

type TicketController struct {
	Log           *zap.Logger
	TicketUsecase TicketUsecase
}

func NewTicketController(logger *zap.Logger, ticketUsecase TicketUsecase) *TicketController {
	return &TicketController{
		Log:           logger,
		TicketUsecase: ticketUsecase,
	}
}

func (ctrl *TicketController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)

	request := new(requests.CreateTicket)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	reportedBy := ""
	if caller := utils.GetCurrentUser(r); caller != nil {
		reportedBy = caller.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.TicketUsecase.CreateTicket(ctx, request, reportedBy)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("TicketController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketCodeKey, result.TicketCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateTicketSuccessMessage, result)
}

func (ctrl *TicketController) List(w http.ResponseWriter, r *http.Request) {
	request := &requests.ListTickets{
		State: r.URL.Query().Get("state"),
		Skip:  utils.GetQueryInt(r, "skip", 0),
		Limit: utils.GetQueryInt(r, "limit", 0),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, total, err := ctrl.TicketUsecase.ListTickets(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	limit := request.Limit
	if limit == 0 {
		limit = constvars.ListingDefaultLimit
	}
	pagination := utils.BuildPaginationResponse(int(total), request.Skip/limit+1, limit, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.ListTicketsSuccessMessage, pagination, result)
}

func (ctrl *TicketController) Close(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r)
	ticketCode := chi.URLParam(r, "ticketCode")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.TicketUsecase.CloseTicket(ctx, ticketCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("TicketController.Close succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTicketCodeKey, ticketCode),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CloseTicketSuccessMessage, result)
}
