package statistics

import (
	"context"
	"net/http"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/exceptions"
	"pathsys-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type StatisticsController struct {
	Log               *zap.Logger
	StatisticsUsecase StatisticsUsecase
}

func NewStatisticsController(logger *zap.Logger, statisticsUsecase StatisticsUsecase) *StatisticsController {
	return &StatisticsController{
		Log:               logger,
		StatisticsUsecase: statisticsUsecase,
	}
}

func (ctrl *StatisticsController) Monthly(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	request := &requests.MonthlyStats{
		Year:        utils.GetQueryInt(r, "year", now.Year()),
		Pathologist: r.URL.Query().Get("pathologist"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.StatisticsUsecase.MonthlyStats(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) Comparison(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	year := utils.GetQueryInt(r, "year", now.Year())
	month := utils.GetQueryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.StatisticsUsecase.ComparisonPanels(ctx, year, month)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) Opportunity(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	request := &requests.OpportunityStats{
		Year:          utils.GetQueryInt(r, "year", now.Year()),
		Month:         utils.GetQueryInt(r, "month", int(now.Month())),
		ThresholdDays: utils.GetQueryInt(r, "threshold_days", 0),
		Pathologist:   r.URL.Query().Get("pathologist"),
	}
	if request.Month < 1 || request.Month > 12 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.StatisticsUsecase.OpportunityStats(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) Performance(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	request := &requests.PathologistPerformance{
		Year:          utils.GetQueryInt(r, "year", now.Year()),
		Month:         utils.GetQueryInt(r, "month", int(now.Month())),
		ThresholdDays: utils.GetQueryInt(r, "threshold_days", 0),
		Name:          r.URL.Query().Get("name"),
	}
	if request.Month < 1 || request.Month > 12 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.StatisticsUsecase.PathologistPerformance(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) Entities(w http.ResponseWriter, r *http.Request) {
	request := breakdownRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.StatisticsUsecase.PathologistEntities(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func (ctrl *StatisticsController) Tests(w http.ResponseWriter, r *http.Request) {
	request := breakdownRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.StatisticsUsecase.PathologistTests(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetStatisticsSuccessMessage, result)
}

func breakdownRequest(r *http.Request) *requests.PathologistBreakdown {
	now := time.Now().UTC()
	return &requests.PathologistBreakdown{
		Name:  chi.URLParam(r, "name"),
		Year:  utils.GetQueryInt(r, "year", now.Year()),
		Month: utils.GetQueryInt(r, "month", 0),
	}
}
