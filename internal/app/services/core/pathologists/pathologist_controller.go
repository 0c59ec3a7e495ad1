package pathologists

import (
	"context"
	"net/http"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PathologistController struct {
	Log                *zap.Logger
	PathologistUsecase PathologistUsecase
}

func NewPathologistController(logger *zap.Logger, pathologistUsecase PathologistUsecase) *PathologistController {
	return &PathologistController{
		Log:                logger,
		PathologistUsecase: pathologistUsecase,
	}
}

func (ctrl *PathologistController) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("include_inactive") == ""

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PathologistUsecase.ListPathologists(ctx, activeOnly)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListPathologistsSuccess, result)
}

func (ctrl *PathologistController) Get(w http.ResponseWriter, r *http.Request) {
	pathologistCode := chi.URLParam(r, "pathologistCode")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.PathologistUsecase.GetPathologist(ctx, pathologistCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPathologistSuccess, result)
}
