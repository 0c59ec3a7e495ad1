package routers

import (
	"pathsys-service/internal/app/delivery/http/middlewares"
	"pathsys-service/internal/app/services/core/cases"
	"pathsys-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachCaseRoutes(router chi.Router, middlewares *middlewares.Middlewares, caseController *cases.CaseController) {
	router.Use(middlewares.Authenticate)

	router.Post("/", caseController.Create)
	router.Get("/", caseController.List)
	router.Get("/{caseCode}", caseController.Get)
	router.Put("/{caseCode}", caseController.Update)
	router.With(middlewares.RequireRoles(constvars.PathSysRoleAdmin)).Delete("/{caseCode}", caseController.Delete)
	router.Post("/{caseCode}/sign", caseController.Sign)
	router.Post("/{caseCode}/notes", caseController.AddNote)
	router.Get("/{caseCode}/report-snapshot", caseController.ReportSnapshot)
}
