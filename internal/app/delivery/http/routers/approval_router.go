package routers

import (
	"pathsys-service/internal/app/delivery/http/middlewares"
	"pathsys-service/internal/app/services/core/approvals"
	"pathsys-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachApprovalRoutes(router chi.Router, middlewares *middlewares.Middlewares, approvalController *approvals.ApprovalController) {
	router.Use(middlewares.Authenticate)

	router.Post("/", approvalController.Create)
	router.Get("/", approvalController.List)
	router.Get("/{approvalCode}", approvalController.Get)
	router.Put("/{approvalCode}", approvalController.Update)
	router.Put("/{approvalCode}/tests", approvalController.UpdateTests)
	router.Post("/{approvalCode}/manage", approvalController.Manage)

	// Only admins resolve requests.
	resolver := middlewares.RequireRoles(constvars.PathSysRoleAdmin)
	router.With(resolver).Post("/{approvalCode}/approve", approvalController.Approve)
	router.With(resolver).Post("/{approvalCode}/reject", approvalController.Reject)
}
