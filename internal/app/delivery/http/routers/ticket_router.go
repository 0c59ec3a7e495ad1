package routers

import (
	"pathsys-service/internal/app/delivery/http/middlewares"
	"pathsys-service/internal/app/services/core/tickets"
	"pathsys-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachTicketRoutes(router chi.Router, middlewares *middlewares.Middlewares, ticketController *tickets.TicketController) {
	router.Use(middlewares.Authenticate)

	router.Post("/", ticketController.Create)
	router.Get("/", ticketController.List)
	router.With(middlewares.RequireRoles(constvars.PathSysRoleAdmin)).Post("/{ticketCode}/close", ticketController.Close)
}
