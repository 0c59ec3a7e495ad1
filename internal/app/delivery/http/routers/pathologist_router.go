package routers

import (
	"pathsys-service/internal/app/delivery/http/middlewares"
	"pathsys-service/internal/app/services/core/pathologists"

	"github.com/go-chi/chi/v5"
)

func attachPathologistRoutes(router chi.Router, middlewares *middlewares.Middlewares, pathologistController *pathologists.PathologistController) {
	router.Use(middlewares.Authenticate)

	router.Get("/", pathologistController.List)
	router.Get("/{pathologistCode}", pathologistController.Get)
}
