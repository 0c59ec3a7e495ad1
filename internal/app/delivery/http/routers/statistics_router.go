package routers

import (
	"pathsys-service/internal/app/delivery/http/middlewares"
	"pathsys-service/internal/app/services/core/statistics"

	"github.com/go-chi/chi/v5"
)

func attachStatisticsRoutes(router chi.Router, middlewares *middlewares.Middlewares, statisticsController *statistics.StatisticsController) {
	router.Use(middlewares.Authenticate)

	router.Get("/monthly", statisticsController.Monthly)
	router.Get("/comparison", statisticsController.Comparison)
	router.Get("/opportunity", statisticsController.Opportunity)
	router.Get("/pathologists", statisticsController.Performance)
	router.Get("/pathologists/{name}/entities", statisticsController.Entities)
	router.Get("/pathologists/{name}/tests", statisticsController.Tests)
}
