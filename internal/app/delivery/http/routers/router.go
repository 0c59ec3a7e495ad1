package routers

import (
	"fmt"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/delivery/http/middlewares"
	"pathsys-service/internal/app/services/core/approvals"
	"pathsys-service/internal/app/services/core/auth"
	"pathsys-service/internal/app/services/core/cases"
	"pathsys-service/internal/app/services/core/pathologists"
	"pathsys-service/internal/app/services/core/statistics"
	"pathsys-service/internal/app/services/core/tickets"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	authController *auth.AuthController,
	caseController *cases.CaseController,
	approvalController *approvals.ApprovalController,
	statisticsController *statistics.StatisticsController,
	pathologistController *pathologists.PathologistController,
	ticketController *tickets.TicketController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestID)
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, middlewares, authController)
			})

			r.Route("/cases", func(r chi.Router) {
				attachCaseRoutes(r, middlewares, caseController)
			})

			r.Route("/approvals", func(r chi.Router) {
				attachApprovalRoutes(r, middlewares, approvalController)
			})

			r.Route("/statistics", func(r chi.Router) {
				attachStatisticsRoutes(r, middlewares, statisticsController)
			})

			r.Route("/pathologists", func(r chi.Router) {
				attachPathologistRoutes(r, middlewares, pathologistController)
			})

			r.Route("/tickets", func(r chi.Router) {
				attachTicketRoutes(r, middlewares, ticketController)
			})
		})
	})
}
