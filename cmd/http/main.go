package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/delivery/http/middlewares"
	"pathsys-service/internal/app/delivery/http/routers"
	"pathsys-service/internal/app/drivers/database"
	"pathsys-service/internal/app/drivers/logger"
	"pathsys-service/internal/app/drivers/messaging"
	"pathsys-service/internal/app/drivers/storage"
	"pathsys-service/internal/app/services/core/approvals"
	"pathsys-service/internal/app/services/core/auth"
	"pathsys-service/internal/app/services/core/cases"
	"pathsys-service/internal/app/services/core/consecutives"
	"pathsys-service/internal/app/services/core/pathologists"
	"pathsys-service/internal/app/services/core/statistics"
	"pathsys-service/internal/app/services/core/tickets"
	"pathsys-service/internal/app/services/shared/mailer"
	sharedredis "pathsys-service/internal/app/services/shared/redis"
	sharedstorage "pathsys-service/internal/app/services/shared/storage"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapTheApp(bootstrap, minioClient)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()
	logrus.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logrus.Println("Waiting for pending requests to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Failed to close connections: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client) {
	// Shared infrastructure
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	objectStorage := sharedstorage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)

	notifier, err := mailer.NewNotifierService(bootstrap.RabbitMQ, bootstrap.InternalConfig.App.NotificationQueue)
	if err != nil {
		logrus.Fatalf("Failed to initialize notifier: %v", err)
	}
	mailerStop, err := mailer.StartWorker(
		bootstrap.RabbitMQ,
		bootstrap.InternalConfig.App.NotificationQueue,
		bootstrap.InternalConfig.App.MailerRatePerMinute,
		mailer.NewLogSender(bootstrap.Logger),
		bootstrap.Logger,
	)
	if err != nil {
		logrus.Fatalf("Failed to start mailer worker: %v", err)
	}
	bootstrap.MailerStop = mailerStop

	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Consecutives
	consecutiveRepository := consecutives.NewConsecutiveMongoRepository(bootstrap.MongoDB, dbName)

	// Auth
	userRepository := auth.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	authUsecase := auth.NewAuthUsecase(userRepository, redisRepository, bootstrap.InternalConfig)
	authController := auth.NewAuthController(bootstrap.Logger, authUsecase)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, authUsecase, bootstrap.InternalConfig)

	// Cases
	caseRepository := cases.NewCaseMongoRepository(bootstrap.MongoDB, dbName)
	caseUsecase := cases.NewCaseUsecase(caseRepository, consecutiveRepository, notifier, objectStorage, bootstrap.InternalConfig, bootstrap.Logger)
	caseController := cases.NewCaseController(bootstrap.Logger, caseUsecase)

	// Approvals
	approvalRepository := approvals.NewApprovalMongoRepository(bootstrap.MongoDB, dbName)
	approvalUsecase := approvals.NewApprovalUsecase(approvalRepository, caseRepository, consecutiveRepository, bootstrap.Logger)
	approvalController := approvals.NewApprovalController(bootstrap.Logger, approvalUsecase)

	// Statistics
	statisticsUsecase := statistics.NewStatisticsUsecase(caseRepository, bootstrap.InternalConfig)
	statisticsController := statistics.NewStatisticsController(bootstrap.Logger, statisticsUsecase)

	// Pathologists
	pathologistRepository := pathologists.NewPathologistMongoRepository(bootstrap.MongoDB, dbName)
	pathologistUsecase := pathologists.NewPathologistUsecase(pathologistRepository, objectStorage, bootstrap.InternalConfig, bootstrap.Logger)
	pathologistController := pathologists.NewPathologistController(bootstrap.Logger, pathologistUsecase)

	// Tickets
	ticketRepository := tickets.NewTicketMongoRepository(bootstrap.MongoDB, dbName)
	ticketUsecase := tickets.NewTicketUsecase(ticketRepository, consecutiveRepository, notifier, bootstrap.Logger)
	ticketController := tickets.NewTicketController(bootstrap.Logger, ticketUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		caseController,
		approvalController,
		statisticsController,
		pathologistController,
		ticketController,
	)
}
