package main

import (
	"context"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/delivery/http/controllers"
	"medicore-service/internal/app/delivery/http/middlewares"
	"medicore-service/internal/app/delivery/http/routers"
	"medicore-service/internal/app/drivers/database"
	"medicore-service/internal/app/drivers/logger"
	"medicore-service/internal/app/drivers/messaging"
	"medicore-service/internal/app/drivers/storage"
	"medicore-service/internal/app/services/core/appointments"
	"medicore-service/internal/app/services/core/auth"
	"medicore-service/internal/app/services/core/billing"
	"medicore-service/internal/app/services/core/dashboard"
	"medicore-service/internal/app/services/core/doctors"
	"medicore-service/internal/app/services/core/patients"
	"medicore-service/internal/app/services/core/sequences"
	"medicore-service/internal/app/services/core/users"
	"medicore-service/internal/app/services/shared/locker"
	"medicore-service/internal/app/services/shared/notifications"
	"medicore-service/internal/app/services/shared/redis"
	"medicore-service/internal/app/services/shared/session"
	minioStorage "medicore-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	indexCtx, cancelIndexCtx := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.EnsureIndexes(indexCtx, mongoDB.Database(driverConfig.MongoDB.DbName))
	cancelIndexCtx()
	if err != nil {
		logrus.Fatalf("Error ensuring mongo indexes: %v", err)
	}

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Minio:          minioClient,
		Logger:         log,
		RabbitMQ:       rabbitMQConnection,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap)

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

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	// Shutdown the server
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Printf("Error during resource shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Shared services
	sessionService := session.NewSessionService(redisRepository, bootstrap.InternalConfig)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	objectStorage := minioStorage.NewMinioStorage(bootstrap.Minio)
	eventPublisher, err := notifications.NewRabbitMQPublisher(bootstrap.RabbitMQ, bootstrap.Logger)
	if err != nil {
		logrus.Fatalf("Error initializing event publisher: %v", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, sessionService, bootstrap.InternalConfig)

	// Repositories
	sequenceMongoRepository := sequences.NewSequenceMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	doctorMongoRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	billMongoRepository := billing.NewBillMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)

	// Auth
	authUsecase := auth.NewAuthUsecase(
		userMongoRepository,
		patientMongoRepository,
		doctorMongoRepository,
		sequenceMongoRepository,
		sessionService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase)

	// Patient
	patientUsecase := patients.NewPatientUsecase(
		patientMongoRepository,
		userMongoRepository,
		sequenceMongoRepository,
		objectStorage,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	patientController := controllers.NewPatientController(bootstrap.Logger, patientUsecase)

	// Doctor
	doctorUsecase := doctors.NewDoctorUsecase(
		doctorMongoRepository,
		appointmentMongoRepository,
		sequenceMongoRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase)

	// Bill
	billUsecase := billing.NewBillUsecase(
		billMongoRepository,
		patientMongoRepository,
		sequenceMongoRepository,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	billController := controllers.NewBillController(bootstrap.Logger, billUsecase)

	// Appointment
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentMongoRepository,
		patientMongoRepository,
		doctorMongoRepository,
		sequenceMongoRepository,
		billUsecase,
		lockService,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)

	// Dashboard
	dashboardUsecase := dashboard.NewDashboardUsecase(
		patientMongoRepository,
		doctorMongoRepository,
		appointmentMongoRepository,
		billMongoRepository,
		bootstrap.Logger,
	)
	dashboardController := controllers.NewDashboardController(bootstrap.Logger, dashboardUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		authController,
		patientController,
		doctorController,
		appointmentController,
		billController,
		dashboardController,
	)
}
