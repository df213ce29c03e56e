package main

import (
	"context"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/drivers/database"
	"medicore-service/internal/app/drivers/logger"
	"medicore-service/internal/app/drivers/messaging"
	"medicore-service/internal/app/services/core/appointments"
	"medicore-service/internal/app/services/core/billing"
	"medicore-service/internal/app/services/core/doctors"
	"medicore-service/internal/app/services/core/maintenance"
	"medicore-service/internal/app/services/core/patients"
	"medicore-service/internal/app/services/core/sequences"
	"medicore-service/internal/app/services/shared/locker"
	"medicore-service/internal/app/services/shared/notifications"
	"medicore-service/internal/app/services/shared/redis"
	"os"
	"os/signal"
	"syscall"
	"time"

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

	redisRepository := redis.NewRedisRepository(redisClient)
	lockService := locker.NewLockService(redisRepository, log)
	eventPublisher, err := notifications.NewRabbitMQPublisher(rabbitMQConnection, log)
	if err != nil {
		logrus.Fatalf("Error initializing event publisher: %v", err)
	}

	sequenceMongoRepository := sequences.NewSequenceMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	patientMongoRepository := patients.NewPatientMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	doctorMongoRepository := doctors.NewDoctorMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(mongoDB, driverConfig.MongoDB.DbName)
	billMongoRepository := billing.NewBillMongoRepository(mongoDB, driverConfig.MongoDB.DbName)

	billUsecase := billing.NewBillUsecase(
		billMongoRepository,
		patientMongoRepository,
		sequenceMongoRepository,
		eventPublisher,
		internalConfig,
		log,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentMongoRepository,
		patientMongoRepository,
		doctorMongoRepository,
		sequenceMongoRepository,
		billUsecase,
		lockService,
		eventPublisher,
		internalConfig,
		log,
	)

	worker := maintenance.NewWorker(log, internalConfig, lockService, billUsecase, appointmentUsecase)
	worker.Start(context.Background())

	bootstrap := config.Bootstrap{
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         log,
		RabbitMQ:       rabbitMQConnection,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
		WorkerStop:     worker.Stop,
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for the running sweep to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Printf("Error during resource shutdown: %v", err)
	}

	logrus.Println("Worker exiting")
}
