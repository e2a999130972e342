package main

import (
	"context"
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/delivery/http/controllers"
	"medisync-service/internal/app/delivery/http/middlewares"
	"medisync-service/internal/app/delivery/http/routers"
	"medisync-service/internal/app/drivers/database"
	"medisync-service/internal/app/drivers/logger"
	"medisync-service/internal/app/drivers/messaging"
	"medisync-service/internal/app/drivers/storage"
	"medisync-service/internal/app/services/core/affiliations"
	"medisync-service/internal/app/services/core/appointments"
	"medisync-service/internal/app/services/core/dashboard"
	"medisync-service/internal/app/services/core/healthcenters"
	"medisync-service/internal/app/services/core/identity"
	"medisync-service/internal/app/services/core/patients"
	"medisync-service/internal/app/services/core/practitioners"
	"medisync-service/internal/app/services/core/profiles"
	"medisync-service/internal/app/services/core/session"
	"medisync-service/internal/app/services/core/settings"
	platformAuth "medisync-service/internal/app/services/platform/auth"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/app/services/shared/audit"
	"medisync-service/internal/app/services/shared/eventqueue"
	"medisync-service/internal/app/services/shared/locker"
	"medisync-service/internal/app/services/shared/notifier"
	"medisync-service/internal/app/services/shared/redis"
	avatarStorage "medisync-service/internal/app/services/shared/storage"
	"medisync-service/internal/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	accessLogger := logger.NewAccessLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	metrics.Init()

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         log,
		AccessLogger:   accessLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		log.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		log.Info("Server started", zap.String("addr", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Error releasing resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)

	// Notifications
	notifierService := notifier.NewNotifierService(
		redisRepository,
		time.Duration(internalConfig.Notification.TTLInMinutes)*time.Minute,
		internalConfig.Notification.MaxPerDrain,
		log,
	)

	// Audit
	auditRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName, internalConfig.Audit.Collection)
	auditDispatcher := audit.NewDispatcher(auditRepository, internalConfig.Audit.BufferSize, log)
	bootstrap.RegisterStopper(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := auditDispatcher.Close(ctx); err != nil {
			log.Error("Error flushing audit events", zap.Error(err))
		}
	})

	// Appointment events
	eventPublisher, err := eventqueue.NewPublisher(bootstrap.RabbitMQ, log, internalConfig.RabbitMQ.AppointmentEventsQueue)
	if err != nil {
		return err
	}
	bootstrap.RegisterStopper(func() {
		if err := eventPublisher.Close(); err != nil {
			log.Error("Error closing appointment event publisher", zap.Error(err))
		}
	})

	// Platform
	platformTimeout := time.Duration(internalConfig.Platform.RequestTimeoutInSeconds) * time.Second
	restClient := rest.NewClient(internalConfig.Platform.BaseUrl, internalConfig.Platform.AnonKey, platformTimeout, log)
	sessionStore := platformAuth.NewRedisSessionStore(
		redisRepository,
		time.Duration(internalConfig.Session.StoreTTLInHours)*time.Hour,
	)
	authFactory := platformAuth.NewFactory(platformAuth.Config{
		BaseUrl:        internalConfig.Platform.BaseUrl,
		AnonKey:        internalConfig.Platform.AnonKey,
		Timeout:        platformTimeout,
		RefreshMargin:  time.Duration(internalConfig.Session.RefreshMarginInSeconds) * time.Second,
		RefreshLockTTL: time.Duration(internalConfig.Session.RefreshLockTTLInSeconds) * time.Second,
	}, sessionStore, lockService, log)

	// Profiles
	profileRepository := profiles.NewProfilePlatformRepository(restClient, log)
	privilegeChecker := profiles.NewPrivilegeChecker(restClient, log)
	avatarStore := avatarStorage.NewMinioStorage(bootstrap.Minio, internalConfig.Minio.AvatarBucketName, internalConfig.Minio.PublicBaseUrl, log)
	profileUsecase := profiles.NewProfileUsecase(profileRepository, avatarStore, auditDispatcher, log)

	// Sessions
	registry := session.NewRegistry(func(sessionID string) *identity.Resolver {
		return identity.NewResolver(authFactory.ForSession(sessionID), privilegeChecker, profileRepository, notifierService, log)
	}, redisRepository, time.Duration(internalConfig.Session.IdleResolverTTLInMinutes)*time.Minute, log)
	sweepWorker := session.NewSweepWorker(log, registry, time.Duration(internalConfig.Session.SweepIntervalInSeconds)*time.Second)
	stopSweep := sweepWorker.Start(context.Background())
	bootstrap.RegisterStopper(registry.DisposeAll)
	bootstrap.RegisterStopper(stopSweep)

	// Appointments
	appointmentRepository := appointments.NewAppointmentPlatformRepository(restClient, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, notifierService, eventPublisher, auditDispatcher, log)

	// Administration
	practitionerRepository := practitioners.NewPractitionerPlatformRepository(restClient, log)
	practitionerUsecase := practitioners.NewPractitionerUsecase(practitionerRepository, profileRepository, auditDispatcher, log)

	healthCenterRepository := healthcenters.NewHealthCenterPlatformRepository(restClient, log)
	affiliationRepository := affiliations.NewAffiliationPlatformRepository(restClient, log)
	healthCenterUsecase := healthcenters.NewHealthCenterUsecase(healthCenterRepository, affiliationRepository, auditDispatcher, log)
	affiliationUsecase := affiliations.NewAffiliationUsecase(affiliationRepository, profileRepository, auditDispatcher, log)

	patientUsecase := patients.NewPatientUsecase(profileRepository, auditDispatcher, log)

	settingsRepository := settings.NewSettingsPlatformRepository(restClient, log)
	settingsUsecase := settings.NewSettingsUsecase(
		settingsRepository,
		redisRepository,
		auditDispatcher,
		time.Duration(internalConfig.Settings.CacheTTLInMinutes)*time.Minute,
		log,
	)

	dashboardUsecase := dashboard.NewDashboardUsecase(profileRepository, practitionerRepository, healthCenterRepository, appointmentUsecase, log)

	// Middlewares
	signInLimiter := middlewares.NewSignInLimiter(internalConfig.SignIn, log)
	middlewares := middlewares.NewMiddlewares(log, internalConfig, registry)

	routers.SetupRoutes(bootstrap.Router, internalConfig, bootstrap.AccessLogger, middlewares, signInLimiter, routers.Controllers{
		Auth:         controllers.NewAuthController(log, internalConfig, notifierService),
		Navigation:   controllers.NewNavigationController(log, internalConfig),
		Notification: controllers.NewNotificationController(log, internalConfig, notifierService),
		Profile:      controllers.NewProfileController(log, internalConfig, profileUsecase),
		Appointment:  controllers.NewAppointmentController(log, internalConfig, appointmentUsecase),
		Practitioner: controllers.NewPractitionerController(log, internalConfig, practitionerUsecase),
		HealthCenter: controllers.NewHealthCenterController(log, internalConfig, healthCenterUsecase),
		Affiliation:  controllers.NewAffiliationController(log, internalConfig, affiliationUsecase),
		Patient:      controllers.NewPatientController(log, internalConfig, patientUsecase),
		Settings:     controllers.NewSettingsController(log, internalConfig, settingsUsecase),
		Dashboard:    controllers.NewDashboardController(log, internalConfig, dashboardUsecase),
		Operations:   controllers.NewOperationsController(log, internalConfig, registry),
	})

	return nil
}
