package dashboard

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/utils"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type dashboardUsecase struct {
	ProfileRepository      contracts.ProfileRepository
	PractitionerRepository contracts.PractitionerRepository
	HealthCenterRepository contracts.HealthCenterRepository
	AppointmentUsecase     contracts.AppointmentUsecase
	Log                    *zap.Logger
}

func NewDashboardUsecase(
	profileRepository contracts.ProfileRepository,
	practitionerRepository contracts.PractitionerRepository,
	healthCenterRepository contracts.HealthCenterRepository,
	appointmentUsecase contracts.AppointmentUsecase,
	logger *zap.Logger,
) contracts.DashboardUsecase {
	return &dashboardUsecase{
		ProfileRepository:      profileRepository,
		PractitionerRepository: practitionerRepository,
		HealthCenterRepository: healthCenterRepository,
		AppointmentUsecase:     appointmentUsecase,
		Log:                    logger,
	}
}

// Stats runs every count concurrently. Appointment counts come from the
// workflow and degrade to zero on failure; the other counts fail the call.
func (uc *dashboardUsecase) Stats(ctx context.Context) (*models.DashboardStats, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("dashboardUsecase.Stats called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	stats := &models.DashboardStats{
		AppointmentsByStatus: make(map[models.AppointmentStatus]int, len(models.AppointmentStatuses)),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := uc.ProfileRepository.CountPatients(gctx)
		stats.TotalPatients = count
		return err
	})
	g.Go(func() error {
		count, err := uc.PractitionerRepository.Count(gctx)
		stats.TotalPractitioners = count
		return err
	})
	g.Go(func() error {
		count, err := uc.HealthCenterRepository.Count(gctx)
		stats.TotalCenters = count
		return err
	})
	g.Go(func() error {
		stats.TotalAppointments = uc.AppointmentUsecase.Count(gctx, models.AppointmentFilters{})
		return nil
	})
	for _, status := range models.AppointmentStatuses {
		status := status
		g.Go(func() error {
			count := uc.AppointmentUsecase.Count(gctx, models.AppointmentFilters{Status: string(status)})
			mu.Lock()
			stats.AppointmentsByStatus[status] = count
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uc.Log.Error("dashboardUsecase.Stats error counting entities",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("dashboardUsecase.Stats succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, stats.TotalAppointments),
	)
	return stats, nil
}
