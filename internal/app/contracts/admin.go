package contracts

import (
	"context"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/dto/requests"
)

type PractitionerRepository interface {
	FindAll(ctx context.Context) ([]models.PractitionerRecord, error)
	FindUserIDs(ctx context.Context) ([]string, error)
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, request *requests.CreatePractitioner) (*models.PractitionerRecord, error)
	Update(ctx context.Context, id string, request *requests.UpdatePractitioner) (*models.PractitionerRecord, error)
	Delete(ctx context.Context, id string) error
}

type PractitionerUsecase interface {
	List(ctx context.Context) ([]models.PractitionerWithProfile, error)
	AvailableUsers(ctx context.Context) ([]models.AvailableUser, error)
	Create(ctx context.Context, request *requests.CreatePractitioner) (*models.PractitionerRecord, error)
	Update(ctx context.Context, id string, request *requests.UpdatePractitioner) (*models.PractitionerRecord, error)
	Delete(ctx context.Context, id string) error
}

type HealthCenterRepository interface {
	FindAll(ctx context.Context) ([]models.HealthCenter, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, request *requests.HealthCenter, createdBy string) (*models.HealthCenter, error)
	Update(ctx context.Context, id string, request *requests.HealthCenter) (*models.HealthCenter, error)
	Delete(ctx context.Context, id string) error
}

type HealthCenterUsecase interface {
	List(ctx context.Context) ([]models.HealthCenter, error)
	Create(ctx context.Context, request *requests.HealthCenter) (*models.HealthCenter, error)
	Update(ctx context.Context, id string, request *requests.HealthCenter) (*models.HealthCenter, error)
	Delete(ctx context.Context, id string) error
}

type AffiliationRepository interface {
	FindAll(ctx context.Context) ([]models.PractitionerCenterRecord, error)
	CountByCenter(ctx context.Context, centerID string) (int, error)
	Exists(ctx context.Context, practitionerID, centerID string) (bool, error)
	Create(ctx context.Context, request *requests.CreateAffiliation) (*models.PractitionerCenterRecord, error)
	Delete(ctx context.Context, id string) error
}

type AffiliationUsecase interface {
	List(ctx context.Context) ([]models.PractitionerCenter, error)
	Create(ctx context.Context, request *requests.CreateAffiliation) (*models.PractitionerCenterRecord, error)
	Delete(ctx context.Context, id string) error
}

type PatientUsecase interface {
	List(ctx context.Context) ([]models.ProfileRecord, error)
	Update(ctx context.Context, id string, request *requests.UpdatePatient) (*models.ProfileRecord, error)
	Deactivate(ctx context.Context, id string) error
}

type SettingsRepository interface {
	FindAll(ctx context.Context) ([]models.PlatformSetting, error)
	Upsert(ctx context.Context, settings []models.PlatformSetting) error
}

type SettingsUsecase interface {
	Get(ctx context.Context) (map[string]interface{}, error)
	Save(ctx context.Context, values map[string]interface{}) (map[string]interface{}, error)
}

type DashboardUsecase interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}
