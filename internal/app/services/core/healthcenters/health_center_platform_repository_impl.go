package healthcenters

import (
	"context"
	"errors"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type HealthCenterPlatformRepository struct {
	Client *rest.Client
	Log    *zap.Logger
	now    func() time.Time
}

func NewHealthCenterPlatformRepository(client *rest.Client, logger *zap.Logger) contracts.HealthCenterRepository {
	return &HealthCenterPlatformRepository{
		Client: client,
		Log:    logger,
		now:    time.Now,
	}
}

func (repo *HealthCenterPlatformRepository) FindAll(ctx context.Context) ([]models.HealthCenter, error) {
	centers := make([]models.HealthCenter, 0)
	if err := repo.Client.Select(ctx, rest.From(constvars.TableHealthCenters).Select("*").Order("name", true), &centers); err != nil {
		return nil, err
	}
	return centers, nil
}

func (repo *HealthCenterPlatformRepository) Count(ctx context.Context) (int, error) {
	return repo.Client.Count(ctx, rest.From(constvars.TableHealthCenters))
}

func (repo *HealthCenterPlatformRepository) Create(ctx context.Context, request *requests.HealthCenter, createdBy string) (*models.HealthCenter, error) {
	payload := centerPayload(request)
	if createdBy != "" {
		payload["created_by"] = createdBy
	}

	var center models.HealthCenter
	if err := repo.Client.Insert(ctx, constvars.TableHealthCenters, payload, &center); err != nil {
		return nil, err
	}
	if center.ID == "" {
		return nil, exceptions.ErrPlatformNoRows(nil, constvars.TableHealthCenters)
	}
	return &center, nil
}

func (repo *HealthCenterPlatformRepository) Update(ctx context.Context, id string, request *requests.HealthCenter) (*models.HealthCenter, error) {
	payload := centerPayload(request)
	payload["updated_at"] = repo.now().UTC()

	var center models.HealthCenter
	rows, err := repo.Client.Update(ctx, rest.From(constvars.TableHealthCenters).Eq("id", id), payload, &center)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, exceptions.ErrResourceNotFound(errors.New("no row updated"), constvars.ResourceHealthCenters, id)
	}
	return &center, nil
}

func (repo *HealthCenterPlatformRepository) Delete(ctx context.Context, id string) error {
	rows, err := repo.Client.Delete(ctx, rest.From(constvars.TableHealthCenters).Eq("id", id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return exceptions.ErrResourceNotFound(errors.New("no row deleted"), constvars.ResourceHealthCenters, id)
	}
	return nil
}

func centerPayload(request *requests.HealthCenter) map[string]interface{} {
	return map[string]interface{}{
		"name":    request.Name,
		"address": request.Address,
		"city":    request.City,
		"country": request.Country,
		"phone":   request.Phone,
		"email":   request.Email,
	}
}
