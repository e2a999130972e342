package affiliations

import (
	"context"
	"errors"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// affiliationColumns embeds the practitioner and center rows through their foreign keys.
const affiliationColumns = "id,practitioner_id,center_id,practitioner:practitioners(speciality,user_id),center:health_centers(name,city)"

type AffiliationPlatformRepository struct {
	Client *rest.Client
	Log    *zap.Logger
}

func NewAffiliationPlatformRepository(client *rest.Client, logger *zap.Logger) contracts.AffiliationRepository {
	return &AffiliationPlatformRepository{
		Client: client,
		Log:    logger,
	}
}

func (repo *AffiliationPlatformRepository) FindAll(ctx context.Context) ([]models.PractitionerCenterRecord, error) {
	records := make([]models.PractitionerCenterRecord, 0)
	q := rest.From(constvars.TablePractitionerCenters).Select(affiliationColumns).Order("id", true)
	if err := repo.Client.Select(ctx, q, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *AffiliationPlatformRepository) CountByCenter(ctx context.Context, centerID string) (int, error) {
	return repo.Client.Count(ctx, rest.From(constvars.TablePractitionerCenters).Eq("center_id", centerID))
}

func (repo *AffiliationPlatformRepository) Exists(ctx context.Context, practitionerID, centerID string) (bool, error) {
	var row struct {
		ID string `json:"id"`
	}
	q := rest.From(constvars.TablePractitionerCenters).Select("id").
		Eq("practitioner_id", practitionerID).
		Eq("center_id", centerID)
	return repo.Client.SelectOne(ctx, q, &row)
}

func (repo *AffiliationPlatformRepository) Create(ctx context.Context, request *requests.CreateAffiliation) (*models.PractitionerCenterRecord, error) {
	var record models.PractitionerCenterRecord
	if err := repo.Client.Insert(ctx, constvars.TablePractitionerCenters, request, &record); err != nil {
		return nil, err
	}
	if record.ID == "" {
		return nil, exceptions.ErrPlatformNoRows(nil, constvars.TablePractitionerCenters)
	}
	return &record, nil
}

func (repo *AffiliationPlatformRepository) Delete(ctx context.Context, id string) error {
	rows, err := repo.Client.Delete(ctx, rest.From(constvars.TablePractitionerCenters).Eq("id", id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return exceptions.ErrResourceNotFound(errors.New("no row deleted"), constvars.ResourcePractitionerCenters, id)
	}
	return nil
}
