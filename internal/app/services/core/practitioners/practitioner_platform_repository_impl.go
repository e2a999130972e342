package practitioners

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

const practitionerColumns = "id,speciality,experience_years,description,user_id,created_at,updated_at"

type PractitionerPlatformRepository struct {
	Client *rest.Client
	Log    *zap.Logger
	now    func() time.Time
}

func NewPractitionerPlatformRepository(client *rest.Client, logger *zap.Logger) contracts.PractitionerRepository {
	return &PractitionerPlatformRepository{
		Client: client,
		Log:    logger,
		now:    time.Now,
	}
}

func (repo *PractitionerPlatformRepository) FindAll(ctx context.Context) ([]models.PractitionerRecord, error) {
	practitioners := make([]models.PractitionerRecord, 0)
	q := rest.From(constvars.TablePractitioners).Select(practitionerColumns).Order("speciality", true)
	if err := repo.Client.Select(ctx, q, &practitioners); err != nil {
		return nil, err
	}
	return practitioners, nil
}

func (repo *PractitionerPlatformRepository) FindUserIDs(ctx context.Context) ([]string, error) {
	var rows []struct {
		UserID string `json:"user_id"`
	}
	if err := repo.Client.Select(ctx, rest.From(constvars.TablePractitioners).Select("user_id"), &rows); err != nil {
		return nil, err
	}
	userIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}
	return userIDs, nil
}

func (repo *PractitionerPlatformRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	var row struct {
		ID string `json:"id"`
	}
	return repo.Client.SelectOne(ctx, rest.From(constvars.TablePractitioners).Select("id").Eq("user_id", userID), &row)
}

func (repo *PractitionerPlatformRepository) Count(ctx context.Context) (int, error) {
	return repo.Client.Count(ctx, rest.From(constvars.TablePractitioners))
}

func (repo *PractitionerPlatformRepository) Create(ctx context.Context, request *requests.CreatePractitioner) (*models.PractitionerRecord, error) {
	payload := map[string]interface{}{
		"speciality":       request.Speciality,
		"experience_years": request.ExperienceYears,
		"description":      request.Description,
		"user_id":          request.UserID,
	}

	var practitioner models.PractitionerRecord
	if err := repo.Client.Insert(ctx, constvars.TablePractitioners, payload, &practitioner); err != nil {
		return nil, err
	}
	if practitioner.ID == "" {
		return nil, exceptions.ErrPlatformNoRows(nil, constvars.TablePractitioners)
	}
	return &practitioner, nil
}

func (repo *PractitionerPlatformRepository) Update(ctx context.Context, id string, request *requests.UpdatePractitioner) (*models.PractitionerRecord, error) {
	payload := map[string]interface{}{
		"speciality":       request.Speciality,
		"experience_years": request.ExperienceYears,
		"description":      request.Description,
		"updated_at":       repo.now().UTC(),
	}

	var practitioner models.PractitionerRecord
	rows, err := repo.Client.Update(ctx, rest.From(constvars.TablePractitioners).Eq("id", id), payload, &practitioner)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, exceptions.ErrResourceNotFound(errors.New("no row updated"), constvars.ResourcePractitioners, id)
	}
	return &practitioner, nil
}

func (repo *PractitionerPlatformRepository) Delete(ctx context.Context, id string) error {
	rows, err := repo.Client.Delete(ctx, rest.From(constvars.TablePractitioners).Eq("id", id))
	if err != nil {
		return err
	}
	if rows == 0 {
		return exceptions.ErrResourceNotFound(errors.New("no row deleted"), constvars.ResourcePractitioners, id)
	}
	return nil
}
