package profiles

import (
	"context"
	"errors"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/dto/requests"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type ProfilePlatformRepository struct {
	Client *rest.Client
	Log    *zap.Logger
	now    func() time.Time
}

func NewProfilePlatformRepository(client *rest.Client, logger *zap.Logger) contracts.ProfileRepository {
	return &ProfilePlatformRepository{
		Client: client,
		Log:    logger,
		now:    time.Now,
	}
}

func (repo *ProfilePlatformRepository) FindByID(ctx context.Context, id string) (*models.ProfileRecord, error) {
	var profile models.ProfileRecord
	found, err := repo.Client.SelectOne(ctx, rest.From(constvars.TableProfiles).Select("*").Eq("id", id), &profile)
	if err != nil {
		repo.Log.Error("ProfilePlatformRepository.FindByID error selecting profile",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingSubjectIDKey, id),
			zap.Error(err),
		)
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// FindByIDs returns the profiles that exist among ids, in no particular order.
func (repo *ProfilePlatformRepository) FindByIDs(ctx context.Context, ids []string) ([]models.ProfileRecord, error) {
	profiles := make([]models.ProfileRecord, 0, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}
	q := rest.From(constvars.TableProfiles).Select("id,first_name,last_name,avatar_url,user_type").In("id", ids)
	if err := repo.Client.Select(ctx, q, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfilePlatformRepository) FindNonAdmin(ctx context.Context) ([]models.ProfileRecord, error) {
	profiles := make([]models.ProfileRecord, 0)
	q := rest.From(constvars.TableProfiles).Select("id,first_name,last_name,user_type").Not("user_type", "eq", string(models.RoleAdmin))
	if err := repo.Client.Select(ctx, q, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfilePlatformRepository) FindPatients(ctx context.Context) ([]models.ProfileRecord, error) {
	profiles := make([]models.ProfileRecord, 0)
	q := rest.From(constvars.TableProfiles).Select("*").Eq("user_type", string(models.RolePatient)).Order("last_name", true)
	if err := repo.Client.Select(ctx, q, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfilePlatformRepository) CountPatients(ctx context.Context) (int, error) {
	return repo.Client.Count(ctx, rest.From(constvars.TableProfiles).Eq("user_type", string(models.RolePatient)))
}

func (repo *ProfilePlatformRepository) Update(ctx context.Context, id string, request *requests.UpdatePatient) (*models.ProfileRecord, error) {
	requestID := utils.GetRequestID(ctx)
	repo.Log.Info("ProfilePlatformRepository.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	payload := map[string]interface{}{"updated_at": repo.now().UTC()}
	if request.FirstName != nil {
		payload["first_name"] = *request.FirstName
	}
	if request.LastName != nil {
		payload["last_name"] = *request.LastName
	}
	if request.Gender != nil {
		payload["gender"] = *request.Gender
	}
	if request.DateOfBirth != nil {
		payload["date_of_birth"] = *request.DateOfBirth
	}
	if request.Address != nil {
		payload["address"] = *request.Address
	}

	var profile models.ProfileRecord
	rows, err := repo.Client.Update(ctx, rest.From(constvars.TableProfiles).Eq("id", id), payload, &profile)
	if err != nil {
		repo.Log.Error("ProfilePlatformRepository.Update error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if rows == 0 {
		return nil, exceptions.ErrResourceNotFound(errors.New("no row updated"), constvars.ResourcePatients, id)
	}
	return &profile, nil
}

func (repo *ProfilePlatformRepository) SetUserType(ctx context.Context, id, userType string) error {
	return repo.patch(ctx, id, map[string]interface{}{
		"user_type":  userType,
		"updated_at": repo.now().UTC(),
	})
}

func (repo *ProfilePlatformRepository) SetAvatarURL(ctx context.Context, id, avatarURL string) error {
	return repo.patch(ctx, id, map[string]interface{}{
		"avatar_url": avatarURL,
		"updated_at": repo.now().UTC(),
	})
}

func (repo *ProfilePlatformRepository) patch(ctx context.Context, id string, payload map[string]interface{}) error {
	rows, err := repo.Client.Update(ctx, rest.From(constvars.TableProfiles).Eq("id", id), payload, nil)
	if err != nil {
		repo.Log.Error("ProfilePlatformRepository.patch error updating profile",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEntityIDKey, id),
			zap.Error(err),
		)
		return err
	}
	if rows == 0 {
		return exceptions.ErrResourceNotFound(errors.New("no row updated"), constvars.TableProfiles, id)
	}
	return nil
}
