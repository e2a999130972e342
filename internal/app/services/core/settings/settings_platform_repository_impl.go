package settings

import (
	"context"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/app/services/platform/rest"
	"medisync-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type SettingsPlatformRepository struct {
	Client *rest.Client
	Log    *zap.Logger
}

func NewSettingsPlatformRepository(client *rest.Client, logger *zap.Logger) contracts.SettingsRepository {
	return &SettingsPlatformRepository{
		Client: client,
		Log:    logger,
	}
}

func (repo *SettingsPlatformRepository) FindAll(ctx context.Context) ([]models.PlatformSetting, error) {
	settings := make([]models.PlatformSetting, 0)
	if err := repo.Client.Select(ctx, rest.From(constvars.TablePlatformSettings).Select("*"), &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (repo *SettingsPlatformRepository) Upsert(ctx context.Context, settings []models.PlatformSetting) error {
	if len(settings) == 0 {
		return nil
	}
	return repo.Client.Upsert(ctx, constvars.TablePlatformSettings, "setting_key", settings)
}
