package contracts

import (
	"context"
	"io"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/dto/requests"
)

type ProfileReader interface {
	// FindByID returns nil without error when no row exists.
	FindByID(ctx context.Context, id string) (*models.ProfileRecord, error)
}

type ProfileRepository interface {
	ProfileReader
	FindByIDs(ctx context.Context, ids []string) ([]models.ProfileRecord, error)
	FindNonAdmin(ctx context.Context) ([]models.ProfileRecord, error)
	FindPatients(ctx context.Context) ([]models.ProfileRecord, error)
	CountPatients(ctx context.Context) (int, error)
	Update(ctx context.Context, id string, request *requests.UpdatePatient) (*models.ProfileRecord, error)
	SetUserType(ctx context.Context, id, userType string) error
	SetAvatarURL(ctx context.Context, id, avatarURL string) error
}

type ProfileUsecase interface {
	UploadAvatar(ctx context.Context, userID string, file io.Reader, size int64, contentType string) (string, error)
}
