package storage

import (
	"context"
	"fmt"
	"io"
	"medisync-service/internal/app/contracts"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"
	"medisync-service/internal/pkg/utils"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// AvatarExtension reports the file extension stored for an accepted avatar content type.
func AvatarExtension(contentType string) (string, bool) {
	ext, ok := avatarExtensions[strings.ToLower(contentType)]
	return ext, ok
}

type minioStorage struct {
	MinioClient   *minio.Client
	BucketName    string
	PublicBaseUrl string
	Log           *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, bucketName, publicBaseUrl string, logger *zap.Logger) contracts.AvatarStorage {
	return &minioStorage{
		MinioClient:   minioClient,
		BucketName:    bucketName,
		PublicBaseUrl: strings.TrimRight(publicBaseUrl, "/"),
		Log:           logger,
	}
}

func (m *minioStorage) UploadAvatar(ctx context.Context, userID string, file io.Reader, size int64, contentType string) (string, error) {
	requestID := utils.GetRequestID(ctx)

	ext, ok := AvatarExtension(contentType)
	if !ok {
		return "", exceptions.ErrImageValidation(fmt.Errorf("unsupported content type %s", contentType))
	}

	objectName := fmt.Sprintf("%s/%s.%s", userID, utils.NewULID(), ext)
	m.Log.Info("minioStorage.UploadAvatar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketNameKey, m.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
	)

	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectName, file, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		m.Log.Error("minioStorage.UploadAvatar error calling PutObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return fmt.Sprintf("%s/%s/%s", m.PublicBaseUrl, m.BucketName, objectName), nil
}
