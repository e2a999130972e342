package contracts

import (
	"context"
	"io"
)

type AvatarStorage interface {
	UploadAvatar(ctx context.Context, userID string, file io.Reader, size int64, contentType string) (string, error)
}
