package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, exp time.Duration) error
	PushToList(ctx context.Context, key string, values ...interface{}) error
	// PopListRange removes and returns up to count leading elements atomically.
	PopListRange(ctx context.Context, key string, count int64) ([]string, error)
	ListLength(ctx context.Context, key string) (int64, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// DeleteIfEquals removes key only while it still holds value, atomically.
	DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error)
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
}
