package middlewares

import (
	"medisync-service/internal/app/config"
	"medisync-service/internal/app/services/core/session"
	"medisync-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	Registry       *session.Registry
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, registry *session.Registry) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		Registry:       registry,
	}
}

func (m *Middlewares) settleTimeout() time.Duration {
	if m.InternalConfig.Session.SettleTimeoutInSeconds <= 0 {
		return constvars.DefaultSettleTimeoutInSeconds * time.Second
	}
	return time.Duration(m.InternalConfig.Session.SettleTimeoutInSeconds) * time.Second
}
