package logger

import (
	"io"
	"medisync-service/internal/app/config"
	"os"

	"github.com/sirupsen/logrus"
)

// NewAccessLogger builds the logger that writes one line per served HTTP request.
func NewAccessLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	switch internalConfig.App.Env {
	case "production":
		logger.SetFormatter(&logrus.JSONFormatter{})
		file, err := os.OpenFile(driverConfig.Logger.AccessLogFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logger.SetOutput(io.MultiWriter(os.Stdout, file))
		} else {
			logger.Info("Failed to log to file, using default stdout")
		}
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
