package config

import (
	"strings"

	"go.uber.org/zap"
)

// NewLogger builds the process logger: human-readable output for
// APP_ENV=development, JSON otherwise.
func NewLogger(env string) (*zap.Logger, error) {
	if strings.EqualFold(env, "development") || strings.EqualFold(env, "dev") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
