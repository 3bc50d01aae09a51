// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after the backend decision and schema
// setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Backend.Connected() {
		logger.Info("starting in connected mode",
			zap.String("database", appCfg.MongoDatabase))
	} else {
		logger.Info("starting in local demo mode",
			zap.String("data_dir", appCfg.DataDir),
			zap.Int64("quota_bytes", appCfg.LocalQuotaBytes))
	}
	return nil
}
