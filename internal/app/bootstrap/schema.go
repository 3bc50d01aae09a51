// internal/app/bootstrap/schema.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/system/indexes"
)

// EnsureSchema creates the MongoDB indexes in connected mode. The local
// store creates its own table on open, so local mode has nothing to do here.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if !deps.Backend.Connected() {
		return nil
	}
	return indexes.EnsureAll(ctx, deps.MongoDatabase)
}
