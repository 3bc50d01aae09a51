// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/backend"
	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
)

const connectTimeout = 10 * time.Second

// ConnectDB picks the backend for the life of the process.
//
// When the configured Mongo URI is usable and the server answers a ping, the
// app runs connected. Otherwise — no URI, a placeholder URI, or a failed
// connection — it falls back to the local demo-mode store. The decision is
// made exactly once; there is no runtime switch-over.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	bcfg := backend.Config{
		Mode:             backend.ModeLocal,
		ChatPollInterval: appCfg.ChatPollInterval,
		ReauthWindow:     appCfg.ReauthWindow,
	}

	if backend.UsableURI(appCfg.MongoURI) {
		client, err := connectMongo(ctx, appCfg, logger)
		if err != nil {
			logger.Warn("MongoDB unreachable, falling back to local demo mode",
				zap.Error(err))
		} else {
			bcfg.Mode = backend.ModeConnected
			logger.Info("backend selected",
				zap.String("mode", bcfg.Mode.String()),
				zap.String("database", appCfg.MongoDatabase))
			return DBDeps{
				MongoClient:   client,
				MongoDatabase: client.Database(appCfg.MongoDatabase),
				Backend:       bcfg,
			}, nil
		}
	}

	if err := os.MkdirAll(appCfg.DataDir, 0o755); err != nil {
		return DBDeps{}, err
	}
	local, err := localkv.Open(filepath.Join(appCfg.DataDir, "gardenlog.db"), appCfg.LocalQuotaBytes, logger)
	if err != nil {
		return DBDeps{}, err
	}

	logger.Info("backend selected",
		zap.String("mode", bcfg.Mode.String()),
		zap.String("data_dir", appCfg.DataDir),
		zap.Int64("quota_bytes", appCfg.LocalQuotaBytes))

	return DBDeps{Local: local, Backend: bcfg}, nil
}

func connectMongo(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to MongoDB")
	return client, nil
}
