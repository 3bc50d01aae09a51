package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dalemusser/gardenlog/internal/app/backend"
	"github.com/dalemusser/gardenlog/internal/app/store/accounts"
	"github.com/dalemusser/gardenlog/internal/app/store/chat"
	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/store/harvests"
	"github.com/dalemusser/gardenlog/internal/app/store/localkv"
	"github.com/dalemusser/gardenlog/internal/app/store/plans"
	"github.com/dalemusser/gardenlog/internal/app/store/plants"
	"github.com/dalemusser/gardenlog/internal/app/system/identity"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"go.uber.org/zap"
)

// Logger returns the no-op logger used throughout tests.
func Logger() *zap.Logger { return zap.NewNop() }

// TestContext returns a context with a generous test timeout.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// NewLocalStore opens a fresh quota-unlimited local store in the test's
// temp dir and closes it on cleanup.
func NewLocalStore(t *testing.T) *localkv.Store {
	t.Helper()
	return NewLocalStoreWithQuota(t, 0)
}

// NewLocalStoreWithQuota is NewLocalStore with a byte quota.
func NewLocalStoreWithQuota(t *testing.T, quota int64) *localkv.Store {
	t.Helper()
	s, err := localkv.Open(filepath.Join(t.TempDir(), "gardenlog.db"), quota, Logger())
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// NewLocalService builds a full local-mode garden service over a fresh
// local store, wired the same way bootstrap wires it, with a fast chat poll
// interval for tests.
func NewLocalService(t *testing.T) (*garden.Service, *localkv.Store) {
	t.Helper()
	kv := NewLocalStore(t)
	logger := Logger()
	cfg := backend.Config{
		Mode:             backend.ModeLocal,
		ChatPollInterval: 10 * time.Millisecond,
	}
	svc := garden.NewService(
		cfg,
		plants.NewLocal(kv, logger),
		harvests.NewLocal(kv, logger),
		plans.NewLocal(kv, logger),
		chat.NewLocal(kv, cfg.ChatPollInterval, logger),
		accounts.NewLocal(kv, logger),
		identity.NewBroker(),
		kv,
		logger,
	)
	return svc, kv
}

// DemoSignIn signs the demo gardener in and returns the identity.
func DemoSignIn(t *testing.T, svc *garden.Service) *models.Identity {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	ident, err := svc.SignInDemo(ctx)
	if err != nil {
		t.Fatalf("demo sign-in: %v", err)
	}
	return ident
}
