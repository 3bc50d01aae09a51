package account_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/backend"
	"github.com/dalemusser/gardenlog/internal/app/features/account"
	"github.com/dalemusser/gardenlog/internal/app/store/accounts"
	"github.com/dalemusser/gardenlog/internal/app/store/chat"
	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/store/harvests"
	"github.com/dalemusser/gardenlog/internal/app/store/plans"
	"github.com/dalemusser/gardenlog/internal/app/store/plants"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/app/system/identity"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/dalemusser/gardenlog/internal/testutil"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "gardenlog-session", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}

func TestServeCurrent_Anonymous(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := account.NewHandler(svc, newSessionManager(t), zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeCurrent(rec, httptest.NewRequest("GET", "/api/account", nil))

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["isAuthenticated"] != false {
		t.Errorf("expected isAuthenticated false, got %v", body["isAuthenticated"])
	}
}

func TestServeCurrent_SignedIn(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := account.NewHandler(svc, newSessionManager(t), zap.NewNop())

	req := httptest.NewRequest("GET", "/api/account", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		UID:       "demo-user-123",
		Name:      "Demo Gardener",
		CreatedAt: time.Now().AddDate(-3, 0, 0),
	})
	rec := httptest.NewRecorder()
	h.ServeCurrent(rec, req)

	var body struct {
		IsAuthenticated bool            `json:"isAuthenticated"`
		Identity        models.Identity `json:"identity"`
		GardenerLevel   string          `json:"gardenerLevel"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.IsAuthenticated || body.Identity.UID != "demo-user-123" {
		t.Errorf("unexpected body: %+v", body)
	}
	if body.GardenerLevel != "Master Gardener" {
		t.Errorf("GardenerLevel = %q", body.GardenerLevel)
	}
}

func TestServeDelete(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	ident := testutil.DemoSignIn(t, svc)
	h := account.NewHandler(svc, newSessionManager(t), zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := svc.AddPlant(ctx, ident.UID, models.Plant{Name: "Tomato"}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("DELETE", "/api/account", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{UID: ident.UID, Name: ident.DisplayName})
	rec := httptest.NewRecorder()
	h.ServeDelete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, rec.Code, rec.Body.String())
	}
	left, err := svc.ListPlants(ctx, ident.UID)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("expected no plants after deletion, got %d", len(left))
	}
}

// staleStore refuses revocation the way the connected store does when the
// last sign-in is too old.
type staleStore struct{ accounts.Store }

func (staleStore) Revoke(ctx context.Context, uid string) error {
	return accounts.ErrReauthRequired
}

func TestServeDelete_ReauthRequired(t *testing.T) {
	kv := testutil.NewLocalStore(t)
	logger := zap.NewNop()
	cfg := backend.Config{Mode: backend.ModeLocal, ChatPollInterval: 10 * time.Millisecond}
	svc := garden.NewService(
		cfg,
		plants.NewLocal(kv, logger),
		harvests.NewLocal(kv, logger),
		plans.NewLocal(kv, logger),
		chat.NewLocal(kv, cfg.ChatPollInterval, logger),
		staleStore{accounts.NewLocal(kv, logger)},
		identity.NewBroker(),
		kv,
		logger,
	)
	h := account.NewHandler(svc, newSessionManager(t), zap.NewNop())

	req := httptest.NewRequest("DELETE", "/api/account", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{UID: "demo-user-123"})
	rec := httptest.NewRecorder()
	h.ServeDelete(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "reauth_required" {
		t.Errorf("error = %q", body["error"])
	}
}
