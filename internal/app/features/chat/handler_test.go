package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/features/chat"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/dalemusser/gardenlog/internal/testutil"
)

func signedIn(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		UID:       "u1",
		Name:      "Rosa",
		CreatedAt: time.Now(),
	})
}

func TestServeList_SeedsWelcome(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := chat.NewHandler(svc, zap.NewNop())

	req := signedIn(httptest.NewRequest("GET", "/api/chat/veg_growers", nil))
	req = testutil.WithChiURLParam(req, "channel", "veg_growers")
	rec := httptest.NewRecorder()

	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var msgs []models.ChatMessage
	if err := json.NewDecoder(rec.Body).Decode(&msgs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 seeded message, got %d", len(msgs))
	}
	if msgs[0].UserName != "GardenBot" || !strings.Contains(msgs[0].Text, "veg_growers") {
		t.Errorf("unexpected welcome message: %+v", msgs[0])
	}
}

func TestServeSend(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := chat.NewHandler(svc, zap.NewNop())

	req := signedIn(httptest.NewRequest("POST", "/api/chat/veg_growers", strings.NewReader(`{"text":"netting beat the pigeons"}`)))
	req = testutil.WithChiURLParam(req, "channel", "veg_growers")
	rec := httptest.NewRecorder()

	h.ServeSend(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	msgs, err := svc.ListMessages(ctx, "veg_growers")
	if err != nil {
		t.Fatal(err)
	}
	last := msgs[len(msgs)-1]
	if last.Text != "netting beat the pigeons" || last.UserName != "Rosa" {
		t.Errorf("message not appended as sender: %+v", last)
	}
}

func TestServeSend_EmptyText(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := chat.NewHandler(svc, zap.NewNop())

	req := signedIn(httptest.NewRequest("POST", "/api/chat/veg_growers", strings.NewReader(`{}`)))
	req = testutil.WithChiURLParam(req, "channel", "veg_growers")
	rec := httptest.NewRecorder()

	h.ServeSend(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServeStream_DeliversSnapshotThenCloses(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := chat.NewHandler(svc, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	req := signedIn(httptest.NewRequest("GET", "/api/chat/veg_growers/stream", nil)).WithContext(ctx)
	req = testutil.WithChiURLParam(req, "channel", "veg_growers")
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		h.ServeStream(rec, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after context cancel")
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "data: ") {
		t.Fatalf("no SSE event written: %q", body)
	}
	if !strings.Contains(body, "GardenBot") {
		t.Errorf("snapshot missing seeded message: %q", body)
	}
}
