package plants_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/features/plants"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/dalemusser/gardenlog/internal/testutil"
)

func signedIn(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{UID: "u1", Name: "Test Gardener"})
}

func TestServeAddThenList(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := plants.NewHandler(svc, zap.NewNop())

	body := `{"name":"Tomato - Roma","type":"Vegetable","season":"Summer","sowIndoors":"Feb-Mar"}`
	req := signedIn(httptest.NewRequest("POST", "/api/plants", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.ServeAdd(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var created map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["id"] == "" {
		t.Fatal("no id returned")
	}

	listReq := signedIn(httptest.NewRequest("GET", "/api/plants", nil))
	listRec := httptest.NewRecorder()
	h.ServeList(listRec, listReq)

	if listRec.Code != http.StatusOK {
		t.Fatalf("list status %d", listRec.Code)
	}
	var list []models.Plant
	if err := json.NewDecoder(listRec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created["id"] || list[0].Name != "Tomato - Roma" {
		t.Errorf("unexpected list: %+v", list)
	}
}

func TestServeAdd_MissingName(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := plants.NewHandler(svc, zap.NewNop())

	req := signedIn(httptest.NewRequest("POST", "/api/plants", strings.NewReader(`{"type":"Herb"}`)))
	rec := httptest.NewRecorder()

	h.ServeAdd(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServeUpdateStatus(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := plants.NewHandler(svc, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	id, err := svc.AddPlant(ctx, "u1", models.Plant{Name: "Basil", Type: models.PlantTypeHerb})
	if err != nil {
		t.Fatal(err)
	}

	req := signedIn(httptest.NewRequest("PATCH", "/api/plants/"+id+"/status", strings.NewReader(`{"isPlanted":true}`)))
	req = testutil.WithChiURLParam(req, "plantID", id)
	rec := httptest.NewRecorder()

	h.ServeUpdateStatus(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	list, _ := svc.ListPlants(ctx, "u1")
	if len(list) != 1 || !list[0].IsPlanted {
		t.Errorf("status not persisted: %+v", list)
	}
}

func TestServeDelete_Idempotent(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := plants.NewHandler(svc, zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	id, err := svc.AddPlant(ctx, "u1", models.Plant{Name: "Chard", Type: models.PlantTypeVegetable})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		req := signedIn(httptest.NewRequest("DELETE", "/api/plants/"+id, nil))
		req = testutil.WithChiURLParam(req, "plantID", id)
		rec := httptest.NewRecorder()

		h.ServeDelete(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("delete %d: expected status %d, got %d", i+1, http.StatusNoContent, rec.Code)
		}
	}
}

func TestRoutes_RequireSignedIn(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := plants.NewHandler(svc, zap.NewNop())

	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session", "", 0, false, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	router := plants.Routes(h, sm)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d for anonymous request, got %d", http.StatusUnauthorized, rec.Code)
	}
}
