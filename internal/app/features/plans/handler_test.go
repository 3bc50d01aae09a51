package plans_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dalemusser/gardenlog/internal/app/features/plans"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/domain/models"
	"github.com/dalemusser/gardenlog/internal/testutil"
)

func signedIn(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{UID: "u1", Name: "Test Gardener"})
}

func TestServeSaveThenList(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := plans.NewHandler(svc, zap.NewNop())

	body := `{"name":"Spring Bed","plan":{"seasonalStrategy":"Sow hardy crops first","schedule":[{"cropName":"Radish","harvest":"May","notes":"quick"}]}}`
	req := signedIn(httptest.NewRequest("POST", "/api/plans", strings.NewReader(body)))
	rec := httptest.NewRecorder()

	h.ServeSave(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	listReq := signedIn(httptest.NewRequest("GET", "/api/plans", nil))
	listRec := httptest.NewRecorder()
	h.ServeList(listRec, listReq)

	var list []models.SavedPlan
	if err := json.NewDecoder(listRec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Spring Bed" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if len(list[0].Data.Schedule) != 1 || list[0].Data.Schedule[0].CropName != "Radish" {
		t.Errorf("plan data lost: %+v", list[0].Data)
	}
}

func TestServeSave_MissingName(t *testing.T) {
	svc, _ := testutil.NewLocalService(t)
	h := plans.NewHandler(svc, zap.NewNop())

	req := signedIn(httptest.NewRequest("POST", "/api/plans", strings.NewReader(`{"plan":{}}`)))
	rec := httptest.NewRecorder()

	h.ServeSave(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}
