package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T, temp float64, code int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("current_weather") != "true" {
			t.Errorf("missing current_weather param: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"current_weather":{"temperature":%g,"weathercode":%d}}`, temp, code)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrent_Sunny(t *testing.T) {
	srv := newTestServer(t, 18.5, 0)
	c := New(51.5, -0.12, zap.NewNop(), WithBaseURL(srv.URL))

	got, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Temp != 18.5 || got.Condition != "Sunny" || got.Icon != "sun" {
		t.Errorf("unexpected data: %+v", got)
	}
	if got.IsFrostWarning {
		t.Error("frost warning at 18.5°C")
	}
}

func TestCurrent_FrostWarning(t *testing.T) {
	srv := newTestServer(t, 1.2, 2)
	c := New(51.5, -0.12, zap.NewNop(), WithBaseURL(srv.URL))

	got, err := c.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !got.IsFrostWarning {
		t.Error("no frost warning at 1.2°C")
	}
	if got.Condition != "Cloudy" {
		t.Errorf("condition = %q, want Cloudy", got.Condition)
	}
}

func TestCurrent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := New(51.5, -0.12, zap.NewNop(), WithBaseURL(srv.URL))
	if _, err := c.Current(context.Background()); err == nil {
		t.Error("expected error on 502")
	}
}

func TestDescribeCodes(t *testing.T) {
	tests := []struct {
		code      int
		condition string
	}{
		{0, "Sunny"},
		{2, "Cloudy"},
		{45, "Foggy"},
		{61, "Rainy"},
		{71, "Snowy"},
		{81, "Rainy"},
		{95, "Stormy"},
	}
	for _, tc := range tests {
		if got, _ := describe(tc.code); got != tc.condition {
			t.Errorf("describe(%d) = %q, want %q", tc.code, got, tc.condition)
		}
	}
}
