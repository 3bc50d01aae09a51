package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("u1") {
			t.Fatalf("request %d unexpectedly blocked", i+1)
		}
	}
	if l.Allow("u1") {
		t.Error("fourth request should be blocked")
	}
	if !l.Allow("u2") {
		t.Error("other keys should be unaffected")
	}
}

func TestRemaining(t *testing.T) {
	l := New(5, time.Minute)

	if got := l.Remaining("u1"); got != 5 {
		t.Errorf("Remaining before any request = %d", got)
	}
	l.Allow("u1")
	l.Allow("u1")
	if got := l.Remaining("u1"); got != 3 {
		t.Errorf("Remaining after two requests = %d", got)
	}
}

func TestWindowExpiry(t *testing.T) {
	l := New(1, 20*time.Millisecond)

	if !l.Allow("u1") {
		t.Fatal("first request blocked")
	}
	if l.Allow("u1") {
		t.Fatal("second request should be blocked")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("u1") {
		t.Error("request after window expiry should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("ClientIP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Errorf("ClientIP with X-Forwarded-For = %q", got)
	}
}
