package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func fixedClock(checker *Checker) {
	checker.now = func() time.Time {
		return time.Date(2025, 11, 20, 12, 30, 0, 123456789, time.FixedZone("CET", 3600))
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name            string
		timeout         time.Duration
		expectedTimeout time.Duration
	}{
		{name: "default timeout", timeout: 0, expectedTimeout: 5 * time.Second},
		{name: "custom timeout", timeout: 10 * time.Second, expectedTimeout: 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(tt.timeout)
			if checker.checkTimeout != tt.expectedTimeout {
				t.Errorf("expected timeout %v, got %v", tt.expectedTimeout, checker.checkTimeout)
			}
			if len(checker.ListChecks()) != 0 {
				t.Error("expected no checks")
			}
		})
	}
}

func TestLivenessHandler(t *testing.T) {
	checker := New(time.Second)
	fixedClock(checker)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	checker.LivenessHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	want := map[string]any{"ok": true, "time": "2025-11-20T11:30:00.123Z"}
	if !reflect.DeepEqual(body, want) {
		t.Errorf("body = %v, want %v", body, want)
	}
}

func TestLivenessHandler_TimeParses(t *testing.T) {
	checker := New(time.Second)
	live := checker.CheckLiveness()

	if !live.OK {
		t.Error("expected ok=true")
	}
	if _, err := time.Parse(time.RFC3339Nano, live.Time); err != nil {
		t.Errorf("time %q is not RFC3339: %v", live.Time, err)
	}
}

func TestHandlers_MethodNotAllowed(t *testing.T) {
	checker := New(time.Second)
	handlers := map[string]http.HandlerFunc{
		"liveness":  checker.LivenessHandler(),
		"readiness": checker.ReadinessHandler(),
		"version":   VersionHandler("1.0.0", "abc", "now"),
	}

	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected status 405, got %d", rec.Code)
			}
			if rec.Header().Get("Allow") != "GET, HEAD" {
				t.Errorf("unexpected Allow header %q", rec.Header().Get("Allow"))
			}
		})
	}
}

func TestHandlers_HeadHasNoBody(t *testing.T) {
	checker := New(time.Second)

	req := httptest.NewRequest(http.MethodHead, "/api/health", nil)
	rec := httptest.NewRecorder()
	checker.LivenessHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]CheckFunc
		expectedStatus string
		expectedCode   int
	}{
		{
			name:           "no checks",
			checks:         nil,
			expectedStatus: StatusReady,
			expectedCode:   http.StatusOK,
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"router":      func(ctx context.Context) error { return nil },
				"credentials": func(ctx context.Context) error { return nil },
			},
			expectedStatus: StatusReady,
			expectedCode:   http.StatusOK,
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"router":      func(ctx context.Context) error { return nil },
				"credentials": func(ctx context.Context) error { return errors.New("no provider credentials configured") },
			},
			expectedStatus: StatusDegraded,
			expectedCode:   http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(time.Second)
			for name, check := range tt.checks {
				checker.RegisterCheck(name, check)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/ready", nil)
			rec := httptest.NewRecorder()
			checker.ReadinessHandler().ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}

			var body Readiness
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Status != tt.expectedStatus {
				t.Errorf("expected status %q, got %q", tt.expectedStatus, body.Status)
			}
			if len(body.Checks) != len(tt.checks) {
				t.Errorf("expected %d check results, got %d", len(tt.checks), len(body.Checks))
			}
		})
	}
}

func TestCheckReadiness_FailureMessage(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("credentials", func(ctx context.Context) error {
		return errors.New("no provider credentials configured")
	})

	status := checker.CheckReadiness(context.Background())
	result := status.Checks["credentials"]
	if result.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %q", result.Status)
	}
	if result.Message != "no provider credentials configured" {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	checker := New(20 * time.Millisecond)
	checker.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	status := checker.CheckReadiness(context.Background())
	if status.Status != StatusDegraded {
		t.Errorf("expected degraded, got %q", status.Status)
	}
	if msg := status.Checks["slow"].Message; msg != ErrCheckTimeout.Error() {
		t.Errorf("expected timeout message, got %q", msg)
	}
}

func TestRegisterCheck_Replaces(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("router", func(ctx context.Context) error { return errors.New("first") })
	checker.RegisterCheck("router", func(ctx context.Context) error { return nil })

	if got := checker.ListChecks(); !reflect.DeepEqual(got, []string{"router"}) {
		t.Errorf("ListChecks() = %v", got)
	}
	if status := checker.CheckReadiness(context.Background()); status.Status != StatusReady {
		t.Errorf("expected ready after replacement, got %q", status.Status)
	}
}

func TestVersionHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	VersionHandler("1.2.3", "abc123", "2025-11-20").ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" || info.BuildTime != "2025-11-20" {
		t.Errorf("unexpected version info: %+v", info)
	}
	if info.GoVersion == "" {
		t.Error("expected go_version to be set")
	}
}
