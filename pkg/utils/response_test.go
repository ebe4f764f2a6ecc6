package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(zap.NewNop(), rec, http.StatusBadRequest, "query is required")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if body := rec.Body.String(); body != "{\"error\":\"query is required\"}\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestRespondJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := httptest.NewRecorder()

	RespondJSON(zap.New(core), rec, http.StatusOK, map[string]any{"bad": make(chan int)})

	entries := logs.FilterMessage("failed to encode response").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Fatalf("unexpected status field %v", got)
	}
}

func TestRespondJSONToleratesNilLogger(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(nil, rec, http.StatusOK, map[string]any{"bad": make(chan int)})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
