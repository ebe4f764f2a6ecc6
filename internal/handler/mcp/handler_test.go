package mcp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kanazawa-chat/anything-chat/internal/service/mcp"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(mcp.NewService(mcp.Seed()), nil).RegisterRoutes(r)
	return r
}

func execute(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/execute", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestListTools(t *testing.T) {
	resp := httptest.NewRecorder()
	setupRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/tools", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var tools []mcp.Tool
	if err := json.Unmarshal(resp.Body.Bytes(), &tools); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}
}

func TestExecuteSearchTouristSpots(t *testing.T) {
	resp := execute(setupRouter(), `{"tool_name":"search_tourist_spots","params":{"keyword":"茶屋","limit":5}}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got struct {
		Result mcp.SpotResult `json:"result"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Result.Spots) != 1 || got.Result.Spots[0].Name != "ひがし茶屋街" {
		t.Fatalf("unexpected spots %+v", got.Result.Spots)
	}
}

func TestExecuteGarbageSchedule(t *testing.T) {
	resp := execute(setupRouter(), `{"tool_name":"get_garbage_schedule","params":{"area_code":"01","date":"2025-04-08"}}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var got struct {
		Result mcp.GarbageResult `json:"result"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Result.GarbageTypes) != 1 || got.Result.GarbageTypes[0] != "埋立ごみ" {
		t.Fatalf("unexpected result %+v", got.Result)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := setupRouter()
	cases := map[string]struct {
		body string
		want int
	}{
		"malformed":    {`{"tool_name":`, http.StatusBadRequest},
		"missing name": {`{"params":{}}`, http.StatusBadRequest},
		"unknown tool": {`{"tool_name":"nope","params":{}}`, http.StatusNotFound},
		"bad params":   {`{"tool_name":"get_garbage_schedule","params":{"area_code":"01","date":"tomorrow"}}`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if resp := execute(r, tc.body); resp.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.Code)
			}
		})
	}
}
