package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abenson/pbbdash/internal/fallback"
	"github.com/abenson/pbbdash/internal/services"
	"github.com/abenson/pbbdash/internal/session"
	"github.com/abenson/pbbdash/internal/workflow"
)

const positionsCSV = "Department,Position,Salary\nFinance,Analyst,65000\nParks,Ranger,52000\n"

// placeholderEndpoints returns endpoints pointing at unconfigured placeholder
// hosts, so every call resolves through the demo fallback provider.
func placeholderEndpoints() map[services.Capability]services.Endpoint {
	endpoints := map[services.Capability]services.Endpoint{}
	for _, capability := range services.AllCapabilities() {
		endpoints[capability] = services.Endpoint{
			Capability: capability,
			BaseURL:    "https://your-app-name.onrender.com",
			Path:       "/run",
			Timeout:    services.DefaultCallTimeout,
		}
	}
	return endpoints
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(
		Config{
			Addr:                  ":0",
			OrgURL:                services.DefaultOrgURL,
			OrgName:               "Test City",
			ProgramsPerDepartment: services.DefaultProgramsPerDepartment,
			CostThreshold:         services.DefaultCostThreshold,
		},
		services.NewClient(),
		fallback.NewProvider(nil),
		placeholderEndpoints(),
		session.NewStore(),
		WithServerLogger(newTestLogger()),
	)
}

// multipartBody builds a multipart request body with the given files and fields.
func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	for field, value := range fields {
		if err := w.WriteField(field, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return body, w.FormDataContentType()
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t,
		map[string]string{"positions": positionsCSV, "budgets": "Department,Budget\nFinance,400000\n"},
		nil)

	req := httptest.NewRequest("POST", "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.handleAnalyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var summary workflow.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}

	// Two CSV departments, two demo programs each.
	if summary.TotalPrograms != 4 {
		t.Errorf("TotalPrograms = %d, want 4", summary.TotalPrograms)
	}
	if summary.TotalBudget != fallback.FixtureTotalBudget {
		t.Errorf("TotalBudget = %f, want %f", summary.TotalBudget, fallback.FixtureTotalBudget)
	}
	if summary.CriticalPrograms != fallback.FixtureCriticalPrograms {
		t.Errorf("CriticalPrograms = %d, want %d", summary.CriticalPrograms, fallback.FixtureCriticalPrograms)
	}

	// The run is published to the session store.
	if _, ok := s.store.Latest(); !ok {
		t.Error("summary was not published to the session store")
	}
}

func TestHandleAnalyzeMissingUpload(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartBody(t, map[string]string{"positions": positionsCSV}, nil)

	req := httptest.NewRequest("POST", "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	s.handleAnalyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleAnalyzeMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/analyze", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleAnalyze(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleSummary(t *testing.T) {
	s := newTestServer(t)

	t.Run("empty store returns 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/summary", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleSummary(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("returns latest summary", func(t *testing.T) {
		s.store.Publish(workflow.Summary{TotalPrograms: 12, TotalBudget: 750000})

		req := httptest.NewRequest("GET", "/api/summary", http.NoBody)
		rec := httptest.NewRecorder()

		s.handleSummary(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		var summary workflow.Summary
		if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
			t.Fatalf("decoding summary: %v", err)
		}
		if summary.TotalPrograms != 12 {
			t.Errorf("TotalPrograms = %d, want 12", summary.TotalPrograms)
		}
	})
}

func TestHandleStatus(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer remote.Close()

	s := newTestServer(t)
	s.endpoints = map[services.Capability]services.Endpoint{
		services.CapabilityInventory: {
			Capability: services.CapabilityInventory,
			BaseURL:    remote.URL,
			Path:       "/generate",
			Timeout:    services.DefaultCallTimeout,
		},
	}

	req := httptest.NewRequest("GET", "/api/status", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Services []services.Status `json:"services"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if len(resp.Services) != 1 {
		t.Fatalf("got %d statuses, want 1", len(resp.Services))
	}
	if !resp.Services[0].Reachable {
		t.Error("service should be reachable")
	}
}

func TestHandleTool(t *testing.T) {
	s := newTestServer(t)

	t.Run("program inventory via fallback", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"file": positionsCSV}, nil)

		req := httptest.NewRequest("POST", "/api/tools/program-inventory", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		s.handleTool(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var payload services.InventoryPayload
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		if len(payload.Programs) != 4 {
			t.Errorf("got %d programs, want 4", len(payload.Programs))
		}
	})

	t.Run("unknown tool", func(t *testing.T) {
		body, contentType := multipartBody(t, map[string]string{"file": positionsCSV}, nil)

		req := httptest.NewRequest("POST", "/api/tools/mystery", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		s.handleTool(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok status", rec.Body.String())
	}
}

func TestRoutes(t *testing.T) {
	s := newTestServer(t)
	mux := s.Routes()

	// A request through the mux picks up middleware headers.
	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("middleware headers missing from routed request")
	}
}
