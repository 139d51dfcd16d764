package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRoot(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["message"] != "Seating API ready" {
		t.Fatalf("message = %q", body["message"])
	}
}

func TestTestDatabaseWithoutStore(t *testing.T) {
	h := NewHandler(nil)
	rec := httptest.NewRecorder()
	h.TestDatabase(rec, httptest.NewRequest(http.MethodGet, "/test", nil), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("diagnostics must never fail, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["connection_status"] != "Not Connected" {
		t.Errorf("connection_status = %v", body["connection_status"])
	}
	if body["backend"] != "✅ Running" {
		t.Errorf("backend = %v", body["backend"])
	}
	if body["database_name"] != nil {
		t.Errorf("database_name = %v, want null", body["database_name"])
	}
}
