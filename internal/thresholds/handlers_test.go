package thresholds

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/training-hub/internal/storage/memory"
	"github.com/google/uuid"
)

func TestHandleEstimate(t *testing.T) {
	store := memory.New()
	service := newTestService(store)
	handler := NewHandler(service)
	athleteID := uuid.New()

	seedActivities(t, store, athleteID, 25, 22, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/athletes/"+athleteID.String()+"/thresholds/estimate", nil)
	req.SetPathValue("id", athleteID.String())
	w := httptest.NewRecorder()

	handler.HandleEstimate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp EstimateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Calculation.ActivitiesAnalyzed != 25 {
		t.Errorf("expected 25 analyzed, got %d", resp.Calculation.ActivitiesAnalyzed)
	}
	if resp.Analysis.SelectedModel == nil {
		t.Error("expected selected model")
	}
}

func TestHandleEstimateInvalidID(t *testing.T) {
	handler := NewHandler(newTestService(memory.New()))

	req := httptest.NewRequest(http.MethodPost, "/v1/athletes/xxx/thresholds/estimate", nil)
	req.SetPathValue("id", "xxx")
	w := httptest.NewRecorder()

	handler.HandleEstimate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleHistoryLimit(t *testing.T) {
	store := memory.New()
	service := newTestService(store)
	handler := NewHandler(service)
	athleteID := uuid.New()

	seedActivities(t, store, athleteID, 12, 12, 0)
	for i := 0; i < 4; i++ {
		if _, err := service.Estimate(context.Background(), athleteID); err != nil {
			t.Fatalf("estimate failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/athletes/"+athleteID.String()+"/thresholds/history?limit=2", nil)
	req.SetPathValue("id", athleteID.String())
	w := httptest.NewRecorder()

	handler.HandleHistory(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Calculations) != 2 {
		t.Errorf("expected 2 calculations, got %d", len(resp.Calculations))
	}
}

func TestHandleHistoryInvalidLimit(t *testing.T) {
	handler := NewHandler(newTestService(memory.New()))
	athleteID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/v1/athletes/"+athleteID.String()+"/thresholds/history?limit=500", nil)
	req.SetPathValue("id", athleteID.String())
	w := httptest.NewRecorder()

	handler.HandleHistory(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
