package activities

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fdg312/training-hub/internal/storage/memory"
	"github.com/google/uuid"
)

func TestHandleSyncBatch(t *testing.T) {
	store := memory.New()
	handler := NewHandler(NewService(store))
	athleteID := uuid.New()

	now := time.Now().UTC()
	reqBody := SyncBatchRequest{
		AthleteID: athleteID,
		Activities: []ActivityPayload{
			{
				ExternalID:   "strava-1",
				SportType:    "Run",
				StartedAt:    now.AddDate(0, 0, -1),
				AvgHeartRate: floatPtr(152),
				MaxHeartRate: floatPtr(181),
			},
			{
				ExternalID: "strava-2",
				SportType:  "Ride",
				StartedAt:  now.AddDate(0, 0, -2),
				AvgPower:   floatPtr(230),
			},
			{
				// Без external_id: пропускается, не прерывая батч
				SportType: "Run",
				StartedAt: now,
			},
		},
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/v1/activities/sync", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleSyncBatch(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SyncBatchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Upserted != 2 {
		t.Errorf("expected 2 upserted, got %d", resp.Upserted)
	}
	if resp.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", resp.Skipped)
	}
}

func TestHandleSyncBatchIdempotent(t *testing.T) {
	store := memory.New()
	service := NewService(store)
	athleteID := uuid.New()

	payload := ActivityPayload{
		ExternalID:   "strava-7",
		SportType:    "Run",
		StartedAt:    time.Now().UTC(),
		AvgHeartRate: floatPtr(150),
	}

	for i := 0; i < 2; i++ {
		if _, err := service.SyncBatch(context.Background(), SyncBatchRequest{
			AthleteID:  athleteID,
			Activities: []ActivityPayload{payload},
		}); err != nil {
			t.Fatalf("sync %d failed: %v", i, err)
		}
	}

	records, err := store.ListActivities(context.Background(), athleteID, nil, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record after resync, got %d", len(records))
	}
}

func TestSyncBatchSanitizesImplausibleHR(t *testing.T) {
	store := memory.New()
	service := NewService(store)
	athleteID := uuid.New()

	if _, err := service.SyncBatch(context.Background(), SyncBatchRequest{
		AthleteID: athleteID,
		Activities: []ActivityPayload{
			{
				ExternalID:   "bad-hr",
				SportType:    "Run",
				StartedAt:    time.Now().UTC(),
				AvgHeartRate: floatPtr(300), // артефакт датчика
				MaxHeartRate: floatPtr(10),
			},
		},
	}); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	records, _ := store.ListActivities(context.Background(), athleteID, nil, nil)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].HasHeartRate {
		t.Error("expected sanitized record without heart rate")
	}
}

func TestHandleSyncBatchValidation(t *testing.T) {
	handler := NewHandler(NewService(memory.New()))

	body, _ := json.Marshal(SyncBatchRequest{Activities: []ActivityPayload{{ExternalID: "x"}}})
	req := httptest.NewRequest(http.MethodPost, "/v1/activities/sync", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.HandleSyncBatch(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing athlete: expected 400, got %d", w.Code)
	}

	body, _ = json.Marshal(SyncBatchRequest{AthleteID: uuid.New()})
	req = httptest.NewRequest(http.MethodPost, "/v1/activities/sync", bytes.NewReader(body))
	w = httptest.NewRecorder()

	handler.HandleSyncBatch(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty batch: expected 400, got %d", w.Code)
	}
}

func TestHandleListWithRange(t *testing.T) {
	store := memory.New()
	service := NewService(store)
	handler := NewHandler(service)
	athleteID := uuid.New()

	now := time.Now().UTC()
	acts := []ActivityPayload{
		{ExternalID: "old", SportType: "Run", StartedAt: now.AddDate(0, 0, -40)},
		{ExternalID: "recent", SportType: "Run", StartedAt: now.AddDate(0, 0, -1)},
	}
	if _, err := service.SyncBatch(context.Background(), SyncBatchRequest{AthleteID: athleteID, Activities: acts}); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	from := now.AddDate(0, 0, -7).Format(time.RFC3339)
	req := httptest.NewRequest(http.MethodGet, "/v1/athletes/"+athleteID.String()+"/activities?from="+from, nil)
	req.SetPathValue("id", athleteID.String())
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Activities) != 1 || resp.Activities[0].ExternalID != "recent" {
		t.Errorf("expected only recent activity, got %v", resp.Activities)
	}
}

func floatPtr(v float64) *float64 { return &v }
