package memory

import (
	"context"
	"testing"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

func TestProfileVersionConflict(t *testing.T) {
	store := New()
	athleteID := uuid.New()

	profile := &storage.TrainingProfile{AthleteID: athleteID}
	if err := store.CreateTrainingProfile(context.Background(), profile); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if profile.Version != 1 {
		t.Fatalf("expected version 1 after create, got %d", profile.Version)
	}

	// Обновление с актуальной версией проходит
	current, err := store.GetTrainingProfile(context.Background(), athleteID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if err := store.UpdateTrainingProfile(context.Background(), current); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if current.Version != 2 {
		t.Errorf("expected version 2 after update, got %d", current.Version)
	}

	// Обновление со старой версией отклоняется
	stale := &storage.TrainingProfile{AthleteID: athleteID, Version: 1}
	if err := store.UpdateTrainingProfile(context.Background(), stale); err != storage.ErrVersionConflict {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
}

func TestUpdateMissingProfile(t *testing.T) {
	store := New()

	err := store.UpdateTrainingProfile(context.Background(), &storage.TrainingProfile{AthleteID: uuid.New(), Version: 1})
	if err != storage.ErrProfileNotFound {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestListRecentCalculationsOrder(t *testing.T) {
	store := New()
	athleteID := uuid.New()

	for i := 0; i < 3; i++ {
		calc := &storage.ThresholdCalculation{
			ID:        uuid.New(),
			AthleteID: athleteID,
			Method:    "activity_statistics_v1",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := store.InsertCalculation(context.Background(), calc); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	calcs, err := store.ListRecentCalculations(context.Background(), athleteID, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(calcs) != 2 {
		t.Fatalf("expected 2 calculations, got %d", len(calcs))
	}
	if calcs[0].CreatedAt.Before(calcs[1].CreatedAt) {
		t.Error("expected newest calculation first")
	}
}
