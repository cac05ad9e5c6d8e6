package thresholds

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fdg312/training-hub/internal/analysis"
	"github.com/fdg312/training-hub/internal/profiles"
	"github.com/fdg312/training-hub/internal/storage"
	"github.com/fdg312/training-hub/internal/storage/memory"
	"github.com/fdg312/training-hub/internal/zones"
	"github.com/google/uuid"
)

func newTestService(store *memory.MemoryStorage) *Service {
	generator := zones.NewGenerator(30)
	selector := zones.FiveZonePreferredSelector{}
	profileSvc := profiles.NewService(store, store, generator, selector, 30, 5)
	return NewService(store, store, profileSvc, generator, selector)
}

// seedActivities загружает total активностей, из которых withHR имеют пульс.
// Пики растут к 195, лучшие средние мощности к 280 Вт.
func seedActivities(t *testing.T, store *memory.MemoryStorage, athleteID uuid.UUID, total, withHR, withPower int) {
	t.Helper()

	now := time.Now().UTC()
	for i := 0; i < total; i++ {
		rec := &storage.ActivityRecord{
			ID:         uuid.New(),
			AthleteID:  athleteID,
			ExternalID: fmt.Sprintf("act-%d", i),
			SportType:  "Run",
			StartedAt:  now.AddDate(0, 0, -i),
		}
		if i < withHR {
			rec.AvgHeartRate = float64(150 + i%20)
			rec.MaxHeartRate = float64(195 - i%22)
			rec.HasHeartRate = true
		}
		if i < withPower {
			power := float64(280 - i*5)
			rec.AvgPower = &power
		}
		if err := store.UpsertActivity(context.Background(), rec); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestEstimateEndToEnd(t *testing.T) {
	store := memory.New()
	service := newTestService(store)
	athleteID := uuid.New()

	seedActivities(t, store, athleteID, 25, 22, 12)

	resp, err := service.Estimate(context.Background(), athleteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Analysis.Statistics.DataQuality != analysis.QualityExcellent {
		t.Errorf("expected excellent quality, got %s", resp.Analysis.Statistics.DataQuality)
	}
	if resp.Analysis.Confidence != zones.ConfidenceHigh {
		t.Errorf("expected high confidence, got %s", resp.Analysis.Confidence)
	}
	if resp.Analysis.NeedsMoreData {
		t.Error("expected needs_more_data=false")
	}
	if resp.Analysis.SelectedModel == nil || resp.Analysis.SelectedModel.Name != zones.FiveZoneModelName {
		t.Errorf("expected 5-zone model selected, got %v", resp.Analysis.SelectedModel)
	}
	if len(resp.Analysis.AlternativeModels) != 3 {
		t.Errorf("expected 3 models, got %d", len(resp.Analysis.AlternativeModels))
	}

	calc := resp.Calculation
	if calc.MaxHeartRate == nil || *calc.MaxHeartRate != 195 {
		t.Errorf("expected max HR 195, got %v", calc.MaxHeartRate)
	}
	// LTHR = round(0.89 * 195)
	if calc.LactateThresholdHR == nil || *calc.LactateThresholdHR != 174 {
		t.Errorf("expected LTHR 174, got %v", calc.LactateThresholdHR)
	}
	// FTP = round(0.95 * 280)
	if calc.FTP == nil || *calc.FTP != 266 {
		t.Errorf("expected FTP 266, got %v", calc.FTP)
	}
	if calc.MaxHRConfidence != 1.0 {
		t.Errorf("expected max HR confidence 1.0 at 22 activities, got %v", calc.MaxHRConfidence)
	}
	if calc.FTPConfidence != 1.0 {
		t.Errorf("expected FTP confidence 1.0 at 12 power activities, got %v", calc.FTPConfidence)
	}
	if calc.Method != MethodActivityStatistics {
		t.Errorf("expected method %s, got %s", MethodActivityStatistics, calc.Method)
	}

	// Профиль автообновлён оценками
	profile, err := store.GetTrainingProfile(context.Background(), athleteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.MaxHeartRate == nil || *profile.MaxHeartRate != 195 {
		t.Errorf("expected profile max HR 195, got %v", profile.MaxHeartRate)
	}
	if profile.MaxHeartRateSource != storage.SourceEstimated {
		t.Errorf("expected estimated provenance, got %q", profile.MaxHeartRateSource)
	}
	if len(resp.ProfileUpdated) == 0 {
		t.Error("expected updated profile fields")
	}

	// Строка истории записана
	history, err := service.History(context.Background(), athleteID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.Calculations) != 1 {
		t.Fatalf("expected 1 calculation, got %d", len(history.Calculations))
	}
}

func TestEstimateHistoryIsAppendOnly(t *testing.T) {
	store := memory.New()
	service := newTestService(store)
	athleteID := uuid.New()

	seedActivities(t, store, athleteID, 25, 22, 0)

	for i := 0; i < 3; i++ {
		if _, err := service.Estimate(context.Background(), athleteID); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}

	history, err := service.History(context.Background(), athleteID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.Calculations) != 3 {
		t.Errorf("expected 3 calculations, got %d", len(history.Calculations))
	}
}

func TestEstimateWithoutActivities(t *testing.T) {
	store := memory.New()
	service := newTestService(store)
	athleteID := uuid.New()

	resp, err := service.Estimate(context.Background(), athleteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Analysis.Statistics.DataQuality != analysis.QualityNone {
		t.Errorf("expected none quality, got %s", resp.Analysis.Statistics.DataQuality)
	}
	if !resp.Analysis.NeedsMoreData {
		t.Error("expected needs_more_data=true")
	}

	// Зоны всё равно строятся от age-based fallback
	if resp.Analysis.SelectedModel == nil {
		t.Fatal("expected selected model from fallback max HR")
	}
	if top := resp.Analysis.SelectedModel.Zones[4].MaxHR; top != 190 {
		t.Errorf("expected fallback top bound 190, got %d", top)
	}

	calc := resp.Calculation
	if calc.MaxHeartRate != nil {
		t.Errorf("expected no max HR estimate, got %v", *calc.MaxHeartRate)
	}
	if calc.OverallConfidence != 0 {
		t.Errorf("expected zero confidence, got %v", calc.OverallConfidence)
	}

	// Интервал по умолчанию: последние 30 дней
	window := calc.AnalyzedTo.Sub(calc.AnalyzedFrom)
	if window < 29*24*time.Hour || window > 31*24*time.Hour {
		t.Errorf("expected ~30 day default window, got %v", window)
	}
}

func TestConfidenceRamps(t *testing.T) {
	store := memory.New()
	service := newTestService(store)
	athleteID := uuid.New()

	// 10 активностей с пульсом из 10: hrConf = 10/20 = 0.5
	seedActivities(t, store, athleteID, 10, 10, 5)

	resp, err := service.Estimate(context.Background(), athleteID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calc := resp.Calculation
	if calc.MaxHRConfidence != 0.5 {
		t.Errorf("expected max HR confidence 0.5, got %v", calc.MaxHRConfidence)
	}
	if calc.RestingHRConfidence != 0.4 {
		t.Errorf("expected resting confidence 0.4, got %v", calc.RestingHRConfidence)
	}
	if calc.LactateHRConfidence != 0.45 {
		t.Errorf("expected lactate confidence 0.45, got %v", calc.LactateHRConfidence)
	}
	if calc.FTPConfidence != 0.5 {
		t.Errorf("expected FTP confidence 0.5 at 5 power activities, got %v", calc.FTPConfidence)
	}

	// overall = 10/30
	if diff := calc.OverallConfidence - 1.0/3.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected overall confidence 1/3, got %v", calc.OverallConfidence)
	}
}

func TestAnalyzeDoesNotWrite(t *testing.T) {
	store := memory.New()
	service := newTestService(store)
	athleteID := uuid.New()

	seedActivities(t, store, athleteID, 25, 22, 0)

	if _, err := service.Analyze(context.Background(), athleteID, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, _ := service.History(context.Background(), athleteID, 10)
	if len(history.Calculations) != 0 {
		t.Errorf("expected no history rows after analyze, got %d", len(history.Calculations))
	}
	if _, err := store.GetTrainingProfile(context.Background(), athleteID); err != storage.ErrProfileNotFound {
		t.Errorf("expected no profile created by analyze, got %v", err)
	}
}
