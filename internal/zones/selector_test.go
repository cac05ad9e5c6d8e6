package zones

import (
	"strings"
	"testing"

	"github.com/fdg312/training-hub/internal/analysis"
)

func TestFiveZonePreferredSelector(t *testing.T) {
	g := NewGenerator(30)
	maxHR := 190.0
	models := g.HeartRateModels(&maxHR)

	selected := FiveZonePreferredSelector{}.Select(models)
	if selected == nil || selected.Name != FiveZoneModelName {
		t.Errorf("expected %s, got %v", FiveZoneModelName, selected)
	}
}

func TestFiveZonePreferredSelectorFallsBackToFirst(t *testing.T) {
	models := []ZoneModel{
		{Name: ThreeZoneModelName},
		{Name: CogganModelName},
	}

	selected := FiveZonePreferredSelector{}.Select(models)
	if selected == nil || selected.Name != ThreeZoneModelName {
		t.Errorf("expected first model, got %v", selected)
	}

	if (FiveZonePreferredSelector{}).Select(nil) != nil {
		t.Error("expected nil for empty list")
	}
}

func TestOverallConfidence(t *testing.T) {
	tests := []struct {
		quality string
		withHR  int
		want    string
	}{
		{analysis.QualityExcellent, 25, ConfidenceHigh},
		{analysis.QualityExcellent, 20, ConfidenceHigh},
		{analysis.QualityGood, 15, ConfidenceMedium},
		{analysis.QualityGood, 9, ConfidenceLow},
		{analysis.QualityFair, 30, ConfidenceLow},
		{analysis.QualityNone, 0, ConfidenceLow},
	}

	for _, tt := range tests {
		stats := analysis.HeartRateStats{DataQuality: tt.quality, ActivitiesWithHR: tt.withHR}
		if got := OverallConfidence(stats); got != tt.want {
			t.Errorf("quality=%s withHR=%d: expected %s, got %s", tt.quality, tt.withHR, tt.want, got)
		}
	}
}

func TestRecommendations(t *testing.T) {
	maxHR := 150.0
	stats := analysis.HeartRateStats{
		DataQuality:      analysis.QualityPoor,
		ActivitiesWithHR: 4,
		MaxHeartRate:     &maxHR,
	}
	sports := []analysis.SportGroup{
		{Sport: analysis.SportRunning},
		{Sport: analysis.SportCycling},
	}

	recs := Recommendations(stats, sports)
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d: %v", len(recs), recs)
	}
	if !strings.Contains(recs[0], "heart rate monitor") {
		t.Errorf("expected monitor advice first, got %q", recs[0])
	}
	if !strings.Contains(recs[3], "field test") {
		t.Errorf("expected field test advice last, got %q", recs[3])
	}
}

func TestRecommendationsCleanData(t *testing.T) {
	maxHR := 192.0
	stats := analysis.HeartRateStats{
		DataQuality:      analysis.QualityExcellent,
		ActivitiesWithHR: 30,
		MaxHeartRate:     &maxHR,
	}
	sports := []analysis.SportGroup{{Sport: analysis.SportRunning}}

	if recs := Recommendations(stats, sports); len(recs) != 0 {
		t.Errorf("expected no recommendations, got %v", recs)
	}
}
