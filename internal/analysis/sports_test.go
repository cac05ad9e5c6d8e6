package analysis

import (
	"fmt"
	"testing"

	"github.com/fdg312/training-hub/internal/storage"
)

func TestNormalizeSport(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Run", SportRunning},
		{"Morning Run", SportRunning},
		{"TrailRun", SportRunning},
		{"Ride", SportCycling},
		{"VirtualRide", SportCycling},
		{"Mountain Bike", SportCycling},
		{"indoor cycling", SportCycling},
		{"Swim", SportSwimming},
		{"Open Water Swim", SportSwimming},
		{"Walk", SportWalking},
		{"Hike", SportWalking},
		{"Rowing", "Rowing"}, // неизвестная метка проходит как есть
		{"Yoga", "Yoga"},
	}

	for _, tt := range tests {
		if got := NormalizeSport(tt.label); got != tt.want {
			t.Errorf("NormalizeSport(%q): expected %q, got %q", tt.label, tt.want, got)
		}
	}
}

func TestAnalyzeBySportGroupsAndThreshold(t *testing.T) {
	acts := []storage.ActivityRecord{}

	// 5 пробежек с пульсом
	for i := 0; i < 5; i++ {
		a := hrActivity(fmt.Sprintf("run-%d", i), float64(150+i), float64(180+i))
		a.SportType = "Morning Run"
		acts = append(acts, a)
	}

	// 3 велозаезда
	for i := 0; i < 3; i++ {
		a := hrActivity(fmt.Sprintf("ride-%d", i), float64(130+i), float64(165+i))
		a.SportType = "Ride"
		acts = append(acts, a)
	}

	// 2 заплыва: ниже порога, в отчёт не попадают
	for i := 0; i < 2; i++ {
		a := hrActivity(fmt.Sprintf("swim-%d", i), 125, 150)
		a.SportType = "Swim"
		acts = append(acts, a)
	}

	groups := AnalyzeBySport(acts)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if groups[0].Sport != SportRunning {
		t.Errorf("expected Running first, got %s", groups[0].Sport)
	}
	if groups[0].ActivityCount != 5 {
		t.Errorf("expected 5 runs, got %d", groups[0].ActivityCount)
	}
	if groups[0].MaxHeartRate != 184 {
		t.Errorf("expected run max 184, got %v", groups[0].MaxHeartRate)
	}

	if groups[1].Sport != SportCycling {
		t.Errorf("expected Cycling second, got %s", groups[1].Sport)
	}
	if groups[1].AverageHeartRate != 131 {
		t.Errorf("expected ride average 131, got %d", groups[1].AverageHeartRate)
	}
}

func TestAnalyzeBySportSkipsActivitiesWithoutHR(t *testing.T) {
	acts := []storage.ActivityRecord{}
	for i := 0; i < 4; i++ {
		acts = append(acts, plainActivity(fmt.Sprintf("p-%d", i)))
	}

	if groups := AnalyzeBySport(acts); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
