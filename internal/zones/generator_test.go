package zones

import (
	"testing"
)

func TestFiveZoneModelBounds(t *testing.T) {
	g := NewGenerator(30)
	model := g.FiveZoneModel(200)

	if len(model.Zones) != 5 {
		t.Fatalf("expected 5 zones, got %d", len(model.Zones))
	}

	z1 := model.Zones[0]
	if z1.MinHR != 100 || z1.MaxHR != 120 {
		t.Errorf("zone 1: expected 100-120, got %d-%d", z1.MinHR, z1.MaxHR)
	}

	z5 := model.Zones[4]
	if z5.MinHR != 180 || z5.MaxHR != 200 {
		t.Errorf("zone 5: expected 180-200, got %d-%d", z5.MinHR, z5.MaxHR)
	}
}

func TestHeartRateModelsContiguousPercents(t *testing.T) {
	g := NewGenerator(30)
	maxHR := 190.0

	for _, model := range g.HeartRateModels(&maxHR) {
		for i := 0; i < len(model.Zones)-1; i++ {
			cur, next := model.Zones[i], model.Zones[i+1]
			if cur.MaxPercent != next.MinPercent {
				t.Errorf("%s: zone %d max%% %d != zone %d min%% %d",
					model.Name, cur.Number, cur.MaxPercent, next.Number, next.MinPercent)
			}
		}
	}
}

func TestHeartRateModelsContiguousAbsolute(t *testing.T) {
	g := NewGenerator(30)
	maxHR := 187.0

	// Абсолютные границы смежны у моделей без сверхмаксимальных зон
	for _, model := range g.HeartRateModels(&maxHR) {
		if model.Name == CogganModelName {
			continue
		}
		for i := 0; i < len(model.Zones)-1; i++ {
			cur, next := model.Zones[i], model.Zones[i+1]
			if cur.MaxHR != next.MinHR {
				t.Errorf("%s: zone %d max %d != zone %d min %d",
					model.Name, cur.Number, cur.MaxHR, next.Number, next.MinHR)
			}
		}
	}
}

func TestCogganModelClampsThresholdZone(t *testing.T) {
	g := NewGenerator(30)
	model := g.cogganModel(200)

	z4 := model.Zones[3]
	if z4.MaxPercent != 106 {
		t.Errorf("zone 4: expected max percent 106, got %d", z4.MaxPercent)
	}
	// 106% от 200 = 212, но абсолютная граница прижата к максимуму
	if z4.MaxHR != 200 {
		t.Errorf("zone 4: expected clamped max 200, got %d", z4.MaxHR)
	}

	z5 := model.Zones[4]
	if z5.MaxHR <= 200 {
		t.Errorf("zone 5: expected supramaximal bound, got %d", z5.MaxHR)
	}
}

func TestResolveMaxHRFallback(t *testing.T) {
	g := NewGenerator(30)

	hr, estimated := g.ResolveMaxHR(nil)
	if hr != 190 || !estimated {
		t.Errorf("nil input: expected (190, true), got (%v, %v)", hr, estimated)
	}

	low := 80.0
	hr, estimated = g.ResolveMaxHR(&low)
	if hr != 190 || !estimated {
		t.Errorf("implausible input: expected (190, true), got (%v, %v)", hr, estimated)
	}

	measured := 195.0
	hr, estimated = g.ResolveMaxHR(&measured)
	if hr != 195 || estimated {
		t.Errorf("measured input: expected (195, false), got (%v, %v)", hr, estimated)
	}
}

func TestNewGeneratorDefaultAge(t *testing.T) {
	g := NewGenerator(0)

	hr, _ := g.ResolveMaxHR(nil)
	if hr != 190 {
		t.Errorf("expected fallback 190 with default age, got %v", hr)
	}
}

func TestPowerModel(t *testing.T) {
	model := PowerModel(250)

	if len(model.Zones) != 7 {
		t.Fatalf("expected 7 zones, got %d", len(model.Zones))
	}
	if model.FTP != 250 {
		t.Errorf("expected FTP 250, got %d", model.FTP)
	}

	z4 := model.Zones[3]
	if z4.MinWatts != 225 || z4.MaxWatts != 263 {
		t.Errorf("threshold zone: expected 225-263 W, got %d-%d", z4.MinWatts, z4.MaxWatts)
	}

	for i := 0; i < len(model.Zones)-1; i++ {
		cur, next := model.Zones[i], model.Zones[i+1]
		if cur.MaxPercent != next.MinPercent {
			t.Errorf("zone %d max%% %d != zone %d min%% %d", cur.Number, cur.MaxPercent, next.Number, next.MinPercent)
		}
	}
}
