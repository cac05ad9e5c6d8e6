package zones

import "math"

// minPlausibleMaxHR — ниже этого значения измеренный максимум считается
// физиологически неправдоподобным и заменяется age-based оценкой.
const minPlausibleMaxHR = 120

// Generator строит модели зон от максимального пульса.
// defaultAge задаёт fallback 220-age, когда измеренного максимума нет.
type Generator struct {
	defaultAge int
}

// NewGenerator создаёт генератор моделей зон
func NewGenerator(defaultAge int) *Generator {
	if defaultAge <= 0 {
		defaultAge = 30
	}
	return &Generator{defaultAge: defaultAge}
}

// ResolveMaxHR возвращает рабочий максимальный пульс и признак того, что
// он получен age-based оценкой, а не из данных. Подстановка намеренно
// тихая: низкую уверенность должен выставить вызывающий код.
func (g *Generator) ResolveMaxHR(maxHR *float64) (float64, bool) {
	if maxHR == nil || *maxHR < minPlausibleMaxHR {
		return float64(220 - g.defaultAge), true
	}
	return *maxHR, false
}

// HeartRateModels строит три стандартные модели зон в фиксированном порядке:
// 5-зонную аэробную, упрощённую 3-зонную и адаптированную модель Коггана.
func (g *Generator) HeartRateModels(maxHR *float64) []ZoneModel {
	hr, _ := g.ResolveMaxHR(maxHR)

	return []ZoneModel{
		g.FiveZoneModel(hr),
		g.threeZoneModel(hr),
		g.cogganModel(hr),
	}
}

// FiveZoneModel строит 5-зонную модель: смежные полосы по 10 процентных
// пунктов от 50% до 100% максимального пульса.
func (g *Generator) FiveZoneModel(maxHR float64) ZoneModel {
	specs := []struct {
		name, desc string
		min, max   int
	}{
		{"Recovery", "Very light effort, active recovery", 50, 60},
		{"Base Aerobic", "Comfortable effort, builds aerobic base", 60, 70},
		{"Tempo", "Moderate effort, improves efficiency", 70, 80},
		{"Threshold", "Hard effort around lactate threshold", 80, 90},
		{"VO2 Max", "Very hard effort, develops maximal capacity", 90, 100},
	}

	model := ZoneModel{
		Name:        FiveZoneModelName,
		Description: "Classic five-zone aerobic model",
	}
	for i, s := range specs {
		model.Zones = append(model.Zones, TrainingZone{
			Number:      i + 1,
			Name:        s.name,
			Description: s.desc,
			MinPercent:  s.min,
			MaxPercent:  s.max,
			MinHR:       pctOf(maxHR, s.min),
			MaxHR:       pctOf(maxHR, s.max),
		})
	}

	return model
}

func (g *Generator) threeZoneModel(maxHR float64) ZoneModel {
	specs := []struct {
		name, desc string
		min, max   int
	}{
		{"Easy", "Conversational pace", 50, 70},
		{"Moderate", "Comfortably hard", 70, 85},
		{"Hard", "High intensity", 85, 100},
	}

	model := ZoneModel{
		Name:        ThreeZoneModelName,
		Description: "Simplified three-zone model",
	}
	for i, s := range specs {
		model.Zones = append(model.Zones, TrainingZone{
			Number:      i + 1,
			Name:        s.name,
			Description: s.desc,
			MinPercent:  s.min,
			MaxPercent:  s.max,
			MinHR:       pctOf(maxHR, s.min),
			MaxHR:       pctOf(maxHR, s.max),
		})
	}

	return model
}

// cogganModel строит адаптированную под пульс модель Коггана. Последние две
// зоны допускают проценты выше 100: верхняя абсолютная граница четвёртой
// зоны прижимается к измеренному максимуму, пятая остаётся сверхмаксимальной.
func (g *Generator) cogganModel(maxHR float64) ZoneModel {
	specs := []struct {
		name, desc string
		min, max   int
	}{
		{"Active Recovery", "Easy spinning, minimal stress", 50, 69},
		{"Endurance", "All-day aerobic pace", 69, 84},
		{"Tempo", "Sustained brisk effort", 84, 95},
		{"Threshold", "Around functional threshold", 95, 106},
		{"VO2 Max", "Supramaximal repeats", 106, 120},
	}

	model := ZoneModel{
		Name:        CogganModelName,
		Description: "Coggan-style model adapted to heart rate",
	}
	for i, s := range specs {
		zone := TrainingZone{
			Number:      i + 1,
			Name:        s.name,
			Description: s.desc,
			MinPercent:  s.min,
			MaxPercent:  s.max,
			MinHR:       pctOf(maxHR, s.min),
			MaxHR:       pctOf(maxHR, s.max),
		}
		if zone.Number == 4 && zone.MaxHR > int(math.Round(maxHR)) {
			zone.MaxHR = int(math.Round(maxHR))
		}
		model.Zones = append(model.Zones, zone)
	}

	return model
}

// PowerModel строит 7-зонную силовую модель Коггана от FTP
func PowerModel(ftp int) PowerZoneModel {
	specs := []struct {
		name, desc string
		min, max   int
	}{
		{"Active Recovery", "Very easy spinning", 0, 55},
		{"Endurance", "Long steady rides", 55, 75},
		{"Tempo", "Brisk group ride pace", 75, 90},
		{"Lactate Threshold", "Time trial effort", 90, 105},
		{"VO2 Max", "Hard 3-8 minute intervals", 105, 120},
		{"Anaerobic Capacity", "Short severe intervals", 120, 150},
		{"Neuromuscular Power", "Maximal sprints", 150, 250},
	}

	model := PowerZoneModel{
		Name:        PowerModelName,
		Description: "Seven-band Coggan power model keyed to FTP",
		FTP:         ftp,
	}
	for i, s := range specs {
		model.Zones = append(model.Zones, PowerZone{
			Number:      i + 1,
			Name:        s.name,
			Description: s.desc,
			MinPercent:  s.min,
			MaxPercent:  s.max,
			MinWatts:    pctOf(float64(ftp), s.min),
			MaxWatts:    pctOf(float64(ftp), s.max),
		})
	}

	return model
}

func pctOf(base float64, pct int) int {
	return int(math.Round(base * float64(pct) / 100))
}
