package zones

import "github.com/fdg312/training-hub/internal/analysis"

// lowMaxHRThreshold — ниже этого наблюдаемый максимум выглядит заниженным
const lowMaxHRThreshold = 160

// Recommendations формирует тренерские советы по независимым правилам.
// Каждое правило добавляет ноль или одно сообщение, порядок сохраняется.
func Recommendations(stats analysis.HeartRateStats, sports []analysis.SportGroup) []string {
	recs := []string{}

	if stats.DataQuality == analysis.QualityPoor || stats.DataQuality == analysis.QualityNone {
		recs = append(recs, "Record more workouts with a heart rate monitor to improve zone accuracy.")
	}

	if stats.ActivitiesWithHR < 10 {
		recs = append(recs, "Zones will become more reliable after about 10 activities with heart rate data.")
	}

	if len(sports) > 1 {
		recs = append(recs, "You train multiple sports — consider sport-specific zones, max heart rate differs between disciplines.")
	}

	if stats.MaxHeartRate != nil && *stats.MaxHeartRate < lowMaxHRThreshold {
		recs = append(recs, "Your observed max heart rate looks low — a dedicated max HR field test would sharpen the estimate.")
	}

	return recs
}
