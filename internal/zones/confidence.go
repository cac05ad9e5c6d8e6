package zones

import "github.com/fdg312/training-hub/internal/analysis"

// Уровни общей уверенности анализа зон
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// OverallConfidence оценивает уверенность анализа по качеству пульсовых
// данных и количеству активностей с пульсом.
func OverallConfidence(stats analysis.HeartRateStats) string {
	switch {
	case stats.DataQuality == analysis.QualityExcellent && stats.ActivitiesWithHR >= 20:
		return ConfidenceHigh
	case stats.DataQuality == analysis.QualityGood && stats.ActivitiesWithHR >= 10:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
