package analysis

import (
	"math"
	"sort"

	"github.com/fdg312/training-hub/internal/storage"
)

// Уровни качества пульсовых данных
const (
	QualityNone      = "none"
	QualityPoor      = "poor"
	QualityFair      = "fair"
	QualityGood      = "good"
	QualityExcellent = "excellent"
)

// PercentileRanks — ранги перцентильной таблицы пиковых пульсов
var PercentileRanks = []int{50, 75, 85, 90, 95, 99}

// HeartRateStats — агрегированная статистика пульса по истории активностей
type HeartRateStats struct {
	MaxHeartRate     *float64
	AverageHeartRate *int
	RestingHeartRate *int
	ActivitiesWithHR int
	TotalActivities  int
	DataQuality      string
	Percentiles      map[int]float64 // rank -> bpm, пустая map если данных нет
}

// AnalyzeHeartRate строит статистику пульса по всем активностям одного атлета.
// Отсутствие данных не является ошибкой: возвращается пустой результат с
// качеством "none", чтобы UI всегда было что отрисовать.
func AnalyzeHeartRate(activities []storage.ActivityRecord) HeartRateStats {
	stats := HeartRateStats{
		TotalActivities: len(activities),
		DataQuality:     QualityNone,
		Percentiles:     map[int]float64{},
	}

	qualifying := filterWithHeartRate(activities)
	stats.ActivitiesWithHR = len(qualifying)
	if len(qualifying) == 0 {
		return stats
	}

	// Максимальный пульс: максимум по пикам активностей
	// (максимум активности, при его отсутствии — средний)
	peaks := make([]float64, 0, len(qualifying))
	for _, a := range qualifying {
		peaks = append(peaks, peakHeartRate(a))
	}

	maxHR := peaks[0]
	for _, p := range peaks[1:] {
		if p > maxHR {
			maxHR = p
		}
	}
	stats.MaxHeartRate = &maxHR

	// Средний пульс: среднее по положительным средним значениям
	averages := make([]float64, 0, len(qualifying))
	for _, a := range qualifying {
		if a.AvgHeartRate > 0 {
			averages = append(averages, a.AvgHeartRate)
		}
	}

	if len(averages) > 0 {
		var sum float64
		for _, v := range averages {
			sum += v
		}
		avg := int(math.Round(sum / float64(len(averages))))
		stats.AverageHeartRate = &avg

		// Пульс покоя: 5-й перцентиль отсортированных средних по индексу
		// массива, без интерполяции. Это грубая оценка низкоинтенсивной
		// базы, а не измерение в покое.
		sorted := append([]float64(nil), averages...)
		sort.Float64s(sorted)
		resting := int(math.Round(sorted[int(0.05*float64(len(sorted)))]))
		stats.RestingHeartRate = &resting
	}

	// Перцентильная таблица пиковых пульсов (интерполяция R-6)
	sortedPeaks := append([]float64(nil), peaks...)
	sort.Float64s(sortedPeaks)
	for _, rank := range PercentileRanks {
		if v := Percentile(sortedPeaks, float64(rank)); v != nil {
			stats.Percentiles[rank] = *v
		}
	}

	stats.DataQuality = AssessDataQuality(stats.ActivitiesWithHR, stats.TotalActivities)

	return stats
}

// AssessDataQuality оценивает качество данных по доле активностей с пульсом
// и их абсолютному количеству. Пороги проверяются по порядку, побеждает первый.
func AssessDataQuality(withHR, total int) string {
	if withHR == 0 {
		return QualityNone
	}

	ratio := float64(withHR) / float64(total)

	switch {
	case ratio < 0.2 || withHR < 5:
		return QualityPoor
	case ratio < 0.5 || withHR < 10:
		return QualityFair
	case ratio < 0.8 || withHR < 20:
		return QualityGood
	default:
		return QualityExcellent
	}
}

func filterWithHeartRate(activities []storage.ActivityRecord) []storage.ActivityRecord {
	qualifying := make([]storage.ActivityRecord, 0, len(activities))
	for _, a := range activities {
		if a.HasHeartRate && (a.AvgHeartRate > 0 || a.MaxHeartRate > 0) {
			qualifying = append(qualifying, a)
		}
	}
	return qualifying
}

func peakHeartRate(a storage.ActivityRecord) float64 {
	if a.MaxHeartRate > 0 {
		return a.MaxHeartRate
	}
	return a.AvgHeartRate
}
