package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/fdg312/training-hub/internal/storage"
)

// Канонические спортивные категории
const (
	SportRunning  = "Running"
	SportCycling  = "Cycling"
	SportSwimming = "Swimming"
	SportWalking  = "Walking"
)

// minActivitiesPerSport — минимум активностей для отчёта по виду спорта
const minActivitiesPerSport = 3

// SportGroup — статистика пульса по одной спортивной категории
type SportGroup struct {
	Sport            string
	MaxHeartRate     float64
	AverageHeartRate int
	ActivityCount    int
}

// NormalizeSport приводит свободный текст провайдера к канонической категории.
// Неизвестные метки проходят без изменений и образуют собственную категорию.
func NormalizeSport(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "run"):
		return SportRunning
	case strings.Contains(l, "ride"), strings.Contains(l, "bike"), strings.Contains(l, "cycling"):
		return SportCycling
	case strings.Contains(l, "swim"):
		return SportSwimming
	case strings.Contains(l, "walk"), strings.Contains(l, "hike"):
		return SportWalking
	default:
		return label
	}
}

// AnalyzeBySport группирует активности с пульсом по нормализованным видам
// спорта и считает статистику для групп хотя бы из трёх активностей.
// Результат отсортирован по убыванию количества активностей.
func AnalyzeBySport(activities []storage.ActivityRecord) []SportGroup {
	grouped := make(map[string][]storage.ActivityRecord)
	for _, a := range filterWithHeartRate(activities) {
		sport := NormalizeSport(a.SportType)
		grouped[sport] = append(grouped[sport], a)
	}

	groups := make([]SportGroup, 0, len(grouped))
	for sport, acts := range grouped {
		if len(acts) < minActivitiesPerSport {
			continue
		}

		var maxHR, sum float64
		var avgCount int
		for _, a := range acts {
			if peak := peakHeartRate(a); peak > maxHR {
				maxHR = peak
			}
			if a.AvgHeartRate > 0 {
				sum += a.AvgHeartRate
				avgCount++
			}
		}

		avg := 0
		if avgCount > 0 {
			avg = int(math.Round(sum / float64(avgCount)))
		}

		groups = append(groups, SportGroup{
			Sport:            sport,
			MaxHeartRate:     maxHR,
			AverageHeartRate: avg,
			ActivityCount:    len(acts),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].ActivityCount != groups[j].ActivityCount {
			return groups[i].ActivityCount > groups[j].ActivityCount
		}
		return groups[i].Sport < groups[j].Sport
	})

	return groups
}
