package thresholds

import (
	"context"
	"math"
	"time"

	"github.com/fdg312/training-hub/internal/analysis"
	"github.com/fdg312/training-hub/internal/profiles"
	"github.com/fdg312/training-hub/internal/storage"
	"github.com/fdg312/training-hub/internal/zones"
	"github.com/google/uuid"
)

// MethodActivityStatistics — тег метода для строк истории расчётов
const MethodActivityStatistics = "activity_statistics_v1"

const (
	// Рампы уверенности: сколько активностей нужно для полной уверенности
	hrConfidenceTarget      = 20.0
	powerConfidenceTarget   = 10.0
	overallConfidenceTarget = 30.0

	// Производные пороги от оценённого максимума
	lactateFraction = 0.89
	ftpFraction     = 0.95

	// Окно анализа по умолчанию, когда активностей нет
	defaultAnalysisWindowDays = 30

	minReliableHRActivities = 10
)

// Service содержит бизнес-логику оценки порогов и анализа зон
type Service struct {
	activities   storage.ActivityStorage
	calculations storage.CalculationsStorage
	profileSvc   *profiles.Service
	generator    *zones.Generator
	selector     zones.ModelSelector
}

// NewService создаёт новый сервис
func NewService(
	activities storage.ActivityStorage,
	calculations storage.CalculationsStorage,
	profileSvc *profiles.Service,
	generator *zones.Generator,
	selector zones.ModelSelector,
) *Service {
	return &Service{
		activities:   activities,
		calculations: calculations,
		profileSvc:   profileSvc,
		generator:    generator,
		selector:     selector,
	}
}

// Estimate анализирует историю активностей атлета, обновляет профиль
// автообновляемыми порогами и дописывает строку в историю расчётов.
// Строка истории пишется только после успешного обновления профиля:
// отсутствие строки означает, что анализ не состоялся.
func (s *Service) Estimate(ctx context.Context, athleteID uuid.UUID) (*EstimateResponse, error) {
	records, err := s.activities.ListActivities(ctx, athleteID, nil, nil)
	if err != nil {
		return nil, err
	}

	analysisResult := s.analyze(records)
	calc := s.buildCalculation(athleteID, records, analysisResult.Statistics)

	updated, err := s.profileSvc.ApplyEstimate(ctx, athleteID, profiles.EstimateUpdate{
		MaxHeartRate:        calc.MaxHeartRate,
		MaxHRConfidence:     calc.MaxHRConfidence,
		RestingHeartRate:    calc.RestingHeartRate,
		RestingHRConfidence: calc.RestingHRConfidence,
		LactateThresholdHR:  calc.LactateThresholdHR,
		LactateHRConfidence: calc.LactateHRConfidence,
		FTP:                 calc.FTP,
		FTPConfidence:       calc.FTPConfidence,
		ActivitiesAnalyzed:  calc.ActivitiesAnalyzed,
	})
	if err != nil {
		return nil, err
	}

	if err := s.calculations.InsertCalculation(ctx, calc); err != nil {
		return nil, err
	}

	return &EstimateResponse{
		Analysis:       analysisResult,
		Calculation:    toCalculationDTO(*calc),
		ProfileUpdated: updated,
	}, nil
}

// Analyze строит анализ зон без записи в профиль и историю
func (s *Service) Analyze(ctx context.Context, athleteID uuid.UUID, from, to *time.Time) (*ZoneAnalysisResult, error) {
	records, err := s.activities.ListActivities(ctx, athleteID, from, to)
	if err != nil {
		return nil, err
	}

	result := s.analyze(records)
	return &result, nil
}

// History возвращает последние расчёты порогов, новые первыми
func (s *Service) History(ctx context.Context, athleteID uuid.UUID, limit int) (*HistoryResponse, error) {
	calcs, err := s.calculations.ListRecentCalculations(ctx, athleteID, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]CalculationDTO, 0, len(calcs))
	for _, c := range calcs {
		dtos = append(dtos, toCalculationDTO(c))
	}

	return &HistoryResponse{Calculations: dtos}, nil
}

func (s *Service) analyze(records []storage.ActivityRecord) ZoneAnalysisResult {
	stats := analysis.AnalyzeHeartRate(records)
	sports := analysis.AnalyzeBySport(records)

	models := s.generator.HeartRateModels(stats.MaxHeartRate)
	selected := s.selector.Select(models)

	sportDTOs := make([]SportAnalysisDTO, 0, len(sports))
	for _, g := range sports {
		sportDTOs = append(sportDTOs, SportAnalysisDTO{
			Sport:            g.Sport,
			MaxHeartRate:     g.MaxHeartRate,
			AverageHeartRate: g.AverageHeartRate,
			ActivityCount:    g.ActivityCount,
			SuggestedZones:   s.generator.FiveZoneModel(g.MaxHeartRate).Zones,
		})
	}

	return ZoneAnalysisResult{
		Statistics:        toStatsDTO(stats),
		SportAnalyses:     sportDTOs,
		SelectedModel:     selected,
		AlternativeModels: models,
		Recommendations:   zones.Recommendations(stats, sports),
		Confidence:        zones.OverallConfidence(stats),
		NeedsMoreData:     needsMoreData(stats),
	}
}

// buildCalculation превращает статистику в строку истории: точечные оценки
// порогов плюс уверенность каждой из них.
func (s *Service) buildCalculation(athleteID uuid.UUID, records []storage.ActivityRecord, stats HeartRateStatsDTO) *storage.ThresholdCalculation {
	from, to := analysisRange(records)

	calc := &storage.ThresholdCalculation{
		ID:                 uuid.New(),
		AthleteID:          athleteID,
		ActivitiesAnalyzed: len(records),
		AnalyzedFrom:       from,
		AnalyzedTo:         to,
		Method:             MethodActivityStatistics,
		CreatedAt:          time.Now().UTC(),
	}

	hrConf := ramp(stats.ActivitiesWithHR, hrConfidenceTarget)

	if stats.MaxHeartRate != nil {
		maxHR := int(math.Round(*stats.MaxHeartRate))
		lactate := int(math.Round(lactateFraction * *stats.MaxHeartRate))
		calc.MaxHeartRate = &maxHR
		calc.MaxHRConfidence = hrConf
		calc.LactateThresholdHR = &lactate
		calc.LactateHRConfidence = 0.9 * hrConf
	}

	if stats.RestingHeartRate != nil {
		resting := *stats.RestingHeartRate
		calc.RestingHeartRate = &resting
		calc.RestingHRConfidence = 0.8 * hrConf
	}

	if best, count := bestAveragePower(records); count > 0 {
		ftp := int(math.Round(ftpFraction * best))
		calc.FTP = &ftp
		calc.FTPConfidence = ramp(count, powerConfidenceTarget)
	}

	calc.OverallConfidence = ramp(len(records), overallConfidenceTarget)

	return calc
}

// analysisRange возвращает покрытый активностями интервал. Без активностей
// интервал — последние 30 дней до текущего момента.
func analysisRange(records []storage.ActivityRecord) (time.Time, time.Time) {
	if len(records) == 0 {
		now := time.Now().UTC()
		return now.AddDate(0, 0, -defaultAnalysisWindowDays), now
	}

	from, to := records[0].StartedAt, records[0].StartedAt
	for _, r := range records[1:] {
		if r.StartedAt.Before(from) {
			from = r.StartedAt
		}
		if r.StartedAt.After(to) {
			to = r.StartedAt
		}
	}
	return from, to
}

// bestAveragePower находит лучшую среднюю мощность и число активностей
// с мощностью
func bestAveragePower(records []storage.ActivityRecord) (float64, int) {
	var best float64
	var count int
	for _, r := range records {
		if r.AvgPower == nil || *r.AvgPower <= 0 {
			continue
		}
		count++
		if *r.AvgPower > best {
			best = *r.AvgPower
		}
	}
	return best, count
}

func ramp(count int, target float64) float64 {
	return math.Min(1, float64(count)/target)
}

func needsMoreData(stats analysis.HeartRateStats) bool {
	return stats.DataQuality == analysis.QualityNone ||
		stats.DataQuality == analysis.QualityPoor ||
		stats.ActivitiesWithHR < minReliableHRActivities
}

func toStatsDTO(stats analysis.HeartRateStats) HeartRateStatsDTO {
	return HeartRateStatsDTO{
		MaxHeartRate:     stats.MaxHeartRate,
		AverageHeartRate: stats.AverageHeartRate,
		RestingHeartRate: stats.RestingHeartRate,
		ActivitiesWithHR: stats.ActivitiesWithHR,
		TotalActivities:  stats.TotalActivities,
		DataQuality:      stats.DataQuality,
		Percentiles:      stats.Percentiles,
	}
}

func toCalculationDTO(c storage.ThresholdCalculation) CalculationDTO {
	return CalculationDTO{
		ID:                  c.ID,
		AthleteID:           c.AthleteID,
		ActivitiesAnalyzed:  c.ActivitiesAnalyzed,
		AnalyzedFrom:        c.AnalyzedFrom,
		AnalyzedTo:          c.AnalyzedTo,
		MaxHeartRate:        c.MaxHeartRate,
		RestingHeartRate:    c.RestingHeartRate,
		LactateThresholdHR:  c.LactateThresholdHR,
		FTP:                 c.FTP,
		MaxHRConfidence:     c.MaxHRConfidence,
		RestingHRConfidence: c.RestingHRConfidence,
		LactateHRConfidence: c.LactateHRConfidence,
		FTPConfidence:       c.FTPConfidence,
		OverallConfidence:   c.OverallConfidence,
		Method:              c.Method,
		CreatedAt:           c.CreatedAt,
	}
}
