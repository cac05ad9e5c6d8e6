package thresholds

import (
	"time"

	"github.com/fdg312/training-hub/internal/zones"
	"github.com/google/uuid"
)

// HeartRateStatsDTO — агрегированная статистика пульса для API
type HeartRateStatsDTO struct {
	MaxHeartRate     *float64        `json:"max_heart_rate,omitempty"`
	AverageHeartRate *int            `json:"average_heart_rate,omitempty"`
	RestingHeartRate *int            `json:"resting_heart_rate,omitempty"`
	ActivitiesWithHR int             `json:"activities_with_hr"`
	TotalActivities  int             `json:"total_activities"`
	DataQuality      string          `json:"data_quality"`
	Percentiles      map[int]float64 `json:"percentiles,omitempty"`
}

// SportAnalysisDTO — статистика и предлагаемые зоны одного вида спорта
type SportAnalysisDTO struct {
	Sport            string               `json:"sport"`
	MaxHeartRate     float64              `json:"max_heart_rate"`
	AverageHeartRate int                  `json:"average_heart_rate"`
	ActivityCount    int                  `json:"activity_count"`
	SuggestedZones   []zones.TrainingZone `json:"suggested_zones"`
}

// ZoneAnalysisResult — полный результат анализа зон
type ZoneAnalysisResult struct {
	Statistics        HeartRateStatsDTO  `json:"statistics"`
	SportAnalyses     []SportAnalysisDTO `json:"sport_analyses"`
	SelectedModel     *zones.ZoneModel   `json:"selected_model,omitempty"`
	AlternativeModels []zones.ZoneModel  `json:"alternative_models"`
	Recommendations   []string           `json:"recommendations"`
	Confidence        string             `json:"confidence"`
	NeedsMoreData     bool               `json:"needs_more_data"`
}

// CalculationDTO — одна строка истории расчётов порогов
type CalculationDTO struct {
	ID                 uuid.UUID `json:"id"`
	AthleteID          uuid.UUID `json:"athlete_id"`
	ActivitiesAnalyzed int       `json:"activities_analyzed"`
	AnalyzedFrom       time.Time `json:"analyzed_from"`
	AnalyzedTo         time.Time `json:"analyzed_to"`

	MaxHeartRate       *int `json:"max_heart_rate,omitempty"`
	RestingHeartRate   *int `json:"resting_heart_rate,omitempty"`
	LactateThresholdHR *int `json:"lactate_threshold_hr,omitempty"`
	FTP                *int `json:"ftp,omitempty"`

	MaxHRConfidence     float64 `json:"max_hr_confidence"`
	RestingHRConfidence float64 `json:"resting_hr_confidence"`
	LactateHRConfidence float64 `json:"lactate_hr_confidence"`
	FTPConfidence       float64 `json:"ftp_confidence"`
	OverallConfidence   float64 `json:"overall_confidence"`

	Method    string    `json:"method"`
	CreatedAt time.Time `json:"created_at"`
}

// EstimateResponse — ответ POST /v1/athletes/{id}/thresholds/estimate
type EstimateResponse struct {
	Analysis       ZoneAnalysisResult `json:"analysis"`
	Calculation    CalculationDTO     `json:"calculation"`
	ProfileUpdated []string           `json:"profile_updated"`
}

// HistoryResponse — ответ GET /v1/athletes/{id}/thresholds/history
type HistoryResponse struct {
	Calculations []CalculationDTO `json:"calculations"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
