package profiles

import (
	"time"

	"github.com/fdg312/training-hub/internal/zones"
	"github.com/google/uuid"
)

// ProfileDTO — DTO профиля для API
type ProfileDTO struct {
	AthleteID       uuid.UUID `json:"athlete_id"`
	Age             *int      `json:"age,omitempty"`
	WeightKg        *float64  `json:"weight_kg,omitempty"`
	Sex             *string   `json:"sex,omitempty"`
	ExperienceLevel string    `json:"experience_level"`
	PrimarySport    *string   `json:"primary_sport,omitempty"`
	Goal            *string   `json:"goal,omitempty"`

	MaxHeartRate             *int   `json:"max_heart_rate,omitempty"`
	MaxHeartRateSource       string `json:"max_heart_rate_source,omitempty"`
	RestingHeartRate         *int   `json:"resting_heart_rate,omitempty"`
	RestingHeartRateSource   string `json:"resting_heart_rate_source,omitempty"`
	LactateThresholdHR       *int   `json:"lactate_threshold_hr,omitempty"`
	LactateThresholdHRSource string `json:"lactate_threshold_hr_source,omitempty"`
	FTP                      *int   `json:"ftp,omitempty"`
	FTPSource                string `json:"ftp_source,omitempty"`
	WeeklyTSSTarget          *int   `json:"weekly_tss_target,omitempty"`
	WeeklyTSSTargetSource    string `json:"weekly_tss_target_source,omitempty"`

	TrainingPhilosophy    string   `json:"training_philosophy"`
	TrainingDaysPerWeek   *int     `json:"training_days_per_week,omitempty"`
	WeeklyHoursTarget     *float64 `json:"weekly_hours_target,omitempty"`
	IntensityDistribution *string  `json:"intensity_distribution,omitempty"`
	RecoveryPriority      *string  `json:"recovery_priority,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// CompletenessDTO — оценка полноты профиля и свежести расчётов
type CompletenessDTO struct {
	Score                    int        `json:"score"` // 0..100
	Confidence               string     `json:"confidence"`
	RecalculationRecommended bool       `json:"recalculation_recommended"`
	LastCalculatedAt         *time.Time `json:"last_calculated_at,omitempty"`
}

// ProfileResponse — ответ GET /v1/athletes/{id}/profile: профиль плюс
// производные таблицы зон и анализ полноты
type ProfileResponse struct {
	Profile        ProfileDTO            `json:"profile"`
	HeartRateZones []zones.TrainingZone  `json:"heart_rate_zones"`
	PowerZones     *zones.PowerZoneModel `json:"power_zones,omitempty"`
	Completeness   CompletenessDTO       `json:"completeness"`
}

// UpdateProfileRequest — запрос PATCH /v1/athletes/{id}/profile.
// Присутствующее пороговое поле всегда получает провенанс user_set.
type UpdateProfileRequest struct {
	Age             *int     `json:"age,omitempty"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	Sex             *string  `json:"sex,omitempty"`
	ExperienceLevel *string  `json:"experience_level,omitempty"`
	PrimarySport    *string  `json:"primary_sport,omitempty"`
	Goal            *string  `json:"goal,omitempty"`

	MaxHeartRate       *int `json:"max_heart_rate,omitempty"`
	RestingHeartRate   *int `json:"resting_heart_rate,omitempty"`
	LactateThresholdHR *int `json:"lactate_threshold_hr,omitempty"`
	FTP                *int `json:"ftp,omitempty"`
	WeeklyTSSTarget    *int `json:"weekly_tss_target,omitempty"`

	TrainingPhilosophy    *string  `json:"training_philosophy,omitempty"`
	TrainingDaysPerWeek   *int     `json:"training_days_per_week,omitempty"`
	WeeklyHoursTarget     *float64 `json:"weekly_hours_target,omitempty"`
	IntensityDistribution *string  `json:"intensity_distribution,omitempty"`
	RecoveryPriority      *string  `json:"recovery_priority,omitempty"`

	// ClearFields сбрасывает перечисленные пороговые поля вместе с их
	// провенансом, снова разрешая автообновление
	ClearFields []string `json:"clear_fields,omitempty"`
}

// EstimateUpdate — свежие оценки порогов от оркестратора с их уверенностью
type EstimateUpdate struct {
	MaxHeartRate        *int
	MaxHRConfidence     float64
	RestingHeartRate    *int
	RestingHRConfidence float64
	LactateThresholdHR  *int
	LactateHRConfidence float64
	FTP                 *int
	FTPConfidence       float64
	ActivitiesAnalyzed  int
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
