package activities

import (
	"time"

	"github.com/google/uuid"
)

// SyncBatchRequest — запрос для батчевой синхронизации активностей
type SyncBatchRequest struct {
	AthleteID  uuid.UUID         `json:"athlete_id"`
	Activities []ActivityPayload `json:"activities"`
}

// ActivityPayload — одна активность от провайдера
type ActivityPayload struct {
	ExternalID   string    `json:"external_id"`
	SportType    string    `json:"sport_type"`
	StartedAt    time.Time `json:"started_at"` // RFC3339
	DistanceM    *float64  `json:"distance_m,omitempty"`
	DurationSec  *int      `json:"duration_sec,omitempty"`
	AvgHeartRate *float64  `json:"avg_heart_rate,omitempty"`
	MaxHeartRate *float64  `json:"max_heart_rate,omitempty"`
	AvgPower     *float64  `json:"avg_power,omitempty"`
}

// SyncBatchResponse — ответ на батчевую синхронизацию
type SyncBatchResponse struct {
	Status   string `json:"status"`
	Upserted int    `json:"upserted"`
	Skipped  int    `json:"skipped"`
}

// ActivityDTO — активность в ответах API
type ActivityDTO struct {
	ID           uuid.UUID `json:"id"`
	ExternalID   string    `json:"external_id"`
	SportType    string    `json:"sport_type"`
	StartedAt    time.Time `json:"started_at"`
	DistanceM    *float64  `json:"distance_m,omitempty"`
	DurationSec  *int      `json:"duration_sec,omitempty"`
	AvgHeartRate *float64  `json:"avg_heart_rate,omitempty"`
	MaxHeartRate *float64  `json:"max_heart_rate,omitempty"`
	AvgPower     *float64  `json:"avg_power,omitempty"`
}

// ListResponse — ответ GET /v1/athletes/{id}/activities
type ListResponse struct {
	Activities []ActivityDTO `json:"activities"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
