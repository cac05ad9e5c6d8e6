package activities

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingAthlete = errors.New("missing athlete id")
	ErrEmptyBatch     = errors.New("empty batch")
)

// Пульс вне этого диапазона считается артефактом датчика и отбрасывается
const (
	minPlausibleHR = 25.0
	maxPlausibleHR = 250.0
)

// Service содержит бизнес-логику синхронизации активностей
type Service struct {
	activities storage.ActivityStorage
}

// NewService создаёт новый сервис
func NewService(activities storage.ActivityStorage) *Service {
	return &Service{activities: activities}
}

// SyncBatch обрабатывает батчевую синхронизацию. Повторная отправка той же
// активности обновляет сохранённую строку (upsert по external_id), некорректные
// записи пропускаются и подсчитываются, не прерывая батч.
func (s *Service) SyncBatch(ctx context.Context, req SyncBatchRequest) (*SyncBatchResponse, error) {
	if req.AthleteID == uuid.Nil {
		return nil, ErrMissingAthlete
	}
	if len(req.Activities) == 0 {
		return nil, ErrEmptyBatch
	}

	resp := &SyncBatchResponse{Status: "ok"}

	for _, payload := range req.Activities {
		record, ok := s.toRecord(req.AthleteID, payload)
		if !ok {
			resp.Skipped++
			continue
		}

		if err := s.activities.UpsertActivity(ctx, record); err != nil {
			return nil, err
		}
		resp.Upserted++
	}

	return resp, nil
}

// List возвращает активности атлета, опционально за период
func (s *Service) List(ctx context.Context, athleteID uuid.UUID, from, to *time.Time) (*ListResponse, error) {
	records, err := s.activities.ListActivities(ctx, athleteID, from, to)
	if err != nil {
		return nil, err
	}

	dtos := make([]ActivityDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, toDTO(r))
	}

	return &ListResponse{Activities: dtos}, nil
}

// toRecord валидирует полезную нагрузку и собирает строку для хранилища.
// Неправдоподобные значения пульса обнуляются, а не отклоняют запись.
func (s *Service) toRecord(athleteID uuid.UUID, payload ActivityPayload) (*storage.ActivityRecord, bool) {
	externalID := strings.TrimSpace(payload.ExternalID)
	if externalID == "" || payload.StartedAt.IsZero() {
		return nil, false
	}

	avgHR := sanitizeHR(payload.AvgHeartRate)
	maxHR := sanitizeHR(payload.MaxHeartRate)

	record := &storage.ActivityRecord{
		ID:           uuid.New(),
		AthleteID:    athleteID,
		ExternalID:   externalID,
		SportType:    strings.TrimSpace(payload.SportType),
		DistanceM:    payload.DistanceM,
		DurationSec:  payload.DurationSec,
		AvgHeartRate: avgHR,
		MaxHeartRate: maxHR,
		HasHeartRate: avgHR > 0 || maxHR > 0,
		AvgPower:     payload.AvgPower,
		StartedAt:    payload.StartedAt.UTC(),
		CreatedAt:    time.Now().UTC(),
	}

	return record, true
}

func sanitizeHR(v *float64) float64 {
	if v == nil || *v < minPlausibleHR || *v > maxPlausibleHR {
		return 0
	}
	return *v
}

func toDTO(r storage.ActivityRecord) ActivityDTO {
	dto := ActivityDTO{
		ID:          r.ID,
		ExternalID:  r.ExternalID,
		SportType:   r.SportType,
		StartedAt:   r.StartedAt,
		DistanceM:   r.DistanceM,
		DurationSec: r.DurationSec,
		AvgPower:    r.AvgPower,
	}
	if r.AvgHeartRate > 0 {
		avg := r.AvgHeartRate
		dto.AvgHeartRate = &avg
	}
	if r.MaxHeartRate > 0 {
		max := r.MaxHeartRate
		dto.MaxHeartRate = &max
	}
	return dto
}
