package memory

import (
	"context"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

func (m *MemoryStorage) InsertCalculation(ctx context.Context, calc *storage.ThresholdCalculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if calc.ID == uuid.Nil {
		calc.ID = uuid.New()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now()
	}

	// append-only: дубликаты допустимы по контракту
	m.calculations[calc.AthleteID] = append(m.calculations[calc.AthleteID], *calc)
	return nil
}

func (m *MemoryStorage) ListRecentCalculations(ctx context.Context, athleteID uuid.UUID, limit int) ([]storage.ThresholdCalculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.calculations[athleteID]

	// Новые первыми
	result := make([]storage.ThresholdCalculation, 0, limit)
	for i := len(all) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, all[i])
	}

	return result, nil
}
