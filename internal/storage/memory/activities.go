package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

func (m *MemoryStorage) UpsertActivity(ctx context.Context, record *storage.ActivityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	list := m.activities[record.AthleteID]

	// Upsert по external_id, если он задан
	if record.ExternalID != "" {
		for i, existing := range list {
			if existing.ExternalID == record.ExternalID {
				record.ID = existing.ID
				record.CreatedAt = existing.CreatedAt
				list[i] = *record
				return nil
			}
		}
	}

	m.activities[record.AthleteID] = append(list, *record)
	return nil
}

func (m *MemoryStorage) ListActivities(ctx context.Context, athleteID uuid.UUID, from, to *time.Time) ([]storage.ActivityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]storage.ActivityRecord, 0, len(m.activities[athleteID]))
	for _, a := range m.activities[athleteID] {
		if from != nil && a.StartedAt.Before(*from) {
			continue
		}
		if to != nil && a.StartedAt.After(*to) {
			continue
		}
		result = append(result, a)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})

	return result, nil
}
