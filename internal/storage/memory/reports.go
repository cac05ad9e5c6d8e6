package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

func (m *MemoryStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()

	m.reports[report.ID] = *report
	return nil
}

func (m *MemoryStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reports[id]
	if !ok {
		return nil, storage.ErrReportNotFound
	}

	return &r, nil
}

func (m *MemoryStorage) ListReports(ctx context.Context, athleteID uuid.UUID, limit, offset int) ([]storage.ReportMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]storage.ReportMeta, 0)
	for _, r := range m.reports {
		if r.AthleteID == athleteID {
			all = append(all, r)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []storage.ReportMeta{}, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}
