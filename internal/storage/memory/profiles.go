package memory

import (
	"context"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

func (m *MemoryStorage) GetTrainingProfile(ctx context.Context, athleteID uuid.UUID) (*storage.TrainingProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[athleteID]
	if !ok {
		return nil, storage.ErrProfileNotFound
	}

	return &p, nil
}

func (m *MemoryStorage) CreateTrainingProfile(ctx context.Context, profile *storage.TrainingProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	profile.Version = 1
	profile.CreatedAt = now
	profile.UpdatedAt = now

	m.profiles[profile.AthleteID] = *profile
	return nil
}

func (m *MemoryStorage) UpdateTrainingProfile(ctx context.Context, profile *storage.TrainingProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.profiles[profile.AthleteID]
	if !ok {
		return storage.ErrProfileNotFound
	}

	if existing.Version != profile.Version {
		return storage.ErrVersionConflict
	}

	profile.Version++
	profile.UpdatedAt = time.Now()
	m.profiles[profile.AthleteID] = *profile

	return nil
}
