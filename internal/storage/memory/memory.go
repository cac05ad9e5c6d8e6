package memory

import (
	"sync"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

// MemoryStorage — in-memory реализация всех storage интерфейсов.
// Используется в тестах и в локальном режиме без базы данных.
type MemoryStorage struct {
	mu           sync.RWMutex
	activities   map[uuid.UUID][]storage.ActivityRecord  // athleteID -> records
	calculations map[uuid.UUID][]storage.ThresholdCalculation
	profiles     map[uuid.UUID]storage.TrainingProfile
	reports      map[uuid.UUID]storage.ReportMeta
}

// New создаёт пустой MemoryStorage
func New() *MemoryStorage {
	return &MemoryStorage{
		activities:   make(map[uuid.UUID][]storage.ActivityRecord),
		calculations: make(map[uuid.UUID][]storage.ThresholdCalculation),
		profiles:     make(map[uuid.UUID]storage.TrainingProfile),
		reports:      make(map[uuid.UUID]storage.ReportMeta),
	}
}

func (m *MemoryStorage) Close() error {
	// no-op для memory
	return nil
}
