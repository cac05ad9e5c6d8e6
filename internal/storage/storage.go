package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Провенанс полей профиля: кто последним установил значение.
const (
	SourceUserSet   = "user_set"
	SourceEstimated = "estimated"
)

var (
	// ErrProfileNotFound возвращается, когда профиль атлета ещё не создан
	ErrProfileNotFound = errors.New("training profile not found")

	// ErrVersionConflict возвращается при конкурентном обновлении профиля
	ErrVersionConflict = errors.New("training profile version conflict")

	// ErrReportNotFound возвращается, когда отчёт не найден
	ErrReportNotFound = errors.New("report not found")
)

// Storage объединяет все хранилища движка. Memory и Postgres реализации
// предоставляют его целиком.
type Storage interface {
	ActivityStorage
	CalculationsStorage
	ProfileStorage
	ReportsStorage
}

// ActivityRecord — запись активности от внешнего провайдера (read-only для движка)
type ActivityRecord struct {
	ID           uuid.UUID
	AthleteID    uuid.UUID
	ExternalID   string // id активности у провайдера, ключ дедупликации
	SportType    string // свободный текст ("Run", "Morning Ride", ...)
	DistanceM    *float64
	DurationSec  *int
	AvgHeartRate float64
	MaxHeartRate float64
	HasHeartRate bool
	AvgPower     *float64
	StartedAt    time.Time
	CreatedAt    time.Time
}

// ActivityStorage — интерфейс для чтения и батчевой загрузки активностей
type ActivityStorage interface {
	// UpsertActivity сохраняет активность (upsert по athlete_id, external_id)
	UpsertActivity(ctx context.Context, record *ActivityRecord) error

	// ListActivities возвращает активности атлета, опционально за период
	ListActivities(ctx context.Context, athleteID uuid.UUID, from, to *time.Time) ([]ActivityRecord, error)
}

// ThresholdCalculation — одна строка истории расчётов порогов (append-only)
type ThresholdCalculation struct {
	ID                 uuid.UUID
	AthleteID          uuid.UUID
	ActivitiesAnalyzed int
	AnalyzedFrom       time.Time
	AnalyzedTo         time.Time
	MaxHeartRate       *int
	RestingHeartRate   *int
	LactateThresholdHR *int
	FTP                *int

	MaxHRConfidence      float64
	RestingHRConfidence  float64
	LactateHRConfidence  float64
	FTPConfidence        float64
	OverallConfidence    float64

	Method    string
	CreatedAt time.Time
}

// CalculationsStorage — интерфейс истории расчётов порогов
type CalculationsStorage interface {
	// InsertCalculation добавляет строку истории (никогда не дедуплицируется)
	InsertCalculation(ctx context.Context, calc *ThresholdCalculation) error

	// ListRecentCalculations возвращает последние расчёты, новые первыми
	ListRecentCalculations(ctx context.Context, athleteID uuid.UUID, limit int) ([]ThresholdCalculation, error)
}

// TrainingProfile — долговременный профиль атлета (одна строка на атлета)
type TrainingProfile struct {
	AthleteID uuid.UUID

	// Базовые демографические поля
	Age             *int
	WeightKg        *float64
	Sex             *string
	ExperienceLevel string // beginner | intermediate | advanced | elite
	PrimarySport    *string
	Goal            *string

	// Пороговые поля с провенансом (user_set / estimated / "")
	MaxHeartRate             *int
	MaxHeartRateSource       string
	RestingHeartRate         *int
	RestingHeartRateSource   string
	LactateThresholdHR       *int
	LactateThresholdHRSource string
	FTP                      *int
	FTPSource                string
	WeeklyTSSTarget          *int
	WeeklyTSSTargetSource    string

	// Тренировочные предпочтения
	TrainingPhilosophy    string // volume | intensity | balanced | polarized
	TrainingDaysPerWeek   *int
	WeeklyHoursTarget     *float64
	IntensityDistribution *string
	RecoveryPriority      *string

	// Version — оптимистическая блокировка: update проходит только при
	// совпадении версии, чтобы два одновременных пересчёта не потеряли запись.
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileStorage — интерфейс для работы с профилями атлетов
type ProfileStorage interface {
	// GetTrainingProfile возвращает профиль атлета (ErrProfileNotFound если нет)
	GetTrainingProfile(ctx context.Context, athleteID uuid.UUID) (*TrainingProfile, error)

	// CreateTrainingProfile создаёт новый профиль
	CreateTrainingProfile(ctx context.Context, profile *TrainingProfile) error

	// UpdateTrainingProfile обновляет профиль; возвращает ErrVersionConflict,
	// если строка изменилась с момента чтения
	UpdateTrainingProfile(ctx context.Context, profile *TrainingProfile) error

	// Close закрывает соединение (для Postgres)
	Close() error
}

// ReportMeta — метаданные сгенерированного отчёта по зонам
type ReportMeta struct {
	ID        uuid.UUID
	AthleteID uuid.UUID
	Format    string // "pdf" or "csv"
	ObjectKey *string // S3 object key (NULL в local режиме)
	SizeBytes int64
	Status    string // "ready" or "failed"
	Error     *string
	CreatedAt time.Time
	Data      []byte // только в local режиме, в БД не хранится
}

// ReportsStorage — интерфейс для работы с отчётами
type ReportsStorage interface {
	// CreateReport сохраняет метаданные отчёта (и данные в local режиме)
	CreateReport(ctx context.Context, report *ReportMeta) error

	// GetReport возвращает отчёт по ID
	GetReport(ctx context.Context, id uuid.UUID) (*ReportMeta, error)

	// ListReports возвращает отчёты атлета с пагинацией, новые первыми
	ListReports(ctx context.Context, athleteID uuid.UUID, limit, offset int) ([]ReportMeta, error)
}
