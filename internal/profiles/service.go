package profiles

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/fdg312/training-hub/internal/zones"
	"github.com/google/uuid"
)

var (
	ErrInvalidExperience = errors.New("invalid experience level")
	ErrInvalidPhilosophy = errors.New("invalid training philosophy")
	ErrInvalidClearField = errors.New("unknown clear field")
)

// Минимальная уверенность оценки для автообновления поля профиля
const (
	minConfMaxHR     = 0.7
	minConfFTP       = 0.7
	minConfRestingHR = 0.6
	minConfLactateHR = 0.6
)

// Границы недельного TSS-таргета
const (
	tssBase = 400.0
	tssMin  = 200
	tssMax  = 1000
)

var experienceMultipliers = map[string]float64{
	"beginner":     0.7,
	"intermediate": 1.0,
	"advanced":     1.3,
	"elite":        1.6,
}

var philosophyMultipliers = map[string]float64{
	"volume":    1.2,
	"intensity": 0.9,
	"balanced":  1.0,
	"polarized": 1.1,
}

// Service содержит бизнес-логику тренировочных профилей
type Service struct {
	profiles       storage.ProfileStorage
	calculations   storage.CalculationsStorage
	generator      *zones.Generator
	selector       zones.ModelSelector
	staleAfterDays int
	historyWindow  int
}

// NewService создаёт новый сервис профилей
func NewService(
	profiles storage.ProfileStorage,
	calculations storage.CalculationsStorage,
	generator *zones.Generator,
	selector zones.ModelSelector,
	staleAfterDays int,
	historyWindow int,
) *Service {
	if staleAfterDays <= 0 {
		staleAfterDays = 30
	}
	if historyWindow <= 0 {
		historyWindow = 5
	}
	return &Service{
		profiles:       profiles,
		calculations:   calculations,
		generator:      generator,
		selector:       selector,
		staleAfterDays: staleAfterDays,
		historyWindow:  historyWindow,
	}
}

// Get возвращает профиль атлета с производными зонами и анализом полноты.
// При первом обращении профиль создаётся с дефолтами.
func (s *Service) Get(ctx context.Context, athleteID uuid.UUID) (*ProfileResponse, error) {
	profile, err := s.ensureProfile(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, profile)
}

// Update применяет явные правки пользователя. Каждое присутствующее
// пороговое поле получает провенанс user_set, что навсегда отключает
// автообновление, пока пользователь его не сбросит через clear_fields.
func (s *Service) Update(ctx context.Context, athleteID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	if req.ExperienceLevel != nil {
		if _, ok := experienceMultipliers[*req.ExperienceLevel]; !ok {
			return nil, ErrInvalidExperience
		}
	}
	if req.TrainingPhilosophy != nil {
		if _, ok := philosophyMultipliers[*req.TrainingPhilosophy]; !ok {
			return nil, ErrInvalidPhilosophy
		}
	}
	for _, f := range req.ClearFields {
		switch f {
		case "max_heart_rate", "resting_heart_rate", "lactate_threshold_hr", "ftp", "weekly_tss_target":
		default:
			return nil, ErrInvalidClearField
		}
	}

	profile, err := s.ensureProfile(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.WeightKg != nil {
		profile.WeightKg = req.WeightKg
	}
	if req.Sex != nil {
		profile.Sex = req.Sex
	}
	if req.ExperienceLevel != nil {
		profile.ExperienceLevel = *req.ExperienceLevel
	}
	if req.PrimarySport != nil {
		profile.PrimarySport = req.PrimarySport
	}
	if req.Goal != nil {
		profile.Goal = req.Goal
	}

	if req.MaxHeartRate != nil {
		profile.MaxHeartRate = req.MaxHeartRate
		profile.MaxHeartRateSource = storage.SourceUserSet
	}
	if req.RestingHeartRate != nil {
		profile.RestingHeartRate = req.RestingHeartRate
		profile.RestingHeartRateSource = storage.SourceUserSet
	}
	if req.LactateThresholdHR != nil {
		profile.LactateThresholdHR = req.LactateThresholdHR
		profile.LactateThresholdHRSource = storage.SourceUserSet
	}
	if req.FTP != nil {
		profile.FTP = req.FTP
		profile.FTPSource = storage.SourceUserSet
	}
	if req.WeeklyTSSTarget != nil {
		profile.WeeklyTSSTarget = req.WeeklyTSSTarget
		profile.WeeklyTSSTargetSource = storage.SourceUserSet
	}

	if req.TrainingPhilosophy != nil {
		profile.TrainingPhilosophy = *req.TrainingPhilosophy
	}
	if req.TrainingDaysPerWeek != nil {
		profile.TrainingDaysPerWeek = req.TrainingDaysPerWeek
	}
	if req.WeeklyHoursTarget != nil {
		profile.WeeklyHoursTarget = req.WeeklyHoursTarget
	}
	if req.IntensityDistribution != nil {
		profile.IntensityDistribution = req.IntensityDistribution
	}
	if req.RecoveryPriority != nil {
		profile.RecoveryPriority = req.RecoveryPriority
	}

	for _, f := range req.ClearFields {
		switch f {
		case "max_heart_rate":
			profile.MaxHeartRate = nil
			profile.MaxHeartRateSource = ""
		case "resting_heart_rate":
			profile.RestingHeartRate = nil
			profile.RestingHeartRateSource = ""
		case "lactate_threshold_hr":
			profile.LactateThresholdHR = nil
			profile.LactateThresholdHRSource = ""
		case "ftp":
			profile.FTP = nil
			profile.FTPSource = ""
		case "weekly_tss_target":
			profile.WeeklyTSSTarget = nil
			profile.WeeklyTSSTargetSource = ""
		}
	}

	if err := s.profiles.UpdateTrainingProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, profile)
}

// ApplyEstimate вливает свежие оценки порогов в профиль по правилу
// автообновления: поле перезаписывается, только если уверенность оценки
// выше порога поля И поле пусто либо помечено как estimated. Значения с
// провенансом user_set не трогаются никогда. Возвращает имена обновлённых
// полей.
func (s *Service) ApplyEstimate(ctx context.Context, athleteID uuid.UUID, est EstimateUpdate) ([]string, error) {
	profile, err := s.ensureProfile(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	updated := []string{}

	if est.MaxHeartRate != nil && est.MaxHRConfidence > minConfMaxHR &&
		autoUpdatable(profile.MaxHeartRate, profile.MaxHeartRateSource) {
		profile.MaxHeartRate = est.MaxHeartRate
		profile.MaxHeartRateSource = storage.SourceEstimated
		updated = append(updated, "max_heart_rate")
	}

	if est.RestingHeartRate != nil && est.RestingHRConfidence > minConfRestingHR &&
		autoUpdatable(profile.RestingHeartRate, profile.RestingHeartRateSource) {
		profile.RestingHeartRate = est.RestingHeartRate
		profile.RestingHeartRateSource = storage.SourceEstimated
		updated = append(updated, "resting_heart_rate")
	}

	if est.LactateThresholdHR != nil && est.LactateHRConfidence > minConfLactateHR &&
		autoUpdatable(profile.LactateThresholdHR, profile.LactateThresholdHRSource) {
		profile.LactateThresholdHR = est.LactateThresholdHR
		profile.LactateThresholdHRSource = storage.SourceEstimated
		updated = append(updated, "lactate_threshold_hr")
	}

	if est.FTP != nil && est.FTPConfidence > minConfFTP &&
		autoUpdatable(profile.FTP, profile.FTPSource) {
		profile.FTP = est.FTP
		profile.FTPSource = storage.SourceEstimated
		updated = append(updated, "ftp")
	}

	// Недельный TSS-таргет пересчитывается по тому же правилу провенанса
	if autoUpdatable(profile.WeeklyTSSTarget, profile.WeeklyTSSTargetSource) {
		target := weeklyTSSTarget(profile, est.ActivitiesAnalyzed)
		profile.WeeklyTSSTarget = &target
		profile.WeeklyTSSTargetSource = storage.SourceEstimated
		updated = append(updated, "weekly_tss_target")
	}

	if len(updated) == 0 {
		return updated, nil
	}

	if err := s.profiles.UpdateTrainingProfile(ctx, profile); err != nil {
		return nil, err
	}

	return updated, nil
}

// autoUpdatable: поле свободно для автообновления, если оно пустое или
// было установлено оценкой, но не пользователем
func autoUpdatable[T any](value *T, source string) bool {
	return value == nil || source == "" || source == storage.SourceEstimated
}

// weeklyTSSTarget считает персональный недельный Training Stress Score:
// 400 x опыт x философия x доступное время x бонус за качество данных,
// с ограничением [200, 1000].
func weeklyTSSTarget(profile *storage.TrainingProfile, activitiesAnalyzed int) int {
	expMult, ok := experienceMultipliers[profile.ExperienceLevel]
	if !ok {
		expMult = 1.0
	}

	philMult, ok := philosophyMultipliers[profile.TrainingPhilosophy]
	if !ok {
		philMult = 1.0
	}

	timeAdj := 1.0
	if profile.WeeklyHoursTarget != nil {
		switch {
		case *profile.WeeklyHoursTarget < 5:
			timeAdj = 0.8
		case *profile.WeeklyHoursTarget > 10:
			timeAdj = 1.2
		}
	}

	dataBonus := 1.0
	if activitiesAnalyzed > 20 {
		dataBonus = 1.1
	}

	target := int(math.Round(tssBase * expMult * philMult * timeAdj * dataBonus))
	if target < tssMin {
		target = tssMin
	}
	if target > tssMax {
		target = tssMax
	}

	return target
}

// ensureProfile возвращает профиль, создавая его с дефолтами при первом
// обращении
func (s *Service) ensureProfile(ctx context.Context, athleteID uuid.UUID) (*storage.TrainingProfile, error) {
	profile, err := s.profiles.GetTrainingProfile(ctx, athleteID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, storage.ErrProfileNotFound) {
		return nil, err
	}

	profile = &storage.TrainingProfile{
		AthleteID:          athleteID,
		ExperienceLevel:    "intermediate",
		TrainingPhilosophy: "balanced",
	}
	if err := s.profiles.CreateTrainingProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *Service) buildResponse(ctx context.Context, profile *storage.TrainingProfile) (*ProfileResponse, error) {
	resp := &ProfileResponse{
		Profile: toDTO(profile),
	}

	// Пульсовые зоны от текущего максимума профиля (или age-based fallback)
	var maxHR *float64
	if profile.MaxHeartRate != nil {
		v := float64(*profile.MaxHeartRate)
		maxHR = &v
	}
	models := s.generator.HeartRateModels(maxHR)
	if selected := s.selector.Select(models); selected != nil {
		resp.HeartRateZones = selected.Zones
	}

	if profile.FTP != nil {
		power := zones.PowerModel(*profile.FTP)
		resp.PowerZones = &power
	}

	completeness, err := s.analyzeCompleteness(ctx, profile)
	if err != nil {
		return nil, err
	}
	resp.Completeness = completeness

	return resp, nil
}

// analyzeCompleteness считает взвешенную полноту профиля (0..100),
// уверенность в профиле в целом и рекомендацию пересчёта по свежести
// последнего расчёта.
func (s *Service) analyzeCompleteness(ctx context.Context, profile *storage.TrainingProfile) (CompletenessDTO, error) {
	score := 0

	// Базовые демографические поля: 30 очков
	if profile.Age != nil {
		score += 5
	}
	if profile.WeightKg != nil {
		score += 5
	}
	if profile.Sex != nil {
		score += 5
	}
	if profile.ExperienceLevel != "" {
		score += 5
	}
	if profile.PrimarySport != nil {
		score += 5
	}
	if profile.Goal != nil {
		score += 5
	}

	// Пороговые поля: 50 очков
	if profile.MaxHeartRate != nil {
		score += 15
	}
	if profile.RestingHeartRate != nil {
		score += 10
	}
	if profile.LactateThresholdHR != nil {
		score += 10
	}
	if profile.FTP != nil {
		score += 10
	}
	if profile.WeeklyTSSTarget != nil {
		score += 5
	}

	// Тренировочные предпочтения: 20 очков
	if profile.TrainingDaysPerWeek != nil {
		score += 5
	}
	if profile.WeeklyHoursTarget != nil {
		score += 5
	}
	if profile.IntensityDistribution != nil {
		score += 5
	}
	if profile.RecoveryPriority != nil {
		score += 5
	}

	dto := CompletenessDTO{Score: score}

	recent, err := s.calculations.ListRecentCalculations(ctx, profile.AthleteID, s.historyWindow)
	if err != nil {
		return dto, err
	}

	var latestConfidence float64
	if len(recent) > 0 {
		latest := recent[0]
		latestConfidence = latest.OverallConfidence
		dto.LastCalculatedAt = &latest.CreatedAt
		dto.RecalculationRecommended = time.Since(latest.CreatedAt) > time.Duration(s.staleAfterDays)*24*time.Hour
	} else {
		dto.RecalculationRecommended = true
	}

	switch {
	case score >= 80 && latestConfidence > 0.7:
		dto.Confidence = zones.ConfidenceHigh
	case score >= 60:
		dto.Confidence = zones.ConfidenceMedium
	default:
		dto.Confidence = zones.ConfidenceLow
	}

	return dto, nil
}

// toDTO конвертирует storage.TrainingProfile в ProfileDTO
func toDTO(p *storage.TrainingProfile) ProfileDTO {
	return ProfileDTO{
		AthleteID:       p.AthleteID,
		Age:             p.Age,
		WeightKg:        p.WeightKg,
		Sex:             p.Sex,
		ExperienceLevel: p.ExperienceLevel,
		PrimarySport:    p.PrimarySport,
		Goal:            p.Goal,

		MaxHeartRate:             p.MaxHeartRate,
		MaxHeartRateSource:       p.MaxHeartRateSource,
		RestingHeartRate:         p.RestingHeartRate,
		RestingHeartRateSource:   p.RestingHeartRateSource,
		LactateThresholdHR:       p.LactateThresholdHR,
		LactateThresholdHRSource: p.LactateThresholdHRSource,
		FTP:                      p.FTP,
		FTPSource:                p.FTPSource,
		WeeklyTSSTarget:          p.WeeklyTSSTarget,
		WeeklyTSSTargetSource:    p.WeeklyTSSTargetSource,

		TrainingPhilosophy:    p.TrainingPhilosophy,
		TrainingDaysPerWeek:   p.TrainingDaysPerWeek,
		WeeklyHoursTarget:     p.WeeklyHoursTarget,
		IntensityDistribution: p.IntensityDistribution,
		RecoveryPriority:      p.RecoveryPriority,

		UpdatedAt: p.UpdatedAt,
	}
}
