package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `
	athlete_id, age, weight_kg, sex, experience_level, primary_sport, goal,
	max_heart_rate, max_heart_rate_source,
	resting_heart_rate, resting_heart_rate_source,
	lactate_threshold_hr, lactate_threshold_hr_source,
	ftp, ftp_source,
	weekly_tss_target, weekly_tss_target_source,
	training_philosophy, training_days_per_week, weekly_hours_target,
	intensity_distribution, recovery_priority,
	version, created_at, updated_at
`

func (p *PostgresStorage) GetTrainingProfile(ctx context.Context, athleteID uuid.UUID) (*storage.TrainingProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM training_profiles WHERE athlete_id = $1`

	var prof storage.TrainingProfile
	err := p.pool.QueryRow(ctx, query, athleteID).Scan(
		&prof.AthleteID,
		&prof.Age,
		&prof.WeightKg,
		&prof.Sex,
		&prof.ExperienceLevel,
		&prof.PrimarySport,
		&prof.Goal,
		&prof.MaxHeartRate,
		&prof.MaxHeartRateSource,
		&prof.RestingHeartRate,
		&prof.RestingHeartRateSource,
		&prof.LactateThresholdHR,
		&prof.LactateThresholdHRSource,
		&prof.FTP,
		&prof.FTPSource,
		&prof.WeeklyTSSTarget,
		&prof.WeeklyTSSTargetSource,
		&prof.TrainingPhilosophy,
		&prof.TrainingDaysPerWeek,
		&prof.WeeklyHoursTarget,
		&prof.IntensityDistribution,
		&prof.RecoveryPriority,
		&prof.Version,
		&prof.CreatedAt,
		&prof.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &prof, nil
}

func (p *PostgresStorage) CreateTrainingProfile(ctx context.Context, profile *storage.TrainingProfile) error {
	now := time.Now()
	profile.Version = 1
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO training_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err := p.pool.Exec(ctx, query,
		profile.AthleteID,
		profile.Age,
		profile.WeightKg,
		profile.Sex,
		profile.ExperienceLevel,
		profile.PrimarySport,
		profile.Goal,
		profile.MaxHeartRate,
		profile.MaxHeartRateSource,
		profile.RestingHeartRate,
		profile.RestingHeartRateSource,
		profile.LactateThresholdHR,
		profile.LactateThresholdHRSource,
		profile.FTP,
		profile.FTPSource,
		profile.WeeklyTSSTarget,
		profile.WeeklyTSSTargetSource,
		profile.TrainingPhilosophy,
		profile.TrainingDaysPerWeek,
		profile.WeeklyHoursTarget,
		profile.IntensityDistribution,
		profile.RecoveryPriority,
		profile.Version,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

func (p *PostgresStorage) UpdateTrainingProfile(ctx context.Context, profile *storage.TrainingProfile) error {
	// Оптимистическая блокировка: строка обновляется только при совпадении
	// версии, иначе конкурентный пересчёт уже изменил профиль.
	query := `
		UPDATE training_profiles SET
			age = $2, weight_kg = $3, sex = $4, experience_level = $5,
			primary_sport = $6, goal = $7,
			max_heart_rate = $8, max_heart_rate_source = $9,
			resting_heart_rate = $10, resting_heart_rate_source = $11,
			lactate_threshold_hr = $12, lactate_threshold_hr_source = $13,
			ftp = $14, ftp_source = $15,
			weekly_tss_target = $16, weekly_tss_target_source = $17,
			training_philosophy = $18, training_days_per_week = $19,
			weekly_hours_target = $20, intensity_distribution = $21,
			recovery_priority = $22,
			version = version + 1, updated_at = $23
		WHERE athlete_id = $1 AND version = $24
	`

	now := time.Now()

	result, err := p.pool.Exec(ctx, query,
		profile.AthleteID,
		profile.Age,
		profile.WeightKg,
		profile.Sex,
		profile.ExperienceLevel,
		profile.PrimarySport,
		profile.Goal,
		profile.MaxHeartRate,
		profile.MaxHeartRateSource,
		profile.RestingHeartRate,
		profile.RestingHeartRateSource,
		profile.LactateThresholdHR,
		profile.LactateThresholdHRSource,
		profile.FTP,
		profile.FTPSource,
		profile.WeeklyTSSTarget,
		profile.WeeklyTSSTargetSource,
		profile.TrainingPhilosophy,
		profile.TrainingDaysPerWeek,
		profile.WeeklyHoursTarget,
		profile.IntensityDistribution,
		profile.RecoveryPriority,
		now,
		profile.Version,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		// Либо профиля нет, либо версия разошлась
		if _, getErr := p.GetTrainingProfile(ctx, profile.AthleteID); getErr != nil {
			return getErr
		}
		return storage.ErrVersionConflict
	}

	profile.Version++
	profile.UpdatedAt = now

	return nil
}
