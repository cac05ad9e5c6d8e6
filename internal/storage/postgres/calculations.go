package postgres

import (
	"context"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

func (p *PostgresStorage) InsertCalculation(ctx context.Context, calc *storage.ThresholdCalculation) error {
	if calc.ID == uuid.Nil {
		calc.ID = uuid.New()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now()
	}

	// append-only: без уникальных ограничений, повторные расчёты накапливаются
	query := `
		INSERT INTO threshold_calculations (
			id, athlete_id, activities_analyzed, analyzed_from, analyzed_to,
			max_heart_rate, resting_heart_rate, lactate_threshold_hr, ftp,
			max_hr_confidence, resting_hr_confidence, lactate_hr_confidence,
			ftp_confidence, overall_confidence, method, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := p.pool.Exec(ctx, query,
		calc.ID,
		calc.AthleteID,
		calc.ActivitiesAnalyzed,
		calc.AnalyzedFrom,
		calc.AnalyzedTo,
		calc.MaxHeartRate,
		calc.RestingHeartRate,
		calc.LactateThresholdHR,
		calc.FTP,
		calc.MaxHRConfidence,
		calc.RestingHRConfidence,
		calc.LactateHRConfidence,
		calc.FTPConfidence,
		calc.OverallConfidence,
		calc.Method,
		calc.CreatedAt,
	)

	return err
}

func (p *PostgresStorage) ListRecentCalculations(ctx context.Context, athleteID uuid.UUID, limit int) ([]storage.ThresholdCalculation, error) {
	query := `
		SELECT id, athlete_id, activities_analyzed, analyzed_from, analyzed_to,
		       max_heart_rate, resting_heart_rate, lactate_threshold_hr, ftp,
		       max_hr_confidence, resting_hr_confidence, lactate_hr_confidence,
		       ftp_confidence, overall_confidence, method, created_at
		FROM threshold_calculations
		WHERE athlete_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, athleteID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calcs := []storage.ThresholdCalculation{}
	for rows.Next() {
		var c storage.ThresholdCalculation
		err := rows.Scan(
			&c.ID,
			&c.AthleteID,
			&c.ActivitiesAnalyzed,
			&c.AnalyzedFrom,
			&c.AnalyzedTo,
			&c.MaxHeartRate,
			&c.RestingHeartRate,
			&c.LactateThresholdHR,
			&c.FTP,
			&c.MaxHRConfidence,
			&c.RestingHRConfidence,
			&c.LactateHRConfidence,
			&c.FTPConfidence,
			&c.OverallConfidence,
			&c.Method,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, c)
	}

	return calcs, rows.Err()
}
