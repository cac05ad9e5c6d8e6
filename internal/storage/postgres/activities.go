package postgres

import (
	"context"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
)

func (p *PostgresStorage) UpsertActivity(ctx context.Context, record *storage.ActivityRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO activities (
			id, athlete_id, external_id, sport_type, distance_m, duration_sec,
			avg_heart_rate, max_heart_rate, has_heart_rate, avg_power, started_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (athlete_id, external_id) DO UPDATE SET
			sport_type     = EXCLUDED.sport_type,
			distance_m     = EXCLUDED.distance_m,
			duration_sec   = EXCLUDED.duration_sec,
			avg_heart_rate = EXCLUDED.avg_heart_rate,
			max_heart_rate = EXCLUDED.max_heart_rate,
			has_heart_rate = EXCLUDED.has_heart_rate,
			avg_power      = EXCLUDED.avg_power,
			started_at     = EXCLUDED.started_at
	`

	_, err := p.pool.Exec(ctx, query,
		record.ID,
		record.AthleteID,
		record.ExternalID,
		record.SportType,
		record.DistanceM,
		record.DurationSec,
		record.AvgHeartRate,
		record.MaxHeartRate,
		record.HasHeartRate,
		record.AvgPower,
		record.StartedAt,
		record.CreatedAt,
	)

	return err
}

func (p *PostgresStorage) ListActivities(ctx context.Context, athleteID uuid.UUID, from, to *time.Time) ([]storage.ActivityRecord, error) {
	query := `
		SELECT id, athlete_id, external_id, sport_type, distance_m, duration_sec,
		       avg_heart_rate, max_heart_rate, has_heart_rate, avg_power, started_at, created_at
		FROM activities
		WHERE athlete_id = $1
		  AND ($2::timestamptz IS NULL OR started_at >= $2)
		  AND ($3::timestamptz IS NULL OR started_at <= $3)
		ORDER BY started_at ASC
	`

	rows, err := p.pool.Query(ctx, query, athleteID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []storage.ActivityRecord{}
	for rows.Next() {
		var rec storage.ActivityRecord
		err := rows.Scan(
			&rec.ID,
			&rec.AthleteID,
			&rec.ExternalID,
			&rec.SportType,
			&rec.DistanceM,
			&rec.DurationSec,
			&rec.AvgHeartRate,
			&rec.MaxHeartRate,
			&rec.HasHeartRate,
			&rec.AvgPower,
			&rec.StartedAt,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
