package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/fdg312/training-hub/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (p *PostgresStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now()

	query := `
		INSERT INTO reports (id, athlete_id, format, object_key, size_bytes, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := p.pool.Exec(ctx, query,
		report.ID,
		report.AthleteID,
		report.Format,
		report.ObjectKey,
		report.SizeBytes,
		report.Status,
		report.Error,
		report.CreatedAt,
	)

	return err
}

func (p *PostgresStorage) GetReport(ctx context.Context, id uuid.UUID) (*storage.ReportMeta, error) {
	query := `
		SELECT id, athlete_id, format, object_key, size_bytes, status, error, created_at
		FROM reports
		WHERE id = $1
	`

	var r storage.ReportMeta
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&r.ID,
		&r.AthleteID,
		&r.Format,
		&r.ObjectKey,
		&r.SizeBytes,
		&r.Status,
		&r.Error,
		&r.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (p *PostgresStorage) ListReports(ctx context.Context, athleteID uuid.UUID, limit, offset int) ([]storage.ReportMeta, error) {
	query := `
		SELECT id, athlete_id, format, object_key, size_bytes, status, error, created_at
		FROM reports
		WHERE athlete_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.pool.Query(ctx, query, athleteID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []storage.ReportMeta{}
	for rows.Next() {
		var r storage.ReportMeta
		err := rows.Scan(
			&r.ID,
			&r.AthleteID,
			&r.Format,
			&r.ObjectKey,
			&r.SizeBytes,
			&r.Status,
			&r.Error,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}

	return reports, rows.Err()
}
