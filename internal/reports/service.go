package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/training-hub/internal/blob"
	"github.com/fdg312/training-hub/internal/profiles"
	"github.com/fdg312/training-hub/internal/storage"
	"github.com/fdg312/training-hub/internal/thresholds"
	"github.com/google/uuid"
)

var (
	ErrInvalidFormat     = fmt.Errorf("invalid format")
	ErrReportNotFound    = fmt.Errorf("report not found")
	ErrTooManyActivities = fmt.Errorf("too many activities for a report")
)

// Service содержит бизнес-логику отчётов по зонам
type Service struct {
	reports       storage.ReportsStorage
	profileSvc    *profiles.Service
	thresholdSvc  *thresholds.Service
	generator     *Generator
	blobStore     blob.Store
	presignTTL    int
	maxActivities int
	localMode     bool // true when no S3 is configured
}

// NewService создаёт новый сервис отчётов
func NewService(
	reports storage.ReportsStorage,
	profileSvc *profiles.Service,
	thresholdSvc *thresholds.Service,
	blobStore blob.Store,
	presignTTL int,
	maxActivities int,
) *Service {
	return &Service{
		reports:       reports,
		profileSvc:    profileSvc,
		thresholdSvc:  thresholdSvc,
		generator:     NewGenerator(),
		blobStore:     blobStore,
		presignTTL:    presignTTL,
		maxActivities: maxActivities,
		localMode:     blobStore == nil,
	}
}

// CreateReport генерирует отчёт по зонам и сохраняет артефакт.
// В local режиме байты хранятся рядом с метаданными, в S3 режиме
// артефакт уходит в object storage и остаётся только ключ.
func (s *Service) CreateReport(ctx context.Context, req CreateReportRequest) (*CreateReportResponse, error) {
	if req.Format != FormatPDF && req.Format != FormatCSV {
		return nil, ErrInvalidFormat
	}

	profile, err := s.profileSvc.Get(ctx, req.AthleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	analysis, err := s.thresholdSvc.Analyze(ctx, req.AthleteID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze activities: %w", err)
	}

	if s.maxActivities > 0 && analysis.Statistics.TotalActivities > s.maxActivities {
		return nil, ErrTooManyActivities
	}

	data, err := s.generator.Generate(req.Format, profile, analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	meta := &storage.ReportMeta{
		ID:        uuid.New(),
		AthleteID: req.AthleteID,
		Format:    req.Format,
		SizeBytes: int64(len(data)),
		Status:    StatusReady,
		CreatedAt: time.Now().UTC(),
	}

	if s.localMode {
		meta.Data = data
	} else {
		objectKey := fmt.Sprintf("reports/%s/%s.%s", req.AthleteID, meta.ID, req.Format)
		if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentTypeFor(req.Format)); err != nil {
			return nil, fmt.Errorf("failed to upload report: %w", err)
		}
		meta.ObjectKey = &objectKey
	}

	if err := s.reports.CreateReport(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to save report metadata: %w", err)
	}

	return &CreateReportResponse{
		Report:      toReport(meta),
		DownloadURL: fmt.Sprintf("/v1/reports/%s/download", meta.ID),
	}, nil
}

// ListReports возвращает отчёты атлета с пагинацией
func (s *Service) ListReports(ctx context.Context, athleteID uuid.UUID, limit, offset int) (*ListReportsResponse, error) {
	metas, err := s.reports.ListReports(ctx, athleteID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	out := make([]Report, 0, len(metas))
	for i := range metas {
		out = append(out, toReport(&metas[i]))
	}

	return &ListReportsResponse{Reports: out}, nil
}

// Download возвращает либо байты отчёта (local режим), либо presigned URL
// для редиректа (S3 режим).
func (s *Service) Download(ctx context.Context, id uuid.UUID) ([]byte, string, string, error) {
	meta, err := s.reports.GetReport(ctx, id)
	if err != nil {
		return nil, "", "", ErrReportNotFound
	}

	contentType := contentTypeFor(meta.Format)

	if meta.ObjectKey == nil {
		return meta.Data, contentType, "", nil
	}

	if s.blobStore == nil {
		return nil, "", "", fmt.Errorf("report stored in S3 but blob store is not configured")
	}

	url, err := s.blobStore.PresignGet(ctx, *meta.ObjectKey, s.presignTTL)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to presign download: %w", err)
	}

	return nil, contentType, url, nil
}

func contentTypeFor(format string) string {
	if strings.EqualFold(format, FormatCSV) {
		return "text/csv"
	}
	return "application/pdf"
}

func toReport(meta *storage.ReportMeta) Report {
	return Report{
		ID:        meta.ID,
		AthleteID: meta.AthleteID,
		Format:    meta.Format,
		SizeBytes: meta.SizeBytes,
		Status:    meta.Status,
		CreatedAt: meta.CreatedAt,
	}
}
