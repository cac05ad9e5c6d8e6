package reports

import (
	"time"

	"github.com/google/uuid"
)

// Форматы и статусы отчётов
const (
	FormatPDF = "pdf"
	FormatCSV = "csv"

	StatusReady  = "ready"
	StatusFailed = "failed"
)

// CreateReportRequest — запрос POST /v1/athletes/{id}/reports
type CreateReportRequest struct {
	AthleteID uuid.UUID `json:"-"`
	Format    string    `json:"format"` // "pdf" | "csv"
}

// Report — отчёт в ответах API
type Report struct {
	ID        uuid.UUID `json:"id"`
	AthleteID uuid.UUID `json:"athlete_id"`
	Format    string    `json:"format"`
	SizeBytes int64     `json:"size_bytes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReportResponse — ответ на создание отчёта
type CreateReportResponse struct {
	Report      Report `json:"report"`
	DownloadURL string `json:"download_url"`
}

// ListReportsResponse — ответ GET /v1/athletes/{id}/reports
type ListReportsResponse struct {
	Reports []Report `json:"reports"`
}

// ErrorResponse — формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
