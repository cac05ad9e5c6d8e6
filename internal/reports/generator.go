package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fdg312/training-hub/internal/profiles"
	"github.com/fdg312/training-hub/internal/thresholds"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders training zone reports as PDF or CSV
type Generator struct{}

// NewGenerator creates a new report generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a report for the given profile and zone analysis
func (g *Generator) Generate(format string, profile *profiles.ProfileResponse, analysis *thresholds.ZoneAnalysisResult) ([]byte, error) {
	switch format {
	case FormatPDF:
		return g.generatePDF(profile, analysis)
	case FormatCSV:
		return g.generateCSV(profile, analysis)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// generateCSV writes the selected zone model as a flat table
func (g *Generator) generateCSV(profile *profiles.ProfileResponse, analysis *thresholds.ZoneAnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"zone", "name", "min_percent", "max_percent", "min_hr", "max_hr"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if analysis.SelectedModel != nil {
		for _, z := range analysis.SelectedModel.Zones {
			row := []string{
				strconv.Itoa(z.Number),
				z.Name,
				strconv.Itoa(z.MinPercent),
				strconv.Itoa(z.MaxPercent),
				strconv.Itoa(z.MinHR),
				strconv.Itoa(z.MaxHR),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	if profile.PowerZones != nil {
		if err := w.Write([]string{}); err != nil {
			return nil, err
		}
		if err := w.Write([]string{"zone", "name", "min_percent", "max_percent", "min_watts", "max_watts"}); err != nil {
			return nil, err
		}
		for _, z := range profile.PowerZones.Zones {
			row := []string{
				strconv.Itoa(z.Number),
				z.Name,
				strconv.Itoa(z.MinPercent),
				strconv.Itoa(z.MaxPercent),
				strconv.Itoa(z.MinWatts),
				strconv.Itoa(z.MaxWatts),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// generatePDF renders the full zone report: thresholds, selected model,
// power zones and coach recommendations
func (g *Generator) generatePDF(profile *profiles.ProfileResponse, analysis *thresholds.ZoneAnalysisResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Training Zones Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04 UTC")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Athlete: %s", profile.Profile.AthleteID))
	pdf.Ln(10)

	// Thresholds section
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Thresholds")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Max heart rate: %s", formatThreshold(profile.Profile.MaxHeartRate, profile.Profile.MaxHeartRateSource, "bpm")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Resting heart rate: %s", formatThreshold(profile.Profile.RestingHeartRate, profile.Profile.RestingHeartRateSource, "bpm")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Lactate threshold HR: %s", formatThreshold(profile.Profile.LactateThresholdHR, profile.Profile.LactateThresholdHRSource, "bpm")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("FTP: %s", formatThreshold(profile.Profile.FTP, profile.Profile.FTPSource, "W")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Data quality: %s (%d of %d activities with heart rate)",
		analysis.Statistics.DataQuality,
		analysis.Statistics.ActivitiesWithHR,
		analysis.Statistics.TotalActivities,
	))
	pdf.Ln(10)

	// Selected zone model
	if analysis.SelectedModel != nil {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, analysis.SelectedModel.Name)
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(12, 6, "Zone", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, "Name", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "% of max HR", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Heart rate", "1", 1, "C", false, 0, "")

		for _, z := range analysis.SelectedModel.Zones {
			pdf.CellFormat(12, 6, strconv.Itoa(z.Number), "1", 0, "C", false, 0, "")
			pdf.CellFormat(45, 6, z.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d-%d%%", z.MinPercent, z.MaxPercent), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d-%d bpm", z.MinHR, z.MaxHR), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(6)
	}

	// Power zones
	if profile.PowerZones != nil {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("%s (FTP %d W)", profile.PowerZones.Name, profile.PowerZones.FTP))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 8)
		pdf.CellFormat(12, 6, "Zone", "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, "Name", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "% of FTP", "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "Power", "1", 1, "C", false, 0, "")

		for _, z := range profile.PowerZones.Zones {
			pdf.CellFormat(12, 6, strconv.Itoa(z.Number), "1", 0, "C", false, 0, "")
			pdf.CellFormat(45, 6, z.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d-%d%%", z.MinPercent, z.MaxPercent), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%d-%d W", z.MinWatts, z.MaxWatts), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(6)
	}

	// Peak heart rate percentiles
	if len(analysis.Statistics.Percentiles) > 0 {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Peak heart rate percentiles")
		pdf.Ln(8)

		ranks := make([]int, 0, len(analysis.Statistics.Percentiles))
		for rank := range analysis.Statistics.Percentiles {
			ranks = append(ranks, rank)
		}
		sort.Ints(ranks)

		pdf.SetFont("Arial", "", 10)
		for _, rank := range ranks {
			pdf.Cell(0, 6, fmt.Sprintf("p%d: %.0f bpm", rank, analysis.Statistics.Percentiles[rank]))
			pdf.Ln(5)
		}
		pdf.Ln(5)
	}

	// Recommendations
	if len(analysis.Recommendations) > 0 {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Recommendations")
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		for _, rec := range analysis.Recommendations {
			pdf.MultiCell(0, 5, "- "+rec, "", "L", false)
			pdf.Ln(1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

func formatThreshold(value *int, source, unit string) string {
	if value == nil {
		return "not set"
	}
	if source == "" {
		return fmt.Sprintf("%d %s", *value, unit)
	}
	return fmt.Sprintf("%d %s (%s)", *value, unit, source)
}
