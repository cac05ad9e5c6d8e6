package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/google/uuid"
)

const defaultAPIBase = "http://localhost:8080"

var (
	apiBase   string
	athleteID string
	client    = &http.Client{Timeout: 30 * time.Second}
	reportID  string
)

func main() {
	fmt.Println("=== Training Hub E2E Smoke Test ===")
	fmt.Println()

	apiBase = getEnv("API_BASE_URL", defaultAPIBase)
	athleteID = getEnv("SMOKE_ATHLETE_ID", uuid.NewString())

	fmt.Printf("API Base: %s\n", apiBase)
	fmt.Printf("Athlete ID: %s\n", athleteID)
	fmt.Println()

	steps := []struct {
		name string
		fn   func() error
	}{
		{"Healthz", testHealthz},
		{"Sync Activities", testSyncActivities},
		{"Estimate Thresholds", testEstimate},
		{"Get Profile", testGetProfile},
		{"Thresholds History", testHistory},
		{"Create Report (CSV)", testCreateReport},
		{"Download Report", testDownloadReport},
	}

	failed := 0
	for _, step := range steps {
		fmt.Printf("--- %s ---\n", step.name)
		if err := step.fn(); err != nil {
			fmt.Printf("FAIL: %v\n\n", err)
			failed++
			continue
		}
		fmt.Printf("OK\n\n")
	}

	if failed > 0 {
		fmt.Printf("=== %d step(s) failed ===\n", failed)
		os.Exit(1)
	}
	fmt.Println("=== All steps passed ===")
}

func testHealthz() error {
	resp, err := client.Get(apiBase + "/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func testSyncActivities() error {
	now := time.Now().UTC()
	acts := make([]map[string]any, 0, 25)
	for i := 0; i < 25; i++ {
		act := map[string]any{
			"external_id": fmt.Sprintf("smoke-%d", i),
			"sport_type":  "Run",
			"started_at":  now.AddDate(0, 0, -i).Format(time.RFC3339),
		}
		if i < 22 {
			act["avg_heart_rate"] = 140 + i
			act["max_heart_rate"] = 160 + i
		}
		acts = append(acts, act)
	}

	body := map[string]any{"athlete_id": athleteID, "activities": acts}
	var out struct {
		Upserted int `json:"upserted"`
		Skipped  int `json:"skipped"`
	}
	if err := postJSON("/v1/activities/sync", body, &out); err != nil {
		return err
	}
	if out.Upserted != 25 {
		return fmt.Errorf("expected 25 upserted, got %d (skipped %d)", out.Upserted, out.Skipped)
	}
	return nil
}

func testEstimate() error {
	var out struct {
		Analysis struct {
			Confidence string `json:"confidence"`
		} `json:"analysis"`
		ProfileUpdated []string `json:"profile_updated"`
	}
	if err := postJSON("/v1/athletes/"+athleteID+"/thresholds/estimate", nil, &out); err != nil {
		return err
	}
	fmt.Printf("confidence=%s updated=%v\n", out.Analysis.Confidence, out.ProfileUpdated)
	return nil
}

func testGetProfile() error {
	var out struct {
		Profile struct {
			MaxHeartRate       *int   `json:"max_heart_rate"`
			MaxHeartRateSource string `json:"max_heart_rate_source"`
		} `json:"profile"`
		HeartRateZones []any `json:"heart_rate_zones"`
	}
	if err := getJSON("/v1/athletes/"+athleteID+"/profile", &out); err != nil {
		return err
	}
	if len(out.HeartRateZones) == 0 {
		return fmt.Errorf("expected derived heart rate zones")
	}
	if out.Profile.MaxHeartRate != nil {
		fmt.Printf("max_hr=%d source=%s\n", *out.Profile.MaxHeartRate, out.Profile.MaxHeartRateSource)
	}
	return nil
}

func testHistory() error {
	var out struct {
		Calculations []struct {
			Method string `json:"method"`
		} `json:"calculations"`
	}
	if err := getJSON("/v1/athletes/"+athleteID+"/thresholds/history?limit=5", &out); err != nil {
		return err
	}
	if len(out.Calculations) == 0 {
		return fmt.Errorf("expected at least one calculation")
	}
	return nil
}

func testCreateReport() error {
	var out struct {
		Report struct {
			ID string `json:"id"`
		} `json:"report"`
		DownloadURL string `json:"download_url"`
	}
	if err := postJSON("/v1/athletes/"+athleteID+"/reports", map[string]any{"format": "csv"}, &out); err != nil {
		return err
	}
	reportID = out.Report.ID
	fmt.Printf("report_id=%s url=%s\n", reportID, out.DownloadURL)
	return nil
}

func testDownloadReport() error {
	if reportID == "" {
		return fmt.Errorf("no report created")
	}

	resp, err := client.Get(apiBase + "/v1/reports/" + reportID + "/download")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Printf("downloaded %d bytes (%s)\n", len(data), resp.Header.Get("Content-Type"))
	return nil
}

func postJSON(path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(http.MethodPost, apiBase+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func getJSON(path string, out any) error {
	resp, err := client.Get(apiBase + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
