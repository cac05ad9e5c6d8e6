package config

import "testing"

func TestParseCORSOrigins(t *testing.T) {
	t.Run("local default", func(t *testing.T) {
		origins := parseCORSOrigins("", "local")
		if len(origins) != 2 {
			t.Fatalf("expected 2 localhost origins, got %v", origins)
		}
	})

	t.Run("prod deny by default", func(t *testing.T) {
		if origins := parseCORSOrigins("", "prod"); origins != nil {
			t.Fatalf("expected nil origins in prod, got %v", origins)
		}
	})

	t.Run("explicit list", func(t *testing.T) {
		origins := parseCORSOrigins("https://app.example.com, https://admin.example.com,", "prod")
		if len(origins) != 2 || origins[0] != "https://app.example.com" {
			t.Fatalf("unexpected origins: %v", origins)
		}
	})
}

func TestParseBlobMode(t *testing.T) {
	t.Setenv("BLOB_MODE_TEST", "s3")
	if mode := parseBlobMode("BLOB_MODE_TEST", BlobModeLocal); mode != BlobModeS3 {
		t.Errorf("expected s3, got %s", mode)
	}

	t.Setenv("BLOB_MODE_TEST", "ftp")
	if mode := parseBlobMode("BLOB_MODE_TEST", BlobModeLocal); mode != BlobModeLocal {
		t.Errorf("expected fallback to local, got %s", mode)
	}

	t.Setenv("BLOB_MODE_TEST", "")
	if mode := parseBlobMode("BLOB_MODE_TEST", BlobModeAuto); mode != BlobModeAuto {
		t.Errorf("expected default auto, got %s", mode)
	}
}

func TestLoadEngineDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DefaultAthleteAge != 30 {
		t.Errorf("expected default athlete age 30, got %d", cfg.DefaultAthleteAge)
	}
	if cfg.StaleAfterDays != 30 {
		t.Errorf("expected stale after 30 days, got %d", cfg.StaleAfterDays)
	}
	if cfg.HistoryReadWindow != 5 {
		t.Errorf("expected history read window 5, got %d", cfg.HistoryReadWindow)
	}
	if cfg.ReportsMaxActivities != 5000 {
		t.Errorf("expected reports cap 5000, got %d", cfg.ReportsMaxActivities)
	}
}
