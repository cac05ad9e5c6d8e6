package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fdg312/training-hub/internal/activities"
	"github.com/fdg312/training-hub/internal/blob"
	"github.com/fdg312/training-hub/internal/config"
	"github.com/fdg312/training-hub/internal/profiles"
	"github.com/fdg312/training-hub/internal/reports"
	"github.com/fdg312/training-hub/internal/storage"
	"github.com/fdg312/training-hub/internal/storage/memory"
	"github.com/fdg312/training-hub/internal/storage/postgres"
	"github.com/fdg312/training-hub/internal/thresholds"
	"github.com/fdg312/training-hub/internal/zones"
)

// Server представляет HTTP сервер
type Server struct {
	config  *config.Config
	mux     *http.ServeMux
	storage storage.Storage
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Регистрируем маршруты
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("Подключение к PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("Ошибка подключения к PostgreSQL: %v", err)
		log.Println("Fallback на in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("PostgreSQL подключен успешно")
	s.storage = pgStorage
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	generator := zones.NewGenerator(s.config.DefaultAthleteAge)
	selector := zones.FiveZonePreferredSelector{}

	// Activities API
	activitiesService := activities.NewService(s.storage)
	activitiesHandler := activities.NewHandler(activitiesService)

	// POST /v1/activities/sync - batch sync from providers
	s.mux.HandleFunc("POST /v1/activities/sync", activitiesHandler.HandleSyncBatch)

	// GET /v1/athletes/{id}/activities - list activities
	s.mux.HandleFunc("GET /v1/athletes/{id}/activities", activitiesHandler.HandleList)

	// Profiles API
	profileService := profiles.NewService(
		s.storage,
		s.storage,
		generator,
		selector,
		s.config.StaleAfterDays,
		s.config.HistoryReadWindow,
	)
	profileHandler := profiles.NewHandler(profileService)

	// GET /v1/athletes/{id}/profile - profile with derived zones
	s.mux.HandleFunc("GET /v1/athletes/{id}/profile", profileHandler.HandleGet)

	// PATCH /v1/athletes/{id}/profile - update profile (user_set provenance)
	s.mux.HandleFunc("PATCH /v1/athletes/{id}/profile", profileHandler.HandleUpdate)

	// Thresholds API
	thresholdService := thresholds.NewService(s.storage, s.storage, profileService, generator, selector)
	thresholdHandler := thresholds.NewHandler(thresholdService)

	// POST /v1/athletes/{id}/thresholds/estimate - run estimation, update profile
	s.mux.HandleFunc("POST /v1/athletes/{id}/thresholds/estimate", thresholdHandler.HandleEstimate)

	// GET /v1/athletes/{id}/thresholds/analysis - read-only zone analysis
	s.mux.HandleFunc("GET /v1/athletes/{id}/thresholds/analysis", thresholdHandler.HandleAnalyze)

	// GET /v1/athletes/{id}/thresholds/history - recent calculations
	s.mux.HandleFunc("GET /v1/athletes/{id}/thresholds/history", thresholdHandler.HandleHistory)

	// Reports API
	blobStore, blobMode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("blob store initialization failed: %v", err)
	}
	log.Printf("Reports blob mode: %s", blobMode)

	reportsService := reports.NewService(
		s.storage,
		profileService,
		thresholdService,
		blobStore,
		s.config.Blob.S3.PresignTTLSeconds,
		s.config.ReportsMaxActivities,
	)
	reportsHandler := reports.NewHandler(reportsService)

	// POST /v1/athletes/{id}/reports - generate zone report
	s.mux.HandleFunc("POST /v1/athletes/{id}/reports", reportsHandler.HandleCreate)

	// GET /v1/athletes/{id}/reports - list reports
	s.mux.HandleFunc("GET /v1/athletes/{id}/reports", reportsHandler.HandleList)

	// GET /v1/reports/{id}/download - download report artifact
	s.mux.HandleFunc("GET /v1/reports/{id}/download", reportsHandler.HandleDownload)
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	// Build middleware chain (outermost first): CORS -> Rate Limit -> Router
	var handler http.Handler = s.mux
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
