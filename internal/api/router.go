package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lumenlearn/skillaudit/internal/api/handlers"
	mw "github.com/lumenlearn/skillaudit/internal/api/middleware"
	"github.com/lumenlearn/skillaudit/internal/buildconfig"
	"github.com/lumenlearn/skillaudit/internal/config"
	"github.com/lumenlearn/skillaudit/internal/domain"
	"github.com/lumenlearn/skillaudit/internal/llm"
	"github.com/lumenlearn/skillaudit/internal/service"
	"go.uber.org/zap"
)

// App holds the router and request counters for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

func NewApp(logger *zap.Logger) *App {
	// Extractor via provider factory
	provider := config.ExtractorProvider()
	extractor, err := llm.NewExtractor(provider, config.ExtractorAPIKey())
	if err != nil {
		logger.Warn("extractor initialization failed, falling back to mock",
			zap.String("provider", provider), zap.Error(err))
		extractor = llm.NewMockExtractor()
	} else {
		logger.Info("extractor initialized", zap.String("provider", provider))
	}

	// Services
	resolver := service.NewGoalResolver()
	classifier := service.NewEvidenceClassifier()
	validator := service.NewStageValidator()
	transformer := service.NewTransformer(resolver, classifier, logger)
	orchestrator := service.NewOrchestrator(extractor, validator, transformer, logger)
	generator := service.NewVariantGenerator(classifier)
	comparator := service.NewComparator(classifier)
	batchSvc := service.NewBatchService(generator, orchestrator, comparator, logger)
	batchSvc.MaxWorkers = config.BatchWorkers()

	// Handlers
	batchHandler := handlers.NewBatchHandler(batchSvc, logger)
	analyzeHandler := handlers.NewAnalyzeHandler(batchSvc, logger)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler())
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/batches", batchHandler.CreateBatch)
		r.Post("/profiles/analyze", analyzeHandler.Analyze)
	})

	return app
}

// NewRouter returns just the chi.Mux when the caller does not need counters.
func NewRouter(logger *zap.Logger) *chi.Mux {
	return NewApp(logger).Router
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": buildconfig.Version(),
		})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"build":      buildconfig.VersionInfo(),
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure extractor clients satisfy the interface at compile time.
var (
	_ domain.Extractor = (*llm.OpenAIClient)(nil)
	_ domain.Extractor = (*llm.AnthropicClient)(nil)
	_ domain.Extractor = (*llm.GeminiClient)(nil)
	_ domain.Extractor = (*llm.MockExtractor)(nil)
)
