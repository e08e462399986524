package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/quietscores/scores/external/espn"
	"github.com/quietscores/scores/internal/config"
	"github.com/quietscores/scores/internal/interfaces/httpapi"
	"github.com/quietscores/scores/internal/platform/cache"
	"github.com/quietscores/scores/internal/platform/logging"
	"github.com/quietscores/scores/internal/platform/resilience"
	"github.com/quietscores/scores/internal/usecase"
)

// App bundles the wired HTTP server with the services the entrypoint
// drives directly (standings prewarm).
type App struct {
	Server    *http.Server
	Standings *usecase.StandingsService
}

func New(cfg config.Config, logger *slog.Logger, feedLogger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if feedLogger == nil {
		feedLogger = logging.Default()
	}

	feed := espn.NewClient(espn.ClientConfig{
		BaseURL:    cfg.ESPNBaseURL,
		Timeout:    cfg.ESPNTimeout,
		MaxRetries: cfg.ESPNMaxRetries,
		Logger:     feedLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ESPNCircuitEnabled,
			FailureThreshold: cfg.ESPNCircuitFailureCount,
			OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
		},
	})

	scoreboardSvc := usecase.NewScoreboardService(feed, feedLogger)
	detailSvc := usecase.NewDetailService(feed, feedLogger)
	standingsSvc := usecase.NewStandingsService(feed, cache.NewStore(cfg.StandingsCacheTTL), feedLogger)
	teamSvc := usecase.NewTeamService(feed)

	handler := httpapi.NewHandler(scoreboardSvc, detailSvc, standingsSvc, teamSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		Standings: standingsSvc,
	}, nil
}
