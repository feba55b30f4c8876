package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/agsmith/run-my-pool/internal/config"
	"github.com/agsmith/run-my-pool/internal/domain/audit"
	"github.com/agsmith/run-my-pool/internal/domain/entry"
	"github.com/agsmith/run-my-pool/internal/domain/pick"
	"github.com/agsmith/run-my-pool/internal/domain/pool"
	"github.com/agsmith/run-my-pool/internal/domain/schedule"
	"github.com/agsmith/run-my-pool/internal/infrastructure/account/gatekeeper"
	"github.com/agsmith/run-my-pool/internal/infrastructure/repository/memory"
	"github.com/agsmith/run-my-pool/internal/infrastructure/repository/postgres"
	"github.com/agsmith/run-my-pool/internal/infrastructure/schedule/gridiron"
	"github.com/agsmith/run-my-pool/internal/interfaces/httpapi"
	"github.com/agsmith/run-my-pool/internal/platform/cache"
	idgen "github.com/agsmith/run-my-pool/internal/platform/id"
	"github.com/agsmith/run-my-pool/internal/platform/logging"
	"github.com/agsmith/run-my-pool/internal/platform/resilience"
	"github.com/agsmith/run-my-pool/internal/usecase"
)

type repositories struct {
	pools    pool.Repository
	entries  entry.Repository
	picks    pick.Repository
	schedule schedule.Repository
	audit    audit.Recorder
	close    func() error
}

// NewHTTPServer wires repositories, services and the HTTP router.
// With DATABASE_URL set the service runs on Postgres; without it,
// everything lives in memory with a seeded season schedule.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// A nanosecond TTL expires entries immediately, which keeps
		// the read path identical while disabling reuse.
		cacheTTL = time.Nanosecond
	}
	statsCache := cache.NewStore(cacheTTL)
	ids := idgen.NewRandomGenerator()

	poolSvc := usecase.NewPoolService(repos.pools, repos.entries, ids, repos.audit, logger)
	entrySvc := usecase.NewEntryService(repos.pools, repos.entries, repos.picks, ids, repos.audit, logger)
	pickSvc := usecase.NewPickService(repos.entries, repos.picks, repos.schedule, cfg.SeasonWeeks, ids, repos.audit, logger)
	statsSvc := usecase.NewStatsService(repos.pools, repos.entries, repos.picks, repos.schedule, cfg.SeasonWeeks, statsCache)
	pickSvc.SetStatsInvalidator(statsSvc)
	scheduleSvc := usecase.NewScheduleService(repos.schedule, cfg.SeasonWeeks)

	var provider usecase.ScheduleProvider
	if cfg.GridironEnabled {
		provider = gridiron.NewClient(gridiron.ClientConfig{
			BaseURL:    cfg.GridironBaseURL,
			APIKey:     cfg.GridironAPIKey,
			Season:     cfg.SeasonYear,
			Timeout:    cfg.GridironTimeout,
			MaxRetries: cfg.GridironMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GridironCircuitEnabled,
				FailureThreshold: cfg.GridironCircuitFailureCount,
				OpenTimeout:      cfg.GridironCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GridironCircuitHalfOpenMaxReq,
			},
		})
	} else {
		provider = noopProvider{}
	}
	syncSvc := usecase.NewResultSyncService(provider, repos.schedule, repos.pools, statsSvc, cfg.SeasonWeeks, logger)

	gatekeeperClient := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectURL,
		logger,
	)

	handler := httpapi.NewHandler(poolSvc, entrySvc, pickSvc, statsSvc, scheduleSvc, syncSvc, logger)
	router := httpapi.NewRouter(handler, gatekeeperClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, repos.close, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("running with in-memory repositories", "reason", "DATABASE_URL empty")

		scheduleRepo := memory.NewScheduleRepository()
		seasonStart := firstSundayOfSeptember(cfg.SeasonYear)
		if err := memory.SeedSchedule(ctx, scheduleRepo, seasonStart, cfg.SeasonWeeks); err != nil {
			return repositories{}, fmt.Errorf("seed schedule: %w", err)
		}

		return repositories{
			pools:    memory.NewPoolRepository(),
			entries:  memory.NewEntryRepository(),
			picks:    memory.NewPickRepository(),
			schedule: scheduleRepo,
			audit:    memory.NewAuditRepository(),
			close:    func() error { return nil },
		}, nil
	}

	db, err := openDB(ctx, cfg.DBURL)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("running with postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		pools:    postgres.NewPoolRepository(db),
		entries:  postgres.NewEntryRepository(db),
		picks:    postgres.NewPickRepository(db),
		schedule: postgres.NewScheduleRepository(db),
		audit:    postgres.NewAuditRepository(db),
		close:    db.Close,
	}, nil
}

// firstSundayOfSeptember anchors the synthetic in-memory season.
func firstSundayOfSeptember(year int) time.Time {
	day := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	for day.Weekday() != time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// noopProvider serves deployments with no schedule feed configured.
type noopProvider struct{}

func (noopProvider) FetchWeekGames(ctx context.Context, week int) ([]schedule.Game, error) {
	return nil, fmt.Errorf("%w: no schedule provider configured", usecase.ErrDependencyUnavailable)
}
