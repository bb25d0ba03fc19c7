package app

import (
	"context"
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/Zedster07/StreetBaller/internal/config"
	"github.com/Zedster07/StreetBaller/internal/domain/dispute"
	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/domain/matchevent"
	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	"github.com/Zedster07/StreetBaller/internal/domain/user"
	"github.com/Zedster07/StreetBaller/internal/infrastructure/account/identity"
	cachedrepo "github.com/Zedster07/StreetBaller/internal/infrastructure/repository/cache"
	"github.com/Zedster07/StreetBaller/internal/infrastructure/repository/memory"
	"github.com/Zedster07/StreetBaller/internal/infrastructure/repository/postgres"
	"github.com/Zedster07/StreetBaller/internal/interfaces/httpapi"
	basecache "github.com/Zedster07/StreetBaller/internal/platform/cache"
	idgen "github.com/Zedster07/StreetBaller/internal/platform/id"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
	"github.com/Zedster07/StreetBaller/internal/platform/resilience"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

// DBURLMemory selects the in-memory repositories with demo fixtures instead
// of Postgres. Meant for local development and smoke tests only.
const DBURLMemory = "memory"

// NewHTTPServer wires repositories, services and the HTTP layer. The
// returned cleanup releases the database pool and must run after the server
// has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		userRepo    user.Repository
		playerRepo  player.Repository
		teamRepo    team.Repository
		matchRepo   match.Repository
		eventRepo   matchevent.Repository
		disputeRepo dispute.Repository
		trustRepo   trust.Repository
	)

	cleanup := func(context.Context) error { return nil }

	if cfg.DBURL == DBURLMemory {
		players := memory.NewPlayerRepository(memory.SeedPlayers())
		teams := memory.NewTeamRepository(memory.SeedTeams())
		for _, t := range memory.SeedTeams() {
			if err := teams.AddMember(ctx, team.Membership{
				TeamID:   t.ID,
				UserID:   t.CreatedByID,
				Role:     team.RoleCaptain,
				JoinedAt: t.CreatedAt,
			}); err != nil {
				return nil, nil, fmt.Errorf("seed captain for team %s: %w", t.ID, err)
			}
		}

		userRepo = memory.NewUserRepository(memory.SeedUsers())
		playerRepo = players
		teamRepo = teams
		matchRepo = memory.NewMatchRepository(nil)
		eventRepo = memory.NewMatchEventRepository()
		disputeRepo = memory.NewDisputeRepository()
		trustRepo = memory.NewTrustRepository(players)

		logger.Info("storage configured", "driver", "memory")
	} else {
		dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
		db, err := otelsqlx.ConnectContext(ctx, "postgres", dsn,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}

		if cfg.SeedEnabled {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		userRepo = postgres.NewUserRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		teamRepo = postgres.NewTeamRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		eventRepo = postgres.NewMatchEventRepository(db)
		disputeRepo = postgres.NewDisputeRepository(db)
		trustRepo = postgres.NewTrustRepository(db)

		cleanup = func(context.Context) error { return db.Close() }
		logger.Info("storage configured", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))
	}

	store := basecache.NewStore(cfg.CacheTTL)
	if cfg.CacheEnabled {
		teamRepo = cachedrepo.NewTeamRepository(teamRepo, store)
		playerRepo = cachedrepo.NewPlayerRepository(playerRepo, store)
		trustRepo = cachedrepo.NewTrustRepository(trustRepo, store)
	}

	ids := idgen.NewUUIDGenerator()

	trustSvc := usecase.NewTrustService(trustRepo, playerRepo, ids, logger)
	userSvc := usecase.NewUserService(userRepo, playerRepo, trustSvc, ids, logger)
	teamSvc := usecase.NewTeamService(teamRepo, playerRepo, ids, logger)
	disputeSvc := usecase.NewDisputeService(disputeRepo, matchRepo, teamRepo, trustSvc, ids, logger)
	matchSvc := usecase.NewMatchService(matchRepo, eventRepo, playerRepo, teamRepo, disputeSvc, ids, logger)
	eventSvc := usecase.NewMatchEventService(eventRepo, matchRepo, ids, logger)
	leaderboardSvc := usecase.NewLeaderboardService(playerRepo, trustRepo, store, logger)

	verifier := identity.NewClient(identity.ClientConfig{
		BaseURL:        cfg.IdentityBaseURL,
		IntrospectPath: cfg.IdentityIntrospectPath,
		AdminKey:       cfg.IdentityAdminKey,
		Timeout:        cfg.IdentityTimeout,
		CacheTTL:       cfg.IdentityCacheTTL,
		CacheEntries:   cfg.IdentityCacheEntries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.IdentityCircuitEnabled,
			FailureThreshold: cfg.IdentityCircuitFailureCount,
			OpenTimeout:      cfg.IdentityCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.IdentityCircuitHalfOpenMaxReq,
		},
	}, logger)

	handler := httpapi.NewHandler(
		userSvc,
		teamSvc,
		matchSvc,
		disputeSvc,
		trustSvc,
		eventSvc,
		leaderboardSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}
