package app

import (
	"fmt"
	"net/http"

	"github.com/matchday/competition-engine/internal/config"
	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/team"
	"github.com/matchday/competition-engine/internal/infrastructure/repository/memory"
	"github.com/matchday/competition-engine/internal/infrastructure/repository/postgres"
	"github.com/matchday/competition-engine/internal/interfaces/httpapi"
	idgen "github.com/matchday/competition-engine/internal/platform/id"
	"github.com/matchday/competition-engine/internal/platform/logging"
	"github.com/matchday/competition-engine/internal/usecase"
)

type repositories struct {
	competitions competition.Repository
	teams        team.Repository
	matches      match.Repository
}

// NewHTTPServer wires the full service graph for the configured storage
// driver. The returned cleanup releases storage resources and is safe to
// call after server shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	competitionSvc := usecase.NewCompetitionService(repos.competitions, repos.teams)
	fixtureSvc := usecase.NewFixtureService(repos.competitions, repos.teams, repos.matches)
	matchSvc := usecase.NewMatchService(repos.competitions, repos.matches, idgen.NewRandomGenerator())
	standingSvc := usecase.NewStandingService(repos.competitions, repos.teams, repos.matches)
	portalSvc := usecase.NewPortalService(repos.competitions, repos.matches, standingSvc, cfg.PortalMaxWorkers)

	handler := httpapi.NewHandler(competitionSvc, fixtureSvc, matchSvc, standingSvc, portalSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		logger.Info("storage ready", "driver", "postgres", "database", dbNameFromURL(cfg.DBURL))
		return repositories{
			competitions: postgres.NewCompetitionRepository(db),
			teams:        postgres.NewTeamRepository(db),
			matches:      postgres.NewMatchRepository(db),
		}, db.Close, nil
	case config.StorageMemory:
		logger.Info("storage ready", "driver", "memory")
		return repositories{
			competitions: memory.NewCompetitionRepository(memory.SeedCompetitions()),
			teams:        memory.NewTeamRepository(memory.SeedTeams()),
			matches:      memory.NewMatchRepository(nil),
		}, func() error { return nil }, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
