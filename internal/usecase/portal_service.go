package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/standings"
)

// PortalOverview is the home-page payload covering every competition,
// assembled in one request.
type PortalOverview struct {
	CompetitionCount int                 `json:"competition_count"`
	WorkerCount      int                 `json:"worker_count"`
	FailedCount      int                 `json:"failed_count"`
	Competitions     []PortalCompetition `json:"competitions"`
}

type PortalCompetition struct {
	CompetitionID   string          `json:"competition_id"`
	Name            string          `json:"name"`
	Season          string          `json:"season"`
	Status          string          `json:"status"`
	Format          string          `json:"format"`
	MatchCount      int             `json:"match_count"`
	FinishedCount   int             `json:"finished_count"`
	LiveCount       int             `json:"live_count"`
	Table           []standings.Row `json:"table,omitempty"`
	UpcomingMatches []match.Match   `json:"upcoming_matches,omitempty"`
	DurationMs      int64           `json:"duration_ms"`
	Error           string          `json:"error,omitempty"`
}

// upcomingLimit caps how many scheduled fixtures each competition card shows.
const upcomingLimit = 5

// PortalService aggregates the overview across competitions with a bounded
// worker pool, one task per competition.
type PortalService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	standings       *StandingService
	maxWorkers      int
}

func NewPortalService(
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	standingService *StandingService,
	maxWorkers int,
) *PortalService {
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	return &PortalService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		standings:       standingService,
		maxWorkers:      maxWorkers,
	}
}

func (s *PortalService) Overview(ctx context.Context) (PortalOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PortalService.Overview")
	defer span.End()

	comps, err := s.competitionRepo.List(ctx)
	if err != nil {
		return PortalOverview{}, fmt.Errorf("list competitions: %w", err)
	}

	workerCount := s.maxWorkers
	if workerCount > len(comps) {
		workerCount = len(comps)
	}
	overview := PortalOverview{
		CompetitionCount: len(comps),
		WorkerCount:      workerCount,
		Competitions:     make([]PortalCompetition, 0, len(comps)),
	}
	if len(comps) == 0 {
		return overview, nil
	}

	results := make(chan PortalCompetition, len(comps))

	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return PortalOverview{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, comp := range comps {
		comp := comp
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.buildCompetitionCard(ctx, comp)
			row.DurationMs = time.Since(start).Milliseconds()
			if row.Error != "" {
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return PortalOverview{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		overview.Competitions = append(overview.Competitions, row)
	}

	sort.SliceStable(overview.Competitions, func(i, j int) bool {
		return overview.Competitions[i].CompetitionID < overview.Competitions[j].CompetitionID
	})

	overview.FailedCount = int(failedCount.Load())
	return overview, nil
}

func (s *PortalService) buildCompetitionCard(ctx context.Context, comp competition.Competition) PortalCompetition {
	row := PortalCompetition{
		CompetitionID: comp.ID,
		Name:          comp.Name,
		Season:        comp.Season,
		Status:        comp.Status,
		Format:        comp.Format,
	}

	matches, err := s.matchRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		row.Error = err.Error()
		return row
	}

	row.MatchCount = len(matches)
	var upcoming []match.Match
	for _, m := range matches {
		switch m.Status {
		case match.StatusFinished:
			row.FinishedCount++
		case match.StatusInProgress:
			row.LiveCount++
		case match.StatusNotStarted:
			upcoming = append(upcoming, m)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if !upcoming[i].Date.Equal(upcoming[j].Date) {
			return upcoming[i].Date.Before(upcoming[j].Date)
		}
		return upcoming[i].ID < upcoming[j].ID
	})
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	row.UpcomingMatches = upcoming

	if comp.Format != competition.FormatCup {
		table, err := s.standings.Compute(ctx, comp.ID, "")
		if err != nil {
			row.Error = err.Error()
			return row
		}
		row.Table = table
	}

	return row
}
