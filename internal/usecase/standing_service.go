package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/standings"
	"github.com/matchday/competition-engine/internal/domain/team"
	"github.com/matchday/competition-engine/internal/platform/resilience"
)

// StandingService computes a competition's table on demand. Standings are
// never stored; every read recomputes from the current match set, so a table
// can never go stale or drift from the ledger. Concurrent requests for the
// same competition and stage share one computation.
type StandingService struct {
	competitionRepo competition.Repository
	teamRepo        team.Repository
	matchRepo       match.Repository
	group           resilience.SingleFlight
}

func NewStandingService(
	competitionRepo competition.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
) *StandingService {
	return &StandingService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		matchRepo:       matchRepo,
	}
}

// Compute returns the ranked table for one competition, optionally filtered
// to a stage prefix such as a group label. Cup competitions rank nothing and
// return an empty table.
func (s *StandingService) Compute(ctx context.Context, competitionID, stageFilter string) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Compute")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	key := competitionID + "|" + stageFilter
	val, err, _ := s.group.Do(key, func() (any, error) {
		return s.compute(ctx, competitionID, stageFilter)
	})
	if err != nil {
		return nil, err
	}

	return val.([]standings.Row), nil
}

func (s *StandingService) compute(ctx context.Context, competitionID, stageFilter string) ([]standings.Row, error) {
	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	if comp.Format == competition.FormatCup {
		return []standings.Row{}, nil
	}

	teams, err := s.teamRepo.ListByIDs(ctx, comp.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("list enrolled teams: %w", err)
	}

	matches, err := s.matchRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by competition: %w", err)
	}

	return standings.Compute(comp, teams, matches, stageFilter), nil
}
