package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/schedule"
	"github.com/matchday/competition-engine/internal/domain/team"
)

// FixtureService generates and serves a competition's match set.
type FixtureService struct {
	competitionRepo competition.Repository
	teamRepo        team.Repository
	matchRepo       match.Repository
	now             func() time.Time
	rng             *rand.Rand
}

func NewFixtureService(
	competitionRepo competition.Repository,
	teamRepo team.Repository,
	matchRepo match.Repository,
) *FixtureService {
	return &FixtureService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
		matchRepo:       matchRepo,
		now:             time.Now,
	}
}

// WithRand pins the shuffle source, used by tests to make cup and group
// draws deterministic.
func (s *FixtureService) WithRand(rng *rand.Rand) *FixtureService {
	s.rng = rng
	return s
}

// Generate builds the full fixture set for the competition and installs it,
// dropping every previously generated match for that competition, played or
// not. This is a destructive replace, not a merge.
func (s *FixtureService) Generate(ctx context.Context, competitionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.Generate")
	defer span.End()

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByIDs(ctx, comp.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("list enrolled teams: %w", err)
	}

	items, err := schedule.Generate(comp, teams, s.now(), s.rng)
	if err != nil {
		if errors.Is(err, schedule.ErrInsufficientTeams) {
			return nil, fmt.Errorf("%w: competition %s has %d enrolled teams", ErrInsufficientTeams, comp.ID, len(teams))
		}
		return nil, fmt.Errorf("generate fixtures: %w", err)
	}

	if err := s.matchRepo.ReplaceByCompetition(ctx, comp.ID, items); err != nil {
		return nil, fmt.Errorf("replace fixtures: %w", err)
	}

	return items, nil
}

func (s *FixtureService) ListByCompetition(ctx context.Context, competitionID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.ListByCompetition")
	defer span.End()

	comp, err := s.getCompetition(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	items, err := s.matchRepo.ListByCompetition(ctx, comp.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by competition: %w", err)
	}

	return items, nil
}

func (s *FixtureService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return item, nil
}

// UpdateSchedule stores per-match scheduling metadata (kickoff, arena,
// field) set by the operator. Live data is untouched.
func (s *FixtureService) UpdateSchedule(ctx context.Context, matchID string, date *time.Time, arenaID, field *string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureService.UpdateSchedule")
	defer span.End()

	item, err := s.GetMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Status == match.StatusFinished {
		return match.Match{}, fmt.Errorf("%w: cannot reschedule a finished match", ErrInvalidTransition)
	}

	if date != nil {
		item.Date = *date
	}
	if arenaID != nil {
		item.ArenaID = *arenaID
	}
	if field != nil {
		item.Field = *field
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match schedule: %w", err)
	}

	return item, nil
}

func (s *FixtureService) getCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	return comp, nil
}
