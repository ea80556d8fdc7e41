package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/schedule"
	"github.com/matchday/competition-engine/internal/domain/team"
	"github.com/matchday/competition-engine/internal/platform/id"
)

// EventInput carries one ledger mutation from the boundary. A nil Minute
// means "stamp the current clock minute".
type EventInput struct {
	Type              string
	Minute            *int
	TeamID            string
	PrimaryPlayerID   string
	SecondaryPlayerID string
}

// MatchService owns every live-match transition. All mutations of one match
// are serialized through a per-match lock so concurrent scorekeepers cannot
// interleave a read-modify-write.
type MatchService struct {
	competitionRepo competition.Repository
	matchRepo       match.Repository
	idGenerator     id.Generator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMatchService(
	competitionRepo competition.Repository,
	matchRepo match.Repository,
	idGenerator id.Generator,
) *MatchService {
	return &MatchService{
		competitionRepo: competitionRepo,
		matchRepo:       matchRepo,
		idGenerator:     idGenerator,
		locks:           make(map[string]*sync.Mutex),
	}
}

func (s *MatchService) lockMatch(matchID string) func() {
	s.mu.Lock()
	l, ok := s.locks[matchID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[matchID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Start moves a match to In Progress and starts its clock. The first match
// start also promotes an Upcoming competition to Ongoing.
func (s *MatchService) Start(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Start")
	defer span.End()

	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	item, err = match.Start(item)
	if err != nil {
		return match.Match{}, mapRuleError(err)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, item.CompetitionID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get competition: %w", err)
	}
	if exists && comp.Status == competition.StatusUpcoming {
		comp.Status = competition.StatusOngoing
		if err := s.competitionRepo.Update(ctx, comp); err != nil {
			return match.Match{}, fmt.Errorf("promote competition: %w", err)
		}
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return item, nil
}

// AddEvent appends an event to the match ledger and recounts the score.
func (s *MatchService) AddEvent(ctx context.Context, matchID string, input EventInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AddEvent")
	defer span.End()

	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	eventID, err := s.idGenerator.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate event id: %w", err)
	}

	e, err := buildEvent(item, eventID, input)
	if err != nil {
		return match.Match{}, err
	}

	item, err = match.AppendEvent(item, e)
	if err != nil {
		return match.Match{}, mapRuleError(err)
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return item, nil
}

// EditEvent replaces an existing ledger event in place and recounts the score.
func (s *MatchService) EditEvent(ctx context.Context, matchID, eventID string, input EventInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.EditEvent")
	defer span.End()

	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return match.Match{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	e, err := buildEvent(item, eventID, input)
	if err != nil {
		return match.Match{}, err
	}

	item, err = match.ReplaceEvent(item, e)
	if err != nil {
		return match.Match{}, mapRuleError(err)
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return item, nil
}

// DeleteEvent removes a ledger event and recounts the score.
func (s *MatchService) DeleteEvent(ctx context.Context, matchID, eventID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.DeleteEvent")
	defer span.End()

	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return match.Match{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	item, err = match.RemoveEvent(item, eventID)
	if err != nil {
		return match.Match{}, mapRuleError(err)
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return item, nil
}

// Finish completes a match under the competition's scoring model. A tied
// match in a no-draws competition comes back still In Progress with
// AwaitingShootout set; the caller must follow up with ResolveShootout.
func (s *MatchService) Finish(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Finish")
	defer span.End()

	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, item.CompetitionID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: competition=%s", ErrNotFound, item.CompetitionID)
	}

	item, err = match.Finish(item, comp.DrawsAllowed)
	if err != nil {
		return match.Match{}, mapRuleError(err)
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return item, nil
}

// ResolveShootout records the penalty result for a tied match and finishes it.
func (s *MatchService) ResolveShootout(ctx context.Context, matchID string, homePens, awayPens int, winnerSide string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResolveShootout")
	defer span.End()

	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	item, err = match.ResolveShootout(item, homePens, awayPens, winnerSide)
	if err != nil {
		return match.Match{}, mapRuleError(err)
	}

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return item, nil
}

// TickClock advances a live match clock by delta seconds. Ticks on a paused
// clock are accepted and dropped, so external tickers need no pause handling.
func (s *MatchService) TickClock(ctx context.Context, matchID string, delta int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.TickClock")
	defer span.End()

	if delta <= 0 {
		return match.Match{}, fmt.Errorf("%w: tick delta must be > 0, got %d", ErrInvalidInput, delta)
	}

	return s.updateClock(ctx, matchID, func(c match.Clock) match.Clock {
		return c.Tick(delta)
	})
}

func (s *MatchService) PauseClock(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.PauseClock")
	defer span.End()

	return s.updateClock(ctx, matchID, match.Clock.Pause)
}

func (s *MatchService) ResumeClock(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResumeClock")
	defer span.End()

	return s.updateClock(ctx, matchID, match.Clock.Resume)
}

func (s *MatchService) ResetClock(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResetClock")
	defer span.End()

	return s.updateClock(ctx, matchID, match.Clock.Reset)
}

func (s *MatchService) updateClock(ctx context.Context, matchID string, apply func(match.Clock) match.Clock) (match.Match, error) {
	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Status != match.StatusInProgress {
		return match.Match{}, fmt.Errorf("%w: clock requires a match in progress, status=%s", ErrInvalidTransition, item.Status)
	}

	item.Clock = apply(item.Clock)

	if err := s.matchRepo.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	return item, nil
}

// AdvanceWinner materializes the next cup round match for a finished match
// and its bracket sibling. Siblings are paired positionally inside the stage:
// matches sorted by ID, index i paired with i^1. Both must be finished with a
// winner before the next-round match exists.
func (s *MatchService) AdvanceWinner(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AdvanceWinner")
	defer span.End()

	unlock := s.lockMatch(matchID)
	defer unlock()

	item, err := s.getMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	if item.Status != match.StatusFinished || item.WinnerID == "" {
		return match.Match{}, fmt.Errorf("%w: advancement requires a finished match with a winner", ErrInvalidTransition)
	}

	comp, exists, err := s.competitionRepo.GetByID(ctx, item.CompetitionID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: competition=%s", ErrNotFound, item.CompetitionID)
	}
	if comp.Format != competition.FormatCup {
		return match.Match{}, fmt.Errorf("%w: winner advancement only applies to cup competitions", ErrInvalidTransition)
	}

	all, err := s.matchRepo.ListByCompetition(ctx, item.CompetitionID)
	if err != nil {
		return match.Match{}, fmt.Errorf("list matches by competition: %w", err)
	}

	var stageMatches []match.Match
	for _, m := range all {
		if m.Stage == item.Stage {
			stageMatches = append(stageMatches, m)
		}
	}
	sort.Slice(stageMatches, func(i, j int) bool { return stageMatches[i].ID < stageMatches[j].ID })

	idx := -1
	for i, m := range stageMatches {
		if m.ID == item.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, item.ID)
	}

	siblingIdx := idx ^ 1
	if siblingIdx >= len(stageMatches) {
		// Lone match of the round: its winner advances to a match that
		// awaits an opponent from a later advancement, so nothing to pair.
		return match.Match{}, fmt.Errorf("%w: match has no bracket sibling in stage %q", ErrInvalidTransition, item.Stage)
	}
	sibling := stageMatches[siblingIdx]
	if sibling.Status != match.StatusFinished || sibling.WinnerID == "" {
		return match.Match{}, fmt.Errorf("%w: sibling match %s is not decided yet", ErrInvalidTransition, sibling.ID)
	}

	// Positional order in the bracket decides home advantage, not which of
	// the two finished last.
	first, second := stageMatches[min(idx, siblingIdx)], stageMatches[max(idx, siblingIdx)]
	home := winnerTeam(first)
	away := winnerTeam(second)

	nextStage := schedule.NextCupStage(item.Stage)
	next := match.Match{
		ID:            fmt.Sprintf("match-%s-%s-%s", comp.ID, home.ID, away.ID),
		CompetitionID: comp.ID,
		HomeTeam:      home,
		AwayTeam:      away,
		Date:          schedule.NextRoundDate(laterDate(first, second)),
		Stage:         nextStage,
		Status:        match.StatusNotStarted,
		ArenaID:       comp.DefaultArenaID,
	}

	for _, m := range all {
		if m.ID == next.ID {
			// Both siblings advancing is idempotent; the second call finds
			// the match the first one created.
			return m, nil
		}
	}

	if err := s.matchRepo.Insert(ctx, next); err != nil {
		return match.Match{}, fmt.Errorf("insert next round match: %w", err)
	}

	return next, nil
}

func (s *MatchService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
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

func buildEvent(m match.Match, eventID string, input EventInput) (match.Event, error) {
	minute := m.Clock.Minute()
	if input.Minute != nil {
		minute = *input.Minute
	}

	if input.TeamID != m.HomeTeam.ID && input.TeamID != m.AwayTeam.ID {
		return match.Event{}, fmt.Errorf("%w: team %s is not playing this match", ErrInvalidInput, input.TeamID)
	}

	e := match.Event{
		ID:                eventID,
		Type:              input.Type,
		Minute:            minute,
		TeamID:            input.TeamID,
		PrimaryPlayerID:   input.PrimaryPlayerID,
		SecondaryPlayerID: input.SecondaryPlayerID,
	}
	if err := e.Validate(); err != nil {
		return match.Event{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return e, nil
}

func winnerTeam(m match.Match) team.Team {
	if m.WinnerID == m.HomeTeam.ID {
		return m.HomeTeam
	}
	return m.AwayTeam
}

func laterDate(a, b match.Match) time.Time {
	if b.Date.After(a.Date) {
		return b.Date
	}
	return a.Date
}

// mapRuleError lifts domain transition errors into the service error space so
// the transport layer can translate them uniformly.
func mapRuleError(err error) error {
	switch {
	case errors.Is(err, match.ErrEventNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, match.ErrAlreadyStarted),
		errors.Is(err, match.ErrNotInProgress),
		errors.Is(err, match.ErrFinished),
		errors.Is(err, match.ErrAwaitingShootout),
		errors.Is(err, match.ErrScoreNotTied):
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
