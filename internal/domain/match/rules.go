package match

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyStarted   = errors.New("match already started")
	ErrNotInProgress    = errors.New("match is not in progress")
	ErrFinished         = errors.New("match is finished")
	ErrAwaitingShootout = errors.New("match is awaiting shootout resolution")
	ErrScoreNotTied     = errors.New("score is not tied")
	ErrEventNotFound    = errors.New("event not found")
)

const (
	SideHome = "home"
	SideAway = "away"
)

// Start moves a match from Not Started to In Progress and starts its clock.
func Start(m Match) (Match, error) {
	if m.Status != StatusNotStarted {
		return Match{}, fmt.Errorf("%w: status=%s", ErrAlreadyStarted, m.Status)
	}

	m.Status = StatusInProgress
	m.Clock = m.Clock.Start()
	m.Events = CloneEvents(m.Events)
	return m, nil
}

// AppendEvent appends e to the ledger and recounts both scores. The ledger
// only accepts mutations while the match is live and not parked on a
// shootout decision.
func AppendEvent(m Match, e Event) (Match, error) {
	if err := mutableLedger(m); err != nil {
		return Match{}, err
	}
	if err := e.Validate(); err != nil {
		return Match{}, err
	}

	events := make([]Event, 0, len(m.Events)+1)
	events = append(events, m.Events...)
	events = append(events, e)
	return withEvents(m, events), nil
}

// ReplaceEvent swaps the event with e.ID in place, keeping its ledger
// position, then recounts.
func ReplaceEvent(m Match, e Event) (Match, error) {
	if err := mutableLedger(m); err != nil {
		return Match{}, err
	}
	if err := e.Validate(); err != nil {
		return Match{}, err
	}

	idx, ok := m.findEvent(e.ID)
	if !ok {
		return Match{}, fmt.Errorf("%w: event=%s", ErrEventNotFound, e.ID)
	}

	events := CloneEvents(m.Events)
	events[idx] = e
	return withEvents(m, events), nil
}

// RemoveEvent deletes an event from the ledger and recounts, so deleting a
// goal lowers the derived score.
func RemoveEvent(m Match, eventID string) (Match, error) {
	if err := mutableLedger(m); err != nil {
		return Match{}, err
	}

	idx, ok := m.findEvent(eventID)
	if !ok {
		return Match{}, fmt.Errorf("%w: event=%s", ErrEventNotFound, eventID)
	}

	events := make([]Event, 0, len(m.Events)-1)
	events = append(events, m.Events[:idx]...)
	events = append(events, m.Events[idx+1:]...)
	return withEvents(m, events), nil
}

// Finish completes a match as a regulation result. How a tied score ends
// depends on the competition's scoring model: with draws allowed the match
// terminates as a plain draw with no winner; otherwise it is parked awaiting
// a shootout resolution and its ledger freezes, still In Progress in the
// state model.
func Finish(m Match, drawsAllowed bool) (Match, error) {
	if m.Status != StatusInProgress {
		return Match{}, fmt.Errorf("%w: status=%s", ErrNotInProgress, m.Status)
	}

	home := ProjectScore(m.Events, m.HomeTeam.ID)
	away := ProjectScore(m.Events, m.AwayTeam.ID)
	m.HomeScore = home
	m.AwayScore = away
	m.Clock = m.Clock.Pause()
	m.Events = CloneEvents(m.Events)

	if home == away && !drawsAllowed {
		m.AwaitingShootout = true
		return m, nil
	}

	m.Status = StatusFinished
	m.Outcome = OutcomeRegulation
	m.AwaitingShootout = false
	switch {
	case home > away:
		m.WinnerID = m.HomeTeam.ID
	case away > home:
		m.WinnerID = m.AwayTeam.ID
	}
	return m, nil
}

// ResolveShootout completes a tied match: records both penalty scores, the
// declared winner side, and transitions to Finished with a shootout outcome.
func ResolveShootout(m Match, homePens, awayPens int, winnerSide string) (Match, error) {
	if m.Status != StatusInProgress {
		return Match{}, fmt.Errorf("%w: status=%s", ErrNotInProgress, m.Status)
	}

	home := ProjectScore(m.Events, m.HomeTeam.ID)
	away := ProjectScore(m.Events, m.AwayTeam.ID)
	if home != away {
		return Match{}, fmt.Errorf("%w: %d-%d", ErrScoreNotTied, home, away)
	}
	if homePens < 0 || awayPens < 0 {
		return Match{}, fmt.Errorf("penalty scores must be >= 0, got %d-%d", homePens, awayPens)
	}

	switch winnerSide {
	case SideHome:
		m.WinnerID = m.HomeTeam.ID
	case SideAway:
		m.WinnerID = m.AwayTeam.ID
	default:
		return Match{}, fmt.Errorf("invalid winner side %q", winnerSide)
	}

	m.HomeScore = home
	m.AwayScore = away
	m.Status = StatusFinished
	m.Outcome = OutcomeShootout
	m.HomePenaltyScore = &homePens
	m.AwayPenaltyScore = &awayPens
	m.AwaitingShootout = false
	m.Clock = m.Clock.Pause()
	m.Events = CloneEvents(m.Events)
	return m, nil
}

func mutableLedger(m Match) error {
	if m.Status == StatusFinished {
		return fmt.Errorf("%w: events are immutable", ErrFinished)
	}
	if m.Status != StatusInProgress {
		return fmt.Errorf("%w: status=%s", ErrNotInProgress, m.Status)
	}
	if m.AwaitingShootout {
		return ErrAwaitingShootout
	}
	return nil
}

func withEvents(m Match, events []Event) Match {
	m.Events = events
	m.HomeScore = ProjectScore(events, m.HomeTeam.ID)
	m.AwayScore = ProjectScore(events, m.AwayTeam.ID)
	return m
}
