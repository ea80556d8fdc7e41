package match

import (
	"fmt"
	"time"

	"github.com/matchday/competition-engine/internal/domain/team"
)

const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusFinished   = "Finished"
)

const (
	OutcomeRegulation = "regulation"
	OutcomeShootout   = "shootout"
)

const (
	EventGoal         = "Goal"
	EventYellowCard   = "Yellow Card"
	EventRedCard      = "Red Card"
	EventSubstitution = "Substitution"
)

// Event is one entry of a match's append-only ledger. The ledger is the
// single source of truth for the score: HomeScore/AwayScore are always
// recounted from Goal events, never adjusted incrementally.
type Event struct {
	ID                string
	Type              string
	Minute            int
	TeamID            string
	PrimaryPlayerID   string
	SecondaryPlayerID string
}

func (e Event) Validate() error {
	switch e.Type {
	case EventGoal, EventYellowCard, EventRedCard, EventSubstitution:
	default:
		return fmt.Errorf("invalid event type %q", e.Type)
	}
	if e.Minute < 0 {
		return fmt.Errorf("event minute must be >= 0, got %d", e.Minute)
	}
	if e.TeamID == "" {
		return fmt.Errorf("event team id is required")
	}
	if e.PrimaryPlayerID == "" {
		return fmt.Errorf("event primary player id is required")
	}
	if e.Type == EventSubstitution && e.SecondaryPlayerID == "" {
		return fmt.Errorf("substitution requires a secondary player id")
	}

	return nil
}

// Match is one fixture. Home and away teams are embedded snapshots taken at
// generation time.
type Match struct {
	ID            string
	CompetitionID string
	HomeTeam      team.Team
	AwayTeam      team.Team
	Date          time.Time
	Stage         string
	Status        string
	HomeScore     int
	AwayScore     int

	// Terminal fields. While Status != Finished all of these stay unset;
	// once Finished either Outcome is regulation with WinnerID set, or
	// shootout with WinnerID and both penalty scores set.
	Outcome          string
	WinnerID         string
	HomePenaltyScore *int
	AwayPenaltyScore *int

	// AwaitingShootout marks a tied match whose finish was requested: the
	// ledger is frozen until ResolveShootout completes the transition.
	AwaitingShootout bool

	Events []Event
	Clock  Clock

	ArenaID string
	Field   string
}

// ProjectScore counts Goal events credited to teamID. Pure; the only way a
// score is ever derived.
func ProjectScore(events []Event, teamID string) int {
	count := 0
	for _, e := range events {
		if e.Type == EventGoal && e.TeamID == teamID {
			count++
		}
	}
	return count
}

// CloneEvents returns an independent copy of the ledger so repository
// snapshots cannot alias caller-held slices.
func CloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

func (m Match) findEvent(eventID string) (int, bool) {
	for i, e := range m.Events {
		if e.ID == eventID {
			return i, true
		}
	}
	return 0, false
}
