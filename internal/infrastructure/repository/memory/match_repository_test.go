package memory

import (
	"testing"
	"time"

	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/team"
)

func fixtureMatch(id string) match.Match {
	return match.Match{
		ID:            id,
		CompetitionID: "comp-1",
		HomeTeam:      team.Team{ID: "home"},
		AwayTeam:      team.Team{ID: "away"},
		Date:          time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
		Stage:         "Round 1",
		Status:        match.StatusNotStarted,
	}
}

func TestMatchRepository_InsertAndGet(t *testing.T) {
	repo := NewMatchRepository(nil)

	if err := repo.Insert(t.Context(), fixtureMatch("m1")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Insert(t.Context(), fixtureMatch("m1")); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}

	got, exists, err := repo.GetByID(t.Context(), "m1")
	if err != nil || !exists {
		t.Fatalf("get failed: exists=%t err=%v", exists, err)
	}
	if got.ID != "m1" {
		t.Fatalf("unexpected match: %+v", got)
	}

	if _, exists, _ := repo.GetByID(t.Context(), "ghost"); exists {
		t.Fatal("expected ghost to be missing")
	}
}

func TestMatchRepository_ReplaceByCompetition(t *testing.T) {
	repo := NewMatchRepository([]match.Match{fixtureMatch("m1"), fixtureMatch("m2")})

	replacement := fixtureMatch("m3")
	if err := repo.ReplaceByCompetition(t.Context(), "comp-1", []match.Match{replacement}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	items, err := repo.ListByCompetition(t.Context(), "comp-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "m3" {
		t.Fatalf("expected only m3 left, got %+v", items)
	}

	if _, exists, _ := repo.GetByID(t.Context(), "m1"); exists {
		t.Fatal("expected the replaced match gone")
	}

	// A fixture tagged with another competition is refused.
	foreign := fixtureMatch("m4")
	foreign.CompetitionID = "comp-2"
	if err := repo.ReplaceByCompetition(t.Context(), "comp-1", []match.Match{foreign}); err == nil {
		t.Fatal("expected mismatched competition id to be rejected")
	}
}

func TestMatchRepository_SnapshotsDoNotAlias(t *testing.T) {
	seeded := fixtureMatch("m1")
	seeded.Events = []match.Event{{ID: "e1", Type: match.EventGoal, Minute: 3, TeamID: "home", PrimaryPlayerID: "p1"}}
	repo := NewMatchRepository([]match.Match{seeded})

	got, _, err := repo.GetByID(t.Context(), "m1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	got.Events[0].TeamID = "away"

	again, _, err := repo.GetByID(t.Context(), "m1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if again.Events[0].TeamID != "home" {
		t.Fatal("stored events must not alias caller-held slices")
	}
}
