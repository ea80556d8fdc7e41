package usecase

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/infrastructure/repository/memory"
)

func seededRepos() (*memory.CompetitionRepository, *memory.TeamRepository, *memory.MatchRepository) {
	return memory.NewCompetitionRepository(memory.SeedCompetitions()),
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewMatchRepository(nil)
}

func TestFixtureService_Generate_League(t *testing.T) {
	compRepo, teamRepo, matchRepo := seededRepos()
	service := NewFixtureService(compRepo, teamRepo, matchRepo)

	kickoff := time.Date(2026, 8, 1, 15, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return kickoff }

	got, err := service.Generate(t.Context(), memory.CompetitionIDLiga1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Six teams, two legged: 2 * 15 pairings.
	if len(got) != 30 {
		t.Fatalf("expected 30 matches, got %d", len(got))
	}

	stored, err := matchRepo.ListByCompetition(t.Context(), memory.CompetitionIDLiga1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stored) != 30 {
		t.Fatalf("expected 30 stored matches, got %d", len(stored))
	}

	for _, m := range got {
		if m.Status != match.StatusNotStarted {
			t.Fatalf("expected Not Started, got %s for %s", m.Status, m.ID)
		}
	}
	if !got[0].Date.Equal(kickoff) {
		t.Fatalf("expected the first round at the pinned kickoff, got %v", got[0].Date)
	}
}

func TestFixtureService_Generate_ReplacesPlayedMatches(t *testing.T) {
	compRepo, teamRepo, matchRepo := seededRepos()
	service := NewFixtureService(compRepo, teamRepo, matchRepo).
		WithRand(rand.New(rand.NewSource(11)))

	first, err := service.Generate(t.Context(), memory.CompetitionIDPialaMerah)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// Play the first tie to completion, then regenerate.
	played, err := match.Start(first[0])
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	played, err = match.AppendEvent(played, match.Event{
		ID: "e1", Type: match.EventGoal, Minute: 12,
		TeamID: played.HomeTeam.ID, PrimaryPlayerID: "p1",
	})
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}
	played, err = match.Finish(played, false)
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if err := matchRepo.Update(t.Context(), played); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	second, err := service.Generate(t.Context(), memory.CompetitionIDPialaMerah)
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}

	for _, m := range second {
		if m.Status != match.StatusNotStarted || len(m.Events) != 0 {
			t.Fatalf("regeneration must reset every fixture, got %s with %d events", m.Status, len(m.Events))
		}
	}

	stored, err := matchRepo.ListByCompetition(t.Context(), memory.CompetitionIDPialaMerah)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stored) != len(second) {
		t.Fatalf("expected the old fixture set fully replaced, got %d stored vs %d generated", len(stored), len(second))
	}
}

func TestFixtureService_Generate_InsufficientTeams(t *testing.T) {
	compRepo, teamRepo, matchRepo := seededRepos()
	if err := compRepo.Update(t.Context(), competition.Competition{
		ID:      "comp-tiny",
		Name:    "Tiny Cup",
		Season:  "2026",
		Status:  competition.StatusUpcoming,
		Format:  competition.FormatCup,
		TeamIDs: []string{"idn-persija"},
	}); err != nil {
		t.Fatalf("seed competition failed: %v", err)
	}

	service := NewFixtureService(compRepo, teamRepo, matchRepo)
	_, err := service.Generate(t.Context(), "comp-tiny")
	if !errors.Is(err, ErrInsufficientTeams) {
		t.Fatalf("expected ErrInsufficientTeams, got %v", err)
	}
}

func TestFixtureService_Generate_UnknownCompetition(t *testing.T) {
	compRepo, teamRepo, matchRepo := seededRepos()
	service := NewFixtureService(compRepo, teamRepo, matchRepo)

	if _, err := service.Generate(t.Context(), "comp-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Generate(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestFixtureService_UpdateSchedule(t *testing.T) {
	compRepo, teamRepo, matchRepo := seededRepos()
	service := NewFixtureService(compRepo, teamRepo, matchRepo)

	fixtures, err := service.Generate(t.Context(), memory.CompetitionIDLiga1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	target := fixtures[0]

	newDate := target.Date.Add(48 * time.Hour)
	arena := "gbk-senayan"
	updated, err := service.UpdateSchedule(t.Context(), target.ID, &newDate, &arena, nil)
	if err != nil {
		t.Fatalf("update schedule failed: %v", err)
	}
	if !updated.Date.Equal(newDate) || updated.ArenaID != "gbk-senayan" {
		t.Fatalf("unexpected schedule: date=%v arena=%q", updated.Date, updated.ArenaID)
	}
	if updated.Field != target.Field {
		t.Fatalf("nil field patch must leave the value alone, got %q", updated.Field)
	}

	// Finished matches keep their slot.
	done, _ := match.Start(target)
	done, err = match.Finish(done, true)
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if err := matchRepo.Update(t.Context(), done); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if _, err := service.UpdateSchedule(t.Context(), target.ID, &newDate, nil, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
