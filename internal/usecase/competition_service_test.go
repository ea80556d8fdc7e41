package usecase

import (
	"errors"
	"testing"

	"github.com/matchday/competition-engine/internal/infrastructure/repository/memory"
)

func TestCompetitionService_ListAndGet(t *testing.T) {
	compRepo, teamRepo, _ := seededRepos()
	service := NewCompetitionService(compRepo, teamRepo)

	comps, err := service.List(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("expected 2 seeded competitions, got %d", len(comps))
	}

	comp, err := service.GetByID(t.Context(), memory.CompetitionIDLiga1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if comp.Name != "Liga 1 Indonesia" {
		t.Fatalf("unexpected competition: %+v", comp)
	}

	if _, err := service.GetByID(t.Context(), "comp-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetByID(t.Context(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompetitionService_ListTeams(t *testing.T) {
	compRepo, teamRepo, _ := seededRepos()
	service := NewCompetitionService(compRepo, teamRepo)

	enrolled, err := service.ListTeams(t.Context(), memory.CompetitionIDPialaMerah)
	if err != nil {
		t.Fatalf("list teams failed: %v", err)
	}
	if len(enrolled) != 4 {
		t.Fatalf("expected 4 enrolled teams, got %d", len(enrolled))
	}

	all, err := service.ListAllTeams(t.Context())
	if err != nil {
		t.Fatalf("list all teams failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 registered teams, got %d", len(all))
	}
}

func TestCompetitionService_EnrollTeam(t *testing.T) {
	compRepo, teamRepo, _ := seededRepos()
	service := NewCompetitionService(compRepo, teamRepo)

	// PSM is registered but not enrolled in the cup.
	comp, err := service.EnrollTeam(t.Context(), memory.CompetitionIDPialaMerah, "idn-psm")
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if !comp.HasTeam("idn-psm") {
		t.Fatalf("expected idn-psm enrolled, got %v", comp.TeamIDs)
	}

	if _, err := service.EnrollTeam(t.Context(), memory.CompetitionIDPialaMerah, "idn-psm"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on double enrollment, got %v", err)
	}
	if _, err := service.EnrollTeam(t.Context(), memory.CompetitionIDPialaMerah, "idn-ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for an unknown team, got %v", err)
	}
}
