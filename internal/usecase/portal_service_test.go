package usecase

import (
	"testing"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/infrastructure/repository/memory"
)

func TestPortalService_Overview(t *testing.T) {
	compRepo, teamRepo, matchRepo := seededRepos()
	fixtureSvc := NewFixtureService(compRepo, teamRepo, matchRepo)
	matchSvc := NewMatchService(compRepo, matchRepo, &seqIDGenerator{})
	standingSvc := NewStandingService(compRepo, teamRepo, matchRepo)
	service := NewPortalService(compRepo, matchRepo, standingSvc, 4)

	leagueFixtures, err := fixtureSvc.Generate(t.Context(), memory.CompetitionIDLiga1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := fixtureSvc.Generate(t.Context(), memory.CompetitionIDPialaMerah); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	playToWin(t, t.Context(), matchSvc, leagueFixtures[0].ID)
	if _, err := matchSvc.Start(t.Context(), leagueFixtures[1].ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	overview, err := service.Overview(t.Context())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}

	if overview.CompetitionCount != 2 {
		t.Fatalf("expected 2 competitions, got %d", overview.CompetitionCount)
	}
	if overview.WorkerCount != 2 {
		t.Fatalf("expected the pool capped at the competition count, got %d", overview.WorkerCount)
	}
	if overview.FailedCount != 0 {
		t.Fatalf("expected no failed cards, got %d", overview.FailedCount)
	}
	if len(overview.Competitions) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(overview.Competitions))
	}

	// Cards come back sorted by competition id regardless of worker order.
	if overview.Competitions[0].CompetitionID > overview.Competitions[1].CompetitionID {
		t.Fatal("expected cards sorted by competition id")
	}

	var league, cup PortalCompetition
	for _, card := range overview.Competitions {
		switch card.CompetitionID {
		case memory.CompetitionIDLiga1:
			league = card
		case memory.CompetitionIDPialaMerah:
			cup = card
		}
	}

	if league.MatchCount != 30 || league.FinishedCount != 1 || league.LiveCount != 1 {
		t.Fatalf("unexpected league card: %+v", league)
	}
	if len(league.UpcomingMatches) != 5 {
		t.Fatalf("expected the upcoming list capped at 5, got %d", len(league.UpcomingMatches))
	}
	if len(league.Table) != 6 {
		t.Fatalf("expected a 6 row table on the league card, got %d", len(league.Table))
	}
	if league.Status != competition.StatusOngoing {
		t.Fatalf("expected the league promoted to Ongoing, got %s", league.Status)
	}

	if cup.MatchCount != 2 || len(cup.Table) != 0 {
		t.Fatalf("cup cards carry no table, got %+v", cup)
	}

	for i := 1; i < len(league.UpcomingMatches); i++ {
		prev, cur := league.UpcomingMatches[i-1], league.UpcomingMatches[i]
		if cur.Date.Before(prev.Date) {
			t.Fatal("expected upcoming matches sorted by date")
		}
	}
}

func TestPortalService_Overview_Empty(t *testing.T) {
	compRepo := memory.NewCompetitionRepository(nil)
	_, teamRepo, matchRepo := seededRepos()
	standingSvc := NewStandingService(compRepo, teamRepo, matchRepo)
	service := NewPortalService(compRepo, matchRepo, standingSvc, 4)

	overview, err := service.Overview(t.Context())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.CompetitionCount != 0 || len(overview.Competitions) != 0 {
		t.Fatalf("expected an empty overview, got %+v", overview)
	}
}
