package standings

import (
	"reflect"
	"testing"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/team"
)

func tableFixture() (competition.Competition, []team.Team) {
	comp := competition.Competition{
		ID:           "comp-1",
		Name:         "Test League",
		Season:       "2026",
		Format:       competition.FormatLeague,
		DrawsAllowed: true,
		TeamIDs:      []string{"a", "b", "c"},
	}
	teams := []team.Team{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Bravo"},
		{ID: "c", Name: "Charlie"},
	}
	return comp, teams
}

func finished(compID, homeID, awayID string, homeScore, awayScore int, stage string) match.Match {
	m := match.Match{
		ID:            "match-" + compID + "-" + homeID + "-" + awayID,
		CompetitionID: compID,
		HomeTeam:      team.Team{ID: homeID},
		AwayTeam:      team.Team{ID: awayID},
		Stage:         stage,
		Status:        match.StatusFinished,
		HomeScore:     homeScore,
		AwayScore:     awayScore,
		Outcome:       match.OutcomeRegulation,
	}
	switch {
	case homeScore > awayScore:
		m.WinnerID = homeID
	case awayScore > homeScore:
		m.WinnerID = awayID
	}
	return m
}

func TestCompute_DrawsAllowedScoring(t *testing.T) {
	comp, teams := tableFixture()
	matches := []match.Match{
		finished("comp-1", "a", "b", 2, 0, "Round 1"),
		finished("comp-1", "b", "c", 1, 1, "Round 2"),
		finished("comp-1", "a", "c", 0, 1, "Round 3"),
	}

	rows := Compute(comp, teams, matches, "")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	// c: 1 win 1 draw = 4. a: 1 win 1 loss = 3. b: 1 draw 1 loss = 1.
	if rows[0].TeamID != "c" || rows[0].Points != 4 {
		t.Fatalf("expected c on top with 4 points, got %s with %d", rows[0].TeamID, rows[0].Points)
	}
	if rows[1].TeamID != "a" || rows[1].Points != 3 {
		t.Fatalf("expected a second with 3 points, got %s with %d", rows[1].TeamID, rows[1].Points)
	}
	if rows[2].TeamID != "b" || rows[2].Points != 1 {
		t.Fatalf("expected b last with 1 point, got %s with %d", rows[2].TeamID, rows[2].Points)
	}

	a := rows[1]
	if a.Played != 2 || a.Wins != 1 || a.Losses != 1 || a.Draws != 0 {
		t.Fatalf("unexpected record for a: %+v", a)
	}
	if a.GoalsFor != 2 || a.GoalsAgainst != 1 || a.GoalDifference != 1 {
		t.Fatalf("unexpected goals for a: %+v", a)
	}
}

func TestCompute_ShootoutScoring(t *testing.T) {
	comp, teams := tableFixture()
	comp.DrawsAllowed = false

	shootout := finished("comp-1", "a", "b", 1, 1, "Round 1")
	shootout.Outcome = match.OutcomeShootout
	shootout.WinnerID = "b"
	five, four := 5, 4
	shootout.AwayPenaltyScore = &five
	shootout.HomePenaltyScore = &four

	matches := []match.Match{
		shootout,
		finished("comp-1", "a", "c", 3, 0, "Round 2"),
	}

	rows := Compute(comp, teams, matches, "")

	byID := make(map[string]Row)
	for _, r := range rows {
		byID[r.TeamID] = r
	}

	a := byID["a"]
	if a.Points != 4 {
		t.Fatalf("expected a on 4 points (regulation win 3, shootout loss 1), got %d", a.Points)
	}
	if a.LossesByShootout != 1 || a.Wins != 1 {
		t.Fatalf("unexpected record for a: %+v", a)
	}

	b := byID["b"]
	if b.Points != 2 || b.WinsByShootout != 1 {
		t.Fatalf("expected b on 2 points with a shootout win, got %+v", b)
	}
}

func TestCompute_TieBreakOrder(t *testing.T) {
	comp, teams := tableFixture()
	matches := []match.Match{
		// a and c both beat b 1-0: equal points, equal goal difference,
		// equal goals for, so alphabetical team name decides.
		finished("comp-1", "a", "b", 1, 0, "Round 1"),
		finished("comp-1", "c", "b", 1, 0, "Round 2"),
	}

	rows := Compute(comp, teams, matches, "")
	if rows[0].TeamName != "Alpha" || rows[1].TeamName != "Charlie" {
		t.Fatalf("expected Alpha before Charlie on the name tie break, got %s then %s", rows[0].TeamName, rows[1].TeamName)
	}

	// A higher goal difference outranks the name order.
	matches[1] = finished("comp-1", "c", "b", 3, 0, "Round 2")
	rows = Compute(comp, teams, matches, "")
	if rows[0].TeamID != "c" {
		t.Fatalf("expected c on top by goal difference, got %s", rows[0].TeamID)
	}
}

func TestCompute_SkipsUnfinishedAndForeignMatches(t *testing.T) {
	comp, teams := tableFixture()

	live := finished("comp-1", "a", "b", 2, 0, "Round 1")
	live.Status = match.StatusInProgress
	foreign := finished("comp-2", "a", "b", 2, 0, "Round 1")

	rows := Compute(comp, teams, []match.Match{live, foreign}, "")
	for _, r := range rows {
		if r.Played != 0 || r.Points != 0 {
			t.Fatalf("expected a blank table, got %+v", r)
		}
	}
}

func TestCompute_StageFilter(t *testing.T) {
	comp, teams := tableFixture()
	matches := []match.Match{
		finished("comp-1", "a", "b", 1, 0, "Group A - Round 1"),
		finished("comp-1", "a", "c", 0, 2, "Group B - Round 1"),
	}

	rows := Compute(comp, teams, matches, "Group A")

	byID := make(map[string]Row)
	for _, r := range rows {
		byID[r.TeamID] = r
	}
	if byID["a"].Played != 1 || byID["c"].Played != 0 {
		t.Fatalf("stage filter leaked matches: a=%+v c=%+v", byID["a"], byID["c"])
	}
}

func TestCompute_PureAndIdempotent(t *testing.T) {
	comp, teams := tableFixture()
	matches := []match.Match{
		finished("comp-1", "a", "b", 2, 1, "Round 1"),
		finished("comp-1", "b", "c", 0, 0, "Round 2"),
	}

	first := Compute(comp, teams, matches, "")
	second := Compute(comp, teams, matches, "")
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must yield identical tables")
	}

	if matches[0].HomeScore != 2 || matches[1].AwayScore != 0 {
		t.Fatal("compute mutated its inputs")
	}
}
