package standings

import (
	"sort"
	"strings"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/team"
)

// Compute folds the finished matches of one competition into a sorted table.
// Only matches whose stage starts with stageFilter count (empty filter keeps
// everything), so one group of a mixed competition can be ranked on its own.
//
// Scoring follows the competition's model:
//   - draws allowed: regulation win 3, draw 1 apiece, loss 0;
//   - draws not allowed: regulation win 3, shootout win 2, shootout loss 1,
//     regulation loss 0, with shootout results counted in their own buckets.
//
// The fold is pure and idempotent: inputs are never mutated and identical
// inputs yield identical output, down to the tie-break order.
func Compute(comp competition.Competition, teams []team.Team, matches []match.Match, stageFilter string) []Row {
	rows := make(map[string]*Row, len(comp.TeamIDs))
	for _, t := range teams {
		if !comp.HasTeam(t.ID) {
			continue
		}
		rows[t.ID] = &Row{TeamID: t.ID, TeamName: t.Name, LogoRef: t.LogoRef}
	}

	for _, m := range matches {
		if m.CompetitionID != comp.ID || m.Status != match.StatusFinished {
			continue
		}
		if stageFilter != "" && !strings.HasPrefix(m.Stage, stageFilter) {
			continue
		}

		home, okHome := rows[m.HomeTeam.ID]
		away, okAway := rows[m.AwayTeam.ID]
		if !okHome || !okAway {
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		// Finished matches are immutable, so the stored scores are
		// trusted rather than recounted from the ledger here.
		switch {
		case m.Outcome == match.OutcomeShootout:
			winner, loser := home, away
			if m.WinnerID == m.AwayTeam.ID {
				winner, loser = away, home
			}
			winner.WinsByShootout++
			winner.Points += 2
			loser.LossesByShootout++
			loser.Points++
		case m.HomeScore > m.AwayScore:
			home.Wins++
			home.Points += 3
			away.Losses++
		case m.AwayScore > m.HomeScore:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
		out = append(out, *row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDifference != out[j].GoalDifference {
			return out[i].GoalDifference > out[j].GoalDifference
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].TeamName < out[j].TeamName
	})

	return out
}
