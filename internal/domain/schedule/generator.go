// Package schedule turns a competition's enrolled teams into a concrete
// fixture list. All generation is pure: matches come back Not Started with a
// zero score and an empty ledger, and the caller decides how to persist them.
package schedule

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/team"
)

var ErrInsufficientTeams = errors.New("fixture generation requires at least 2 teams")

// byeID marks the synthetic placeholder that pads an odd-sized team list so
// the circle method always pairs an even count. Bye pairings are discarded,
// never materialized.
const byeID = "bye"

// roundInterval spaces consecutive rounds one week apart.
const roundInterval = 7 * 24 * time.Hour

// Generate produces the full fixture set for one competition. The rng drives
// the cup and group-stage shuffles; pass a seeded source for deterministic
// output, or nil to seed from the clock.
func Generate(comp competition.Competition, teams []team.Team, anchor time.Time, rng *rand.Rand) ([]match.Match, error) {
	if len(teams) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientTeams, len(teams))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	switch comp.Format {
	case competition.FormatLeague:
		return roundRobin(comp.ID, teams, comp.TwoLegged, "", anchor), nil
	case competition.FormatCup:
		return firstCupRound(comp.ID, teams, anchor, rng), nil
	case competition.FormatMixed:
		return groupStage(comp, teams, anchor, rng), nil
	default:
		return nil, fmt.Errorf("unsupported competition format %q", comp.Format)
	}
}

type pairing struct {
	home team.Team
	away team.Team
}

// roundRobin implements the circle method. Seat 0 stays fixed; each round
// pairs seat i with seat n-1-i, the lower seat playing at home, then every
// non-fixed seat rotates one position (the last seat re-enters at position
// 1). An odd team count gets a bye seat whose pairings are dropped.
func roundRobin(competitionID string, teams []team.Team, twoLegged bool, stagePrefix string, anchor time.Time) []match.Match {
	seats := make([]team.Team, 0, len(teams)+1)
	seats = append(seats, teams...)
	if len(seats)%2 != 0 {
		seats = append(seats, team.Team{ID: byeID})
	}

	n := len(seats)
	rounds := n - 1

	byRound := make([][]pairing, rounds)
	for r := 0; r < rounds; r++ {
		for i := 0; i < n/2; i++ {
			home, away := seats[i], seats[n-1-i]
			if home.ID == byeID || away.ID == byeID {
				continue
			}
			byRound[r] = append(byRound[r], pairing{home: home, away: away})
		}

		rotated := make([]team.Team, 0, n)
		rotated = append(rotated, seats[0], seats[n-1])
		rotated = append(rotated, seats[1:n-1]...)
		seats = rotated
	}

	var out []match.Match
	for r, pairs := range byRound {
		stage := fmt.Sprintf("%sRound %d", stagePrefix, r+1)
		date := anchor.Add(time.Duration(r) * roundInterval)
		for _, p := range pairs {
			out = append(out, newMatch(competitionID, p.home, p.away, stage, date))
		}
	}

	if twoLegged {
		// Second leg mirrors every pairing with home/away swapped, round
		// numbers continuing after the first leg.
		for r, pairs := range byRound {
			stage := fmt.Sprintf("%sRound %d", stagePrefix, r+1+rounds)
			date := anchor.Add(time.Duration(r+rounds) * roundInterval)
			for _, p := range pairs {
				out = append(out, newMatch(competitionID, p.away, p.home, stage, date))
			}
		}
	}

	return out
}

// firstCupRound shuffles the field and pairs consecutive teams. With an odd
// count the final team sits this round out; no bye match is created. Later
// rounds are materialized explicitly through winner advancement, never here.
func firstCupRound(competitionID string, teams []team.Team, anchor time.Time, rng *rand.Rand) []match.Match {
	shuffled := shuffle(teams, rng)

	out := make([]match.Match, 0, len(shuffled)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		out = append(out, newMatch(competitionID, shuffled[i], shuffled[i+1], FirstCupStage, anchor))
	}
	return out
}

// groupStage shuffles the field, partitions it into groups of up to
// TeamsPerGroup teams (the last group may be smaller), labels groups A, B,
// C, ... in creation order and runs an independent round robin inside each.
func groupStage(comp competition.Competition, teams []team.Team, anchor time.Time, rng *rand.Rand) []match.Match {
	shuffled := shuffle(teams, rng)

	size := comp.TeamsPerGroup
	if size < 2 {
		size = 2
	}

	var out []match.Match
	for g := 0; g*size < len(shuffled); g++ {
		end := (g + 1) * size
		if end > len(shuffled) {
			end = len(shuffled)
		}
		group := shuffled[g*size : end]
		prefix := fmt.Sprintf("Group %c - ", 'A'+rune(g))
		out = append(out, roundRobin(comp.ID, group, comp.TwoLegged, prefix, anchor)...)
	}
	return out
}

func shuffle(teams []team.Team, rng *rand.Rand) []team.Team {
	out := make([]team.Team, len(teams))
	for i, j := range rng.Perm(len(teams)) {
		out[i] = teams[j]
	}
	return out
}

func newMatch(competitionID string, home, away team.Team, stage string, date time.Time) match.Match {
	return match.Match{
		ID:            fmt.Sprintf("match-%s-%s-%s", competitionID, home.ID, away.ID),
		CompetitionID: competitionID,
		HomeTeam:      home,
		AwayTeam:      away,
		Date:          date,
		Stage:         stage,
		Status:        match.StatusNotStarted,
	}
}
