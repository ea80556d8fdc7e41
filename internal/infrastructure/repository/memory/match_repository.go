package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/matchday/competition-engine/internal/domain/match"
)

type MatchRepository struct {
	mu            sync.RWMutex
	byID          map[string]match.Match
	byCompetition map[string][]string
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	r := &MatchRepository{
		byID:          make(map[string]match.Match, len(matches)),
		byCompetition: make(map[string][]string),
	}
	for _, m := range matches {
		r.byID[m.ID] = cloneMatch(m)
		r.byCompetition[m.CompetitionID] = append(r.byCompetition[m.CompetitionID], m.ID)
	}
	return r
}

func (r *MatchRepository) ListByCompetition(_ context.Context, competitionID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byCompetition[competitionID]
	out := make([]match.Match, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneMatch(r.byID[id]))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(m), true, nil
}

func (r *MatchRepository) Insert(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[item.ID]; exists {
		return fmt.Errorf("match %s already exists", item.ID)
	}

	r.byID[item.ID] = cloneMatch(item)
	r.byCompetition[item.CompetitionID] = append(r.byCompetition[item.CompetitionID], item.ID)

	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[item.ID]; !exists {
		return fmt.Errorf("match %s not found", item.ID)
	}

	r.byID[item.ID] = cloneMatch(item)

	return nil
}

// ReplaceByCompetition swaps the competition's entire match set in one
// critical section, so readers never observe a half-replaced fixture list.
func (r *MatchRepository) ReplaceByCompetition(_ context.Context, competitionID string, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.byCompetition[competitionID] {
		delete(r.byID, id)
	}

	ids := make([]string, 0, len(items))
	for _, m := range items {
		if m.CompetitionID != competitionID {
			return fmt.Errorf("match %s belongs to competition %s, not %s", m.ID, m.CompetitionID, competitionID)
		}
		r.byID[m.ID] = cloneMatch(m)
		ids = append(ids, m.ID)
	}
	r.byCompetition[competitionID] = ids

	return nil
}

// cloneMatch deep-copies the parts of a match that alias shared memory: the
// event ledger and the penalty score pointers.
func cloneMatch(m match.Match) match.Match {
	m.Events = match.CloneEvents(m.Events)
	if m.HomePenaltyScore != nil {
		v := *m.HomePenaltyScore
		m.HomePenaltyScore = &v
	}
	if m.AwayPenaltyScore != nil {
		v := *m.AwayPenaltyScore
		m.AwayPenaltyScore = &v
	}
	return m
}
