package memory

import (
	"context"
	"sync"

	"github.com/matchday/competition-engine/internal/domain/competition"
)

type CompetitionRepository struct {
	mu     sync.RWMutex
	items  map[string]competition.Competition
	orders []string
}

func NewCompetitionRepository(competitions []competition.Competition) *CompetitionRepository {
	items := make(map[string]competition.Competition, len(competitions))
	orders := make([]string, 0, len(competitions))

	for _, c := range competitions {
		items[c.ID] = cloneCompetition(c)
		orders = append(orders, c.ID)
	}

	return &CompetitionRepository{
		items:  items,
		orders: orders,
	}
}

func (r *CompetitionRepository) List(_ context.Context) ([]competition.Competition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]competition.Competition, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneCompetition(r.items[id]))
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.items[competitionID]
	if !ok {
		return competition.Competition{}, false, nil
	}

	return cloneCompetition(c), true, nil
}

func (r *CompetitionRepository) Update(_ context.Context, item competition.Competition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = cloneCompetition(item)

	return nil
}

// cloneCompetition detaches the TeamIDs slice so callers cannot mutate stored
// state through a returned value.
func cloneCompetition(c competition.Competition) competition.Competition {
	if c.TeamIDs != nil {
		ids := make([]string, len(c.TeamIDs))
		copy(ids, c.TeamIDs)
		c.TeamIDs = ids
	}
	return c
}
