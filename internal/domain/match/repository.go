package match

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Insert(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
	// ReplaceByCompetition atomically deletes every match of the competition
	// and installs the given set; readers never observe a partial fixture
	// list.
	ReplaceByCompetition(ctx context.Context, competitionID string, items []Match) error
}
