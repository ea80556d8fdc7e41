package postgres

import (
	"time"

	"github.com/lib/pq"
)

type competitionTableModel struct {
	ID             int64          `db:"id"`
	PublicID       string         `db:"public_id"`
	Name           string         `db:"name"`
	Season         string         `db:"season"`
	Status         string         `db:"status"`
	Format         string         `db:"format"`
	TwoLegged      bool           `db:"two_legged"`
	TeamsPerGroup  int            `db:"teams_per_group"`
	DrawsAllowed   bool           `db:"draws_allowed"`
	DefaultArenaID string         `db:"default_arena_id"`
	TeamIDs        pq.StringArray `db:"team_public_ids"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
	DeletedAt      *time.Time     `db:"deleted_at"`
}
