package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/matchday/competition-engine/internal/domain/match"
	qb "github.com/matchday/competition-engine/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListByCompetition(ctx context.Context, competitionID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select matches query")
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select matches by competition")
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		m, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, errors.Wrap(err, "build get match by id query")
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, errors.Wrap(err, "get match by id")
	}

	m, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}

	return m, true, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) error {
	insertModel, err := matchToInsertModel(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("matches", insertModel)
	if err != nil {
		return errors.Wrap(err, "build insert match query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "insert match %s", item.ID)
	}

	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	insertModel, err := matchToInsertModel(item)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("matches").
		Set("match_date", insertModel.MatchDate).
		Set("stage", insertModel.Stage).
		Set("status", insertModel.Status).
		Set("home_score", insertModel.HomeScore).
		Set("away_score", insertModel.AwayScore).
		Set("outcome", insertModel.Outcome).
		Set("winner_public_id", insertModel.WinnerID).
		Set("home_penalty_score", insertModel.HomePenaltyScore).
		Set("away_penalty_score", insertModel.AwayPenaltyScore).
		Set("awaiting_shootout", insertModel.AwaitingShootout).
		Set("events", insertModel.Events).
		Set("clock_seconds", insertModel.ClockSeconds).
		Set("clock_running", insertModel.ClockRunning).
		Set("arena_id", insertModel.ArenaID).
		Set("field", insertModel.Field).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update match query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "update match %s", item.ID)
	}

	return nil
}

// ReplaceByCompetition soft-deletes the competition's current match set and
// inserts the new one inside a single transaction.
func (r *MatchRepository) ReplaceByCompetition(ctx context.Context, competitionID string, items []match.Match) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx replace matches")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("competition_public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build clear matches query")
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return errors.Wrapf(err, "clear matches competition=%s", competitionID)
	}

	for _, item := range items {
		if item.CompetitionID != competitionID {
			return errors.Newf("match %s belongs to competition %s, not %s", item.ID, item.CompetitionID, competitionID)
		}

		insertModel, err := matchToInsertModel(item)
		if err != nil {
			return err
		}
		query, args, err := qb.InsertModel("matches", insertModel)
		if err != nil {
			return errors.Wrap(err, "build insert match query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrapf(err, "insert match %s competition=%s", item.ID, competitionID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit replace matches tx")
	}
	return nil
}
