package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/matchday/competition-engine/internal/domain/competition"
	qb "github.com/matchday/competition-engine/internal/platform/querybuilder"
)

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) List(ctx context.Context) ([]competition.Competition, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build select competitions query")
	}

	var rows []competitionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select competitions")
	}

	out := make([]competition.Competition, 0, len(rows))
	for _, row := range rows {
		out = append(out, competitionFromRow(row))
	}

	return out, nil
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(
			qb.Eq("public_id", competitionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, errors.Wrap(err, "build get competition by id query")
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, errors.Wrap(err, "get competition by id")
	}

	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) Update(ctx context.Context, item competition.Competition) error {
	query, args, err := qb.Update("competitions").
		Set("name", item.Name).
		Set("season", item.Season).
		Set("status", item.Status).
		Set("format", item.Format).
		Set("two_legged", item.TwoLegged).
		Set("teams_per_group", item.TeamsPerGroup).
		Set("draws_allowed", item.DrawsAllowed).
		Set("default_arena_id", item.DefaultArenaID).
		Set("team_public_ids", pq.StringArray(item.TeamIDs)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", item.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build update competition query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "update competition %s", item.ID)
	}

	return nil
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:             row.PublicID,
		Name:           row.Name,
		Season:         row.Season,
		Status:         row.Status,
		TeamIDs:        append([]string(nil), row.TeamIDs...),
		Format:         row.Format,
		TwoLegged:      row.TwoLegged,
		TeamsPerGroup:  row.TeamsPerGroup,
		DrawsAllowed:   row.DrawsAllowed,
		DefaultArenaID: row.DefaultArenaID,
	}
}
