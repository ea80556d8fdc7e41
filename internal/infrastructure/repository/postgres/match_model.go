package postgres

import (
	"database/sql"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/domain/team"
)

type matchTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	CompetitionID    string         `db:"competition_public_id"`
	HomeTeam         []byte         `db:"home_team"`
	AwayTeam         []byte         `db:"away_team"`
	MatchDate        time.Time      `db:"match_date"`
	Stage            string         `db:"stage"`
	Status           string         `db:"status"`
	HomeScore        int            `db:"home_score"`
	AwayScore        int            `db:"away_score"`
	Outcome          sql.NullString `db:"outcome"`
	WinnerID         sql.NullString `db:"winner_public_id"`
	HomePenaltyScore sql.NullInt64  `db:"home_penalty_score"`
	AwayPenaltyScore sql.NullInt64  `db:"away_penalty_score"`
	AwaitingShootout bool           `db:"awaiting_shootout"`
	Events           []byte         `db:"events"`
	ClockSeconds     int            `db:"clock_seconds"`
	ClockRunning     bool           `db:"clock_running"`
	ArenaID          sql.NullString `db:"arena_id"`
	Field            sql.NullString `db:"field"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

// matchInsertModel mirrors matchTableModel minus the serial key and
// timestamps; querybuilder derives the column list from its db tags.
type matchInsertModel struct {
	PublicID         string         `db:"public_id"`
	CompetitionID    string         `db:"competition_public_id"`
	HomeTeam         []byte         `db:"home_team"`
	AwayTeam         []byte         `db:"away_team"`
	MatchDate        time.Time      `db:"match_date"`
	Stage            string         `db:"stage"`
	Status           string         `db:"status"`
	HomeScore        int            `db:"home_score"`
	AwayScore        int            `db:"away_score"`
	Outcome          sql.NullString `db:"outcome"`
	WinnerID         sql.NullString `db:"winner_public_id"`
	HomePenaltyScore sql.NullInt64  `db:"home_penalty_score"`
	AwayPenaltyScore sql.NullInt64  `db:"away_penalty_score"`
	AwaitingShootout bool           `db:"awaiting_shootout"`
	Events           []byte         `db:"events"`
	ClockSeconds     int            `db:"clock_seconds"`
	ClockRunning     bool           `db:"clock_running"`
	ArenaID          sql.NullString `db:"arena_id"`
	Field            sql.NullString `db:"field"`
}

// teamDoc and eventDoc are the JSONB shapes for the embedded team snapshots
// and the event ledger.
type teamDoc struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	LogoRef string `json:"logo_ref,omitempty"`
}

type eventDoc struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Minute            int    `json:"minute"`
	TeamID            string `json:"team_id"`
	PrimaryPlayerID   string `json:"primary_player_id"`
	SecondaryPlayerID string `json:"secondary_player_id,omitempty"`
}

func matchToInsertModel(m match.Match) (matchInsertModel, error) {
	homeTeam, err := sonic.Marshal(teamToDoc(m.HomeTeam))
	if err != nil {
		return matchInsertModel{}, errors.Wrap(err, "marshal home team snapshot")
	}
	awayTeam, err := sonic.Marshal(teamToDoc(m.AwayTeam))
	if err != nil {
		return matchInsertModel{}, errors.Wrap(err, "marshal away team snapshot")
	}
	events, err := marshalEvents(m.Events)
	if err != nil {
		return matchInsertModel{}, err
	}

	return matchInsertModel{
		PublicID:         m.ID,
		CompetitionID:    m.CompetitionID,
		HomeTeam:         homeTeam,
		AwayTeam:         awayTeam,
		MatchDate:        m.Date,
		Stage:            m.Stage,
		Status:           m.Status,
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		Outcome:          stringToNullString(m.Outcome),
		WinnerID:         stringToNullString(m.WinnerID),
		HomePenaltyScore: intPtrToNullInt64(m.HomePenaltyScore),
		AwayPenaltyScore: intPtrToNullInt64(m.AwayPenaltyScore),
		AwaitingShootout: m.AwaitingShootout,
		Events:           events,
		ClockSeconds:     m.Clock.Seconds,
		ClockRunning:     m.Clock.Running,
		ArenaID:          stringToNullString(m.ArenaID),
		Field:            stringToNullString(m.Field),
	}, nil
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	var homeDoc, awayDoc teamDoc
	if err := sonic.Unmarshal(row.HomeTeam, &homeDoc); err != nil {
		return match.Match{}, errors.Wrapf(err, "unmarshal home team snapshot match=%s", row.PublicID)
	}
	if err := sonic.Unmarshal(row.AwayTeam, &awayDoc); err != nil {
		return match.Match{}, errors.Wrapf(err, "unmarshal away team snapshot match=%s", row.PublicID)
	}
	events, err := unmarshalEvents(row.Events)
	if err != nil {
		return match.Match{}, errors.Wrapf(err, "unmarshal events match=%s", row.PublicID)
	}

	return match.Match{
		ID:               row.PublicID,
		CompetitionID:    row.CompetitionID,
		HomeTeam:         teamFromDoc(homeDoc),
		AwayTeam:         teamFromDoc(awayDoc),
		Date:             row.MatchDate,
		Stage:            row.Stage,
		Status:           row.Status,
		HomeScore:        row.HomeScore,
		AwayScore:        row.AwayScore,
		Outcome:          nullStringToString(row.Outcome),
		WinnerID:         nullStringToString(row.WinnerID),
		HomePenaltyScore: nullInt64ToIntPtr(row.HomePenaltyScore),
		AwayPenaltyScore: nullInt64ToIntPtr(row.AwayPenaltyScore),
		AwaitingShootout: row.AwaitingShootout,
		Events:           events,
		Clock:            match.Clock{Seconds: row.ClockSeconds, Running: row.ClockRunning},
		ArenaID:          nullStringToString(row.ArenaID),
		Field:            nullStringToString(row.Field),
	}, nil
}

func marshalEvents(events []match.Event) ([]byte, error) {
	docs := make([]eventDoc, 0, len(events))
	for _, e := range events {
		docs = append(docs, eventDoc{
			ID:                e.ID,
			Type:              e.Type,
			Minute:            e.Minute,
			TeamID:            e.TeamID,
			PrimaryPlayerID:   e.PrimaryPlayerID,
			SecondaryPlayerID: e.SecondaryPlayerID,
		})
	}

	out, err := sonic.Marshal(docs)
	if err != nil {
		return nil, errors.Wrap(err, "marshal events")
	}
	return out, nil
}

func unmarshalEvents(raw []byte) ([]match.Event, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []eventDoc
	if err := sonic.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}

	out := make([]match.Event, 0, len(docs))
	for _, d := range docs {
		out = append(out, match.Event{
			ID:                d.ID,
			Type:              d.Type,
			Minute:            d.Minute,
			TeamID:            d.TeamID,
			PrimaryPlayerID:   d.PrimaryPlayerID,
			SecondaryPlayerID: d.SecondaryPlayerID,
		})
	}
	return out, nil
}

func teamToDoc(t team.Team) teamDoc {
	return teamDoc{ID: t.ID, Name: t.Name, Country: t.Country, LogoRef: t.LogoRef}
}

func teamFromDoc(d teamDoc) team.Team {
	return team.Team{ID: d.ID, Name: d.Name, Country: d.Country, LogoRef: d.LogoRef}
}
