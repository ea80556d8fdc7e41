package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchday/competition-engine/internal/domain/match"
	"github.com/matchday/competition-engine/internal/usecase"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.fixtureService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) UpdateMatchSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchSchedule")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req updateScheduleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.fixtureService.UpdateSchedule(ctx, matchID, req.Date, req.ArenaID, req.Field)
	if err != nil {
		h.logger.WarnContext(ctx, "update match schedule failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Start(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "start match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match started", "match_id", matchID)
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) FinishMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinishMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Finish(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "finish match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "match finish requested",
		"match_id", matchID,
		"status", item.Status,
		"awaiting_shootout", item.AwaitingShootout,
	)
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ResolveShootout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveShootout")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req resolveShootoutRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.ResolveShootout(ctx, matchID, req.HomePenalties, req.AwayPenalties, req.Winner)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve shootout failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) AdvanceWinner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdvanceWinner")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.AdvanceWinner(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "advance winner failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) AddMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMatchEvent")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req matchEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.AddEvent(ctx, matchID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "add match event failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) EditMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditMatchEvent")
	defer span.End()

	matchID := r.PathValue("matchID")
	eventID := r.PathValue("eventID")

	var req matchEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.EditEvent(ctx, matchID, eventID, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "edit match event failed", "match_id", matchID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchEvent")
	defer span.End()

	matchID := r.PathValue("matchID")
	eventID := r.PathValue("eventID")

	item, err := h.matchService.DeleteEvent(ctx, matchID, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete match event failed", "match_id", matchID, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) TickMatchClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TickMatchClock")
	defer span.End()

	matchID := r.PathValue("matchID")

	var req tickClockRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.TickClock(ctx, matchID, req.Seconds)
	if err != nil {
		h.logger.WarnContext(ctx, "tick match clock failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clockToDTO(item.Clock))
}

func (h *Handler) PauseMatchClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PauseMatchClock")
	defer span.End()

	h.updateMatchClock(ctx, w, r, h.matchService.PauseClock)
}

func (h *Handler) ResumeMatchClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResumeMatchClock")
	defer span.End()

	h.updateMatchClock(ctx, w, r, h.matchService.ResumeClock)
}

func (h *Handler) ResetMatchClock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetMatchClock")
	defer span.End()

	h.updateMatchClock(ctx, w, r, h.matchService.ResetClock)
}

func (h *Handler) updateMatchClock(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	apply func(context.Context, string) (match.Match, error),
) {
	matchID := r.PathValue("matchID")
	item, err := apply(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "update match clock failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clockToDTO(item.Clock))
}

// decodeRequest unmarshals and validates a JSON request body. Unknown fields
// are rejected.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

type matchEventRequest struct {
	Type              string `json:"type" validate:"required"`
	Minute            *int   `json:"minute" validate:"omitempty,gte=0"`
	TeamID            string `json:"team_id" validate:"required"`
	PrimaryPlayerID   string `json:"primary_player_id" validate:"required"`
	SecondaryPlayerID string `json:"secondary_player_id"`
}

func (req matchEventRequest) toInput() usecase.EventInput {
	return usecase.EventInput{
		Type:              req.Type,
		Minute:            req.Minute,
		TeamID:            req.TeamID,
		PrimaryPlayerID:   req.PrimaryPlayerID,
		SecondaryPlayerID: req.SecondaryPlayerID,
	}
}

type resolveShootoutRequest struct {
	HomePenalties int    `json:"home_penalties" validate:"gte=0"`
	AwayPenalties int    `json:"away_penalties" validate:"gte=0"`
	Winner        string `json:"winner" validate:"required,oneof=home away"`
}

type tickClockRequest struct {
	Seconds int `json:"seconds" validate:"required,gt=0"`
}

type updateScheduleRequest struct {
	Date    *time.Time `json:"date"`
	ArenaID *string    `json:"arena_id"`
	Field   *string    `json:"field"`
}

type matchDTO struct {
	ID               string          `json:"id"`
	CompetitionID    string          `json:"competition_id"`
	HomeTeam         teamDTO         `json:"home_team"`
	AwayTeam         teamDTO         `json:"away_team"`
	Date             time.Time       `json:"date"`
	Stage            string          `json:"stage"`
	Status           string          `json:"status"`
	HomeScore        int             `json:"home_score"`
	AwayScore        int             `json:"away_score"`
	Outcome          string          `json:"outcome,omitempty"`
	WinnerID         string          `json:"winner_id,omitempty"`
	HomePenaltyScore *int            `json:"home_penalty_score,omitempty"`
	AwayPenaltyScore *int            `json:"away_penalty_score,omitempty"`
	AwaitingShootout bool            `json:"awaiting_shootout,omitempty"`
	Events           []matchEventDTO `json:"events"`
	Clock            clockDTO        `json:"clock"`
	ArenaID          string          `json:"arena_id,omitempty"`
	Field            string          `json:"field,omitempty"`
}

type matchEventDTO struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	Minute            int    `json:"minute"`
	TeamID            string `json:"team_id"`
	PrimaryPlayerID   string `json:"primary_player_id"`
	SecondaryPlayerID string `json:"secondary_player_id,omitempty"`
}

type clockDTO struct {
	Seconds int  `json:"seconds"`
	Minute  int  `json:"minute"`
	Running bool `json:"running"`
}

func matchToDTO(m match.Match) matchDTO {
	events := make([]matchEventDTO, 0, len(m.Events))
	for _, e := range m.Events {
		events = append(events, matchEventDTO{
			ID:                e.ID,
			Type:              e.Type,
			Minute:            e.Minute,
			TeamID:            e.TeamID,
			PrimaryPlayerID:   e.PrimaryPlayerID,
			SecondaryPlayerID: e.SecondaryPlayerID,
		})
	}

	return matchDTO{
		ID:               m.ID,
		CompetitionID:    m.CompetitionID,
		HomeTeam:         teamToDTO(m.HomeTeam),
		AwayTeam:         teamToDTO(m.AwayTeam),
		Date:             m.Date,
		Stage:            m.Stage,
		Status:           m.Status,
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		Outcome:          m.Outcome,
		WinnerID:         m.WinnerID,
		HomePenaltyScore: m.HomePenaltyScore,
		AwayPenaltyScore: m.AwayPenaltyScore,
		AwaitingShootout: m.AwaitingShootout,
		Events:           events,
		Clock:            clockToDTO(m.Clock),
		ArenaID:          m.ArenaID,
		Field:            m.Field,
	}
}

func clockToDTO(c match.Clock) clockDTO {
	return clockDTO{
		Seconds: c.Seconds,
		Minute:  c.Minute(),
		Running: c.Running,
	}
}
