package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/standings"
	"github.com/matchday/competition-engine/internal/domain/team"
	"github.com/matchday/competition-engine/internal/platform/logging"
	"github.com/matchday/competition-engine/internal/usecase"
)

type Handler struct {
	competitionService *usecase.CompetitionService
	fixtureService     *usecase.FixtureService
	matchService       *usecase.MatchService
	standingService    *usecase.StandingService
	portalService      *usecase.PortalService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	competitionService *usecase.CompetitionService,
	fixtureService *usecase.FixtureService,
	matchService *usecase.MatchService,
	standingService *usecase.StandingService,
	portalService *usecase.PortalService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		competitionService: competitionService,
		fixtureService:     fixtureService,
		matchService:       matchService,
		standingService:    standingService,
		portalService:      portalService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetPortalOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPortalOverview")
	defer span.End()

	overview, err := h.portalService.Overview(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "portal overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overview)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.competitionService.ListAllTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	comps, err := h.competitionService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]competitionDTO, 0, len(comps))
	for _, c := range comps {
		items = append(items, competitionToDTO(c))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompetition")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	comp, err := h.competitionService.GetByID(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get competition failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(comp))
}

func (h *Handler) ListCompetitionTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionTeams")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	teams, err := h.competitionService.ListTeams(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list competition teams failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) EnrollTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnrollTeam")
	defer span.End()

	competitionID := r.PathValue("competitionID")

	var req enrollTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	comp, err := h.competitionService.EnrollTeam(ctx, competitionID, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "enroll team failed", "competition_id", competitionID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, competitionToDTO(comp))
}

func (h *Handler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateFixtures")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	matches, err := h.fixtureService.Generate(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "generate fixtures failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fixtures generated", "competition_id", competitionID, "match_count", len(matches))

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusCreated, items)
}

func (h *Handler) ListCompetitionMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionMatches")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	matches, err := h.fixtureService.ListByCompetition(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	competitionID := r.PathValue("competitionID")
	stage := strings.TrimSpace(r.URL.Query().Get("stage"))

	rows, err := h.standingService.Compute(ctx, competitionID, stage)
	if err != nil {
		h.logger.WarnContext(ctx, "compute standings failed", "competition_id", competitionID, "stage", stage, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for i, row := range rows {
		items = append(items, standingRowToDTO(i+1, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type enrollTeamRequest struct {
	TeamID string `json:"team_id" validate:"required"`
}

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	LogoRef string `json:"logo_ref,omitempty"`
}

type competitionDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Season         string   `json:"season"`
	Status         string   `json:"status"`
	Format         string   `json:"format"`
	TwoLegged      bool     `json:"two_legged"`
	TeamsPerGroup  int      `json:"teams_per_group,omitempty"`
	DrawsAllowed   bool     `json:"draws_allowed"`
	DefaultArenaID string   `json:"default_arena_id,omitempty"`
	TeamIDs        []string `json:"team_ids"`
}

type standingRowDTO struct {
	Position         int    `json:"position"`
	TeamID           string `json:"team_id"`
	TeamName         string `json:"team_name"`
	LogoRef          string `json:"logo_ref,omitempty"`
	Played           int    `json:"played"`
	Wins             int    `json:"wins"`
	WinsByShootout   int    `json:"wins_by_shootout,omitempty"`
	Draws            int    `json:"draws"`
	Losses           int    `json:"losses"`
	LossesByShootout int    `json:"losses_by_shootout,omitempty"`
	GoalsFor         int    `json:"goals_for"`
	GoalsAgainst     int    `json:"goals_against"`
	GoalDifference   int    `json:"goal_difference"`
	Points           int    `json:"points"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:      t.ID,
		Name:    t.Name,
		Country: t.Country,
		LogoRef: t.LogoRef,
	}
}

func competitionToDTO(c competition.Competition) competitionDTO {
	teamIDs := c.TeamIDs
	if teamIDs == nil {
		teamIDs = []string{}
	}
	return competitionDTO{
		ID:             c.ID,
		Name:           c.Name,
		Season:         c.Season,
		Status:         c.Status,
		Format:         c.Format,
		TwoLegged:      c.TwoLegged,
		TeamsPerGroup:  c.TeamsPerGroup,
		DrawsAllowed:   c.DrawsAllowed,
		DefaultArenaID: c.DefaultArenaID,
		TeamIDs:        teamIDs,
	}
}

func standingRowToDTO(position int, row standings.Row) standingRowDTO {
	return standingRowDTO{
		Position:         position,
		TeamID:           row.TeamID,
		TeamName:         row.TeamName,
		LogoRef:          row.LogoRef,
		Played:           row.Played,
		Wins:             row.Wins,
		WinsByShootout:   row.WinsByShootout,
		Draws:            row.Draws,
		Losses:           row.Losses,
		LossesByShootout: row.LossesByShootout,
		GoalsFor:         row.GoalsFor,
		GoalsAgainst:     row.GoalsAgainst,
		GoalDifference:   row.GoalDifference,
		Points:           row.Points,
	}
}
