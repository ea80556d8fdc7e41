package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/portal", handler.GetPortalOverview)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}", handler.GetCompetition)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/teams", handler.ListCompetitionTeams)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/matches", handler.ListCompetitionMatches)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAdminToken(adminToken, h)
	}

	mux.Handle("POST /v1/competitions/{competitionID}/teams", admin(handler.EnrollTeam))
	mux.Handle("POST /v1/competitions/{competitionID}/fixtures", admin(handler.GenerateFixtures))
	mux.Handle("PATCH /v1/matches/{matchID}/schedule", admin(handler.UpdateMatchSchedule))
	mux.Handle("POST /v1/matches/{matchID}/start", admin(handler.StartMatch))
	mux.Handle("POST /v1/matches/{matchID}/finish", admin(handler.FinishMatch))
	mux.Handle("POST /v1/matches/{matchID}/shootout", admin(handler.ResolveShootout))
	mux.Handle("POST /v1/matches/{matchID}/advance", admin(handler.AdvanceWinner))
	mux.Handle("POST /v1/matches/{matchID}/events", admin(handler.AddMatchEvent))
	mux.Handle("PUT /v1/matches/{matchID}/events/{eventID}", admin(handler.EditMatchEvent))
	mux.Handle("DELETE /v1/matches/{matchID}/events/{eventID}", admin(handler.DeleteMatchEvent))
	mux.Handle("POST /v1/matches/{matchID}/clock/tick", admin(handler.TickMatchClock))
	mux.Handle("POST /v1/matches/{matchID}/clock/pause", admin(handler.PauseMatchClock))
	mux.Handle("POST /v1/matches/{matchID}/clock/resume", admin(handler.ResumeMatchClock))
	mux.Handle("POST /v1/matches/{matchID}/clock/reset", admin(handler.ResetMatchClock))
}
