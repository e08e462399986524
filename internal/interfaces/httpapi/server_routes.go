package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("GET /v1/scoreboard/live", handler.GetLiveScoreboard)
	mux.HandleFunc("GET /v1/games/{sport}/{eventID}", handler.GetGameDetail)
	mux.HandleFunc("GET /v1/standings/{sport}", handler.GetStandings)
	mux.HandleFunc("GET /v1/teams/{sport}/{teamID}", handler.GetTeamInfo)
	mux.HandleFunc("GET /v1/teams/{sport}/{teamID}/roster", handler.GetTeamRoster)
	mux.HandleFunc("GET /v1/teams/{sport}/{teamID}/schedule", handler.GetTeamSchedule)
}
