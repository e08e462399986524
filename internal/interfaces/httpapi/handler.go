package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/quietscores/scores/internal/usecase"
)

const scoreboardDateLayout = "20060102"

type Handler struct {
	scoreboardService *usecase.ScoreboardService
	detailService     *usecase.DetailService
	standingsService  *usecase.StandingsService
	teamService       *usecase.TeamService
	logger            *slog.Logger
	validator         *validator.Validate
}

func NewHandler(
	scoreboardService *usecase.ScoreboardService,
	detailService *usecase.DetailService,
	standingsService *usecase.StandingsService,
	teamService *usecase.TeamService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		scoreboardService: scoreboardService,
		detailService:     detailService,
		standingsService:  standingsService,
		teamService:       teamService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	date, sports, err := h.parseScoreboardQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.scoreboardService.GetScoreboard(ctx, date, sports)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoreboard failed", "date", date.Format(scoreboardDateLayout), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(ctx, date, games))
}

func (h *Handler) GetLiveScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveScoreboard")
	defer span.End()

	date, sports, err := h.parseScoreboardQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.scoreboardService.GetLiveScoreboard(ctx, date, sports)
	if err != nil {
		h.logger.WarnContext(ctx, "get live scoreboard failed", "date", date.Format(scoreboardDateLayout), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreboardToDTO(ctx, date, games))
}

func (h *Handler) GetGameDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameDetail")
	defer span.End()

	sport := r.PathValue("sport")
	eventID := r.PathValue("eventID")
	activeTab := strings.TrimSpace(r.URL.Query().Get("tab"))
	if err := h.validateRequest(ctx, gameDetailRequest{Sport: sport, EventID: eventID, Tab: activeTab}); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.detailService.GetGameDetail(ctx, sport, eventID, activeTab)
	if err != nil {
		h.logger.WarnContext(ctx, "get game detail failed", "sport", sport, "event_id", eventID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameDetailToDTO(ctx, result))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	sport := r.PathValue("sport")
	if err := h.validateRequest(ctx, standingsRequest{Sport: sport}); err != nil {
		writeError(ctx, w, err)
		return
	}

	ids := teamIdentifiersFromQuery(r)
	filtered, err := h.standingsService.GetStandingsForTeams(ctx, sport, ids)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(ctx, sport, filtered))
}

func (h *Handler) GetTeamInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamInfo")
	defer span.End()

	h.serveTeamDocument(ctx, w, r, h.teamService.GetTeamInfo)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	h.serveTeamDocument(ctx, w, r, h.teamService.GetTeamRoster)
}

func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamSchedule")
	defer span.End()

	h.serveTeamDocument(ctx, w, r, h.teamService.GetTeamSchedule)
}

func (h *Handler) serveTeamDocument(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	load func(ctx context.Context, sport, teamID string) (map[string]any, error),
) {
	sport := r.PathValue("sport")
	teamID := r.PathValue("teamID")
	if err := h.validateRequest(ctx, teamRequest{Sport: sport, TeamID: teamID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	doc, err := load(ctx, sport, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "load team document failed", "sport", sport, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if doc == nil {
		writeError(ctx, w, fmt.Errorf("%w: no document for team=%s", usecase.ErrNotFound, teamID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, doc)
}

func (h *Handler) parseScoreboardQuery(ctx context.Context, r *http.Request) (time.Time, []string, error) {
	query := r.URL.Query()

	rawDate := strings.TrimSpace(query.Get("date"))
	if err := h.validateRequest(ctx, scoreboardRequest{Date: rawDate}); err != nil {
		return time.Time{}, nil, err
	}

	date := time.Now()
	if rawDate != "" {
		parsed, err := time.ParseInLocation(scoreboardDateLayout, rawDate, time.Local)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("%w: invalid date %q, expected YYYYMMDD", usecase.ErrInvalidInput, rawDate)
		}
		date = parsed
	}

	sports := make([]string, 0, 4)
	for _, raw := range query["sport"] {
		for _, part := range strings.Split(raw, ",") {
			if sport := strings.TrimSpace(part); sport != "" {
				sports = append(sports, sport)
			}
		}
	}

	return date, sports, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type scoreboardRequest struct {
	Date string `validate:"omitempty,len=8,numeric"`
}

type gameDetailRequest struct {
	Sport   string `validate:"required"`
	EventID string `validate:"required"`
	Tab     string `validate:"omitempty,oneof=preview gamecast boxscore play-by-play"`
}

type standingsRequest struct {
	Sport string `validate:"required"`
}

type teamRequest struct {
	Sport  string `validate:"required"`
	TeamID string `validate:"required"`
}
