package httpapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/quietscores/scores/internal/domain/detail"
	"github.com/quietscores/scores/internal/domain/game"
	"github.com/quietscores/scores/internal/domain/standings"
	"github.com/quietscores/scores/internal/usecase"
)

type stubFeed struct {
	games       map[string][]game.Game
	gameErr     error
	detailGame  game.Game
	detail      detail.GameDetail
	detailErr   error
	standings   any
	filtered    *standings.Filtered
	teamDoc     map[string]any
	lastDate    time.Time
	lastEventID string
}

func (f *stubFeed) FetchGames(_ context.Context, sport string, date time.Time) ([]game.Game, error) {
	f.lastDate = date
	if f.gameErr != nil {
		return nil, f.gameErr
	}
	return f.games[sport], nil
}

func (f *stubFeed) FetchGameDetail(_ context.Context, _, eventID string) (game.Game, detail.GameDetail, error) {
	f.lastEventID = eventID
	if f.detailErr != nil {
		return game.Game{}, detail.GameDetail{}, f.detailErr
	}
	return f.detailGame, f.detail, nil
}

func (f *stubFeed) FetchStandingsDocument(_ context.Context, _ string) (any, error) {
	return f.standings, nil
}

func (f *stubFeed) FilterStandingsDocument(_ any, _ standings.TeamIdentifiers) *standings.Filtered {
	return f.filtered
}

func (f *stubFeed) GetTeamInfo(_ context.Context, _, _ string) (map[string]any, error) {
	return f.teamDoc, nil
}

func (f *stubFeed) GetTeamRoster(_ context.Context, _, _ string) (map[string]any, error) {
	return f.teamDoc, nil
}

func (f *stubFeed) GetTeamSchedule(_ context.Context, _, _ string) (map[string]any, error) {
	return f.teamDoc, nil
}

func newTestRouter(feed *stubFeed) http.Handler {
	handler := NewHandler(
		usecase.NewScoreboardService(feed, nil),
		usecase.NewDetailService(feed, nil),
		usecase.NewStandingsService(feed, nil, nil),
		usecase.NewTeamService(feed),
		nil,
	)
	return NewRouter(handler, nil, false, []string{"*"})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := jsoniter.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(&stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_GetScoreboard(t *testing.T) {
	feed := &stubFeed{
		games: map[string][]game.Game{
			game.SportNFL: {
				{
					ID:        "401",
					Sport:     game.SportNFL,
					Status:    game.StatusLive,
					AwayTeam:  game.TeamSide{ID: "33", Name: "Baltimore Ravens", Abbreviation: "BAL"},
					HomeTeam:  game.TeamSide{ID: "12", Name: "Kansas City Chiefs", Abbreviation: "KC"},
					AwayScore: "14",
					HomeScore: "21",
				},
			},
		},
	}
	router := newTestRouter(feed)

	req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard?date=20260111&sport=nfl", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := feed.lastDate.Format("20060102"); got != "20260111" {
		t.Fatalf("expected requested date to reach the feed, got=%s", got)
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	games, _ := data["games"].([]any)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got=%d", len(games))
	}
	g, _ := games[0].(map[string]any)
	if g["id"] != "401" || g["awayScore"] != "14" {
		t.Fatalf("unexpected game payload: %+v", g)
	}
	away, _ := g["awayTeam"].(map[string]any)
	if away["abbreviation"] != "BAL" {
		t.Fatalf("unexpected away team payload: %+v", away)
	}
}

func TestRouter_GetScoreboard_InvalidDate(t *testing.T) {
	router := newTestRouter(&stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard?date=2026-01-11", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_GetScoreboard_UnknownSport(t *testing.T) {
	router := newTestRouter(&stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard?sport=cricket", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_GetLiveScoreboard(t *testing.T) {
	feed := &stubFeed{
		games: map[string][]game.Game{
			game.SportNBA: {
				{ID: "live-1", Sport: game.SportNBA, Status: game.StatusLive},
				{ID: "final-1", Sport: game.SportNBA, Status: game.StatusFinal},
			},
		},
	}
	router := newTestRouter(feed)

	req := httptest.NewRequest(http.MethodGet, "/v1/scoreboard/live?sport=nba", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	games, _ := data["games"].([]any)
	if len(games) != 1 {
		t.Fatalf("expected only the live game, got=%d", len(games))
	}
}

func TestRouter_GetGameDetail(t *testing.T) {
	awayLine := map[int]string{1: "7", 2: "3"}
	feed := &stubFeed{
		detailGame: game.Game{ID: "401", Sport: game.SportNFL, Status: game.StatusLive},
		detail: detail.GameDetail{
			AwayTeam:       &detail.TeamBox{TeamID: "33", Name: "Baltimore Ravens"},
			HomeTeam:       &detail.TeamBox{TeamID: "12", Name: "Kansas City Chiefs"},
			AwayLinescores: awayLine,
			Plays:          []detail.Play{{Text: "Kickoff", Period: 1}},
		},
	}
	router := newTestRouter(feed)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/nfl/401?tab=boxscore", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if feed.lastEventID != "401" {
		t.Fatalf("expected event id to reach the feed, got=%s", feed.lastEventID)
	}

	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["viewState"] != "live" {
		t.Fatalf("expected live view state, got=%v", data["viewState"])
	}
	if data["activeTab"] != "boxscore" {
		t.Fatalf("expected boxscore tab to survive, got=%v", data["activeTab"])
	}

	away, _ := data["awayTeam"].(map[string]any)
	lines, _ := away["linescores"].([]any)
	if len(lines) != 5 {
		t.Fatalf("expected 5 linescore cells, got=%d", len(lines))
	}
	if lines[0] != "7" || lines[1] != "3" || lines[2] != "-" {
		t.Fatalf("unexpected linescore cells: %+v", lines)
	}
}

func TestRouter_GetGameDetail_InvalidTab(t *testing.T) {
	router := newTestRouter(&stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/v1/games/nfl/401?tab=nonsense", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_GetGameDetail_UpstreamNotFound(t *testing.T) {
	feed := &stubFeed{detailErr: usecase.ErrNotFound}
	router := newTestRouter(feed)

	req := httptest.NewRequest(http.MethodGet, "/v1/games/nfl/401", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_GetStandings(t *testing.T) {
	feed := &stubFeed{
		standings: map[string]any{},
		filtered: &standings.Filtered{
			Groups: []standings.Group{
				{
					Name: "AFC West",
					Entries: []standings.Entry{
						{TeamID: "12", TeamName: "Kansas City Chiefs", Wins: 14, Losses: 3, WinPercent: 0.824},
					},
				},
			},
		},
	}
	router := newTestRouter(feed)

	req := httptest.NewRequest(http.MethodGet, "/v1/standings/nfl?teamIds=12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	groups, _ := data["groups"].([]any)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got=%d", len(groups))
	}
	if data["approximate"] != false {
		t.Fatalf("expected approximate=false, got=%v", data["approximate"])
	}
}

func TestRouter_GetStandings_NotFound(t *testing.T) {
	router := newTestRouter(&stubFeed{standings: map[string]any{}})

	req := httptest.NewRequest(http.MethodGet, "/v1/standings/nhl", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_GetTeamInfo(t *testing.T) {
	feed := &stubFeed{
		teamDoc: map[string]any{"team": map[string]any{"displayName": "Kansas City Chiefs"}},
	}
	router := newTestRouter(feed)

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/nfl/12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_GetTeamInfo_MissingDocument(t *testing.T) {
	router := newTestRouter(&stubFeed{})

	req := httptest.NewRequest(http.MethodGet, "/v1/teams/nfl/12", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestRouter_PanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	handler := recoverPanic(logger, mux)

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 after panic, got %d", rec.Code)
	}
}
