package espn

import (
	"context"
	"fmt"
	"time"

	"github.com/quietscores/scores/internal/domain/detail"
	"github.com/quietscores/scores/internal/domain/game"
	"github.com/quietscores/scores/internal/domain/standings"
	"github.com/quietscores/scores/internal/usecase"
)

// FetchGames returns the normalized scoreboard for one sport and date.
// Events that fail normalization are dropped, not errors.
func (c *Client) FetchGames(ctx context.Context, sport string, date time.Time) ([]game.Game, error) {
	events, err := c.GetScoreboard(ctx, sport, date)
	if err != nil {
		return nil, err
	}

	games := make([]game.Game, 0, len(events))
	for _, event := range events {
		if g := NormalizeEvent(event, sport); g != nil {
			games = append(games, *g)
		}
	}
	return games, nil
}

// FetchGameDetail loads the summary document for one event and returns
// both the canonical game (rebuilt from the document header) and the
// extracted detail.
func (c *Client) FetchGameDetail(ctx context.Context, sport, eventID string) (game.Game, detail.GameDetail, error) {
	doc, err := c.GetSummary(ctx, sport, eventID)
	if err != nil {
		return game.Game{}, detail.GameDetail{}, err
	}

	g := normalizeSummaryHeader(doc, sport)
	if g == nil {
		return game.Game{}, detail.GameDetail{}, fmt.Errorf("%w: event=%s", usecase.ErrNotFound, eventID)
	}
	if g.ID == "" {
		g.ID = eventID
	}

	return *g, ExtractSummary(doc, *g), nil
}

// normalizeSummaryHeader rebuilds a scoreboard-shaped event from the
// summary header so the same normalization path serves both endpoints.
func normalizeSummaryHeader(doc map[string]any, sport string) *game.Game {
	header := getMap(doc, "header")
	competition := firstMap(header, "competitions")
	if competition == nil {
		return nil
	}

	event := map[string]any{
		"id":           firstNonEmpty(getString(header, "id"), getString(competition, "id")),
		"date":         getString(competition, "date"),
		"status":       competition["status"],
		"competitions": []any{competition},
	}
	if broadcast := getString(competition, "broadcast"); broadcast != "" {
		event["broadcast"] = broadcast
	}
	return NormalizeEvent(event, sport)
}

// FetchStandingsDocument returns the raw standings document; callers
// cache and filter it.
func (c *Client) FetchStandingsDocument(ctx context.Context, sport string) (any, error) {
	return c.GetStandings(ctx, sport)
}

// FilterStandingsDocument reduces a raw document to the groups
// matching the identifiers.
func (c *Client) FilterStandingsDocument(doc any, ids standings.TeamIdentifiers) *standings.Filtered {
	return FilterStandings(doc, ids)
}
