package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/quietscores/scores/internal/domain/detail"
	"github.com/quietscores/scores/internal/domain/game"
	"github.com/quietscores/scores/internal/platform/logging"
)

// DetailFeed loads one event's summary document and extracts it.
type DetailFeed interface {
	FetchGameDetail(ctx context.Context, sport, eventID string) (game.Game, detail.GameDetail, error)
}

// GameDetailResult bundles everything the detail screen needs: the
// refreshed canonical game, the extracted detail, and the view state
// with its resolved tab.
type GameDetailResult struct {
	Game      game.Game
	Detail    detail.GameDetail
	ViewState string
	ActiveTab string
}

// DetailService serves per-game detail. Concurrent refreshes of the
// same game are sequenced so a slow response never overwrites a newer
// one.
type DetailService struct {
	feed   DetailFeed
	logger *logging.Logger

	mu  sync.Mutex
	seq map[string]uint64
}

func NewDetailService(feed DetailFeed, logger *logging.Logger) *DetailService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DetailService{
		feed:   feed,
		logger: logger,
		seq:    make(map[string]uint64),
	}
}

// GetGameDetail loads the detail for one event. activeTab is the tab
// the caller is currently on; it is resolved against the game's view
// state so state transitions reset invalid selections.
func (s *DetailService) GetGameDetail(ctx context.Context, sport, eventID, activeTab string) (GameDetailResult, error) {
	ctx, span := startUsecaseSpan(ctx, "DetailService.GetGameDetail")
	defer span.End()

	sport = strings.TrimSpace(sport)
	eventID = strings.TrimSpace(eventID)
	if !game.IsKnownSport(sport) {
		return GameDetailResult{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if eventID == "" {
		return GameDetailResult{}, fmt.Errorf("%w: event id is required", ErrInvalidInput)
	}

	key := sport + "/" + eventID
	ticket := s.begin(key)

	g, d, err := s.feed.FetchGameDetail(ctx, sport, eventID)
	if err != nil {
		return GameDetailResult{}, fmt.Errorf("fetch game detail: %w", err)
	}

	if !s.current(key, ticket) {
		s.logger.DebugContext(ctx, "discarding superseded detail response",
			"sport", sport,
			"event_id", eventID,
		)
		return GameDetailResult{}, ErrSuperseded
	}

	state := detail.ViewState(g.Status)
	return GameDetailResult{
		Game:      g,
		Detail:    d,
		ViewState: state,
		ActiveTab: detail.ResolveTab(state, strings.TrimSpace(activeTab)),
	}, nil
}

func (s *DetailService) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[key]++
	return s.seq[key]
}

func (s *DetailService) current(key string, ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq[key] == ticket
}
