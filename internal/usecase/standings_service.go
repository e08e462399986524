package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/panjf2000/ants/v2"

	"github.com/quietscores/scores/internal/domain/game"
	"github.com/quietscores/scores/internal/domain/standings"
	"github.com/quietscores/scores/internal/platform/cache"
	"github.com/quietscores/scores/internal/platform/logging"
)

// StandingsFeed fetches and filters raw standings documents.
type StandingsFeed interface {
	FetchStandingsDocument(ctx context.Context, sport string) (any, error)
	FilterStandingsDocument(doc any, ids standings.TeamIdentifiers) *standings.Filtered
}

// StandingsService serves league standings. Raw documents are cached
// per sport and replaced wholesale on expiry; filtering runs per
// request so one cached document serves every team combination.
type StandingsService struct {
	feed   StandingsFeed
	store  *cache.Store
	logger *logging.Logger
}

func NewStandingsService(feed StandingsFeed, store *cache.Store, logger *logging.Logger) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		feed:   feed,
		store:  store,
		logger: logger,
	}
}

// GetStandings returns every group for a sport.
func (s *StandingsService) GetStandings(ctx context.Context, sport string) (*standings.Filtered, error) {
	return s.GetStandingsForTeams(ctx, sport, standings.TeamIdentifiers{})
}

// GetStandingsForTeams returns the groups containing the identified
// teams, or a tagged approximation when none match.
func (s *StandingsService) GetStandingsForTeams(ctx context.Context, sport string, ids standings.TeamIdentifiers) (*standings.Filtered, error) {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.GetStandingsForTeams")
	defer span.End()

	sport = strings.TrimSpace(sport)
	if !game.IsKnownSport(sport) {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	doc, err := s.document(ctx, sport)
	if err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}

	filtered := s.feed.FilterStandingsDocument(doc, ids)
	if filtered == nil {
		return nil, fmt.Errorf("%w: no standings for sport=%s", ErrNotFound, sport)
	}
	return filtered, nil
}

func (s *StandingsService) document(ctx context.Context, sport string) (any, error) {
	key := standingsCacheKey(sport)
	if s.store == nil {
		return s.feed.FetchStandingsDocument(ctx, sport)
	}
	return s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.feed.FetchStandingsDocument(ctx, sport)
	})
}

// Prewarm loads every sport's standings into the cache through a small
// worker pool. Failures are logged and skipped; a cold sport will warm
// on first request instead.
func (s *StandingsService) Prewarm(ctx context.Context, workers int) error {
	ctx, span := startUsecaseSpan(ctx, "StandingsService.Prewarm")
	defer span.End()

	sports := game.Sports()
	if workers < 1 {
		workers = 1
	}
	if workers > len(sports) {
		workers = len(sports)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create prewarm pool: %w", err)
	}
	defer pool.Release()

	done := make(chan struct{}, len(sports))
	for _, sport := range sports {
		sport := sport
		submitErr := pool.Submit(func() {
			defer func() { done <- struct{}{} }()
			if _, err := s.document(ctx, sport); err != nil {
				s.logger.WarnContext(ctx, "standings prewarm failed",
					"sport", sport,
					"error", err,
				)
			}
		})
		if submitErr != nil {
			done <- struct{}{}
			s.logger.WarnContext(ctx, "standings prewarm submit failed",
				"sport", sport,
				"error", submitErr,
			)
		}
	}

	for range sports {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func standingsCacheKey(sport string) string {
	return "standings:" + sport
}
