package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/quietscores/scores/internal/domain/game"
	"github.com/quietscores/scores/internal/platform/logging"
)

// ScoreboardFeed fetches the normalized scoreboard for one sport.
type ScoreboardFeed interface {
	FetchGames(ctx context.Context, sport string, date time.Time) ([]game.Game, error)
}

// ScoreboardService aggregates per-sport scoreboards into one ordered
// slate. Sports are fetched concurrently and a failing sport never
// blanks the others.
type ScoreboardService struct {
	feed   ScoreboardFeed
	logger *logging.Logger
}

func NewScoreboardService(feed ScoreboardFeed, logger *logging.Logger) *ScoreboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreboardService{
		feed:   feed,
		logger: logger,
	}
}

// GetScoreboard returns the ordered slate for a date. An empty sports
// list means every supported sport. The slate is only an error when
// every requested sport failed.
func (s *ScoreboardService) GetScoreboard(ctx context.Context, date time.Time, sports []string) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoreboardService.GetScoreboard")
	defer span.End()

	if len(sports) == 0 {
		sports = game.Sports()
	}
	for _, sport := range sports {
		if !game.IsKnownSport(sport) {
			return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
		}
	}

	results := make([][]game.Game, len(sports))
	errs := make([]error, len(sports))

	var wg conc.WaitGroup
	for i, sport := range sports {
		i, sport := i, sport
		wg.Go(func() {
			results[i], errs[i] = s.feed.FetchGames(ctx, strings.TrimSpace(sport), date)
		})
	}
	wg.Wait()

	games := make([]game.Game, 0, 32)
	failed := 0
	var firstErr error
	for i, err := range errs {
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			s.logger.WarnContext(ctx, "scoreboard fetch failed for sport",
				"sport", sports[i],
				"error", err,
			)
			continue
		}
		games = append(games, results[i]...)
	}

	if failed == len(sports) && firstErr != nil {
		return nil, fmt.Errorf("fetch scoreboards: %w", firstErr)
	}

	game.Sort(games)
	return games, nil
}

// GetLiveScoreboard returns only the games currently in progress.
func (s *ScoreboardService) GetLiveScoreboard(ctx context.Context, date time.Time, sports []string) ([]game.Game, error) {
	games, err := s.GetScoreboard(ctx, date, sports)
	if err != nil {
		return nil, err
	}
	return game.FilterLive(games), nil
}
