package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/quietscores/scores/internal/domain/game"
)

// TeamFeed loads the optional team enrichment documents. Every method
// is best-effort: nil without error means the document was not
// available.
type TeamFeed interface {
	GetTeamInfo(ctx context.Context, sport, teamID string) (map[string]any, error)
	GetTeamRoster(ctx context.Context, sport, teamID string) (map[string]any, error)
	GetTeamSchedule(ctx context.Context, sport, teamID string) (map[string]any, error)
}

// TeamService serves the team pages: profile, roster, schedule.
type TeamService struct {
	feed TeamFeed
}

func NewTeamService(feed TeamFeed) *TeamService {
	return &TeamService{feed: feed}
}

func (s *TeamService) GetTeamInfo(ctx context.Context, sport, teamID string) (map[string]any, error) {
	if err := validateTeamRequest(sport, teamID); err != nil {
		return nil, err
	}
	return s.feed.GetTeamInfo(ctx, strings.TrimSpace(sport), strings.TrimSpace(teamID))
}

func (s *TeamService) GetTeamRoster(ctx context.Context, sport, teamID string) (map[string]any, error) {
	if err := validateTeamRequest(sport, teamID); err != nil {
		return nil, err
	}
	return s.feed.GetTeamRoster(ctx, strings.TrimSpace(sport), strings.TrimSpace(teamID))
}

func (s *TeamService) GetTeamSchedule(ctx context.Context, sport, teamID string) (map[string]any, error) {
	if err := validateTeamRequest(sport, teamID); err != nil {
		return nil, err
	}
	return s.feed.GetTeamSchedule(ctx, strings.TrimSpace(sport), strings.TrimSpace(teamID))
}

func validateTeamRequest(sport, teamID string) error {
	if !game.IsKnownSport(sport) {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}
	if strings.TrimSpace(teamID) == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	return nil
}
