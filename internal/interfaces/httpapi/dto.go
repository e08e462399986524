package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/quietscores/scores/internal/domain/detail"
	"github.com/quietscores/scores/internal/domain/game"
	"github.com/quietscores/scores/internal/domain/standings"
	"github.com/quietscores/scores/internal/usecase"
)

const linescorePeriods = 5

type scoreboardDTO struct {
	Date  string    `json:"date"`
	Games []gameDTO `json:"games"`
}

type teamSideDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ShortName    string `json:"shortName"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
	Record       string `json:"record,omitempty"`
}

type oddsDTO struct {
	Spread        *float64 `json:"spread,omitempty"`
	HomeSpread    *float64 `json:"homeSpread,omitempty"`
	OverUnder     *float64 `json:"overUnder,omitempty"`
	AwayMoneyline *float64 `json:"awayMoneyline,omitempty"`
	HomeMoneyline *float64 `json:"homeMoneyline,omitempty"`
}

type gameDTO struct {
	ID               string      `json:"id"`
	Sport            string      `json:"sport"`
	AwayTeam         teamSideDTO `json:"awayTeam"`
	HomeTeam         teamSideDTO `json:"homeTeam"`
	AwayScore        string      `json:"awayScore"`
	HomeScore        string      `json:"homeScore"`
	Status           string      `json:"status"`
	Time             string      `json:"time"`
	DisplayTime      string      `json:"displayTime"`
	FullDateTime     string      `json:"fullDateTime"`
	Period           int         `json:"period"`
	Clock            string      `json:"clock"`
	PossessionTeam   string      `json:"possessionTeam,omitempty"`
	AtBatTeam        string      `json:"atBatTeam,omitempty"`
	InningNumber     int         `json:"inningNumber,omitempty"`
	TopBottom        string      `json:"topBottom,omitempty"`
	Bases            string      `json:"bases,omitempty"`
	Balls            *int        `json:"balls,omitempty"`
	Strikes          *int        `json:"strikes,omitempty"`
	Outs             *int        `json:"outs,omitempty"`
	Odds             *oddsDTO    `json:"odds,omitempty"`
	BroadcastChannel string      `json:"broadcastChannel,omitempty"`
}

type teamStatDTO struct {
	Name         string `json:"name"`
	DisplayValue string `json:"displayValue"`
}

type playerLineDTO struct {
	AthleteID   string        `json:"athleteId,omitempty"`
	AthleteName string        `json:"athleteName"`
	Position    string        `json:"position,omitempty"`
	Stats       []teamStatDTO `json:"stats"`
}

type teamBoxDTO struct {
	TeamID       string          `json:"teamId"`
	Name         string          `json:"name"`
	Abbreviation string          `json:"abbreviation,omitempty"`
	Logo         string          `json:"logo,omitempty"`
	Color        string          `json:"color,omitempty"`
	Statistics   []teamStatDTO   `json:"statistics"`
	Players      []playerLineDTO `json:"players"`
	Linescores   []string        `json:"linescores"`
}

type playDTO struct {
	ID          string `json:"id,omitempty"`
	Text        string `json:"text"`
	TypeText    string `json:"typeText,omitempty"`
	Period      int    `json:"period,omitempty"`
	Clock       string `json:"clock,omitempty"`
	TeamID      string `json:"teamId,omitempty"`
	AwayScore   int    `json:"awayScore"`
	HomeScore   int    `json:"homeScore"`
	ScoringPlay bool   `json:"scoringPlay"`
}

type leaderDTO struct {
	TeamID       string `json:"teamId"`
	AthleteID    string `json:"athleteId,omitempty"`
	AthleteName  string `json:"athleteName"`
	DisplayValue string `json:"displayValue"`
}

type leaderCategoryDTO struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"displayName"`
	Leaders     []leaderDTO `json:"leaders"`
}

type situationDTO struct {
	DownDistanceText string `json:"downDistanceText"`
	YardLineText     string `json:"yardLineText"`
	YardLine         *int   `json:"yardLine,omitempty"`
	PossessionTeamID string `json:"possessionTeamId,omitempty"`
	IsAwayPossession bool   `json:"isAwayPossession"`
	IsHomePossession bool   `json:"isHomePossession"`
	IsRedZone        bool   `json:"isRedZone"`
}

type winProbabilityPointDTO struct {
	HomeWinPercentage float64 `json:"homeWinPercentage"`
	AwayWinPercentage float64 `json:"awayWinPercentage"`
	SecondsElapsed    int     `json:"secondsElapsed"`
	PlayID            string  `json:"playId,omitempty"`
}

type gameDetailDTO struct {
	Game           gameDTO                  `json:"game"`
	ViewState      string                   `json:"viewState"`
	ActiveTab      string                   `json:"activeTab"`
	AwayTeam       *teamBoxDTO              `json:"awayTeam,omitempty"`
	HomeTeam       *teamBoxDTO              `json:"homeTeam,omitempty"`
	Plays          []playDTO                `json:"plays"`
	Headlines      []string                 `json:"headlines"`
	Commentary     []string                 `json:"commentary"`
	Leaders        []leaderCategoryDTO      `json:"leaders"`
	Situation      *situationDTO            `json:"situation,omitempty"`
	WinProbability []winProbabilityPointDTO `json:"winProbability"`
}

type standingsEntryDTO struct {
	TeamID           string  `json:"teamId,omitempty"`
	TeamName         string  `json:"teamName"`
	TeamAbbreviation string  `json:"teamAbbreviation,omitempty"`
	TeamLogo         string  `json:"teamLogo,omitempty"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Ties             int     `json:"ties,omitempty"`
	WinPercent       float64 `json:"winPercent"`
	GamesBehind      string  `json:"gamesBehind,omitempty"`
	Summary          string  `json:"summary,omitempty"`
}

type standingsGroupDTO struct {
	Name    string              `json:"name"`
	Entries []standingsEntryDTO `json:"entries"`
}

type standingsDTO struct {
	Sport       string              `json:"sport"`
	Groups      []standingsGroupDTO `json:"groups"`
	Approximate bool                `json:"approximate"`
}

func scoreboardToDTO(ctx context.Context, date time.Time, games []game.Game) scoreboardDTO {
	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(ctx, g))
	}

	return scoreboardDTO{
		Date:  date.Format(scoreboardDateLayout),
		Games: items,
	}
}

func gameToDTO(ctx context.Context, g game.Game) gameDTO {
	_ = ctx

	dto := gameDTO{
		ID:               g.ID,
		Sport:            g.Sport,
		AwayTeam:         teamSideToDTO(g.AwayTeam),
		HomeTeam:         teamSideToDTO(g.HomeTeam),
		AwayScore:        g.AwayScore,
		HomeScore:        g.HomeScore,
		Status:           g.Status,
		Time:             g.Time,
		DisplayTime:      g.DisplayTime,
		FullDateTime:     g.FullDateTime,
		Period:           g.Period,
		Clock:            g.Clock,
		PossessionTeam:   g.PossessionTeam,
		BroadcastChannel: g.BroadcastChannel,
	}

	if g.Baseball != nil {
		dto.AtBatTeam = g.Baseball.AtBatTeam
		dto.InningNumber = g.Baseball.InningNumber
		dto.TopBottom = g.Baseball.TopBottom
		dto.Bases = g.Baseball.Bases
		dto.Balls = g.Baseball.Balls
		dto.Strikes = g.Baseball.Strikes
		dto.Outs = g.Baseball.Outs
	}

	if g.Odds != nil {
		dto.Odds = &oddsDTO{
			Spread:        g.Odds.Spread,
			HomeSpread:    g.Odds.HomeSpread(),
			OverUnder:     g.Odds.OverUnder,
			AwayMoneyline: g.Odds.AwayMoneyline,
			HomeMoneyline: g.Odds.HomeMoneyline,
		}
	}

	return dto
}

func teamSideToDTO(side game.TeamSide) teamSideDTO {
	return teamSideDTO{
		ID:           side.ID,
		Name:         side.Name,
		ShortName:    side.ShortName,
		Abbreviation: side.Abbreviation,
		Logo:         side.Logo,
		Record:       side.Record,
	}
}

func gameDetailToDTO(ctx context.Context, result usecase.GameDetailResult) gameDetailDTO {
	d := result.Detail

	dto := gameDetailDTO{
		Game:           gameToDTO(ctx, result.Game),
		ViewState:      result.ViewState,
		ActiveTab:      result.ActiveTab,
		AwayTeam:       teamBoxToDTO(d.AwayTeam, d.AwayLinescores),
		HomeTeam:       teamBoxToDTO(d.HomeTeam, d.HomeLinescores),
		Plays:          make([]playDTO, 0, len(d.Plays)),
		Headlines:      emptyIfNil(d.Headlines),
		Commentary:     emptyIfNil(d.Commentary),
		Leaders:        make([]leaderCategoryDTO, 0, len(d.Leaders)),
		WinProbability: make([]winProbabilityPointDTO, 0, len(d.WinProbability)),
	}

	for _, p := range d.Plays {
		dto.Plays = append(dto.Plays, playToDTO(p))
	}
	for _, category := range d.Leaders {
		item := leaderCategoryDTO{
			Name:        category.Name,
			DisplayName: category.DisplayName,
			Leaders:     make([]leaderDTO, 0, len(category.Leaders)),
		}
		for _, leader := range category.Leaders {
			item.Leaders = append(item.Leaders, leaderDTO{
				TeamID:       leader.TeamID,
				AthleteID:    leader.AthleteID,
				AthleteName:  leader.AthleteName,
				DisplayValue: leader.DisplayValue,
			})
		}
		dto.Leaders = append(dto.Leaders, item)
	}
	for _, point := range d.WinProbability {
		dto.WinProbability = append(dto.WinProbability, winProbabilityPointDTO{
			HomeWinPercentage: point.HomeWinPercentage,
			AwayWinPercentage: point.AwayWinPercentage,
			SecondsElapsed:    point.SecondsElapsed,
			PlayID:            point.PlayID,
		})
	}

	if s := d.Situation; s != nil {
		dto.Situation = &situationDTO{
			DownDistanceText: s.DownDistanceText,
			YardLineText:     s.YardLineText,
			YardLine:         s.YardLine,
			PossessionTeamID: s.PossessionTeamID,
			IsAwayPossession: s.IsAwayPossession,
			IsHomePossession: s.IsHomePossession,
			IsRedZone:        s.IsRedZone,
		}
	}

	return dto
}

func teamBoxToDTO(box *detail.TeamBox, linescores map[int]string) *teamBoxDTO {
	if box == nil && len(linescores) == 0 {
		return nil
	}

	dto := &teamBoxDTO{
		Statistics: []teamStatDTO{},
		Players:    []playerLineDTO{},
		Linescores: renderLinescores(linescores),
	}
	if box == nil {
		return dto
	}

	dto.TeamID = box.TeamID
	dto.Name = box.Name
	dto.Abbreviation = box.Abbreviation
	dto.Logo = box.Logo
	dto.Color = box.Color
	for _, stat := range box.Statistics {
		dto.Statistics = append(dto.Statistics, teamStatDTO{Name: stat.Name, DisplayValue: stat.DisplayValue})
	}
	for _, player := range box.Players {
		line := playerLineDTO{
			AthleteID:   player.AthleteID,
			AthleteName: player.AthleteName,
			Position:    player.Position,
			Stats:       make([]teamStatDTO, 0, len(player.Stats)),
		}
		for _, stat := range player.Stats {
			line.Stats = append(line.Stats, teamStatDTO{Name: stat.Name, DisplayValue: stat.DisplayValue})
		}
		dto.Players = append(dto.Players, line)
	}

	return dto
}

// renderLinescores flattens the period map into display cells, one per
// period slot, "-" for periods with no known score.
func renderLinescores(scores map[int]string) []string {
	out := make([]string, linescorePeriods)
	for i := range out {
		if v := strings.TrimSpace(scores[i+1]); v != "" {
			out[i] = v
			continue
		}
		out[i] = "-"
	}
	return out
}

func playToDTO(p detail.Play) playDTO {
	return playDTO{
		ID:          p.ID,
		Text:        p.Text,
		TypeText:    p.TypeText,
		Period:      p.Period,
		Clock:       p.Clock,
		TeamID:      p.TeamID,
		AwayScore:   p.AwayScore,
		HomeScore:   p.HomeScore,
		ScoringPlay: p.Scoring,
	}
}

func standingsToDTO(ctx context.Context, sport string, filtered *standings.Filtered) standingsDTO {
	_ = ctx

	dto := standingsDTO{
		Sport:  sport,
		Groups: []standingsGroupDTO{},
	}
	if filtered == nil {
		return dto
	}

	dto.Approximate = filtered.Approximate
	for _, group := range filtered.Groups {
		item := standingsGroupDTO{
			Name:    group.Name,
			Entries: make([]standingsEntryDTO, 0, len(group.Entries)),
		}
		for _, entry := range group.Entries {
			item.Entries = append(item.Entries, standingsEntryDTO{
				TeamID:           entry.TeamID,
				TeamName:         entry.TeamName,
				TeamAbbreviation: entry.TeamAbbreviation,
				TeamLogo:         entry.TeamLogo,
				Wins:             entry.Wins,
				Losses:           entry.Losses,
				Ties:             entry.Ties,
				WinPercent:       entry.WinPercent,
				GamesBehind:      entry.GamesBehind,
				Summary:          entry.Summary,
			})
		}
		dto.Groups = append(dto.Groups, item)
	}

	return dto
}

func teamIdentifiersFromQuery(r *http.Request) standings.TeamIdentifiers {
	query := r.URL.Query()
	return standings.TeamIdentifiers{
		IDs:           splitQueryValues(query["teamIds"]),
		Names:         splitQueryValues(query["teamNames"]),
		Abbreviations: splitQueryValues(query["teamAbbrs"]),
	}
}

func splitQueryValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
