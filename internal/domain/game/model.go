package game

import "strings"

// Sport keys match the upstream feed's league slugs. Extending the set
// means adding an entry here and an endpoint row in the feed client.
const (
	SportNFL               = "nfl"
	SportNBA               = "nba"
	SportMLB               = "mlb"
	SportNHL               = "nhl"
	SportCollegeFootball   = "college-football"
	SportCollegeBasketball = "college-basketball"
)

// Statuses of a canonical game, derived from the raw state/detail triad.
const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusHalftime  = "halftime"
	StatusFinal     = "final"
	StatusPostponed = "postponed"
)

// Sports lists every supported sport key in scoreboard fetch order.
func Sports() []string {
	return []string{
		SportNFL,
		SportNBA,
		SportMLB,
		SportNHL,
		SportCollegeFootball,
		SportCollegeBasketball,
	}
}

func IsKnownSport(key string) bool {
	switch strings.TrimSpace(key) {
	case SportNFL, SportNBA, SportMLB, SportNHL, SportCollegeFootball, SportCollegeBasketball:
		return true
	default:
		return false
	}
}

// TeamSide is one side of a game as seen on the scoreboard.
type TeamSide struct {
	ID           string
	Name         string
	ShortName    string
	Abbreviation string
	Logo         string
	Record       string
}

// Odds carries the betting lines attached to a game. Spread is stored
// from the away team's perspective; the home spread is always the
// negation and is never stored separately.
type Odds struct {
	Spread        *float64
	OverUnder     *float64
	AwayMoneyline *float64
	HomeMoneyline *float64
}

// HomeSpread is the home team's displayed line, derived at read time.
func (o Odds) HomeSpread() *float64 {
	if o.Spread == nil {
		return nil
	}
	v := -*o.Spread
	return &v
}

// BaseballState is the live in-game snapshot for baseball.
type BaseballState struct {
	AtBatTeam    string // "away" or "home"
	InningNumber int
	TopBottom    string // "top" or "bot"
	Bases        string
	Balls        *int
	Strikes      *int
	Outs         *int
}

// Game is the canonical scoreboard record. Score fields are numeric
// strings or empty, never null, so display logic stays total.
type Game struct {
	ID           string
	Sport        string
	AwayTeam     TeamSide
	HomeTeam     TeamSide
	AwayScore    string
	HomeScore    string
	Status       string
	Time         string
	DisplayTime  string
	FullDateTime string
	Period       int
	Clock        string

	// Football: team id currently in possession, when derivable.
	PossessionTeam string

	Baseball *BaseballState

	Odds             *Odds
	BroadcastChannel string
}

// IsLive reports whether the game is in progress, halftime included.
func (g Game) IsLive() bool {
	return g.Status == StatusLive || g.Status == StatusHalftime
}

// IsFinal reports whether no further state transitions are possible.
func (g Game) IsFinal() bool {
	return g.Status == StatusFinal
}
