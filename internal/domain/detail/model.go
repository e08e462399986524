package detail

// TeamStat is one named statistic line from a team's boxscore.
type TeamStat struct {
	Name         string
	DisplayValue string
}

// PlayerLine is a single athlete's stat block inside a team boxscore.
type PlayerLine struct {
	AthleteID   string
	AthleteName string
	Position    string
	Stats       []TeamStat
}

// TeamBox is the matched boxscore object for one canonical side.
type TeamBox struct {
	TeamID       string
	Name         string
	Abbreviation string
	Logo         string
	Color        string
	Statistics   []TeamStat
	Players      []PlayerLine
}

// Stat returns the display value for a named statistic, "0" when absent.
func (t TeamBox) Stat(name string) string {
	for _, s := range t.Statistics {
		if s.Name == name {
			if s.DisplayValue != "" {
				return s.DisplayValue
			}
			break
		}
	}
	return "0"
}

// Play is one entry of the ordered play log, newest last.
type Play struct {
	ID        string
	Text      string
	TypeText  string
	Period    int
	Clock     string
	TeamID    string
	AwayScore int
	HomeScore int
	Scoring   bool
}

// Leader is the best athlete of one team in one stat category.
type Leader struct {
	TeamID       string
	AthleteID    string
	AthleteName  string
	DisplayValue string
}

// LeaderCategory groups the per-team leaders of one stat category.
type LeaderCategory struct {
	Name        string
	DisplayName string
	Leaders     []Leader
}

// Situation is the live football game-state snapshot.
type Situation struct {
	DownDistanceText string
	YardLineText     string
	// YardLine is normalized to 0-100: 0 = away goal line, 100 = home.
	YardLine         *int
	PossessionTeamID string
	IsAwayPossession bool
	IsHomePossession bool
	IsRedZone        bool
}

// WinProbabilityPoint is one normalized entry of the win-probability
// series. Home and away are fractions in [0,1] that sum to 1.
type WinProbabilityPoint struct {
	HomeWinPercentage float64
	AwayWinPercentage float64
	// SecondsElapsed positions the point on a game-clock axis; -1 when
	// the raw clock was unparseable and callers should space evenly.
	SecondsElapsed int
	PlayID         string
	Play           *Play
}

// GameDetail is the enriched per-game record assembled from the summary
// document. Every field is best-effort; absence of one source never
// blanks the others.
type GameDetail struct {
	AwayTeam *TeamBox
	HomeTeam *TeamBox

	Plays      []Play
	Headlines  []string
	Commentary []string

	Leaders []LeaderCategory

	// Period scores indexed 1..5, where 5 is overtime. Empty string
	// means no score known for that period.
	AwayLinescores map[int]string
	HomeLinescores map[int]string

	Situation *Situation

	WinProbability []WinProbabilityPoint
}

// LastWinProbability returns the most recent series point, nil when the
// series is empty.
func (d GameDetail) LastWinProbability() *WinProbabilityPoint {
	if len(d.WinProbability) == 0 {
		return nil
	}
	return &d.WinProbability[len(d.WinProbability)-1]
}
