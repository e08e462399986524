package game

import (
	"sort"
	"time"
)

var statusRank = map[string]int{
	StatusLive:      0,
	StatusHalftime:  1,
	StatusScheduled: 2,
	StatusPostponed: 3,
	StatusFinal:     4,
}

// Compare defines the display order: live first, then by start time,
// then sport, then home-team name. Unknown statuses sink to the bottom.
func Compare(a, b Game) int {
	rankA, ok := statusRank[a.Status]
	if !ok {
		rankA = len(statusRank)
	}
	rankB, ok := statusRank[b.Status]
	if !ok {
		rankB = len(statusRank)
	}
	if rankA != rankB {
		return rankA - rankB
	}

	timeA := parseEventTime(a.FullDateTime)
	timeB := parseEventTime(b.FullDateTime)
	if !timeA.Equal(timeB) {
		if timeA.Before(timeB) {
			return -1
		}
		return 1
	}

	if a.Sport != b.Sport {
		if a.Sport < b.Sport {
			return -1
		}
		return 1
	}

	if a.HomeTeam.Name < b.HomeTeam.Name {
		return -1
	}
	if a.HomeTeam.Name > b.HomeTeam.Name {
		return 1
	}
	return 0
}

// Sort orders games in place, stably, by Compare.
func Sort(games []Game) {
	sort.SliceStable(games, func(i, j int) bool {
		return Compare(games[i], games[j]) < 0
	})
}

// FilterLive returns the games currently in progress, halftime included.
func FilterLive(games []Game) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if g.IsLive() {
			out = append(out, g)
		}
	}
	return out
}

func parseEventTime(raw string) time.Time {
	if raw == "" {
		// Missing start times sort after everything with a known time.
		return time.Unix(1<<50, 0)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return time.Unix(1<<50, 0)
}
