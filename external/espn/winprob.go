package espn

import (
	"strconv"
	"strings"

	"github.com/quietscores/scores/internal/domain/detail"
)

const (
	periodSeconds   = 15 * 60
	fullGameSeconds = 3600
	defaultHomeProb = 0.5
)

var homeProbKeys = []string{"homeWinPercentage", "homeWinProbability", "homeProbability", "homeTeamProbability"}
var awayProbKeys = []string{"awayWinPercentage", "awayWinProbability", "awayProbability", "awayTeamProbability"}

// extractWinProbability produces the normalized win-probability series.
// The full series comes from the winprobability array when present;
// predictor-style single objects degrade to a one-point series so the
// headline number still renders.
func extractWinProbability(doc map[string]any, plays []detail.Play) []detail.WinProbabilityPoint {
	boxscore := getMap(doc, "boxscore")

	for _, key := range []string{"winprobability", "winProbability"} {
		if series := seriesPoints(getSlice(doc, key)); len(series) > 0 {
			return attributePlays(series, plays)
		}
		if series := seriesPoints(getSlice(boxscore, key)); len(series) > 0 {
			return attributePlays(series, plays)
		}
	}

	for _, candidate := range []map[string]any{
		getMap(doc, "predictor"),
		getMap(doc, "analytics"),
		getMap(firstMap(getMap(doc, "header"), "competitions"), "predictor"),
	} {
		if point, ok := singlePoint(candidate); ok {
			return attributePlays([]detail.WinProbabilityPoint{point}, plays)
		}
	}

	// Some feeds publish the home probability as a bare number.
	headerCompetition := firstMap(getMap(doc, "header"), "competitions")
	for _, raw := range []any{
		getMap(doc, "analytics")["winProbability"],
		headerCompetition["winProbability"],
		doc["winprobability"],
		doc["winProbability"],
	} {
		if point, ok := scalarPoint(raw); ok {
			return attributePlays([]detail.WinProbabilityPoint{point}, plays)
		}
	}
	return nil
}

// scalarPoint turns a bare home-side number into a one-point series.
func scalarPoint(raw any) (detail.WinProbabilityPoint, bool) {
	v, ok := asFloat(raw)
	if !ok {
		return detail.WinProbabilityPoint{}, false
	}
	home := normalizeProb(v)
	return detail.WinProbabilityPoint{
		HomeWinPercentage: home,
		AwayWinPercentage: 1 - home,
		SecondsElapsed:    -1,
	}, true
}

func seriesPoints(raw []any) []detail.WinProbabilityPoint {
	if len(raw) == 0 {
		return nil
	}
	points := make([]detail.WinProbabilityPoint, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		home, homeOK := probValue(entry, homeProbKeys)
		away, awayOK := probValue(entry, awayProbKeys)
		if !homeOK && !awayOK {
			continue
		}
		if !homeOK {
			home = 1 - away
		}
		if !awayOK {
			away = 1 - home
		}

		points = append(points, detail.WinProbabilityPoint{
			HomeWinPercentage: home,
			AwayWinPercentage: away,
			SecondsElapsed:    secondsElapsed(entry),
			PlayID:            getString(entry, "playId"),
		})
	}
	return points
}

// singlePoint reads predictor-style objects, where only the home side
// may be present. Probabilities above 1 are percentages.
func singlePoint(src map[string]any) (detail.WinProbabilityPoint, bool) {
	if src == nil {
		return detail.WinProbabilityPoint{}, false
	}

	home, homeOK := probValue(src, homeProbKeys)
	if !homeOK {
		if v, ok := getFloat(getMap(src, "homeTeam"), "winProbability"); ok {
			home = normalizeProb(v)
			homeOK = true
		}
	}
	if !homeOK {
		return detail.WinProbabilityPoint{}, false
	}

	away, awayOK := probValue(src, awayProbKeys)
	if !awayOK {
		if v, ok := getFloat(getMap(src, "awayTeam"), "winProbability"); ok {
			away = normalizeProb(v)
			awayOK = true
		}
	}
	if !awayOK {
		away = 1 - home
	}

	return detail.WinProbabilityPoint{
		HomeWinPercentage: home,
		AwayWinPercentage: away,
		SecondsElapsed:    -1,
		PlayID:            getString(src, "playId"),
	}, true
}

func probValue(src map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		if v, ok := getFloat(src, key); ok {
			return normalizeProb(v), true
		}
	}
	return defaultHomeProb, false
}

func normalizeProb(v float64) float64 {
	if v > 1 {
		return v / 100
	}
	return v
}

// secondsElapsed positions a point on the game clock: completed
// periods plus time burned off the current one. -1 signals callers to
// space the point evenly instead.
func secondsElapsed(entry map[string]any) int {
	period := periodNumber(entry["period"])
	if period == 0 {
		period = periodNumber(getMap(entry, "play")["period"])
	}
	if period == 0 {
		period = 1
	}

	clock := clockDisplay(entry["clock"])
	if clock == "" {
		clock = clockDisplay(getMap(entry, "play")["clock"])
	}
	remaining, ok := parseClock(clock)
	if !ok {
		return -1
	}

	elapsed := (period-1)*periodSeconds + (periodSeconds - remaining)
	if elapsed < 0 {
		return -1
	}
	if elapsed > fullGameSeconds {
		return fullGameSeconds
	}
	return elapsed
}

func clockDisplay(raw any) string {
	switch typed := raw.(type) {
	case map[string]any:
		return getString(typed, "displayValue")
	default:
		return stringValue(raw)
	}
}

func parseClock(clock string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	mins, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return mins*60 + secs, true
}

// attributePlays links the final point to its play: exact id first,
// then substring containment in either direction (feed ids are
// sometimes prefixed), then the last play of the log.
func attributePlays(points []detail.WinProbabilityPoint, plays []detail.Play) []detail.WinProbabilityPoint {
	if len(points) == 0 || len(plays) == 0 {
		return points
	}

	last := &points[len(points)-1]
	if last.Play != nil {
		return points
	}

	if last.PlayID != "" {
		for i := range plays {
			if plays[i].ID == last.PlayID {
				last.Play = &plays[i]
				return points
			}
		}
		for i := range plays {
			if plays[i].ID == "" {
				continue
			}
			if strings.Contains(last.PlayID, plays[i].ID) || strings.Contains(plays[i].ID, last.PlayID) {
				last.Play = &plays[i]
				return points
			}
		}
	}

	last.Play = &plays[len(plays)-1]
	return points
}
