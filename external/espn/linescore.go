package espn

import (
	"sort"
	"strconv"

	"github.com/quietscores/scores/internal/domain/detail"
	"github.com/quietscores/scores/internal/domain/game"
)

const maxPeriods = 5 // four regulation periods plus one overtime bucket

// resolveLinescores produces the per-period score rows for both sides.
// Raw linescore arrays live in several places depending on sport and
// game state; when none carry a usable value the score is reconstructed
// from the play log.
func resolveLinescores(doc map[string]any, g game.Game, awayRaw, homeRaw map[string]any, plays []detail.Play) (map[int]string, map[int]string) {
	awayID := boxTeamID(awayRaw, g.AwayTeam.ID)
	homeID := boxTeamID(homeRaw, g.HomeTeam.ID)

	awayRows := locateLinescores(doc, g.AwayTeam.ID, "away", awayRaw, awayID)
	homeRows := locateLinescores(doc, g.HomeTeam.ID, "home", homeRaw, homeID)

	awayCalc, homeCalc := reconstructPeriodScores(plays)

	away := make(map[int]string, maxPeriods)
	home := make(map[int]string, maxPeriods)
	for period := 1; period <= maxPeriods; period++ {
		away[period] = periodScore(awayRows, awayCalc, period)
		home[period] = periodScore(homeRows, homeCalc, period)
	}
	return away, home
}

func boxTeamID(entry map[string]any, fallback string) string {
	if id := getString(getMap(entry, "team"), "id"); id != "" {
		return id
	}
	return fallback
}

// locateLinescores tries, in order: the header competitor for the
// side, the matched boxscore team, then teamId-keyed rows under
// boxscore.linescores and the document root.
func locateLinescores(doc map[string]any, teamID, homeAway string, boxEntry map[string]any, boxTeamID string) []any {
	competition := firstMap(getMap(doc, "header"), "competitions")
	for _, raw := range getSlice(competition, "competitors") {
		comp, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		matched := (teamID != "" && getString(getMap(comp, "team"), "id") == teamID) ||
			getString(comp, "homeAway") == homeAway
		if !matched {
			continue
		}
		if rows := getSlice(comp, "linescores"); len(rows) > 0 {
			return rows
		}
		break
	}

	if rows := getSlice(boxEntry, "linescores"); len(rows) > 0 {
		return rows
	}

	for _, src := range []map[string]any{getMap(doc, "boxscore"), doc} {
		for _, raw := range getSlice(src, "linescores") {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			entryID := firstNonEmpty(getString(entry, "teamId"), getString(getMap(entry, "team"), "id"))
			if entryID == "" || boxTeamID == "" || entryID != boxTeamID {
				continue
			}
			if rows := getSlice(entry, "linescores"); len(rows) > 0 {
				return rows
			}
		}
	}
	return nil
}

// periodScore resolves one cell: a reconstructed positive total wins,
// then the row at the period's index, then a row whose period field
// matches. Unresolvable cells stay empty.
func periodScore(rows []any, calc map[int]int, period int) string {
	if calc[period] > 0 {
		return strconv.Itoa(calc[period])
	}

	if period-1 < len(rows) {
		if value := linescoreValue(rows[period-1]); value != "" {
			return value
		}
	}

	for _, raw := range rows {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if periodNumber(entry["period"]) != period {
			continue
		}
		if value := linescoreValue(entry); value != "" {
			return value
		}
	}
	return ""
}

func linescoreValue(raw any) string {
	switch typed := raw.(type) {
	case map[string]any:
		return firstNonEmpty(
			getString(typed, "value"),
			getString(typed, "displayValue"),
			getString(typed, "score"),
			getString(typed, "text"),
		)
	default:
		return stringValue(raw)
	}
}

// reconstructPeriodScores rebuilds per-period totals from the running
// scores on the play log. Only plays that score or move the running
// total count; each positive delta is credited to the play's period,
// and the baseline always advances so corrections never double-count.
func reconstructPeriodScores(plays []detail.Play) (map[int]int, map[int]int) {
	away := make(map[int]int, maxPeriods)
	home := make(map[int]int, maxPeriods)

	trackedAway, trackedHome := 0, 0
	scoring := make([]detail.Play, 0, len(plays))
	for _, play := range plays {
		if play.Scoring || play.AwayScore != trackedAway || play.HomeScore != trackedHome {
			scoring = append(scoring, play)
			trackedAway = play.AwayScore
			trackedHome = play.HomeScore
		}
	}

	sort.SliceStable(scoring, func(i, j int) bool {
		return scoring[i].Period < scoring[j].Period
	})

	lastAway, lastHome := 0, 0
	for _, play := range scoring {
		if play.AwayScore == lastAway && play.HomeScore == lastHome {
			continue
		}
		period := play.Period
		if period < 1 {
			period = 1
		}
		if period > maxPeriods {
			period = maxPeriods
		}
		if diff := play.AwayScore - lastAway; diff > 0 {
			away[period] += diff
		}
		if diff := play.HomeScore - lastHome; diff > 0 {
			home[period] += diff
		}
		lastAway = play.AwayScore
		lastHome = play.HomeScore
	}
	return away, home
}
