package espn

import (
	"fmt"
	"strings"

	"github.com/quietscores/scores/internal/domain/game"
)

// NormalizeEvent converts one raw scoreboard event into a Game. It
// returns nil for events that cannot be rendered: no competition, no
// competitors, or a side without a resolvable name.
func NormalizeEvent(event map[string]any, sport string) *game.Game {
	if event == nil {
		return nil
	}
	competition := firstMap(event, "competitions")
	if competition == nil {
		return nil
	}
	competitors := getSlice(competition, "competitors")
	if len(competitors) == 0 {
		return nil
	}

	home := findCompetitor(competitors, "home", 1)
	away := findCompetitor(competitors, "away", 0)
	if home == nil || away == nil {
		return nil
	}

	homeSide := normalizeTeamSide(home)
	awaySide := normalizeTeamSide(away)
	if homeSide.Name == "" || awaySide.Name == "" {
		return nil
	}

	status := getMap(event, "status")
	statusType := getMap(status, "type")
	normalized := normalizeStatus(
		getString(statusType, "state"),
		getString(statusType, "detail"),
		getString(statusType, "shortDetail"),
	)

	timeDetail := firstNonEmpty(
		getString(statusType, "shortDetail"),
		getString(statusType, "detail"),
		getString(statusType, "description"),
	)

	eventDate := getString(event, "date")
	period, _ := getInt(status, "period")
	g := &game.Game{
		ID:             firstNonEmpty(getString(event, "id"), fmt.Sprintf("%s-%s-%s", sport, awaySide.Name, homeSide.Name)),
		Sport:          sport,
		AwayTeam:       awaySide,
		HomeTeam:       homeSide,
		AwayScore:      getString(away, "score"),
		HomeScore:      getString(home, "score"),
		Status:         normalized,
		Time:           timeDetail,
		FullDateTime:   eventDate,
		Period:         period,
		Clock:          getStringAny(status, "displayClock", "clock"),
		PossessionTeam: extractPossession(competition),
	}
	if normalized == game.StatusScheduled {
		g.DisplayTime = formatDisplayTime(eventDate)
	}
	if sport == game.SportMLB {
		g.Baseball = extractBaseballState(competition, status)
	}
	g.BroadcastChannel = extractBroadcast(event, competition)
	g.Odds = extractOdds(competition)

	return g
}

// normalizeStatus collapses the feed's status triple into the five
// statuses the rest of the system sorts and filters on. Detail text
// wins over state for postponements and halftime: the feed reports
// those as "in" games with descriptive text.
func normalizeStatus(state, detail, shortDetail string) string {
	combined := strings.ToLower(detail)
	if combined == "" {
		combined = strings.ToLower(shortDetail)
	}

	if strings.Contains(combined, "postponed") || strings.Contains(combined, "canceled") {
		return game.StatusPostponed
	}
	if strings.Contains(combined, "halftime") {
		return game.StatusHalftime
	}

	switch state {
	case "pre":
		return game.StatusScheduled
	case "post", "final":
		return game.StatusFinal
	case "in":
		if strings.Contains(combined, "end") {
			return game.StatusHalftime
		}
		return game.StatusLive
	default:
		if strings.Contains(combined, "final") {
			return game.StatusFinal
		}
		if strings.Contains(combined, "live") {
			return game.StatusLive
		}
		return game.StatusScheduled
	}
}

func findCompetitor(competitors []any, homeAway string, fallbackIndex int) map[string]any {
	for _, raw := range competitors {
		comp, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if getString(comp, "homeAway") == homeAway {
			return comp
		}
	}
	if fallbackIndex < len(competitors) {
		if comp, ok := competitors[fallbackIndex].(map[string]any); ok {
			return comp
		}
	}
	return nil
}

func normalizeTeamSide(competitor map[string]any) game.TeamSide {
	team := getMap(competitor, "team")
	return game.TeamSide{
		ID:           getString(team, "id"),
		Name:         getStringAny(team, "displayName", "name"),
		ShortName:    getStringAny(team, "shortDisplayName", "abbreviation"),
		Abbreviation: getString(team, "abbreviation"),
		Logo:         pickTeamLogo(team),
		Record:       extractRecord(competitor),
	}
}

// pickTeamLogo prefers alternate or light logo variants; the primary
// variant is usually dark-on-transparent and unreadable on a dark
// background.
func pickTeamLogo(team map[string]any) string {
	if team == nil {
		return ""
	}
	logos := getSlice(team, "logos")

	for _, raw := range logos {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		href := getString(entry, "href")
		if href == "" {
			continue
		}
		lower := strings.ToLower(href)
		if strings.Contains(lower, "alternate") || strings.Contains(lower, "alt") ||
			strings.Contains(lower, "light") || strings.Contains(lower, "white") {
			return href
		}
	}

	var firstHref string
	for _, raw := range logos {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		href := getString(entry, "href")
		if href == "" {
			continue
		}
		if firstHref == "" {
			firstHref = href
		}
		lower := strings.ToLower(href)
		if !strings.Contains(lower, "dark") && !strings.Contains(lower, "black") {
			return href
		}
	}
	if firstHref != "" {
		return firstHref
	}

	return getString(team, "logo")
}

func extractRecord(competitor map[string]any) string {
	records := getSlice(competitor, "records")
	if len(records) == 0 {
		return ""
	}
	for _, raw := range records {
		record, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if getString(record, "type") == "total" {
			return getString(record, "summary")
		}
	}
	if first, ok := records[0].(map[string]any); ok {
		return getString(first, "summary")
	}
	return ""
}

// extractPossession walks the locations possession shows up in, most
// specific first.
func extractPossession(competition map[string]any) string {
	situation := getMap(competition, "situation")

	if situation != nil {
		if possession, ok := situation["possession"]; ok && possession != nil {
			switch v := possession.(type) {
			case map[string]any:
				if id := getString(getMap(v, "team"), "id"); id != "" {
					return id
				}
				if id := getString(v, "id"); id != "" {
					return id
				}
			default:
				if id := stringValue(possession); id != "" {
					return id
				}
			}
		}
	}

	if id := getString(getMap(getMap(situation, "lastPlay"), "team"), "id"); id != "" {
		return id
	}
	if id := getString(getMap(getMap(competition, "lastPlay"), "team"), "id"); id != "" {
		return id
	}
	if id := getString(getMap(situation, "lastPlay"), "possessionTeam"); id != "" {
		return id
	}
	return getString(getMap(competition, "lastPlay"), "possessionTeam")
}

func extractBaseballState(competition, status map[string]any) *game.BaseballState {
	situation := getMap(competition, "situation")

	state := &game.BaseballState{}

	inningHalf := getString(situation, "inningHalf")
	if inningHalf != "" {
		if inningHalf == "top" {
			state.AtBatTeam = "away"
		} else {
			state.AtBatTeam = "home"
		}
	}

	if inning, ok := getInt(situation, "inning"); ok {
		state.InningNumber = inning
	} else if period, ok := getInt(status, "period"); ok {
		state.InningNumber = period
	}

	if top, ok := lookupBool(situation, "topOfInning"); ok {
		if top {
			state.TopBottom = "top"
		} else {
			state.TopBottom = "bot"
		}
	} else if inningHalf != "" {
		switch inningHalf {
		case "top", "1":
			state.TopBottom = "top"
		default:
			state.TopBottom = "bot"
		}
	}

	if balls, ok := getInt(situation, "balls"); ok {
		state.Balls = &balls
	}
	if strikes, ok := getInt(situation, "strikes"); ok {
		state.Strikes = &strikes
	}
	if outs, ok := getInt(situation, "outs"); ok {
		state.Outs = &outs
	}

	state.Bases = describeBases(
		getBool(situation, "onFirst"),
		getBool(situation, "onSecond"),
		getBool(situation, "onThird"),
	)

	return state
}

func describeBases(first, second, third bool) string {
	switch {
	case first && second && third:
		return "loaded"
	case first && second:
		return "1st & 2nd"
	case first && third:
		return "1st & 3rd"
	case second && third:
		return "2nd & 3rd"
	case first:
		return "1st"
	case second:
		return "2nd"
	case third:
		return "3rd"
	default:
		return "empty"
	}
}

func extractBroadcast(event, competition map[string]any) string {
	if channel := getString(event, "broadcast"); channel != "" {
		return channel
	}

	if broadcast := firstMap(competition, "broadcasts"); broadcast != nil {
		if names := getSlice(broadcast, "names"); len(names) > 0 {
			if name := stringValue(names[0]); name != "" {
				return name
			}
		}
		if name := getString(getMap(broadcast, "media"), "shortName"); name != "" {
			return name
		}
	}

	if geo := firstMap(event, "geoBroadcasts"); geo != nil {
		if name := getString(getMap(geo, "media"), "shortName"); name != "" {
			return name
		}
	}

	if broadcast := firstMap(event, "broadcasts"); broadcast != nil {
		if names := getSlice(broadcast, "names"); len(names) > 0 {
			return stringValue(names[0])
		}
	}

	return ""
}

// extractOdds reads closing lines. The spread is reported from the
// away side; when only the home line exists it is negated so a single
// number means the same thing everywhere. A game with none of the four
// numbers carries no Odds at all.
func extractOdds(competition map[string]any) *game.Odds {
	oddsEntry := firstMap(competition, "odds")
	if oddsEntry == nil {
		return nil
	}

	odds := &game.Odds{}

	if pointSpread := getMap(oddsEntry, "pointSpread"); pointSpread != nil {
		if line, ok := closeLine(getMap(pointSpread, "away")); ok {
			odds.Spread = &line
		} else if line, ok := closeLine(getMap(pointSpread, "home")); ok {
			negated := -line
			odds.Spread = &negated
		}
	}

	if total := getMap(oddsEntry, "overUnder"); total != nil {
		if line, ok := getFloat(getMap(total, "close"), "line"); ok {
			odds.OverUnder = &line
		}
	}

	if moneyline := getMap(oddsEntry, "moneyline"); moneyline != nil {
		if line, ok := closeLine(getMap(moneyline, "away")); ok {
			odds.AwayMoneyline = &line
		}
		if line, ok := closeLine(getMap(moneyline, "home")); ok {
			odds.HomeMoneyline = &line
		}
	}

	if odds.Spread == nil && odds.OverUnder == nil && odds.AwayMoneyline == nil && odds.HomeMoneyline == nil {
		return nil
	}
	return odds
}

func closeLine(side map[string]any) (float64, bool) {
	return getFloat(getMap(side, "close"), "line")
}

func formatDisplayTime(eventDate string) string {
	parsed := parseEventDate(eventDate)
	if parsed.IsZero() {
		return "TBD"
	}
	return parsed.Local().Format("3:04 PM")
}
