package espn

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/quietscores/scores/internal/domain/detail"
	"github.com/quietscores/scores/internal/domain/game"
)

const maxSituationDepth = 10

var (
	downDistancePattern = regexp.MustCompile(`\d[a-z]{2}\s&\s\d+`)
	yardLinePattern     = regexp.MustCompile(`at\s([A-Z]+\s\d+)`)
	numberPattern       = regexp.MustCompile(`\d+`)
)

// extractSituation derives the live football snapshot. The raw
// situation object floats around the summary document, so a bounded
// walk finds it wherever it landed, and missing display text is
// synthesized from the numeric fields.
func extractSituation(doc map[string]any, g game.Game, awayBox, homeBox *detail.TeamBox) *detail.Situation {
	raw := findSituation(doc, 0)
	if raw == nil {
		raw = fallbackSituation(doc)
	}

	drives := getMap(doc, "drives")
	currentDrive := getMap(drives, "current")

	awayID := teamBoxID(awayBox, g.AwayTeam.ID)
	homeID := teamBoxID(homeBox, g.HomeTeam.ID)

	possessionID := situationPossession(raw, doc, currentDrive)
	s := &detail.Situation{
		PossessionTeamID: possessionID,
		IsAwayPossession: possessionID != "" && possessionID == awayID,
		IsHomePossession: possessionID != "" && possessionID == homeID,
	}

	lastPlayText := getString(getMap(currentDrive, "lastPlay"), "text")
	s.DownDistanceText = downDistanceText(raw, g, lastPlayText)
	s.YardLineText = yardLineText(raw, g, lastPlayText)
	s.YardLine = normalizedYardLine(raw, g, s.YardLineText)

	if s.YardLine != nil {
		s.IsRedZone = (s.IsAwayPossession && *s.YardLine >= 80) ||
			(s.IsHomePossession && *s.YardLine <= 20)
	}

	if s.DownDistanceText == "" && s.YardLineText == "" && possessionID == "" {
		return nil
	}
	return s
}

// findSituation walks the document looking for an object that carries
// down-and-distance data. Keys that sound situation-like are visited
// first; play logs, athlete lists, and link farms are skipped to keep
// the walk cheap.
func findSituation(node any, depth int) map[string]any {
	if depth > maxSituationDepth {
		return nil
	}

	switch typed := node.(type) {
	case map[string]any:
		if isSituationObject(typed) {
			return typed
		}

		var priority, rest []string
		for key := range typed {
			lower := strings.ToLower(key)
			switch {
			case strings.Contains(lower, "situation") || strings.Contains(lower, "lastplay") || key == "status":
				priority = append(priority, key)
			case key == "plays" || key == "athletes" || key == "links":
			default:
				rest = append(rest, key)
			}
		}
		sort.Strings(priority)
		sort.Strings(rest)
		for _, key := range append(priority, rest...) {
			if found := findSituation(typed[key], depth+1); found != nil {
				return found
			}
		}
	case []any:
		for _, item := range typed {
			if found := findSituation(item, depth+1); found != nil {
				return found
			}
		}
	}
	return nil
}

func isSituationObject(obj map[string]any) bool {
	down, hasDown := getInt(obj, "down")
	_, hasDist := getFloat(obj, "distance")
	hasText := getString(obj, "downDistanceText") != "" ||
		getString(obj, "shortDownDistanceText") != "" ||
		getString(obj, "yardLineText") != "" ||
		getString(obj, "possessionText") != ""

	if hasText {
		return true
	}
	return hasDown && hasDist && down > 0
}

func fallbackSituation(doc map[string]any) map[string]any {
	competition := firstMap(getMap(doc, "header"), "competitions")
	candidates := []map[string]any{
		getMap(doc, "situation"),
		getMap(getMap(doc, "boxscore"), "situation"),
		getMap(competition, "situation"),
		getMap(getMap(competition, "status"), "situation"),
		lastDrivePlaySituation(doc),
		getMap(competition, "status"),
	}
	for _, candidate := range candidates {
		if candidate != nil {
			return candidate
		}
	}
	return nil
}

func lastDrivePlaySituation(doc map[string]any) map[string]any {
	plays := getSlice(getMap(getMap(doc, "drives"), "current"), "plays")
	if len(plays) == 0 {
		return nil
	}
	last, ok := plays[len(plays)-1].(map[string]any)
	if !ok {
		return nil
	}
	return getMap(last, "situation")
}

func situationPossession(raw, doc, currentDrive map[string]any) string {
	if raw != nil {
		if id := stringValue(raw["possession"]); id != "" {
			return id
		}
		if possession, ok := raw["possession"].(map[string]any); ok {
			if id := getString(possession, "id"); id != "" {
				return id
			}
		}
		if id := getString(getMap(raw, "possessionTeam"), "id"); id != "" {
			return id
		}
		if id := getString(getMap(getMap(raw, "lastPlay"), "team"), "id"); id != "" {
			return id
		}
	}

	if id := getString(getMap(currentDrive, "team"), "id"); id != "" {
		return id
	}

	competition := firstMap(getMap(doc, "header"), "competitions")
	for _, rawComp := range getSlice(competition, "competitors") {
		comp, ok := rawComp.(map[string]any)
		if !ok {
			continue
		}
		if getBool(comp, "possession") || getString(getMap(comp, "possessionTeam"), "id") != "" {
			if id := getString(getMap(comp, "team"), "id"); id != "" {
				return id
			}
		}
	}
	return ""
}

// downDistanceText prefers the feed's text and synthesizes an ordinal
// form from down/distance when only the numbers exist. Halftime
// overrides everything.
func downDistanceText(raw map[string]any, g game.Game, lastPlayText string) string {
	if g.Status == game.StatusHalftime {
		return "HALFTIME"
	}

	if text := getStringAny(raw, "downDistanceText", "shortDownDistanceText"); text != "" {
		return text
	}

	down, downOK := getInt(raw, "down")
	distance, distOK := getInt(raw, "distance")
	if downOK && distOK && down > 0 {
		return fmt.Sprintf("%s & %d", ordinal(down), distance)
	}

	if match := downDistancePattern.FindString(lastPlayText); match != "" {
		return match
	}

	if g.Status == game.StatusLive {
		return "Live"
	}
	return "-"
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func yardLineText(raw map[string]any, g game.Game, lastPlayText string) string {
	if text := getStringAny(raw, "yardLineText", "possessionText"); text != "" {
		return text
	}

	if yardLine, ok := getInt(raw, "yardLine"); ok {
		switch {
		case yardLine == 50:
			return "Midfield"
		case yardLine > 50:
			return fmt.Sprintf("%s %d", g.HomeTeam.Abbreviation, 100-yardLine)
		default:
			return fmt.Sprintf("%s %d", g.AwayTeam.Abbreviation, yardLine)
		}
	}

	if match := yardLinePattern.FindStringSubmatch(lastPlayText); len(match) > 1 {
		return match[1]
	}
	return "-"
}

// normalizedYardLine maps the field position onto a 0-100 axis where 0
// is the away goal line. Territory comes from the yard-line text when
// an abbreviation names it; matching is token-exact so "LA" never
// claims a "DAL" spot.
func normalizedYardLine(raw map[string]any, g game.Game, text string) *int {
	upper := strings.ToUpper(text)
	tokens := strings.FieldsFunc(upper, func(r rune) bool {
		return r < 'A' || r > 'Z'
	})
	homeAbbr := strings.ToUpper(g.HomeTeam.Abbreviation)
	awayAbbr := strings.ToUpper(g.AwayTeam.Abbreviation)

	if homeAbbr != "" && containsToken(tokens, homeAbbr) {
		if dist, ok := firstNumber(upper); ok {
			if dist == 50 {
				return intPtr(50)
			}
			return intPtr(100 - dist)
		}
	}
	if awayAbbr != "" && containsToken(tokens, awayAbbr) {
		if dist, ok := firstNumber(upper); ok {
			return intPtr(dist)
		}
	}

	rawYL, ok := getInt(raw, "yardLine")
	if !ok {
		rawYL, ok = getInt(raw, "yardline")
	}
	if !ok {
		rawYL, ok = getInt(raw, "location")
	}
	if !ok {
		return nil
	}

	if rawYL <= 50 {
		if containsToken(tokens, "OPP") || containsToken(tokens, "OPPONENT") {
			return intPtr(100 - rawYL)
		}
		if containsToken(tokens, "OWN") {
			return intPtr(rawYL)
		}
	}
	return intPtr(rawYL)
}

func containsToken(tokens []string, want string) bool {
	for _, token := range tokens {
		if token == want {
			return true
		}
	}
	return false
}

func firstNumber(text string) (int, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

func intPtr(v int) *int {
	return &v
}

func teamBoxID(box *detail.TeamBox, fallback string) string {
	if box != nil && box.TeamID != "" {
		return box.TeamID
	}
	return fallback
}
