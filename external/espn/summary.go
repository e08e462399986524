package espn

import (
	"sort"
	"strings"

	"github.com/quietscores/scores/internal/domain/detail"
	"github.com/quietscores/scores/internal/domain/game"
)

// leaderOrder pins the football categories readers expect first; any
// other category keeps its document order after them.
var leaderOrder = []string{"passingYards", "rushingYards", "receivingYards", "sacks", "totalTackles"}

// ExtractSummary assembles a GameDetail from a raw summary document.
// Every section is best-effort: a missing boxscore does not prevent
// plays or win probability from being extracted.
func ExtractSummary(doc map[string]any, g game.Game) detail.GameDetail {
	boxscore := getMap(doc, "boxscore")
	teams := getSlice(boxscore, "teams")

	awayRaw := matchBoxscoreTeam(teams, g.AwayTeam, 0, nil)
	homeRaw := matchBoxscoreTeam(teams, g.HomeTeam, 1, awayRaw)

	plays := extractPlays(doc)

	d := detail.GameDetail{
		AwayTeam:   buildTeamBox(awayRaw),
		HomeTeam:   buildTeamBox(homeRaw),
		Plays:      plays,
		Headlines:  extractTexts(getSlice(doc, "headlines")),
		Commentary: extractTexts(getSlice(doc, "commentary")),
		Leaders:    extractLeaders(doc, boxscore),
	}

	d.AwayLinescores, d.HomeLinescores = resolveLinescores(doc, g, awayRaw, homeRaw, plays)
	d.Situation = extractSituation(doc, g, d.AwayTeam, d.HomeTeam)
	d.WinProbability = extractWinProbability(doc, plays)

	return d
}

// matchBoxscoreTeam resolves the boxscore object for one canonical
// side: team id, then display name, then plain name, then position.
// The positional fallback never reuses the object already claimed by
// the other side.
func matchBoxscoreTeam(teams []any, side game.TeamSide, fallbackIndex int, taken map[string]any) map[string]any {
	for _, raw := range teams {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		team := getMap(entry, "team")
		if side.ID != "" && getString(team, "id") == side.ID {
			return entry
		}
		if side.Name != "" && (getString(team, "displayName") == side.Name || getString(team, "name") == side.Name) {
			return entry
		}
	}

	if fallbackIndex < len(teams) {
		if entry, ok := teams[fallbackIndex].(map[string]any); ok && !sameMap(entry, taken) {
			return entry
		}
	}
	for _, raw := range teams {
		if entry, ok := raw.(map[string]any); ok && !sameMap(entry, taken) {
			return entry
		}
	}
	return nil
}

func sameMap(a, b map[string]any) bool {
	if a == nil || b == nil {
		return false
	}
	idA := getString(getMap(a, "team"), "id")
	idB := getString(getMap(b, "team"), "id")
	if idA != "" || idB != "" {
		return idA == idB
	}
	return &a == &b
}

func buildTeamBox(entry map[string]any) *detail.TeamBox {
	if entry == nil {
		return nil
	}
	team := getMap(entry, "team")

	box := &detail.TeamBox{
		TeamID:       getString(team, "id"),
		Name:         getStringAny(team, "displayName", "name"),
		Abbreviation: getString(team, "abbreviation"),
		Logo:         teamBoxLogo(team),
		Color:        getString(team, "color"),
	}

	for _, raw := range getSlice(entry, "statistics") {
		stat, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name := getString(stat, "name")
		if name == "" {
			continue
		}
		box.Statistics = append(box.Statistics, detail.TeamStat{
			Name:         name,
			DisplayValue: getStringAny(stat, "displayValue", "value"),
		})
	}

	box.Players = extractPlayers(entry)
	return box
}

func teamBoxLogo(team map[string]any) string {
	if logo := firstMap(team, "logos"); logo != nil {
		if href := getString(logo, "href"); href != "" {
			return href
		}
	}
	return getString(team, "logo")
}

// extractPlayers reads athlete stat lines from the first statistics
// group, falling back to a flat players list. Stat labels come from
// the group when present.
func extractPlayers(entry map[string]any) []detail.PlayerLine {
	group := firstMap(entry, "statistics")
	athletes := getSlice(group, "athletes")
	if len(athletes) == 0 {
		athletes = getSlice(entry, "players")
	}
	if len(athletes) == 0 {
		return nil
	}

	labels := make([]string, 0, 8)
	for _, raw := range getSlice(group, "labels") {
		labels = append(labels, stringValue(raw))
	}
	if len(labels) == 0 {
		for _, raw := range getSlice(group, "names") {
			labels = append(labels, stringValue(raw))
		}
	}

	lines := make([]detail.PlayerLine, 0, len(athletes))
	for _, raw := range athletes {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		athlete := getMap(entry, "athlete")
		line := detail.PlayerLine{
			AthleteID:   getString(athlete, "id"),
			AthleteName: getStringAny(athlete, "displayName", "shortName"),
			Position:    getString(getMap(athlete, "position"), "abbreviation"),
		}
		for i, rawStat := range getSlice(entry, "stats") {
			stat := detail.TeamStat{DisplayValue: stringValue(rawStat)}
			if i < len(labels) {
				stat.Name = labels[i]
			}
			line.Stats = append(line.Stats, stat)
		}
		if line.AthleteName != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// extractPlays walks the locations a play log shows up in, first hit
// wins. Drive-based documents are flattened with completed drives
// first, the current drive last, so the log stays chronological.
func extractPlays(doc map[string]any) []detail.Play {
	if raw := getSlice(doc, "plays"); len(raw) > 0 {
		return parsePlays(raw)
	}
	if raw := getSlice(getMap(doc, "boxscore"), "plays"); len(raw) > 0 {
		return parsePlays(raw)
	}

	drives := getMap(doc, "drives")
	var flattened []any
	for _, rawDrive := range getSlice(drives, "previous") {
		drive, ok := rawDrive.(map[string]any)
		if !ok {
			continue
		}
		flattened = append(flattened, getSlice(drive, "plays")...)
	}
	if len(flattened) > 0 {
		return parsePlays(flattened)
	}
	if raw := getSlice(getMap(drives, "current"), "plays"); len(raw) > 0 {
		return parsePlays(raw)
	}
	return nil
}

func parsePlays(raw []any) []detail.Play {
	plays := make([]detail.Play, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		plays = append(plays, parsePlay(entry))
	}
	return plays
}

func parsePlay(entry map[string]any) detail.Play {
	play := detail.Play{
		ID:       getString(entry, "id"),
		Text:     getStringAny(entry, "text", "shortText"),
		TypeText: getString(getMap(entry, "type"), "text"),
		Period:   periodNumber(entry["period"]),
		TeamID:   getString(getMap(entry, "team"), "id"),
	}

	switch clock := entry["clock"].(type) {
	case map[string]any:
		play.Clock = getString(clock, "displayValue")
	default:
		play.Clock = stringValue(clock)
	}

	play.AwayScore, play.HomeScore = playScores(entry)
	play.Scoring = isScoringPlay(entry, play.TypeText)
	return play
}

// playScores reads the running score, trying the flat fields first and
// the nested score/scores objects after.
func playScores(entry map[string]any) (int, int) {
	away, awayOK := getInt(entry, "awayScore")
	home, homeOK := getInt(entry, "homeScore")
	if awayOK || homeOK {
		return away, home
	}
	if score := getMap(entry, "score"); score != nil {
		away, awayOK = getInt(score, "away")
		home, homeOK = getInt(score, "home")
		if awayOK || homeOK {
			return away, home
		}
	}
	if scores := getMap(entry, "scores"); scores != nil {
		away, _ = getInt(scores, "away")
		home, _ = getInt(scores, "home")
	}
	return away, home
}

func isScoringPlay(entry map[string]any, typeText string) bool {
	if getBool(entry, "scoringPlay") {
		return true
	}
	lower := strings.ToLower(typeText)
	return strings.Contains(lower, "touchdown") ||
		strings.Contains(lower, "field goal") ||
		strings.Contains(lower, "safety") ||
		strings.Contains(lower, "goal")
}

func extractTexts(raw []any) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		switch typed := item.(type) {
		case map[string]any:
			if text := firstNonEmpty(
				getString(typed, "description"),
				getString(typed, "shortLinkText"),
				getString(typed, "text"),
				getString(typed, "headline"),
			); text != "" {
				out = append(out, text)
			}
		case string:
			if trimmed := strings.TrimSpace(typed); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// extractLeaders flattens the per-team leader blocks into categories,
// taking the top athlete from each team. The document groups by team;
// readers want it grouped by category.
func extractLeaders(doc, boxscore map[string]any) []detail.LeaderCategory {
	leadersData := getSlice(doc, "leaders")
	if len(leadersData) == 0 {
		leadersData = getSlice(boxscore, "leaders")
	}
	if len(leadersData) == 0 {
		leadersData = getSlice(firstMap(getMap(doc, "header"), "competitions"), "leaders")
	}
	if len(leadersData) == 0 {
		return nil
	}

	var order []string
	categories := make(map[string]*detail.LeaderCategory)

	for _, rawTeam := range leadersData {
		teamLeader, ok := rawTeam.(map[string]any)
		if !ok {
			continue
		}
		teamID := getString(getMap(teamLeader, "team"), "id")
		if teamID == "" {
			continue
		}

		for _, rawCategory := range getSlice(teamLeader, "leaders") {
			category, ok := rawCategory.(map[string]any)
			if !ok {
				continue
			}
			name := getStringAny(category, "name", "displayName")
			if name == "" {
				continue
			}
			top := firstMap(category, "leaders")
			if top == nil {
				continue
			}

			entry, seen := categories[name]
			if !seen {
				entry = &detail.LeaderCategory{
					Name:        getString(category, "name"),
					DisplayName: getString(category, "displayName"),
				}
				categories[name] = entry
				order = append(order, name)
			}

			athlete := getMap(top, "athlete")
			entry.Leaders = append(entry.Leaders, detail.Leader{
				TeamID:       teamID,
				AthleteID:    getString(athlete, "id"),
				AthleteName:  getStringAny(athlete, "displayName", "shortName"),
				DisplayValue: getString(top, "displayValue"),
			})
		}
	}

	out := make([]detail.LeaderCategory, 0, len(order))
	for _, name := range order {
		out = append(out, *categories[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return leaderRank(out[i].Name) < leaderRank(out[j].Name)
	})
	return out
}

func leaderRank(name string) int {
	for i, known := range leaderOrder {
		if known == name {
			return i
		}
	}
	return len(leaderOrder)
}
