package espn

import (
	"sort"

	"github.com/quietscores/scores/internal/domain/standings"
)

// approximateGroupLimit caps the fallback when no group contains a
// requested team: the first two groups stand in as a sample.
const approximateGroupLimit = 2

// FilterStandings reduces a raw standings document to the groups that
// contain at least one of the identified teams. The document shape
// varies by sport: conference/division trees, a flat entries object, a
// groups array, or a bare top-level array. When no group matches, the
// first groups are returned tagged approximate so callers can label
// them honestly.
func FilterStandings(doc any, ids standings.TeamIdentifiers) *standings.Filtered {
	ids = ids.Normalize()

	var matching, all []standings.Group
	collect := func(group map[string]any) {
		parsed, hasMatch := parseStandingsGroup(group, ids)
		if parsed == nil {
			return
		}
		if hasMatch {
			matching = append(matching, *parsed)
		}
		all = append(all, *parsed)
	}

	switch typed := doc.(type) {
	case map[string]any:
		if children := getSlice(typed, "children"); len(children) > 0 {
			walkStandingsChildren(children, collect)
		} else if entries := getSlice(getMap(typed, "standings"), "entries"); len(entries) > 0 {
			collect(map[string]any{"name": "Standings", "standings": typed["standings"]})
		} else if groups := getSlice(typed, "groups"); len(groups) > 0 {
			for _, raw := range groups {
				if group, ok := raw.(map[string]any); ok {
					collect(group)
				}
			}
		}
	case []any:
		walkStandingsChildren(typed, collect)
	}

	if ids.Empty() {
		if len(all) == 0 {
			return nil
		}
		return &standings.Filtered{Groups: all}
	}
	if len(matching) > 0 {
		return &standings.Filtered{Groups: matching}
	}
	if len(all) > 0 {
		if len(all) > approximateGroupLimit {
			all = all[:approximateGroupLimit]
		}
		return &standings.Filtered{Groups: all, Approximate: true}
	}
	return nil
}

// walkStandingsChildren handles conference nodes that may or may not
// carry a division layer underneath.
func walkStandingsChildren(children []any, collect func(map[string]any)) {
	for _, raw := range children {
		node, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if divisions := getSlice(node, "children"); len(divisions) > 0 {
			for _, rawDivision := range divisions {
				if division, ok := rawDivision.(map[string]any); ok {
					collect(division)
				}
			}
			continue
		}
		collect(node)
	}
}

func parseStandingsGroup(group map[string]any, ids standings.TeamIdentifiers) (*standings.Group, bool) {
	rawEntries := getSlice(getMap(group, "standings"), "entries")
	if len(rawEntries) == 0 {
		return nil, false
	}

	entries := make([]standings.Entry, 0, len(rawEntries))
	hasMatch := false
	for _, raw := range rawEntries {
		entryMap, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		entry := parseStandingsEntry(entryMap)
		if entry.TeamName == "" && entry.TeamID == "" {
			continue
		}
		if !ids.Empty() && ids.Matches(entry) {
			hasMatch = true
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil, false
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].WinPercent > entries[j].WinPercent
	})

	return &standings.Group{
		Name:    getStringAny(group, "name", "abbreviation", "shortName"),
		Entries: entries,
	}, hasMatch
}

func parseStandingsEntry(entry map[string]any) standings.Entry {
	team := getMap(entry, "team")
	out := standings.Entry{
		TeamID:           getString(team, "id"),
		TeamName:         getStringAny(team, "displayName", "name"),
		TeamAbbreviation: getString(team, "abbreviation"),
		TeamLogo:         teamBoxLogo(team),
	}

	for _, raw := range getSlice(entry, "stats") {
		stat, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		value, hasValue := getFloat(stat, "value")
		switch getString(stat, "name") {
		case "wins":
			if hasValue {
				out.Wins = int(value)
			}
		case "losses":
			if hasValue {
				out.Losses = int(value)
			}
		case "ties":
			if hasValue {
				out.Ties = int(value)
			}
		case "winPercent":
			if hasValue {
				out.WinPercent = value
			}
		case "gamesBehind":
			out.GamesBehind = getStringAny(stat, "displayValue", "value")
		case "overall":
			out.Summary = getStringAny(stat, "displayValue", "summary")
		}
	}
	if out.Summary == "" {
		out.Summary = getString(entry, "note")
	}
	return out
}
