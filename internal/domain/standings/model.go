package standings

import "strings"

// Entry is one team's row inside a standings grouping.
type Entry struct {
	TeamID           string
	TeamName         string
	TeamAbbreviation string
	TeamLogo         string
	Wins             int
	Losses           int
	Ties             int
	WinPercent       float64
	GamesBehind      string
	Summary          string
}

// Group is a named standings grouping (division or conference), entries
// sorted by wins descending then win percentage descending.
type Group struct {
	Name    string
	Entries []Entry
}

// Filtered is the matcher output: the groups relevant to a set of team
// identifiers. Approximate is set when nothing matched and the result
// is the leading groups of the document instead.
type Filtered struct {
	Groups      []Group
	Approximate bool
}

// TeamIdentifiers are the parallel identifier lists used to locate the
// divisions of two teams. None of the lists is assumed complete;
// matching degrades as they empty.
type TeamIdentifiers struct {
	IDs           []string
	Names         []string
	Abbreviations []string
}

// Normalize trims and drops empty identifiers so matching never tests
// against blank values.
func (t TeamIdentifiers) Normalize() TeamIdentifiers {
	out := TeamIdentifiers{
		IDs:           make([]string, 0, len(t.IDs)),
		Names:         make([]string, 0, len(t.Names)),
		Abbreviations: make([]string, 0, len(t.Abbreviations)),
	}
	for _, id := range t.IDs {
		if v := strings.TrimSpace(id); v != "" {
			out.IDs = append(out.IDs, v)
		}
	}
	for _, name := range t.Names {
		if v := strings.TrimSpace(name); v != "" {
			out.Names = append(out.Names, v)
		}
	}
	for _, abbr := range t.Abbreviations {
		if v := strings.TrimSpace(abbr); v != "" {
			out.Abbreviations = append(out.Abbreviations, v)
		}
	}
	return out
}

// Empty reports whether no identifier of any kind is present.
func (t TeamIdentifiers) Empty() bool {
	return len(t.IDs) == 0 && len(t.Names) == 0 && len(t.Abbreviations) == 0
}

// Matches tests an entry against the identifiers: id exact match, name
// containment in either direction, or abbreviation exact match.
func (t TeamIdentifiers) Matches(e Entry) bool {
	for _, id := range t.IDs {
		if e.TeamID != "" && e.TeamID == id {
			return true
		}
	}
	entryName := strings.ToLower(e.TeamName)
	for _, name := range t.Names {
		candidate := strings.ToLower(name)
		if entryName != "" && (strings.Contains(entryName, candidate) || strings.Contains(candidate, entryName)) {
			return true
		}
	}
	entryAbbr := strings.ToLower(e.TeamAbbreviation)
	for _, abbr := range t.Abbreviations {
		if entryAbbr != "" && entryAbbr == strings.ToLower(abbr) {
			return true
		}
	}
	return false
}
