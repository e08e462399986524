package espn

import (
	"reflect"
	"testing"

	"github.com/quietscores/scores/internal/domain/game"
)

func gameFixture() game.Game {
	return game.Game{
		ID:     "401547417",
		Sport:  game.SportNFL,
		Status: game.StatusLive,
		AwayTeam: game.TeamSide{
			ID:           "33",
			Name:         "Baltimore Ravens",
			Abbreviation: "BAL",
		},
		HomeTeam: game.TeamSide{
			ID:           "12",
			Name:         "Kansas City Chiefs",
			Abbreviation: "KC",
		},
	}
}

func TestMatchBoxscoreTeam_IDThenNameThenPosition(t *testing.T) {
	t.Parallel()

	teams := []any{
		map[string]any{"team": map[string]any{"id": "33", "displayName": "Baltimore Ravens"}},
		map[string]any{"team": map[string]any{"id": "12", "displayName": "Kansas City Chiefs"}},
	}
	g := gameFixture()

	away := matchBoxscoreTeam(teams, g.AwayTeam, 0, nil)
	if getString(getMap(away, "team"), "id") != "33" {
		t.Fatalf("expected away matched by id, got=%v", away)
	}

	// No ids anywhere: match by display name.
	byName := []any{
		map[string]any{"team": map[string]any{"displayName": "Kansas City Chiefs"}},
		map[string]any{"team": map[string]any{"displayName": "Baltimore Ravens"}},
	}
	away = matchBoxscoreTeam(byName, g.AwayTeam, 0, nil)
	if getString(getMap(away, "team"), "displayName") != "Baltimore Ravens" {
		t.Fatalf("expected away matched by name, got=%v", away)
	}

	// Nothing matches: positional fallback that never reuses the
	// object the other side already claimed.
	anonymous := []any{
		map[string]any{"team": map[string]any{"id": "1"}},
		map[string]any{"team": map[string]any{"id": "2"}},
	}
	side := game.TeamSide{Name: "Nobody"}
	first := matchBoxscoreTeam(anonymous, side, 0, nil)
	second := matchBoxscoreTeam(anonymous, side, 1, first)
	if getString(getMap(first, "team"), "id") != "1" || getString(getMap(second, "team"), "id") != "2" {
		t.Fatalf("expected positional 1 then 2, got=%v and %v", first, second)
	}
}

func TestExtractPlays_FlattensDrives(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"drives": map[string]any{
			"previous": []any{
				map[string]any{"plays": []any{
					map[string]any{"id": "1", "text": "Run for 5 yards"},
					map[string]any{"id": "2", "text": "Touchdown", "scoringPlay": true},
				}},
				map[string]any{"plays": []any{
					map[string]any{"id": "3", "text": "Punt"},
				}},
			},
			"current": map[string]any{
				"plays": []any{map[string]any{"id": "9"}},
			},
		},
	}

	plays := extractPlays(doc)
	if len(plays) != 3 {
		t.Fatalf("expected 3 plays from completed drives, got=%d", len(plays))
	}
	if plays[0].ID != "1" || plays[2].ID != "3" {
		t.Fatalf("expected drive order preserved, got=%+v", plays)
	}
	if !plays[1].Scoring {
		t.Fatal("expected scoringPlay flag to carry through")
	}

	// Top-level plays win over everything else.
	flat := map[string]any{
		"plays":  []any{map[string]any{"id": "top"}},
		"drives": doc["drives"],
	}
	plays = extractPlays(flat)
	if len(plays) != 1 || plays[0].ID != "top" {
		t.Fatalf("expected top-level plays, got=%+v", plays)
	}
}

func TestParsePlay_ScoreAliases(t *testing.T) {
	t.Parallel()

	nested := parsePlay(map[string]any{
		"id":     "4",
		"period": map[string]any{"number": float64(2)},
		"clock":  map[string]any{"displayValue": "3:21"},
		"score":  map[string]any{"away": float64(10), "home": float64(7)},
		"type":   map[string]any{"text": "Field Goal Good"},
	})
	if nested.AwayScore != 10 || nested.HomeScore != 7 {
		t.Fatalf("expected nested score 10/7, got=%d/%d", nested.AwayScore, nested.HomeScore)
	}
	if nested.Period != 2 || nested.Clock != "3:21" {
		t.Fatalf("expected period=2 clock=3:21, got=%d %s", nested.Period, nested.Clock)
	}
	if !nested.Scoring {
		t.Fatal("expected field goal type text to mark play as scoring")
	}
}

func TestExtractLeaders_GroupsByCategoryInKnownOrder(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"leaders": []any{
			map[string]any{
				"team": map[string]any{"id": "33"},
				"leaders": []any{
					map[string]any{
						"name":        "rushingYards",
						"displayName": "Rushing Yards",
						"leaders": []any{
							map[string]any{
								"displayValue": "112 YDS",
								"athlete":      map[string]any{"id": "a1", "displayName": "Derrick Henry"},
							},
						},
					},
					map[string]any{
						"name":        "passingYards",
						"displayName": "Passing Yards",
						"leaders": []any{
							map[string]any{
								"displayValue": "245 YDS",
								"athlete":      map[string]any{"id": "a2", "displayName": "Lamar Jackson"},
							},
						},
					},
				},
			},
			map[string]any{
				"team": map[string]any{"id": "12"},
				"leaders": []any{
					map[string]any{
						"name":        "passingYards",
						"displayName": "Passing Yards",
						"leaders": []any{
							map[string]any{
								"displayValue": "301 YDS",
								"athlete":      map[string]any{"id": "a3", "displayName": "Patrick Mahomes"},
							},
						},
					},
				},
			},
		},
	}

	categories := extractLeaders(doc, nil)
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got=%d", len(categories))
	}
	if categories[0].Name != "passingYards" {
		t.Fatalf("expected passingYards first, got=%s", categories[0].Name)
	}
	if len(categories[0].Leaders) != 2 {
		t.Fatalf("expected a leader from each team, got=%d", len(categories[0].Leaders))
	}
	if categories[0].Leaders[0].TeamID != "33" || categories[0].Leaders[1].TeamID != "12" {
		t.Fatalf("expected team order preserved, got=%+v", categories[0].Leaders)
	}
	if categories[1].Leaders[0].AthleteName != "Derrick Henry" {
		t.Fatalf("expected rushing leader Derrick Henry, got=%s", categories[1].Leaders[0].AthleteName)
	}
}

func TestExtractSummary_BestEffortOnSparseDocument(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"plays": []any{
			map[string]any{"id": "1", "text": "Tip-off"},
		},
	}

	d := ExtractSummary(doc, gameFixture())
	if d.AwayTeam != nil || d.HomeTeam != nil {
		t.Fatalf("expected no team boxes without boxscore, got=%+v/%+v", d.AwayTeam, d.HomeTeam)
	}
	if len(d.Plays) != 1 {
		t.Fatalf("expected plays to survive, got=%d", len(d.Plays))
	}
	if d.AwayLinescores[1] != "" {
		t.Fatalf("expected empty linescore cells, got=%q", d.AwayLinescores[1])
	}
}

func summaryDocFixture() map[string]any {
	return map[string]any{
		"boxscore": map[string]any{
			"teams": []any{
				map[string]any{
					"team": map[string]any{"id": "33", "displayName": "Baltimore Ravens"},
					"statistics": []any{
						map[string]any{"name": "totalYards", "displayValue": "287"},
					},
				},
				map[string]any{
					"team": map[string]any{"id": "12", "displayName": "Kansas City Chiefs"},
					"statistics": []any{
						map[string]any{"name": "totalYards", "displayValue": "412"},
					},
				},
			},
		},
		"plays": []any{
			map[string]any{
				"id":     "1",
				"text":   "Touchdown",
				"period": map[string]any{"number": float64(2)},
				"score":  map[string]any{"away": float64(7), "home": float64(0)},
			},
		},
		"winprobability": []any{
			map[string]any{"homeWinPercentage": float64(0.6), "playId": "1"},
		},
	}
}

func TestExtractSummary_RepeatableAndInputUntouched(t *testing.T) {
	t.Parallel()

	doc := summaryDocFixture()
	pristine := summaryDocFixture()
	g := gameFixture()

	first := ExtractSummary(doc, g)
	second := ExtractSummary(doc, g)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical details on repeat, got=%+v vs %+v", first, second)
	}
	if !reflect.DeepEqual(doc, pristine) {
		t.Fatalf("expected the raw document to be left untouched, got=%+v", doc)
	}
}

func TestTeamBoxStatDefault(t *testing.T) {
	t.Parallel()

	box := buildTeamBox(map[string]any{
		"team": map[string]any{"id": "12", "displayName": "Kansas City Chiefs"},
		"statistics": []any{
			map[string]any{"name": "totalYards", "displayValue": "412"},
		},
	})
	if box.Stat("totalYards") != "412" {
		t.Fatalf("expected 412, got=%s", box.Stat("totalYards"))
	}
	if box.Stat("turnovers") != "0" {
		t.Fatalf("expected default 0, got=%s", box.Stat("turnovers"))
	}
}
