package espn

import (
	"testing"

	"github.com/quietscores/scores/internal/domain/game"
)

func TestFindSituation_LocatesNestedObject(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"header": map[string]any{
			"competitions": []any{
				map[string]any{
					"situation": map[string]any{
						"down":             float64(3),
						"distance":         float64(7),
						"downDistanceText": "3rd & 7",
					},
				},
			},
		},
	}

	found := findSituation(doc, 0)
	if found == nil {
		t.Fatal("expected nested situation to be found")
	}
	if getString(found, "downDistanceText") != "3rd & 7" {
		t.Fatalf("expected 3rd & 7, got=%s", getString(found, "downDistanceText"))
	}
}

func TestFindSituation_IgnoresZeroDownWithoutText(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"status": map[string]any{
			"down":     float64(0),
			"distance": float64(0),
		},
	}
	if found := findSituation(doc, 0); found != nil {
		t.Fatalf("expected no situation for down=0 without text, got=%v", found)
	}
}

func TestFindSituation_DepthBounded(t *testing.T) {
	t.Parallel()

	deep := map[string]any{
		"down":             float64(1),
		"distance":         float64(10),
		"downDistanceText": "1st & 10",
	}
	node := any(deep)
	for i := 0; i < 12; i++ {
		node = map[string]any{"wrap": node}
	}
	if found := findSituation(node, 0); found != nil {
		t.Fatal("expected walk to give up past the depth bound")
	}
}

func TestDownDistanceText_SynthesisAndOverrides(t *testing.T) {
	t.Parallel()

	g := gameFixture()

	halftime := g
	halftime.Status = game.StatusHalftime
	if got := downDistanceText(map[string]any{"downDistanceText": "3rd & 1"}, halftime, ""); got != "HALFTIME" {
		t.Fatalf("expected HALFTIME override, got=%s", got)
	}

	if got := downDistanceText(map[string]any{"down": float64(2), "distance": float64(8)}, g, ""); got != "2nd & 8" {
		t.Fatalf("expected synthesized 2nd & 8, got=%s", got)
	}

	if got := downDistanceText(nil, g, "Pass complete. 4th & 2 at KC 40"); got != "4th & 2" {
		t.Fatalf("expected text-mined 4th & 2, got=%s", got)
	}

	if got := downDistanceText(nil, g, ""); got != "Live" {
		t.Fatalf("expected Live placeholder, got=%s", got)
	}

	scheduled := g
	scheduled.Status = game.StatusScheduled
	if got := downDistanceText(nil, scheduled, ""); got != "-" {
		t.Fatalf("expected dash for non-live game, got=%s", got)
	}
}

func TestYardLineText_DerivesTerritory(t *testing.T) {
	t.Parallel()

	g := gameFixture()

	if got := yardLineText(map[string]any{"yardLine": float64(50)}, g, ""); got != "Midfield" {
		t.Fatalf("expected Midfield, got=%s", got)
	}
	if got := yardLineText(map[string]any{"yardLine": float64(72)}, g, ""); got != "KC 28" {
		t.Fatalf("expected KC 28 in home territory, got=%s", got)
	}
	if got := yardLineText(map[string]any{"yardLine": float64(35)}, g, ""); got != "BAL 35" {
		t.Fatalf("expected BAL 35 in away territory, got=%s", got)
	}
	if got := yardLineText(nil, g, "Run for 3 yards at KC 22"); got != "KC 22" {
		t.Fatalf("expected text-mined KC 22, got=%s", got)
	}
}

func TestNormalizedYardLine_TokenExactAbbreviations(t *testing.T) {
	t.Parallel()

	g := gameFixture()

	if got := normalizedYardLine(nil, g, "KC 20"); got == nil || *got != 80 {
		t.Fatalf("expected 80 in home territory, got=%v", got)
	}
	if got := normalizedYardLine(nil, g, "BAL 35"); got == nil || *got != 35 {
		t.Fatalf("expected 35 in away territory, got=%v", got)
	}

	// "BALTIC" must not satisfy the BAL abbreviation.
	if got := normalizedYardLine(nil, g, "BALTIC 35"); got != nil {
		t.Fatalf("expected no match on substring token, got=%v", got)
	}

	if got := normalizedYardLine(map[string]any{"yardLine": float64(63)}, g, "-"); got == nil || *got != 63 {
		t.Fatalf("expected raw fallback 63, got=%v", got)
	}
}

func TestExtractSituation_RedZone(t *testing.T) {
	t.Parallel()

	g := gameFixture()
	doc := map[string]any{
		"boxscore": map[string]any{
			"situation": map[string]any{
				"possession":       "33",
				"downDistanceText": "1st & 10",
				"yardLineText":     "KC 15",
			},
		},
	}

	s := extractSituation(doc, g, nil, nil)
	if s == nil {
		t.Fatal("expected a situation")
	}
	if !s.IsAwayPossession || s.IsHomePossession {
		t.Fatalf("expected away possession, got=%+v", s)
	}
	if s.YardLine == nil || *s.YardLine != 85 {
		t.Fatalf("expected normalized yard line 85, got=%v", s.YardLine)
	}
	if !s.IsRedZone {
		t.Fatal("expected red zone with away possession at KC 15")
	}
}
