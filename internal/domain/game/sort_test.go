package game

import "testing"

func TestSort_StatusThenTimeThenSportThenHome(t *testing.T) {
	t.Parallel()

	games := []Game{
		{ID: "final", Status: StatusFinal, FullDateTime: "2026-01-11T18:00Z"},
		{ID: "late-live", Status: StatusLive, FullDateTime: "2026-01-11T23:30Z"},
		{ID: "postponed", Status: StatusPostponed, FullDateTime: "2026-01-11T18:00Z"},
		{ID: "early-live", Status: StatusLive, FullDateTime: "2026-01-11T18:00Z"},
		{ID: "half", Status: StatusHalftime, FullDateTime: "2026-01-11T18:00Z"},
		{ID: "scheduled", Status: StatusScheduled, FullDateTime: "2026-01-11T20:00Z"},
	}

	Sort(games)

	want := []string{"early-live", "late-live", "half", "scheduled", "postponed", "final"}
	for i, id := range want {
		if games[i].ID != id {
			t.Fatalf("position %d: expected %s, got=%s", i, id, games[i].ID)
		}
	}
}

func TestSort_TieBreaksOnSportAndHomeName(t *testing.T) {
	t.Parallel()

	games := []Game{
		{ID: "b", Status: StatusScheduled, FullDateTime: "2026-01-11T18:00Z", Sport: SportNHL},
		{ID: "a", Status: StatusScheduled, FullDateTime: "2026-01-11T18:00Z", Sport: SportNBA},
		{ID: "d", Status: StatusScheduled, FullDateTime: "2026-01-11T18:00Z", Sport: SportNHL, HomeTeam: TeamSide{Name: "Boston Bruins"}},
	}

	Sort(games)

	if games[0].ID != "a" {
		t.Fatalf("expected nba first on sport tiebreak, got=%s", games[0].ID)
	}
	// Both NHL games share sport and time; empty home name sorts first.
	if games[1].ID != "b" || games[2].ID != "d" {
		t.Fatalf("expected home-name tiebreak b then d, got=%s, %s", games[1].ID, games[2].ID)
	}
}

func TestSort_UnknownStatusAndMissingTimeSink(t *testing.T) {
	t.Parallel()

	games := []Game{
		{ID: "weird", Status: "delayed", FullDateTime: "2026-01-11T18:00Z"},
		{ID: "no-time", Status: StatusScheduled},
		{ID: "timed", Status: StatusScheduled, FullDateTime: "2026-01-11T18:00Z"},
	}

	Sort(games)

	if games[0].ID != "timed" {
		t.Fatalf("expected timed scheduled game first, got=%s", games[0].ID)
	}
	if games[1].ID != "no-time" {
		t.Fatalf("expected missing time after known times, got=%s", games[1].ID)
	}
	if games[2].ID != "weird" {
		t.Fatalf("expected unknown status last, got=%s", games[2].ID)
	}
}

func TestFilterLive(t *testing.T) {
	t.Parallel()

	games := []Game{
		{ID: "1", Status: StatusLive},
		{ID: "2", Status: StatusScheduled},
		{ID: "3", Status: StatusHalftime},
		{ID: "4", Status: StatusFinal},
	}

	live := FilterLive(games)
	if len(live) != 2 {
		t.Fatalf("expected 2 live games, got=%d", len(live))
	}
	if live[0].ID != "1" || live[1].ID != "3" {
		t.Fatalf("expected games 1 and 3, got=%s and %s", live[0].ID, live[1].ID)
	}
}

func TestIsKnownSport(t *testing.T) {
	t.Parallel()

	for _, sport := range Sports() {
		if !IsKnownSport(sport) {
			t.Fatalf("expected %s to be known", sport)
		}
	}
	if IsKnownSport("cricket") {
		t.Fatal("expected cricket to be unknown")
	}
	if !IsKnownSport(" nfl ") {
		t.Fatal("expected surrounding whitespace to be tolerated")
	}
}
