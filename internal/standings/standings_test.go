package standings

import (
	"strings"
	"testing"
	"time"

	"github.com/derekprior/leagueday/internal/league"
)

func TestCompute(t *testing.T) {
	results := []league.Result{
		{MatchID: 1, Team1: "Aces", Team2: "Blockers", Team1Score: 2, Team2Score: 1, Winner: "Aces"},
		{MatchID: 2, Team1: "Diggers", Team2: "Aces", Team1Score: 1, Team2Score: 0, Winner: "Diggers"},
		{MatchID: 3, Team1: "Blockers", Team2: "Diggers", Team1Score: 0, Team2Score: 0, Winner: league.Draw},
		{MatchID: 4, Team1: "Setters", Team2: "", Winner: "Setters"},
	}
	table := Compute(results)

	if len(table) != 3 {
		t.Fatalf("got %d rows, want 3 (byes ignored)", len(table))
	}

	want := []Row{
		{Team: "Diggers", Played: 2, Wins: 1, Draws: 1, Scored: 1, Conceded: 0, Points: 4},
		{Team: "Aces", Played: 2, Wins: 1, Losses: 1, Scored: 2, Conceded: 2, Points: 3},
		{Team: "Blockers", Played: 2, Losses: 1, Draws: 1, Scored: 1, Conceded: 2, Points: 1},
	}
	for i, w := range want {
		if table[i] != w {
			t.Errorf("row %d = %+v, want %+v", i, table[i], w)
		}
	}
}

func TestComputeTiesSortByName(t *testing.T) {
	results := []league.Result{
		{Team1: "Spikers", Team2: "Aces", Team1Score: 1, Winner: "Spikers"},
		{Team1: "Blockers", Team2: "Diggers", Team1Score: 1, Winner: "Blockers"},
	}
	table := Compute(results)
	var names []string
	for _, r := range table {
		names = append(names, r.Team)
	}
	if got := strings.Join(names, ","); got != "Blockers,Spikers,Aces,Diggers" {
		t.Errorf("order = %s", got)
	}
}

func TestComputeForfeitDraw(t *testing.T) {
	table := Compute([]league.Result{{Team1: "Aces", Team2: "Blockers", Winner: league.Draw}})
	for _, r := range table {
		if r.Points != 1 || r.Draws != 1 {
			t.Errorf("%s: %+v, want one draw worth 1 point", r.Team, r)
		}
	}
}

func TestFormat(t *testing.T) {
	out := Format([]Row{{Team: "Aces", Played: 1, Wins: 1, Scored: 2, Conceded: 1, Points: 3}})
	if !strings.Contains(out, "Pts") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Aces") || !strings.Contains(out, "  +1") {
		t.Errorf("missing row:\n%s", out)
	}
}

func TestHistory(t *testing.T) {
	day := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	results := []league.Result{
		{MatchID: 1, Date: day, Round: 1, Court: 1, Team1: "Aces", Team2: "Blockers", Team1Score: 2, Team2Score: 1, Winner: "Aces"},
		{MatchID: 2, Date: day, Round: 1, Court: 2, Team1: "Diggers", Team2: "Setters", Team1Score: 1, Team2Score: 0, Winner: "Diggers"},
		{MatchID: 3, Date: day, Round: 2, Court: 1, Team1: "Diggers", Team2: "Aces", Team1Score: 3, Team2Score: 0, Winner: "Diggers"},
		{MatchID: 4, Date: day, Round: 3, Court: 1, Team1: "Aces", Team2: "Setters", Winner: league.Draw},
		{MatchID: 5, Date: day, Round: 4, Court: 1, Team1: "Aces", Team2: "", Winner: "Aces"},
	}

	got := History("Aces", results)
	want := []Record{
		{Date: day, Round: 1, Court: 1, Opponent: "Blockers", For: 2, Against: 1, Outcome: "W"},
		{Date: day, Round: 2, Court: 1, Opponent: "Diggers", For: 0, Against: 3, Outcome: "L"},
		{Date: day, Round: 3, Court: 1, Opponent: "Setters", Outcome: "D"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("record %d = %+v, want %+v", i, got[i], w)
		}
	}

	out := FormatHistory(got)
	if !strings.Contains(out, "2026-03-03") || !strings.Contains(out, "0-3") {
		t.Errorf("unexpected history output:\n%s", out)
	}
	if len(History("Nobody", results)) != 0 {
		t.Error("a team with no matches has no history")
	}
}
