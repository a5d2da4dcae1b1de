package validator

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/excel"
	"github.com/derekprior/leagueday/internal/league"
	"github.com/derekprior/leagueday/internal/schedule"
	"github.com/derekprior/leagueday/internal/strategy"
)

var matchDay = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

func rotationMatches(t *testing.T, n int) []league.Match {
	t.Helper()
	teams := make([]league.Team, n)
	for i := range teams {
		teams[i] = league.Team{Name: fmt.Sprintf("Team %02d", i+1), Day: "Tuesday"}
	}
	out, err := (&strategy.FixedRotation{}).Pair(teams, strategy.Options{Quota: 6, Courts: 4})
	if err != nil {
		t.Fatalf("Pair() error: %v", err)
	}
	matches, err := schedule.Materialize(out, matchDay, "Tuesday")
	if err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}
	return matches
}

func writeWorkbook(t *testing.T, matches []league.Match) string {
	t.Helper()
	f, err := excel.Generate(matchDay, "Tuesday", matches, nil)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	path := t.TempDir() + "/schedule.xlsx"
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	return path
}

func countType(violations []Violation, typ string) int {
	n := 0
	for _, v := range violations {
		if v.Type == typ {
			n++
		}
	}
	return n
}

func hasMessage(violations []Violation, substr string) bool {
	for _, v := range violations {
		if strings.Contains(v.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateCleanSchedule(t *testing.T) {
	cfg := config.Default()
	for _, n := range []int{8, 12, 16} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			path := writeWorkbook(t, rotationMatches(t, n))
			violations, err := Validate(cfg, path)
			if err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if len(violations) != 0 {
				t.Errorf("expected no violations, got %v", violations)
			}
		})
	}
}

func TestValidateReportsRows(t *testing.T) {
	cfg := config.Default()
	cfg.League.MatchQuota = 1
	matches := []league.Match{
		{Round: 1, Court: 1, Team1: "Aces", Team2: "Blockers", Date: matchDay},
		{Round: 1, Court: 2, Team1: "Aces", Team2: "Diggers", Date: matchDay},
	}
	violations, err := Validate(cfg, writeWorkbook(t, matches))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	found := false
	for _, v := range violations {
		if strings.Contains(v.Message, "Aces plays more than once in round 1") {
			found = true
			if v.Row != 3 {
				t.Errorf("violation row = %d, want 3", v.Row)
			}
		}
	}
	if !found {
		t.Errorf("double booking not reported: %v", violations)
	}
}

func TestValidateMissingFile(t *testing.T) {
	if _, err := Validate(config.Default(), t.TempDir()+"/missing.xlsx"); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestValidateSkipsByeLines(t *testing.T) {
	cfg := config.Default()
	cfg.League.MatchQuota = 1
	matches := []league.Match{
		{Round: 1, Court: 1, Team1: "Aces", Team2: "Blockers", Date: matchDay},
		{Round: 2, Court: 1, Team1: "Diggers", Team2: "Setters", Date: matchDay},
		{Round: 2, Court: 2, Team1: "Spikers", Date: matchDay},
	}
	violations, err := Validate(cfg, writeWorkbook(t, matches))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if countType(violations, "error") != 0 {
		t.Errorf("unexpected errors: %v", violations)
	}
	// Spikers only has a bye.
	if !hasMessage(violations, "Spikers plays 0 of 1 matches") {
		t.Errorf("bye-only team not reported below quota: %v", violations)
	}
}

func TestCheck(t *testing.T) {
	m := func(round, court int, t1, t2 string) league.Match {
		return league.Match{Round: round, Court: court, Team1: t1, Team2: t2}
	}

	tests := []struct {
		name    string
		quota   int
		matches []league.Match
		typ     string
		message string
	}{
		{
			name:    "team plays itself",
			quota:   1,
			matches: []league.Match{m(1, 1, "Aces", "Aces")},
			typ:     "error",
			message: "Aces plays itself",
		},
		{
			name:    "team twice in a round",
			quota:   2,
			matches: []league.Match{m(1, 1, "Aces", "Blockers"), m(1, 2, "Aces", "Diggers")},
			typ:     "error",
			message: "Aces plays more than once in round 1",
		},
		{
			name:    "court above capacity",
			quota:   1,
			matches: []league.Match{m(1, 4, "Aces", "Blockers")},
			typ:     "error",
			message: "uses court 4 (courts 1-3 available)",
		},
		{
			name:    "court used twice",
			quota:   1,
			matches: []league.Match{m(1, 1, "Aces", "Blockers"), m(1, 1, "Diggers", "Setters")},
			typ:     "error",
			message: "two matches on court 1",
		},
		{
			name:  "team above quota plus one",
			quota: 1,
			matches: []league.Match{
				m(1, 1, "Aces", "Blockers"), m(2, 1, "Aces", "Diggers"), m(3, 1, "Aces", "Setters"),
			},
			typ:     "error",
			message: "Aces plays 3 matches (max 2)",
		},
		{
			name:  "two teams above quota",
			quota: 1,
			matches: []league.Match{
				m(1, 1, "Aces", "Blockers"), m(2, 1, "Aces", "Diggers"), m(3, 1, "Blockers", "Setters"),
			},
			typ:     "error",
			message: "2 teams play above quota 1: Aces, Blockers",
		},
		{
			name:    "rematch",
			quota:   2,
			matches: []league.Match{m(1, 1, "Aces", "Blockers"), m(2, 1, "Blockers", "Aces")},
			typ:     "warning",
			message: "Aces vs Blockers meet 2 times (rounds 1, 2)",
		},
		{
			name:    "below quota",
			quota:   2,
			matches: []league.Match{m(1, 1, "Aces", "Blockers")},
			typ:     "warning",
			message: "Aces plays 1 of 2 matches",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.League.MatchQuota = tt.quota
			violations := Check(cfg, tt.matches)
			for _, v := range violations {
				if v.Type == tt.typ && strings.Contains(v.Message, tt.message) {
					return
				}
			}
			t.Errorf("no %s containing %q in %v", tt.typ, tt.message, violations)
		})
	}
}

func TestCheckAllowsOneHelperMatch(t *testing.T) {
	cfg := config.Default()
	cfg.League.MatchQuota = 1
	matches := []league.Match{
		{Round: 1, Court: 1, Team1: "Aces", Team2: "Blockers"},
		{Round: 2, Court: 1, Team1: "Diggers", Team2: "Aces"},
	}
	if v := Check(cfg, matches); countType(v, "error") != 0 {
		t.Errorf("one team at quota + 1 should be allowed: %v", v)
	}
}
