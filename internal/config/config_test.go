package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfigYAML = `
database:
  path: "league.db"

league:
  match_quota: 6
  courts: 4
  small_pool_threshold: 8
  small_pool_courts: 3
  recent_window: 3
  strategy: greedy
  attempts: 10
  seed: 42
  forfeit_score: 1

days: [Monday, Wednesday]
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("database", func(t *testing.T) {
		if cfg.Database.Path != "league.db" {
			t.Errorf("database path = %q, want league.db", cfg.Database.Path)
		}
	})

	t.Run("league", func(t *testing.T) {
		l := cfg.League
		if l.MatchQuota != 6 {
			t.Errorf("match quota = %d, want 6", l.MatchQuota)
		}
		if l.Courts != 4 {
			t.Errorf("courts = %d, want 4", l.Courts)
		}
		if l.Strategy != StrategyGreedy {
			t.Errorf("strategy = %q, want greedy", l.Strategy)
		}
		if l.Attempts != 10 {
			t.Errorf("attempts = %d, want 10", l.Attempts)
		}
		if l.Seed == nil || *l.Seed != 42 {
			t.Errorf("seed = %v, want 42", l.Seed)
		}
	})

	t.Run("days", func(t *testing.T) {
		if len(cfg.Days) != 2 {
			t.Fatalf("days = %d, want 2", len(cfg.Days))
		}
		if !cfg.HasDay("Wednesday") {
			t.Error("expected Wednesday to be a league day")
		}
		if cfg.HasDay("Friday") {
			t.Error("Friday is not configured")
		}
	})
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := cfg.League
	if l.MatchQuota != 6 || l.Courts != 4 || l.SmallPoolThreshold != 8 || l.SmallPoolCourts != 3 {
		t.Errorf("unexpected league defaults: %+v", l)
	}
	if l.RecentWindow != 3 {
		t.Errorf("recent window = %d, want 3", l.RecentWindow)
	}
	if l.Strategy != StrategyAuto {
		t.Errorf("strategy = %q, want auto", l.Strategy)
	}
	if l.Seed != nil {
		t.Errorf("seed = %d, want unset", *l.Seed)
	}
	if l.ForfeitScore != 1 {
		t.Errorf("forfeit score = %d, want 1", l.ForfeitScore)
	}
	if len(cfg.Days) != 7 {
		t.Errorf("days = %d, want 7", len(cfg.Days))
	}
	if cfg.Database.Path != "leagueday.db" {
		t.Errorf("database path = %q, want leagueday.db", cfg.Database.Path)
	}
}

func TestExplicitZeroIsKept(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("league: {recent_window: 0, small_pool_threshold: 0}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := cfg.League
	if l.RecentWindow != 0 {
		t.Errorf("recent window = %d, want 0", l.RecentWindow)
	}
	if l.SmallPoolThreshold != 0 {
		t.Errorf("small pool threshold = %d, want 0", l.SmallPoolThreshold)
	}
	if got := l.CourtsFor(4); got != 4 {
		t.Errorf("CourtsFor(4) = %d, want 4 with the small pool rule off", got)
	}
	if l.MatchQuota != 6 || l.Attempts != 25 {
		t.Errorf("omitted fields lost their defaults: %+v", l)
	}
}

func TestCourtsFor(t *testing.T) {
	l := Default().League
	tests := []struct {
		teams int
		want  int
	}{
		{4, 3},
		{7, 3},
		{8, 4},
		{16, 4},
	}
	for _, tt := range tests {
		if got := l.CourtsFor(tt.teams); got != tt.want {
			t.Errorf("CourtsFor(%d) = %d, want %d", tt.teams, got, tt.want)
		}
	}

	t.Run("small pool courts never exceed courts", func(t *testing.T) {
		l := League{Courts: 2, SmallPoolThreshold: 8, SmallPoolCourts: 3}
		if got := l.CourtsFor(5); got != 2 {
			t.Errorf("CourtsFor(5) = %d, want 2", got)
		}
	})
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"negative quota", "league: {match_quota: -1}", "match_quota"},
		{"negative courts", "league: {courts: -2}", "courts"},
		{"unknown strategy", "league: {strategy: swiss}", "unknown strategy"},
		{"negative attempts", "league: {attempts: -1}", "attempts"},
		{"zero quota", "league: {match_quota: 0}", "match_quota"},
		{"zero forfeit score", "league: {forfeit_score: 0}", "forfeit_score"},
		{"duplicate day", "days: [Monday, Monday]", "listed twice"},
		{"empty day", `days: [Monday, ""]`, "empty name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFileEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LEAGUEDAY_DATABASE", filepath.Join(dir, "override.db"))

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.Database.Path != filepath.Join(dir, "override.db") {
		t.Errorf("database path = %q, want override", cfg.Database.Path)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-05-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Format(DateLayout) != "2026-05-04" {
		t.Errorf("date = %s", d)
	}
	if _, err := ParseDate("05/04/2026"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
