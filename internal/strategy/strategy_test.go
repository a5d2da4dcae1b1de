package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/derekprior/leagueday/internal/league"
)

func makeTeams(n int) []league.Team {
	teams := make([]league.Team, n)
	for i := range teams {
		teams[i] = league.Team{Name: fmt.Sprintf("Team %02d", i+1), Day: "Tuesday"}
	}
	return teams
}

func rank(v float64) *float64 { return &v }

// checkRounds fails the test if a team plays twice in a round, plays itself,
// or a round holds more matches than courts.
func checkRounds(t *testing.T, out *Outcome, courts int) {
	t.Helper()
	for ri, round := range out.Rounds {
		if courts > 0 && len(round) > courts {
			t.Errorf("round %d has %d matches, capacity %d", ri+1, len(round), courts)
		}
		seen := make(map[string]bool)
		for _, p := range round {
			if p.Team1 == p.Team2 {
				t.Errorf("round %d: %s plays itself", ri+1, p.Team1)
			}
			for _, team := range []string{p.Team1, p.Team2} {
				if seen[team] {
					t.Errorf("round %d: %s plays twice", ri+1, team)
				}
				seen[team] = true
			}
		}
	}
}

func pairCounts(out *Outcome) map[pairKey]int {
	counts := make(map[pairKey]int)
	for _, round := range out.Rounds {
		for _, p := range round {
			counts[normalizePair(p.Team1, p.Team2)]++
		}
	}
	return counts
}

func TestGet(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"rotation", "rotation"},
		{"greedy", "greedy"},
	}
	for _, tt := range tests {
		s, err := Get(tt.name)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", tt.name, err)
		}
		if s.Name() != tt.want {
			t.Errorf("Get(%q).Name() = %q", tt.name, s.Name())
		}
	}

	if _, err := Get("swiss"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Get(swiss) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestSelect(t *testing.T) {
	standard := Options{Quota: 6, Courts: 4}
	tests := []struct {
		name   string
		config string
		teams  int
		opts   Options
		want   string
	}{
		{"auto with table", "auto", 8, standard, "rotation"},
		{"auto smallest table", "auto", 4, standard, "rotation"},
		{"auto largest table", "auto", 16, standard, "rotation"},
		{"auto above tables", "auto", 17, standard, "greedy"},
		{"auto below tables", "auto", 3, standard, "greedy"},
		{"auto other quota", "auto", 8, Options{Quota: 5, Courts: 4}, "greedy"},
		{"auto too few courts", "auto", 12, Options{Quota: 6, Courts: 3}, "greedy"},
		{"auto reduced courts fit small table", "auto", 7, Options{Quota: 6, Courts: 3}, "rotation"},
		{"explicit greedy", "greedy", 8, standard, "greedy"},
		{"explicit rotation", "rotation", 20, standard, "rotation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Select(tt.config, tt.teams, tt.opts)
			if err != nil {
				t.Fatalf("Select() error: %v", err)
			}
			if s.Name() != tt.want {
				t.Errorf("Select(%q, %d) = %s, want %s", tt.config, tt.teams, s.Name(), tt.want)
			}
		})
	}
}

func TestCheckTeams(t *testing.T) {
	if err := checkTeams(makeTeams(1)); !errors.Is(err, ErrTooFewTeams) {
		t.Errorf("one team: error = %v, want ErrTooFewTeams", err)
	}
	dup := []league.Team{{Name: "Aces"}, {Name: "Aces"}}
	if err := checkTeams(dup); err == nil {
		t.Error("expected error for duplicate team names")
	}
	blank := []league.Team{{Name: "Aces"}, {Name: ""}}
	if err := checkTeams(blank); err == nil {
		t.Error("expected error for empty team name")
	}
}

func TestOutcomeMatches(t *testing.T) {
	out := &Outcome{Rounds: []Round{
		{{"A", "B"}, {"C", "D"}},
		{{"A", "C"}},
	}}
	if got := out.Matches(); got != 3 {
		t.Errorf("Matches() = %d, want 3", got)
	}
}

func TestPairingIsDeterministicWithSeed(t *testing.T) {
	teams := makeTeams(11)
	opts := func() Options {
		return Options{Quota: 6, Courts: 4, RecentWindow: 3, Attempts: 5, Rand: rand.New(rand.NewSource(7))}
	}
	a, err := (&Greedy{}).Pair(teams, opts())
	if err != nil {
		t.Fatal(err)
	}
	b, err := (&Greedy{}).Pair(teams, opts())
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Rounds) != len(b.Rounds) {
		t.Fatalf("rounds differ: %d vs %d", len(a.Rounds), len(b.Rounds))
	}
	for ri := range a.Rounds {
		if fmt.Sprint(a.Rounds[ri]) != fmt.Sprint(b.Rounds[ri]) {
			t.Errorf("round %d differs: %v vs %v", ri+1, a.Rounds[ri], b.Rounds[ri])
		}
	}
}
