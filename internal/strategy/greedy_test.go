package strategy

import (
	"fmt"
	"math/rand"
	"testing"
)

func greedyOptions(quota, courts int, seed int64) Options {
	return Options{
		Quota:        quota,
		Courts:       courts,
		RecentWindow: 3,
		Attempts:     25,
		Rand:         rand.New(rand.NewSource(seed)),
	}
}

func TestGreedyEightTeams(t *testing.T) {
	out, err := (&Greedy{}).Pair(makeTeams(8), greedyOptions(6, 4, 1))
	if err != nil {
		t.Fatalf("Pair() error: %v", err)
	}
	checkRounds(t, out, 4)

	t.Run("24 matches over 6 full rounds", func(t *testing.T) {
		if got := out.Matches(); got != 24 {
			t.Errorf("matches = %d, want 24", got)
		}
		if len(out.Rounds) != 6 {
			t.Errorf("rounds = %d, want 6", len(out.Rounds))
		}
	})

	t.Run("every team plays exactly 6", func(t *testing.T) {
		for team, c := range out.Counts {
			if c != 6 {
				t.Errorf("%s plays %d, want 6", team, c)
			}
		}
	})

	t.Run("no rematches or relaxation", func(t *testing.T) {
		if out.Rematches != 0 || out.HelperMatches != 0 || out.Shortfall != 0 {
			t.Errorf("rematches=%d helpers=%d shortfall=%d", out.Rematches, out.HelperMatches, out.Shortfall)
		}
		for key, c := range pairCounts(out) {
			if c > 1 {
				t.Errorf("%s vs %s meet %d times", key.a, key.b, c)
			}
		}
	})
}

func TestGreedyOddStraggler(t *testing.T) {
	// 9 teams x quota 5 is odd: one team must play an extra match.
	out, err := (&Greedy{}).Pair(makeTeams(9), greedyOptions(5, 4, 3))
	if err != nil {
		t.Fatalf("Pair() error: %v", err)
	}
	checkRounds(t, out, 4)

	if out.HelperMatches != 1 {
		t.Errorf("helper matches = %d, want 1", out.HelperMatches)
	}
	over := 0
	for team, c := range out.Counts {
		switch c {
		case 5:
		case 6:
			over++
		default:
			t.Errorf("%s plays %d, want 5 or 6", team, c)
		}
	}
	if over != 1 {
		t.Errorf("%d teams reached 6, want exactly 1", over)
	}
}

func TestGreedyNineTeamsQuotaSix(t *testing.T) {
	out, err := (&Greedy{}).Pair(makeTeams(9), greedyOptions(6, 4, 5))
	if err != nil {
		t.Fatalf("Pair() error: %v", err)
	}
	checkRounds(t, out, 4)

	over := 0
	for team, c := range out.Counts {
		if c < 6 {
			t.Errorf("%s plays %d, below quota", team, c)
		}
		if c > 7 {
			t.Errorf("%s plays %d, above quota + 1", team, c)
		}
		if c == 7 {
			over++
		}
	}
	if over > 1 {
		t.Errorf("%d teams above quota, at most 1 allowed", over)
	}
	if out.Rematches != 0 {
		t.Errorf("rematches = %d, want 0", out.Rematches)
	}
}

func TestGreedyInvariants(t *testing.T) {
	for n := 2; n <= 20; n++ {
		for seed := int64(1); seed <= 5; seed++ {
			t.Run(fmt.Sprintf("%d teams seed %d", n, seed), func(t *testing.T) {
				courts := 4
				if n < 8 {
					courts = 3
				}
				opts := greedyOptions(6, courts, seed)
				opts.Attempts = 3
				out, err := (&Greedy{}).Pair(makeTeams(n), opts)
				if err != nil {
					t.Fatalf("Pair() error: %v", err)
				}
				checkRounds(t, out, courts)

				total := 0
				for team, c := range out.Counts {
					total += c
					if c > 7 {
						t.Errorf("%s plays %d", team, c)
					}
				}
				if total != 2*out.Matches() {
					t.Errorf("counts sum to %d, want %d", total, 2*out.Matches())
				}
				if len(out.Counts) != n {
					t.Errorf("counts cover %d teams, want %d", len(out.Counts), n)
				}

				repeats := 0
				for _, c := range pairCounts(out) {
					repeats += c - 1
				}
				if repeats != out.Rematches {
					t.Errorf("repeated pairings = %d, reported rematches = %d", repeats, out.Rematches)
				}
				if out.HelperMatches > 1 {
					t.Errorf("helper matches = %d, at most 1", out.HelperMatches)
				}
			})
		}
	}
}

func TestGreedySmallPoolsFallBackToRematches(t *testing.T) {
	tests := []struct {
		teams int
		want  int // matches
	}{
		{2, 6},
		{3, 9},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d teams", tt.teams), func(t *testing.T) {
			out, err := (&Greedy{}).Pair(makeTeams(tt.teams), greedyOptions(6, 3, 1))
			if err != nil {
				t.Fatalf("Pair() error: %v", err)
			}
			checkRounds(t, out, 3)
			if got := out.Matches(); got != tt.want {
				t.Errorf("matches = %d, want %d", got, tt.want)
			}
			if out.Rematches == 0 {
				t.Error("expected rematches for a pool with fewer opponents than the quota")
			}
			if out.Shortfall != 0 {
				t.Errorf("shortfall = %d, want 0", out.Shortfall)
			}
		})
	}
}

func TestGreedyTooFewTeams(t *testing.T) {
	if _, err := (&Greedy{}).Pair(makeTeams(1), greedyOptions(6, 4, 1)); err == nil {
		t.Error("expected error for a single team")
	}
}

func TestRecentWindow(t *testing.T) {
	r := newRun([]string{"A", "B", "C", "D", "E"}, Options{Quota: 6, Courts: 2, RecentWindow: 3})
	for _, opp := range []string{"B", "C", "D", "E"} {
		r.commit(Pairing{Team1: "A", Team2: opp})
	}

	if got := fmt.Sprint(r.recent["A"]); got != "[E D C]" {
		t.Errorf("recent[A] = %s, want [E D C]", got)
	}
	if r.isRecent("A", "B") {
		t.Error("B should have left A's window")
	}
	if !r.isRecent("B", "A") {
		t.Error("A should still be in B's window")
	}
	if r.fresh("A", "B") {
		t.Error("A and B have played; pair must not be fresh")
	}
	if !r.fresh("B", "C") {
		t.Error("B and C have never played")
	}
}

func TestFillRoundBacktracks(t *testing.T) {
	// First-fit pairs A-B and strands C and D, who have already met.
	r := newRun([]string{"A", "B", "C", "D"}, Options{Quota: 6, Courts: 2, RecentWindow: 0})
	r.played[normalizePair("C", "D")] = 1

	round := r.fillRound([]string{"A", "B", "C", "D"})
	if len(round) != 2 {
		t.Fatalf("filled %d courts, want 2: %v", len(round), round)
	}
	for _, p := range round {
		if normalizePair(p.Team1, p.Team2) == normalizePair("C", "D") {
			t.Errorf("round reuses played pair C-D: %v", round)
		}
	}
}

func TestHelperMatchOncePerRun(t *testing.T) {
	r := newRun([]string{"A", "B", "C"}, Options{Quota: 1, Courts: 2})
	r.commit(Pairing{Team1: "A", Team2: "B"})

	used := map[string]bool{}
	round := r.helperMatch(nil, []string{"C"}, used)
	if len(round) != 1 {
		t.Fatalf("helper round = %v, want one match", round)
	}
	if r.counts["C"] != 1 {
		t.Errorf("straggler C has %d matches, want 1", r.counts["C"])
	}
	if !r.helperUsed {
		t.Error("helper flag not set")
	}

	again := r.helperMatch(nil, []string{"C"}, map[string]bool{})
	if len(again) != 0 {
		t.Errorf("second helper match allowed: %v", again)
	}
}

func TestHelperMatchHeldBackInEvenPools(t *testing.T) {
	// 4 teams x quota 1 is even: A-B at quota, C and D still to play.
	r := newRun([]string{"A", "B", "C", "D"}, Options{Quota: 1, Courts: 2})
	r.commit(Pairing{Team1: "A", Team2: "B"})
	r.played[normalizePair("C", "D")] = 1

	round := r.helperMatch(nil, []string{"C", "D"}, map[string]bool{})
	if len(round) != 0 {
		t.Errorf("helper match used with two teams under quota: %v", round)
	}
	if r.helperUsed {
		t.Error("helper flag set")
	}

	// Once only C remains under quota the helper is available again.
	r.counts["D"] = 1
	round = r.helperMatch(nil, []string{"C"}, map[string]bool{})
	if len(round) != 1 {
		t.Fatalf("helper round = %v, want one match", round)
	}
	if r.helpers != 1 {
		t.Errorf("helpers = %d, want 1", r.helpers)
	}
}
