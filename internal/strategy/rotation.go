package strategy

import (
	"fmt"
	"sort"

	"github.com/derekprior/leagueday/internal/league"
)

const (
	// RotationQuota is the number of matches every team plays in a rotation table.
	RotationQuota = 6

	minRotationTeams = 4
	maxRotationTeams = 16

	// maxRotationRounds bounds the table walk.
	maxRotationRounds = 16
)

// HasTable reports whether a rotation table exists for n teams.
func HasTable(n int) bool {
	_, ok := rotationTables[n]
	return ok
}

// TableWidth returns the most matches any round of the n-team table holds.
func TableWidth(n int) int {
	width := 0
	for _, round := range rotationTables[n] {
		if len(round) > width {
			width = len(round)
		}
	}
	return width
}

// FixedRotation applies a precomputed balanced rotation for 4 to 16 teams.
// Output is fully determined by the team ranking.
type FixedRotation struct{}

func (s *FixedRotation) Name() string { return "rotation" }

func (s *FixedRotation) Pair(teams []league.Team, opts Options) (*Outcome, error) {
	n := len(teams)
	table, ok := rotationTables[n]
	if !ok {
		return nil, fmt.Errorf("%w: %d teams (rotation tables cover %d-%d)",
			ErrUnsupportedTeamCount, n, minRotationTeams, maxRotationTeams)
	}
	if err := checkTeams(teams); err != nil {
		return nil, err
	}
	if opts.Quota != 0 && opts.Quota != RotationQuota {
		return nil, fmt.Errorf("rotation tables give every team %d matches, quota is %d", RotationQuota, opts.Quota)
	}
	if width := TableWidth(n); opts.Courts != 0 && width > opts.Courts {
		return nil, fmt.Errorf("the %d-team rotation needs %d courts, only %d available", n, width, opts.Courts)
	}
	if err := validateTable(n, table); err != nil {
		return nil, err
	}

	ranked := RankTeams(teams)
	out := newOutcome(s.Name(), teams)
	for ri, courts := range table {
		if ri >= maxRotationRounds {
			return nil, fmt.Errorf("the %d-team rotation exceeds %d rounds", n, maxRotationRounds)
		}
		round := make(Round, 0, len(courts))
		for _, pair := range courts {
			t1 := ranked[pair[0]-1].Name
			t2 := ranked[pair[1]-1].Name
			round = append(round, Pairing{Team1: t1, Team2: t2})
			out.Counts[t1]++
			out.Counts[t2]++
		}
		out.Rounds = append(out.Rounds, round)
	}
	return out, nil
}

// RankTeams returns a copy of teams ordered by rank ascending, missing ranks
// counting as zero, ties broken alphabetically.
func RankTeams(teams []league.Team) []league.Team {
	ranked := make([]league.Team, len(teams))
	copy(ranked, teams)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i].RankValue(), ranked[j].RankValue()
		if ri != rj {
			return ri < rj
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// validateTable checks that every position is in range and no position plays
// twice in a round.
func validateTable(n int, table [][][2]int) error {
	for ri, round := range table {
		seen := make(map[int]bool, 2*len(round))
		for _, pair := range round {
			if pair[0] == pair[1] {
				return fmt.Errorf("rotation table for %d teams: position %d plays itself in round %d", n, pair[0], ri+1)
			}
			for _, pos := range pair {
				if pos < 1 || pos > n {
					return fmt.Errorf("rotation table for %d teams: round %d references position %d", n, ri+1, pos)
				}
				if seen[pos] {
					return fmt.Errorf("rotation table for %d teams: position %d plays twice in round %d", n, pos, ri+1)
				}
				seen[pos] = true
			}
		}
	}
	return nil
}
