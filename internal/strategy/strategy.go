package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/derekprior/leagueday/internal/league"
)

var (
	// ErrUnknownStrategy is returned by Get for a name it does not know.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrUnsupportedTeamCount means no rotation table exists for the team count.
	ErrUnsupportedTeamCount = errors.New("unsupported team count")
	// ErrTooFewTeams means fewer than two teams were given.
	ErrTooFewTeams = errors.New("at least two teams are required")
)

// Pairing is one match between two teams. Court order is slice order.
type Pairing struct {
	Team1 string
	Team2 string
}

// Round is the set of matches played at the same time, one per court.
type Round []Pairing

// Options configures a pairing run.
type Options struct {
	Quota        int // target matches per team
	Courts       int // matches per round
	RecentWindow int // opponents remembered per team by the greedy solver
	Attempts     int // greedy restarts; the best attempt is kept
	Rand         *rand.Rand
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Outcome is the result of a pairing run.
type Outcome struct {
	Strategy string
	Rounds   []Round
	Counts   map[string]int // matches per team, every input team present

	HelperMatches int // tier (a): straggler paired with a team at quota
	Rematches     int // tier (b): pairs scheduled more than once
	RelaxedRounds int // rounds that needed any relaxation
	Shortfall     int // total matches missing to reach quota
}

// Matches returns the number of matches across all rounds.
func (o *Outcome) Matches() int {
	n := 0
	for _, r := range o.Rounds {
		n += len(r)
	}
	return n
}

// Strategy turns an eligible team list into rounds of matches.
type Strategy interface {
	Name() string
	Pair(teams []league.Team, opts Options) (*Outcome, error)
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "rotation":
		return &FixedRotation{}, nil
	case "greedy":
		return &Greedy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Select resolves a configured strategy name for a pool of n teams. "auto"
// picks the rotation table when one fits the team count, quota and courts,
// and the greedy solver otherwise.
func Select(name string, n int, opts Options) (Strategy, error) {
	if name != "auto" {
		return Get(name)
	}
	if HasTable(n) && opts.Quota == RotationQuota && TableWidth(n) <= opts.Courts {
		return &FixedRotation{}, nil
	}
	return &Greedy{}, nil
}

func newOutcome(name string, teams []league.Team) *Outcome {
	counts := make(map[string]int, len(teams))
	for _, t := range teams {
		counts[t.Name] = 0
	}
	return &Outcome{Strategy: name, Counts: counts}
}

func checkTeams(teams []league.Team) error {
	if len(teams) < 2 {
		return ErrTooFewTeams
	}
	seen := make(map[string]bool, len(teams))
	for _, t := range teams {
		if t.Name == "" {
			return errors.New("team name must not be empty")
		}
		if seen[t.Name] {
			return fmt.Errorf("team %q listed twice", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}
