package strategy

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/derekprior/leagueday/internal/league"
)

const (
	// searchBudget bounds the nodes explored when filling a single round.
	searchBudget = 20000

	// validatedTeams is the largest pool the greedy solver has been checked against.
	validatedTeams = 20
)

// Greedy builds rounds on the fly for any team count, honoring the match
// quota, court capacity, rematch avoidance and a recent-opponent window.
// When a round cannot be filled it relaxes constraints in two tiers: one
// helper match per run that lets a team at quota play one extra match, then
// rematches. It restarts Options.Attempts times and keeps the best run.
type Greedy struct{}

func (s *Greedy) Name() string { return "greedy" }

func (s *Greedy) Pair(teams []league.Team, opts Options) (*Outcome, error) {
	if err := checkTeams(teams); err != nil {
		return nil, err
	}
	if len(teams) > validatedTeams {
		log.Warn().Int("teams", len(teams)).Msg("Greedy scheduling above 20 teams is not validated")
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	if opts.Quota <= 0 {
		opts.Quota = RotationQuota
	}
	if opts.Courts <= 0 {
		opts.Courts = 1
	}
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	rng := opts.rng()

	var best *run
	for attempt := 0; attempt < attempts; attempt++ {
		candidate := newRun(names, opts)
		candidate.execute(rng)
		if best == nil || candidate.better(best) {
			best = candidate
		}
		log.Debug().
			Int("attempt", attempt+1).
			Int("shortfall", candidate.shortfall()).
			Int("rematches", candidate.rematches).
			Int("helpers", candidate.helpers).
			Msg("Greedy attempt finished")
		if best.perfect() {
			break
		}
	}
	return best.outcome(s.Name(), teams), nil
}

type pairKey struct {
	a, b string
}

func normalizePair(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// run is the state of one scheduling attempt.
type run struct {
	teams  []string
	quota  int
	courts int
	window int

	counts     map[string]int
	played     map[pairKey]int
	recent     map[string][]string // most recent opponent first
	helperUsed bool
	rounds     []Round

	helpers   int
	rematches int
	relaxed   int
}

func newRun(teams []string, opts Options) *run {
	r := &run{
		teams:  teams,
		quota:  opts.Quota,
		courts: opts.Courts,
		window: opts.RecentWindow,
		counts: make(map[string]int, len(teams)),
		played: make(map[pairKey]int),
		recent: make(map[string][]string, len(teams)),
	}
	for _, t := range teams {
		r.counts[t] = 0
		r.recent[t] = nil
	}
	return r
}

func (r *run) execute(rng *rand.Rand) {
	for {
		under := r.underQuota()
		if len(under) == 0 {
			return
		}
		// A lone straggler can only be served by the helper tier.
		if len(under) == 1 && r.helperUsed {
			return
		}

		order := r.priority(under, rng)
		used := make(map[string]bool)
		round := make(Round, 0, r.courts)
		for _, p := range r.fillRound(order) {
			r.commit(p)
			used[p.Team1] = true
			used[p.Team2] = true
			round = append(round, p)
		}

		filled := len(round)
		if len(round) < r.courts {
			round = r.helperMatch(round, order, used)
		}
		if len(round) < r.courts {
			round = r.rematchFill(round, order, used, true)
		}
		if len(round) < r.courts {
			round = r.rematchFill(round, order, used, false)
		}
		if len(round) > filled {
			r.relaxed++
		}

		if len(round) == 0 {
			return
		}
		r.rounds = append(r.rounds, round)
	}
}

func (r *run) underQuota() []string {
	var under []string
	for _, t := range r.teams {
		if r.counts[t] < r.quota {
			under = append(under, t)
		}
	}
	return under
}

// priority shuffles the candidates, then orders them by fewest matches played.
func (r *run) priority(under []string, rng *rand.Rand) []string {
	order := make([]string, len(under))
	copy(order, under)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	sort.SliceStable(order, func(i, j int) bool {
		return r.counts[order[i]] < r.counts[order[j]]
	})
	return order
}

// fresh reports whether a and b have never met and neither is in the other's
// recent-opponent window.
func (r *run) fresh(a, b string) bool {
	if r.played[normalizePair(a, b)] > 0 {
		return false
	}
	return !r.isRecent(a, b) && !r.isRecent(b, a)
}

func (r *run) isRecent(team, opponent string) bool {
	for _, o := range r.recent[team] {
		if o == opponent {
			return true
		}
	}
	return false
}

func (r *run) commit(p Pairing) {
	key := normalizePair(p.Team1, p.Team2)
	if r.played[key] > 0 {
		r.rematches++
	}
	r.played[key]++
	r.counts[p.Team1]++
	r.counts[p.Team2]++
	r.remember(p.Team1, p.Team2)
	r.remember(p.Team2, p.Team1)
}

func (r *run) remember(team, opponent string) {
	if r.window <= 0 {
		return
	}
	recent := append([]string{opponent}, r.recent[team]...)
	if len(recent) > r.window {
		recent = recent[:r.window]
	}
	r.recent[team] = recent
}

// fillRound walks the priority order pairing each unclaimed team with the
// first unclaimed fresh opponent. The walk is the first branch of a bounded
// depth-first search that backtracks only when a different choice would fill
// more courts.
func (r *run) fillRound(order []string) []Pairing {
	target := r.courts
	if half := len(order) / 2; half < target {
		target = half
	}

	var best, cur []Pairing
	used := make(map[string]bool, len(order))
	budget := searchBudget

	var search func(i int) bool
	search = func(i int) bool {
		if len(cur) > len(best) {
			best = append([]Pairing(nil), cur...)
		}
		if len(cur) == target || budget <= 0 {
			return true
		}
		budget--

		for i < len(order) && used[order[i]] {
			i++
		}
		if i >= len(order) {
			return false
		}
		free := 0
		for _, t := range order[i:] {
			if !used[t] {
				free++
			}
		}
		if len(cur)+free/2 <= len(best) {
			return false
		}

		t1 := order[i]
		used[t1] = true
		for _, t2 := range order[i+1:] {
			if used[t2] || !r.fresh(t1, t2) {
				continue
			}
			used[t2] = true
			cur = append(cur, Pairing{Team1: t1, Team2: t2})
			if search(i + 1) {
				return true
			}
			cur = cur[:len(cur)-1]
			used[t2] = false
		}
		// Leave t1 out of this round.
		done := search(i + 1)
		used[t1] = false
		return done
	}
	search(0)
	return best
}

// helperMatch is relaxation tier (a): pair an unclaimed straggler with an
// unclaimed team already at quota. Allowed once per run. When the pool's
// total appearances are even, every team can reach quota without it, so it
// is held back until a single team remains under quota.
func (r *run) helperMatch(round Round, order []string, used map[string]bool) Round {
	if r.helperUsed {
		return round
	}
	if len(r.teams)*r.quota%2 == 0 && len(r.underQuota()) > 1 {
		return round
	}
	for _, s := range order {
		if used[s] || r.counts[s] >= r.quota {
			continue
		}
		for _, h := range r.teams {
			if used[h] || h == s || r.counts[h] != r.quota || !r.fresh(s, h) {
				continue
			}
			p := Pairing{Team1: s, Team2: h}
			r.commit(p)
			used[s] = true
			used[h] = true
			r.helperUsed = true
			r.helpers++
			return append(round, p)
		}
	}
	return round
}

// rematchFill is relaxation tier (b): pair remaining unclaimed under-quota
// teams even if they have met. With respectWindow set, pairs inside the
// recent-opponent window are still refused.
func (r *run) rematchFill(round Round, order []string, used map[string]bool, respectWindow bool) Round {
	for i, t1 := range order {
		if len(round) >= r.courts {
			break
		}
		if used[t1] || r.counts[t1] >= r.quota {
			continue
		}
		for _, t2 := range order[i+1:] {
			if used[t2] || r.counts[t2] >= r.quota {
				continue
			}
			if respectWindow && (r.isRecent(t1, t2) || r.isRecent(t2, t1)) {
				continue
			}
			p := Pairing{Team1: t1, Team2: t2}
			r.commit(p)
			used[t1] = true
			used[t2] = true
			round = append(round, p)
			break
		}
	}
	return round
}

func (r *run) shortfall() int {
	short := 0
	for _, t := range r.teams {
		if n := r.counts[t]; n < r.quota {
			short += r.quota - n
		}
	}
	return short
}

func (r *run) perfect() bool {
	return r.shortfall() == 0 && r.rematches == 0 && r.helpers == 0
}

// better ranks attempts: least shortfall, then fewest rematches, then no
// helper match, then fewest rounds.
func (r *run) better(other *run) bool {
	if a, b := r.shortfall(), other.shortfall(); a != b {
		return a < b
	}
	if r.rematches != other.rematches {
		return r.rematches < other.rematches
	}
	if r.helpers != other.helpers {
		return r.helpers < other.helpers
	}
	return len(r.rounds) < len(other.rounds)
}

func (r *run) outcome(name string, teams []league.Team) *Outcome {
	out := newOutcome(name, teams)
	for t, n := range r.counts {
		out.Counts[t] = n
	}
	out.Rounds = r.rounds
	out.HelperMatches = r.helpers
	out.Rematches = r.rematches
	out.RelaxedRounds = r.relaxed
	out.Shortfall = r.shortfall()
	return out
}
