// Package schedule turns a league day's roster into a dated match draw.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/league"
	"github.com/derekprior/leagueday/internal/strategy"
)

var (
	// ErrDataUnavailable means the roster or absences could not be read.
	ErrDataUnavailable = errors.New("schedule data unavailable")
	// ErrNoEligibleTeams means every team of the day is absent or none are registered.
	ErrNoEligibleTeams = errors.New("no eligible teams")
	// ErrNotEnoughTeams means only one team is eligible.
	ErrNotEnoughTeams = errors.New("not enough teams to schedule")
	// ErrNothingGenerated means the engine produced no matches.
	ErrNothingGenerated = errors.New("no matches generated")
	// ErrIncomplete is returned with a partial Result when teams fall short of quota.
	ErrIncomplete = errors.New("schedule is incomplete")
)

// Result is the output of Generate. It is returned, possibly partial,
// alongside every error except ErrDataUnavailable.
type Result struct {
	Date     time.Time
	Day      string
	Strategy string
	Quota    int
	Courts   int

	Matches  []league.Match
	Eligible []league.Team
	Absent   []string
	Counts   map[string]int // matches per eligible team

	HelperMatches int
	Rematches     int
	RelaxedRounds int
	Shortfall     int
	Warnings      []string
}

// Rounds returns the number of rounds in the draw.
func (r *Result) Rounds() int {
	n := 0
	for _, m := range r.Matches {
		if m.Round > n {
			n = m.Round
		}
	}
	return n
}

// Generate resolves availability for date, pairs the eligible teams with the
// configured strategy and materializes the matches. An empty day defaults to
// the weekday of date.
func Generate(ctx context.Context, cfg *config.Config, src RosterSource, date time.Time, day string) (*Result, error) {
	if day == "" {
		day = date.Weekday().String()
	}
	if !cfg.HasDay(day) {
		return nil, fmt.Errorf("%q is not a configured league day", day)
	}

	av, err := Resolve(ctx, src, date, day)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Date:     date,
		Day:      day,
		Quota:    cfg.League.MatchQuota,
		Eligible: av.Eligible,
		Absent:   av.Absent,
		Counts:   make(map[string]int, len(av.Eligible)),
	}
	for _, t := range av.Eligible {
		res.Counts[t.Name] = 0
	}
	logger := log.With().Str("date", date.Format(config.DateLayout)).Str("day", day).Logger()
	logger.Info().Int("teams", len(av.Eligible)).Int("absent", len(av.Absent)).Msg("Resolved availability")

	switch len(av.Eligible) {
	case 0:
		return res, ErrNoEligibleTeams
	case 1:
		return res, fmt.Errorf("%w: only %s is available", ErrNotEnoughTeams, av.Eligible[0].Name)
	}

	res.Courts = cfg.League.CourtsFor(len(av.Eligible))
	opts := strategy.Options{
		Quota:        cfg.League.MatchQuota,
		Courts:       res.Courts,
		RecentWindow: cfg.League.RecentWindow,
		Attempts:     cfg.League.Attempts,
		Rand:         newRand(cfg.League.Seed),
	}
	strat, err := strategy.Select(cfg.League.Strategy, len(av.Eligible), opts)
	if err != nil {
		return res, err
	}
	res.Strategy = strat.Name()
	logger.Info().Str("strategy", res.Strategy).Int("courts", res.Courts).Msg("Pairing teams")

	out, err := strat.Pair(av.Eligible, opts)
	if err != nil {
		return res, fmt.Errorf("pairing with %s: %w", strat.Name(), err)
	}
	res.apply(out)

	res.Matches, err = Materialize(out, date, day)
	if err != nil {
		return res, err
	}
	if res.Shortfall > 0 {
		return res, fmt.Errorf("%w: %d matches short of quota", ErrIncomplete, res.Shortfall)
	}
	return res, nil
}

func newRand(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (r *Result) apply(out *strategy.Outcome) {
	for t, n := range out.Counts {
		r.Counts[t] = n
	}
	r.HelperMatches = out.HelperMatches
	r.Rematches = out.Rematches
	r.RelaxedRounds = out.RelaxedRounds
	r.Shortfall = out.Shortfall

	for _, t := range r.sortedTeams() {
		n := r.Counts[t]
		switch {
		case n > r.Quota:
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s plays %d matches (helper match, quota %d)", t, n, r.Quota))
		case n < r.Quota:
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s plays only %d of %d matches", t, n, r.Quota))
		}
	}
	if r.Rematches > 0 {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%d rematches scheduled", r.Rematches))
	}
}

func (r *Result) sortedTeams() []string {
	teams := make([]string, 0, len(r.Counts))
	for t := range r.Counts {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}

// Summary renders the per-team match-count table printed after every run.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match date: %s (%s)\n", r.Date.Format(config.DateLayout), r.Day)
	if r.Strategy != "" {
		fmt.Fprintf(&b, "Strategy: %s, %d matches over %d rounds on %d courts\n",
			r.Strategy, len(r.Matches), r.Rounds(), r.Courts)
	}

	fmt.Fprintf(&b, "\n  %-20s %7s\n", "Team", "Matches")
	for _, t := range r.sortedTeams() {
		fmt.Fprintf(&b, "  %-20s %7d\n", t, r.Counts[t])
	}
	for _, t := range r.Absent {
		fmt.Fprintf(&b, "  %-20s %7s\n", t, "absent")
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  ⚠ %s\n", w)
		}
	}
	return b.String()
}
