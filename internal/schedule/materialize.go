package schedule

import (
	"time"

	"github.com/derekprior/leagueday/internal/league"
	"github.com/derekprior/leagueday/internal/strategy"
)

// Materialize stamps engine rounds into unposted matches with 1-based round
// and court numbers.
func Materialize(out *strategy.Outcome, date time.Time, day string) ([]league.Match, error) {
	if out == nil || out.Matches() == 0 {
		return nil, ErrNothingGenerated
	}
	matches := make([]league.Match, 0, out.Matches())
	for ri, round := range out.Rounds {
		for ci, p := range round {
			matches = append(matches, league.Match{
				Round: ri + 1,
				Court: ci + 1,
				Team1: p.Team1,
				Team2: p.Team2,
				Date:  date,
				Day:   day,
			})
		}
	}
	return matches, nil
}
