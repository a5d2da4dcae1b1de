package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/league"
)

// RosterSource supplies the team roster and absences. *store.Store satisfies it.
type RosterSource interface {
	Teams(ctx context.Context, day string) ([]league.Team, error)
	AbsencesOn(ctx context.Context, date time.Time) ([]league.Absence, error)
}

// Availability is the set of teams that play on a match date.
type Availability struct {
	Eligible []league.Team
	Absent   []string // teams of the league day with an absence, sorted
}

// Eligible returns the teams registered on day that have no absence on date.
// Roster order is preserved.
func Eligible(teams []league.Team, absences []league.Absence, date time.Time, day string) Availability {
	key := date.Format(config.DateLayout)
	away := make(map[string]bool)
	for _, a := range absences {
		if a.Date.Format(config.DateLayout) == key {
			away[a.TeamName] = true
		}
	}

	var av Availability
	for _, t := range teams {
		if t.Day != day {
			continue
		}
		if away[t.Name] {
			av.Absent = append(av.Absent, t.Name)
			continue
		}
		av.Eligible = append(av.Eligible, t)
	}
	sort.Strings(av.Absent)
	return av
}

// Resolve fetches the roster and absences for date and applies Eligible.
// Any fetch failure is reported as ErrDataUnavailable.
func Resolve(ctx context.Context, src RosterSource, date time.Time, day string) (Availability, error) {
	teams, err := src.Teams(ctx, day)
	if err != nil {
		return Availability{}, fmt.Errorf("%w: loading teams: %v", ErrDataUnavailable, err)
	}
	absences, err := src.AbsencesOn(ctx, date)
	if err != nil {
		return Availability{}, fmt.Errorf("%w: loading absences: %v", ErrDataUnavailable, err)
	}
	return Eligible(teams, absences, date, day), nil
}
