// Package resolve records forfeit scores for matches involving absent teams.
package resolve

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/league"
)

// Store is the persistence the resolver needs. *store.Store satisfies it.
type Store interface {
	PostedMatches(ctx context.Context, date time.Time) ([]league.Match, error)
	AbsencesOn(ctx context.Context, date time.Time) ([]league.Absence, error)
	UpsertSubmission(ctx context.Context, sub league.Submission) (bool, error)
}

// Skip is a match the resolver could not score.
type Skip struct {
	Match  league.Match
	Reason string
}

// Report lists what a resolution run did.
type Report struct {
	Created []league.Submission
	Updated []league.Submission
	Skipped []Skip
}

// Resolver writes system submissions for absentee matches.
type Resolver struct {
	store   Store
	forfeit int
}

// New returns a Resolver awarding forfeitScore to the present team.
func New(s Store, forfeitScore int) *Resolver {
	if forfeitScore < 1 {
		forfeitScore = 1
	}
	return &Resolver{store: s, forfeit: forfeitScore}
}

// Resolve scores every posted match on date that involves an absent team.
// When generated is non-empty only those matches are considered; ones
// involving an absent team and lacking an ID are first linked to their
// persisted counterpart. Re-running
// updates the earlier system submissions instead of adding new ones.
func (r *Resolver) Resolve(ctx context.Context, date time.Time, generated []league.Match) (*Report, error) {
	posted, err := r.store.PostedMatches(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading posted matches: %w", err)
	}
	absences, err := r.store.AbsencesOn(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading absences: %w", err)
	}
	absent := make(map[string]bool, len(absences))
	for _, a := range absences {
		absent[a.TeamName] = true
	}

	report := &Report{}
	matches := posted
	if len(generated) > 0 {
		var involved []league.Match
		for _, g := range generated {
			if absent[g.Team1] || absent[g.Team2] {
				involved = append(involved, g)
			}
		}
		matches, report.Skipped = Link(involved, posted)
	}

	logger := log.With().Str("date", date.Format(config.DateLayout)).Logger()
	for _, m := range matches {
		if !absent[m.Team1] && !absent[m.Team2] {
			continue
		}
		if m.IsBye() {
			report.Skipped = append(report.Skipped, Skip{Match: m, Reason: "bye has no opponent to forfeit to"})
			continue
		}
		sub := Forfeit(m, absent, r.forfeit)
		inserted, err := r.store.UpsertSubmission(ctx, sub)
		if err != nil {
			return report, fmt.Errorf("recording forfeit for match %d: %w", m.ID, err)
		}
		if inserted {
			report.Created = append(report.Created, sub)
		} else {
			report.Updated = append(report.Updated, sub)
		}
		logger.Debug().
			Int64("match_id", m.ID).
			Str("winner", sub.Winner).
			Bool("inserted", inserted).
			Msg("Recorded absentee result")
	}

	for _, s := range report.Skipped {
		logger.Warn().
			Int("round", s.Match.Round).
			Int("court", s.Match.Court).
			Str("team1", s.Match.Team1).
			Str("team2", s.Match.Team2).
			Msg("Skipped absentee resolution: " + s.Reason)
	}
	return report, nil
}

// Forfeit builds the approved system submission for a match with at least
// one absent team: the absent side scores 0 and the present side points. If
// both are absent the match is a 0-0 draw.
func Forfeit(m league.Match, absent map[string]bool, points int) league.Submission {
	sub := league.Submission{
		MatchID:     m.ID,
		SubmittedBy: league.SystemSubmitter,
		Approved:    true,
	}
	switch a1, a2 := absent[m.Team1], absent[m.Team2]; {
	case a1 && a2:
		sub.Winner = league.Draw
	case a1:
		sub.Team2Score = points
		sub.Winner = m.Team2
	default:
		sub.Team1Score = points
		sub.Winner = m.Team1
	}
	return sub
}

type slotKey struct {
	round, court int
}

// Link maps generated matches to persisted ones. Matches that already carry
// an ID are kept. Others match by round, court and pair, falling back to the
// pair alone when exactly one persisted match has it. Matches with no or an
// ambiguous counterpart are skipped.
func Link(generated, posted []league.Match) ([]league.Match, []Skip) {
	bySlot := make(map[slotKey]league.Match, len(posted))
	for _, p := range posted {
		bySlot[slotKey{p.Round, p.Court}] = p
	}

	var linked []league.Match
	var skipped []Skip
	for _, g := range generated {
		if g.ID != 0 {
			linked = append(linked, g)
			continue
		}
		if p, ok := bySlot[slotKey{g.Round, g.Court}]; ok && p.SamePair(g.Team1, g.Team2) {
			linked = append(linked, p)
			continue
		}

		var candidates []league.Match
		for _, p := range posted {
			if p.SamePair(g.Team1, g.Team2) {
				candidates = append(candidates, p)
			}
		}
		switch len(candidates) {
		case 1:
			linked = append(linked, candidates[0])
		case 0:
			skipped = append(skipped, Skip{Match: g, Reason: "no posted match for this pairing"})
		default:
			skipped = append(skipped, Skip{Match: g, Reason: fmt.Sprintf("%d posted matches share this pairing", len(candidates))})
		}
	}
	return linked, skipped
}
