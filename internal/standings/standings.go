// Package standings aggregates approved results into a league table.
package standings

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/league"
)

const (
	winPoints  = 3
	drawPoints = 1
)

// Row is one team's line in the table.
type Row struct {
	Team     string
	Played   int
	Wins     int
	Losses   int
	Draws    int
	Scored   int
	Conceded int
	Points   int
}

// Diff returns scored minus conceded.
func (r Row) Diff() int {
	return r.Scored - r.Conceded
}

// Compute builds the table from approved results, sorted by points then name.
// Byes are ignored.
func Compute(results []league.Result) []Row {
	rows := make(map[string]*Row)
	row := func(team string) *Row {
		r, ok := rows[team]
		if !ok {
			r = &Row{Team: team}
			rows[team] = r
		}
		return r
	}

	for _, res := range results {
		if res.Team2 == "" {
			continue
		}
		home, away := row(res.Team1), row(res.Team2)
		home.Played++
		away.Played++
		home.Scored += res.Team1Score
		home.Conceded += res.Team2Score
		away.Scored += res.Team2Score
		away.Conceded += res.Team1Score

		switch res.Winner {
		case res.Team1:
			home.Wins++
			away.Losses++
		case res.Team2:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}
	}

	table := make([]Row, 0, len(rows))
	for _, r := range rows {
		r.Points = r.Wins*winPoints + r.Draws*drawPoints
		table = append(table, *r)
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].Team < table[j].Team
	})
	return table
}

// Format renders the table for the terminal.
func Format(table []Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-20s %3s %3s %3s %3s %4s %4s %4s %4s\n", "Team", "P", "W", "L", "D", "F", "A", "+/-", "Pts")
	for _, r := range table {
		fmt.Fprintf(&b, "  %-20s %3d %3d %3d %3d %4d %4d %+4d %4d\n",
			r.Team, r.Played, r.Wins, r.Losses, r.Draws, r.Scored, r.Conceded, r.Diff(), r.Points)
	}
	return b.String()
}

// Record is one approved match seen from a single team's side.
type Record struct {
	Date     time.Time
	Round    int
	Court    int
	Opponent string
	For      int
	Against  int
	Outcome  string // "W", "L" or "D"
}

// History turns team's approved results into records, keeping the order of
// results. Byes and results team did not play in are dropped.
func History(team string, results []league.Result) []Record {
	var out []Record
	for _, res := range results {
		if res.Team2 == "" {
			continue
		}
		rec := Record{Date: res.Date, Round: res.Round, Court: res.Court}
		switch team {
		case res.Team1:
			rec.Opponent, rec.For, rec.Against = res.Team2, res.Team1Score, res.Team2Score
		case res.Team2:
			rec.Opponent, rec.For, rec.Against = res.Team1, res.Team2Score, res.Team1Score
		default:
			continue
		}
		switch res.Winner {
		case team:
			rec.Outcome = "W"
		case rec.Opponent:
			rec.Outcome = "L"
		default:
			rec.Outcome = "D"
		}
		out = append(out, rec)
	}
	return out
}

// FormatHistory renders records for the terminal.
func FormatHistory(records []Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-10s %5s %5s  %-20s %7s %s\n", "Date", "Round", "Court", "Opponent", "Score", "Result")
	for _, r := range records {
		score := fmt.Sprintf("%d-%d", r.For, r.Against)
		fmt.Fprintf(&b, "  %-10s %5d %5d  %-20s %7s %s\n",
			r.Date.Format(config.DateLayout), r.Round, r.Court, r.Opponent, score, r.Outcome)
	}
	return b.String()
}
