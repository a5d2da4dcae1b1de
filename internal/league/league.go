// Package league holds the domain types shared by the scheduler, the store
// and the reporting commands.
package league

import (
	"time"
)

// SystemSubmitter is the submitter recorded on scores synthesized for absent teams.
const SystemSubmitter = "system"

// Draw is the winner recorded when neither team wins.
const Draw = "Draw"

// Team is a team registered on a league day.
type Team struct {
	Name string
	Day  string
	Rank *float64 // optional strength score, lower ranks first
}

// RankValue returns the team's rank, treating a missing rank as zero.
func (t Team) RankValue() float64 {
	if t.Rank == nil {
		return 0
	}
	return *t.Rank
}

// Absence records that a team will not play on a date.
type Absence struct {
	ID       int64
	TeamName string
	Date     time.Time
}

// Match is one scheduled pairing on a court in a round.
type Match struct {
	ID     int64 // zero until persisted
	Round  int
	Court  int
	Team1  string
	Team2  string // empty for a bye
	Date   time.Time
	Day    string
	Posted bool
}

// IsBye reports whether the match has no opponent.
func (m Match) IsBye() bool {
	return m.Team2 == ""
}

// Involves reports whether team plays in the match.
func (m Match) Involves(team string) bool {
	return m.Team1 == team || (m.Team2 != "" && m.Team2 == team)
}

// SamePair reports whether the match is between a and b in either order.
func (m Match) SamePair(a, b string) bool {
	return (m.Team1 == a && m.Team2 == b) || (m.Team1 == b && m.Team2 == a)
}

// Submission is a team's reported result for a match.
type Submission struct {
	ID          int64
	MatchID     int64
	SubmittedBy string
	Team1Score  int
	Team2Score  int
	Winner      string
	Approved    bool
}

// Result is an approved submission joined with the match it scores.
type Result struct {
	MatchID    int64
	Date       time.Time
	Round      int
	Court      int
	Team1      string
	Team2      string
	Team1Score int
	Team2Score int
	Winner     string
}
