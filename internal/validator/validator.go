package validator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/excel"
	"github.com/derekprior/leagueday/internal/league"
)

// Violation represents a constraint violation found during validation.
type Violation struct {
	Row     int    // worksheet row, 0 for in-memory schedules
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a schedule Excel file and checks it against the config rules.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	matches, err := readMatches(f)
	if err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}
	return check(cfg, matches), nil
}

// Check runs the same rules against an in-memory schedule for one date.
func Check(cfg *config.Config, matches []league.Match) []Violation {
	parsed := make([]parsedMatch, len(matches))
	for i, m := range matches {
		parsed[i] = parsedMatch{Match: m}
	}
	return check(cfg, parsed)
}

func check(cfg *config.Config, matches []parsedMatch) []Violation {
	var violations []Violation

	// Hard rules
	violations = append(violations, checkSelfPlay(matches)...)
	violations = append(violations, checkOncePerRound(matches)...)
	violations = append(violations, checkCourts(cfg, matches)...)
	violations = append(violations, checkQuotaCeiling(cfg, matches)...)

	// Guidelines
	violations = append(violations, checkRematches(matches)...)
	violations = append(violations, checkQuotaFloor(cfg, matches)...)

	return violations
}

type parsedMatch struct {
	Row int
	league.Match
}

func readMatches(f *excelize.File) ([]parsedMatch, error) {
	rows, err := f.GetRows(excel.ScheduleSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.ScheduleSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", excel.ScheduleSheet)
	}

	var matches []parsedMatch
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue
		}
		round, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		court, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue // bye line
		}

		m := league.Match{Round: round, Court: court, Team1: strings.TrimSpace(row[2])}
		if len(row) > 3 {
			if t2 := strings.TrimSpace(row[3]); t2 != excel.ByeLabel {
				m.Team2 = t2
			}
		}
		if len(row) > 4 && row[4] != "" {
			if d, err := config.ParseDate(row[4]); err == nil {
				m.Date = d
			}
		}
		if len(row) > 5 {
			m.Day = row[5]
		}
		matches = append(matches, parsedMatch{Row: i + 1, Match: m})
	}
	return matches, nil
}

func checkSelfPlay(matches []parsedMatch) []Violation {
	var violations []Violation
	for _, m := range matches {
		if m.Team1 == m.Team2 {
			violations = append(violations, Violation{
				Row:     m.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s plays itself in round %d", m.Team1, m.Round),
			})
		}
	}
	return violations
}

func checkOncePerRound(matches []parsedMatch) []Violation {
	type teamRound struct {
		team  string
		round int
	}
	seen := make(map[teamRound]bool)
	var violations []Violation
	for _, m := range matches {
		teams := []string{m.Team1}
		if !m.IsBye() && m.Team2 != m.Team1 {
			teams = append(teams, m.Team2)
		}
		for _, t := range teams {
			k := teamRound{t, m.Round}
			if seen[k] {
				violations = append(violations, Violation{
					Row:     m.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s plays more than once in round %d", t, m.Round),
				})
			}
			seen[k] = true
		}
	}
	return violations
}

func checkCourts(cfg *config.Config, matches []parsedMatch) []Violation {
	capacity := cfg.League.CourtsFor(len(teamCounts(matches)))

	type slot struct{ round, court int }
	used := make(map[slot]bool)
	var violations []Violation
	for _, m := range matches {
		if m.Court < 1 || m.Court > capacity {
			violations = append(violations, Violation{
				Row:     m.Row,
				Type:    "error",
				Message: fmt.Sprintf("round %d uses court %d (courts 1-%d available)", m.Round, m.Court, capacity),
			})
		}
		s := slot{m.Round, m.Court}
		if used[s] {
			violations = append(violations, Violation{
				Row:     m.Row,
				Type:    "error",
				Message: fmt.Sprintf("round %d has two matches on court %d", m.Round, m.Court),
			})
		}
		used[s] = true
	}
	return violations
}

func checkQuotaCeiling(cfg *config.Config, matches []parsedMatch) []Violation {
	quota := cfg.League.MatchQuota
	counts := teamCounts(matches)

	var violations []Violation
	var over []string
	for _, team := range sortedTeams(counts) {
		n := counts[team]
		if n > quota+1 {
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s plays %d matches (max %d)", team, n, quota+1),
			})
		}
		if n > quota {
			over = append(over, team)
		}
	}
	if len(over) > 1 {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("%d teams play above quota %d: %s", len(over), quota, strings.Join(over, ", ")),
		})
	}
	return violations
}

func checkQuotaFloor(cfg *config.Config, matches []parsedMatch) []Violation {
	quota := cfg.League.MatchQuota
	counts := teamCounts(matches)

	var violations []Violation
	for _, team := range sortedTeams(counts) {
		if n := counts[team]; n < quota {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s plays %d of %d matches", team, n, quota),
			})
		}
	}
	return violations
}

func checkRematches(matches []parsedMatch) []Violation {
	type matchup struct{ a, b string }
	rounds := make(map[matchup][]int)
	var order []matchup
	for _, m := range matches {
		if m.IsBye() || m.Team1 == m.Team2 {
			continue
		}
		a, b := m.Team1, m.Team2
		if a > b {
			a, b = b, a
		}
		k := matchup{a, b}
		if _, ok := rounds[k]; !ok {
			order = append(order, k)
		}
		rounds[k] = append(rounds[k], m.Round)
	}

	var violations []Violation
	for _, k := range order {
		r := rounds[k]
		if len(r) < 2 {
			continue
		}
		sort.Ints(r)
		parts := make([]string, len(r))
		for i, n := range r {
			parts[i] = strconv.Itoa(n)
		}
		violations = append(violations, Violation{
			Type:    "warning",
			Message: fmt.Sprintf("%s vs %s meet %d times (rounds %s)", k.a, k.b, len(r), strings.Join(parts, ", ")),
		})
	}
	return violations
}

// teamCounts returns non-bye matches per team; teams with only byes count zero.
func teamCounts(matches []parsedMatch) map[string]int {
	plain := make([]league.Match, len(matches))
	for i, m := range matches {
		plain[i] = m.Match
	}
	return excel.Counts(plain)
}

func sortedTeams(counts map[string]int) []string {
	teams := make([]string, 0, len(counts))
	for t := range counts {
		teams = append(teams, t)
	}
	sort.Strings(teams)
	return teams
}
