package excel

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/league"
)

// Sheet names shared with the validator.
const (
	ScheduleSheet = "Schedule"
	CountsSheet   = "Match Counts"
	AbsentSheet   = "Absent"
)

// ByeLabel marks the per-round bye line and the missing opponent of a bye match.
const ByeLabel = "Bye"

// Generate creates a workbook for one match date: the schedule grouped by
// round, per-team match counts and the absent list.
func Generate(date time.Time, day string, matches []league.Match, absent []string) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeScheduleSheet(f, date, day, matches); err != nil {
		return nil, fmt.Errorf("writing schedule sheet: %w", err)
	}
	if err := writeCountsSheet(f, matches); err != nil {
		return nil, fmt.Errorf("writing counts sheet: %w", err)
	}
	if err := writeAbsentSheet(f, absent); err != nil {
		return nil, fmt.Errorf("writing absent sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

// Byes returns, per round, the teams that appear in the day's matches but do
// not play in that round, sorted by name. A bye match counts as not playing.
func Byes(matches []league.Match) map[int][]string {
	all := make(map[string]bool)
	playing := make(map[int]map[string]bool)
	for _, m := range matches {
		all[m.Team1] = true
		if !m.IsBye() {
			all[m.Team2] = true
		}
		if playing[m.Round] == nil {
			playing[m.Round] = make(map[string]bool)
		}
		if !m.IsBye() {
			playing[m.Round][m.Team1] = true
			playing[m.Round][m.Team2] = true
		}
	}

	byes := make(map[int][]string, len(playing))
	for round, p := range playing {
		var out []string
		for team := range all {
			if !p[team] {
				out = append(out, team)
			}
		}
		sort.Strings(out)
		byes[round] = out
	}
	return byes
}

// Counts returns the number of non-bye matches per team.
func Counts(matches []league.Match) map[string]int {
	counts := make(map[string]int)
	for _, m := range matches {
		if m.IsBye() {
			if _, ok := counts[m.Team1]; !ok {
				counts[m.Team1] = 0
			}
			continue
		}
		counts[m.Team1]++
		counts[m.Team2]++
	}
	return counts
}

// Rounds returns the round numbers present in matches, ascending.
func Rounds(matches []league.Match) []int {
	seen := make(map[int]bool)
	var rounds []int
	for _, m := range matches {
		if !seen[m.Round] {
			seen[m.Round] = true
			rounds = append(rounds, m.Round)
		}
	}
	sort.Ints(rounds)
	return rounds
}

func headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := headerStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}
}

func writeScheduleSheet(f *excelize.File, date time.Time, day string, matches []league.Match) error {
	sheet := ScheduleSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeHeaders(f, sheet, []string{"Round", "Court", "Team 1", "Team 2", "Date", "Day"})

	cellStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	byeStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial", Italic: true, Color: "#7F7F7F"},
	})

	sorted := make([]league.Match, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Round != sorted[j].Round {
			return sorted[i].Round < sorted[j].Round
		}
		return sorted[i].Court < sorted[j].Court
	})
	byes := Byes(sorted)

	row := 2
	for _, round := range Rounds(sorted) {
		for _, m := range sorted {
			if m.Round != round {
				continue
			}
			team2 := m.Team2
			if m.IsBye() {
				team2 = ByeLabel
			}
			f.SetCellValue(sheet, cellRef(1, row), m.Round)
			f.SetCellValue(sheet, cellRef(2, row), m.Court)
			f.SetCellValue(sheet, cellRef(3, row), m.Team1)
			f.SetCellValue(sheet, cellRef(4, row), team2)
			f.SetCellValue(sheet, cellRef(5, row), date.Format(config.DateLayout))
			f.SetCellValue(sheet, cellRef(6, row), day)
			if cellStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(6, row), cellStyle)
			}
			row++
		}
		if len(byes[round]) > 0 {
			f.SetCellValue(sheet, cellRef(1, row), round)
			f.SetCellValue(sheet, cellRef(2, row), ByeLabel)
			f.SetCellValue(sheet, cellRef(3, row), strings.Join(byes[round], ", "))
			if byeStyle != 0 {
				f.SetCellStyle(sheet, cellRef(1, row), cellRef(6, row), byeStyle)
			}
			row++
		}
	}

	// Set column widths (sized for Arial 16)
	widths := map[string]float64{"A": 10, "B": 10, "C": 28, "D": 28, "E": 16, "F": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func writeCountsSheet(f *excelize.File, matches []league.Match) error {
	sheet := CountsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeHeaders(f, sheet, []string{"Team", "Matches", "Byes"})

	counts := Counts(matches)
	byeRounds := make(map[string]int)
	for _, teams := range Byes(matches) {
		for _, t := range teams {
			byeRounds[t]++
		}
	}
	teams := make([]string, 0, len(counts))
	for t := range counts {
		teams = append(teams, t)
	}
	sort.Strings(teams)

	for i, t := range teams {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), t)
		f.SetCellValue(sheet, cellRef(2, row), counts[t])
		f.SetCellValue(sheet, cellRef(3, row), byeRounds[t])
	}
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "C", 12)
	return nil
}

func writeAbsentSheet(f *excelize.File, absent []string) error {
	sheet := AbsentSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeHeaders(f, sheet, []string{"Team"})
	for i, t := range absent {
		f.SetCellValue(sheet, cellRef(1, i+2), t)
	}
	f.SetColWidth(sheet, "A", "A", 28)
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
