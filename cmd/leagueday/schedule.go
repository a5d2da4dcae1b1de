package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/excel"
	"github.com/derekprior/leagueday/internal/league"
	"github.com/derekprior/leagueday/internal/resolve"
	"github.com/derekprior/leagueday/internal/schedule"
	"github.com/derekprior/leagueday/internal/store"
	"github.com/derekprior/leagueday/internal/validator"
)

func newScheduleCmd(configFile *string) *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate, post, print and validate match date schedules",
	}

	var date, day, outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule for a match date without posting it",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(*configFile, date, day, outputFile)
		},
	}
	generateCmd.Flags().StringVar(&date, "date", "", "Match date (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&day, "day", "", "League day (default: weekday of the date)")
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Also write the schedule to an Excel file")
	generateCmd.MarkFlagRequired("date")

	var postDate, postDay, postOutput string
	var overwrite bool
	postCmd := &cobra.Command{
		Use:          "post",
		Short:        "Generate and post a schedule, then record absentee forfeits",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(*configFile, postDate, postDay, overwrite, postOutput)
		},
	}
	postCmd.Flags().StringVar(&postDate, "date", "", "Match date (YYYY-MM-DD)")
	postCmd.Flags().StringVar(&postDay, "day", "", "League day (default: weekday of the date)")
	postCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing schedule for the date")
	postCmd.Flags().StringVarP(&postOutput, "output", "o", "", "Also write the schedule to an Excel file")
	postCmd.MarkFlagRequired("date")

	var printDate, printOutput string
	printCmd := &cobra.Command{
		Use:          "print",
		Short:        "Print a posted schedule grouped by round with byes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(*configFile, printDate, printOutput)
		},
	}
	printCmd.Flags().StringVar(&printDate, "date", "", "Match date (YYYY-MM-DD)")
	printCmd.Flags().StringVarP(&printOutput, "output", "o", "", "Also write the schedule to an Excel file")
	printCmd.MarkFlagRequired("date")

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Validate an exported schedule against config rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(*configFile, args[0])
		},
	}

	var search string
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "Print every posted schedule grouped by date and round",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScheduleList(*configFile, search)
		},
	}
	listCmd.Flags().StringVar(&search, "search", "", "Only show dates with a matching team or day")

	scheduleCmd.AddCommand(generateCmd, postCmd, printCmd, listCmd, validateCmd)
	return scheduleCmd
}

// generate runs the pipeline and prints the summary. A partial result is
// returned with ErrIncomplete; other failures return no matches.
func generate(ctx context.Context, cfg *config.Config, s *store.Store, dateStr, day string) (*schedule.Result, error) {
	date, err := config.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	res, err := schedule.Generate(ctx, cfg, s, date, day)
	if res != nil {
		fmt.Print(res.Summary())
	}
	if err != nil && !errors.Is(err, schedule.ErrIncomplete) {
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n⚠ %s\n", err)
	}
	return res, err
}

func runGenerate(configFile, dateStr, day, outputPath string) error {
	cfg, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	res, genErr := generate(context.Background(), cfg, s, dateStr, day)
	if res == nil {
		return genErr
	}

	fmt.Println()
	printRounds(res.Matches)
	if outputPath != "" {
		if err := saveWorkbook(outputPath, res.Date, res.Day, res.Matches, res.Absent); err != nil {
			return err
		}
	}
	return genErr
}

func runPost(configFile, dateStr, day string, overwrite bool, outputPath string) error {
	cfg, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	res, genErr := generate(ctx, cfg, s, dateStr, day)
	if res == nil {
		return genErr
	}

	violations := validator.Check(cfg, res.Matches)
	for _, v := range violations {
		if v.Type == "error" {
			return fmt.Errorf("refusing to post: %s", v.Message)
		}
	}

	posting, err := s.PostSchedule(ctx, res.Date, res.Matches, overwrite)
	if errors.Is(err, store.ErrScheduleExists) {
		return fmt.Errorf("%w; pass --overwrite to replace it", err)
	}
	if err != nil {
		return fmt.Errorf("posting schedule: %w", err)
	}
	fmt.Printf("\n✓ Posted %d matches for %s", len(posting.Matches), res.Date.Format(config.DateLayout))
	if posting.Replaced > 0 {
		fmt.Printf(" (replaced %d)", posting.Replaced)
	}
	fmt.Println()

	report, err := resolve.New(s, cfg.League.ForfeitScore).Resolve(ctx, res.Date, res.Matches)
	if err != nil {
		return fmt.Errorf("resolving absentee matches: %w", err)
	}
	printReport(report)

	if outputPath != "" {
		if err := saveWorkbook(outputPath, res.Date, res.Day, posting.Matches, res.Absent); err != nil {
			return err
		}
	}
	return genErr
}

func runPrint(configFile, dateStr, outputPath string) error {
	date, err := config.ParseDate(dateStr)
	if err != nil {
		return err
	}
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	matches, err := s.PostedMatches(ctx, date)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no schedule posted for %s", dateStr)
	}
	absences, err := s.AbsencesOn(ctx, date)
	if err != nil {
		return err
	}
	var absent []string
	for _, a := range absences {
		absent = append(absent, a.TeamName)
	}

	day := matches[0].Day
	fmt.Printf("%s (%s)\n\n", dateStr, day)
	printRounds(matches)
	if len(absent) > 0 {
		fmt.Printf("\nAbsent: %s\n", strings.Join(absent, ", "))
	}

	if outputPath != "" {
		return saveWorkbook(outputPath, date, day, matches, absent)
	}
	return nil
}

func runScheduleList(configFile, search string) error {
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	dates, err := s.PostedDates(ctx)
	if err != nil {
		return err
	}
	search = strings.ToLower(search)
	shown := 0
	for _, date := range dates {
		matches, err := s.PostedMatches(ctx, date)
		if err != nil {
			return err
		}
		if !matchesSearch(matches, search) {
			continue
		}
		if shown > 0 {
			fmt.Println()
		}
		shown++
		fmt.Printf("%s (%s)\n", date.Format(config.DateLayout), matches[0].Day)
		printRounds(matches)
	}
	if shown == 0 {
		fmt.Println("No posted schedules")
	}
	return nil
}

// matchesSearch reports whether any match names a team or day containing
// the lower-cased query. An empty query matches everything.
func matchesSearch(matches []league.Match, query string) bool {
	if len(matches) == 0 {
		return false
	}
	if query == "" {
		return true
	}
	for _, m := range matches {
		for _, field := range []string{m.Team1, m.Team2, m.Day} {
			if strings.Contains(strings.ToLower(field), query) {
				return true
			}
		}
	}
	return false
}

func runValidate(configFile, schedulePath string) error {
	configPath, err := resolveConfigPath(configFile)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ Rule violation: %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Guideline violation: %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d guideline violations\n", errors, warnings)
	if errors > 0 {
		return fmt.Errorf("%d constraint violations found", errors)
	}
	return nil
}

func printRounds(matches []league.Match) {
	byes := excel.Byes(matches)
	for _, round := range excel.Rounds(matches) {
		fmt.Printf("Round %d\n", round)
		for _, m := range matches {
			if m.Round != round {
				continue
			}
			if m.IsBye() {
				fmt.Printf("  Court %d  %s (%s)\n", m.Court, m.Team1, excel.ByeLabel)
				continue
			}
			fmt.Printf("  Court %d  %s vs %s\n", m.Court, m.Team1, m.Team2)
		}
		if len(byes[round]) > 0 {
			fmt.Printf("  %s: %s\n", excel.ByeLabel, strings.Join(byes[round], ", "))
		}
	}
}

func printReport(r *resolve.Report) {
	if len(r.Created)+len(r.Updated)+len(r.Skipped) == 0 {
		fmt.Println("✓ No absentee matches to resolve")
		return
	}
	fmt.Printf("✓ Absentee results: %d created, %d updated\n", len(r.Created), len(r.Updated))
	for _, s := range r.Skipped {
		fmt.Printf("  ⚠ Skipped round %d court %d (%s vs %s): %s\n",
			s.Match.Round, s.Match.Court, s.Match.Team1, s.Match.Team2, s.Reason)
	}
}

func saveWorkbook(path string, date time.Time, day string, matches []league.Match, absent []string) error {
	f, err := excel.Generate(date, day, matches, absent)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("\n✓ Schedule saved to %s\n", path)
	return nil
}
