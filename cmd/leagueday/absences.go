package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/league"
)

func newAbsencesCmd(configFile *string) *cobra.Command {
	absencesCmd := &cobra.Command{
		Use:   "absences",
		Short: "Record teams that will miss a match date",
	}

	addCmd := &cobra.Command{
		Use:          "add <team> <date>",
		Short:        "Mark a team absent on a date (YYYY-MM-DD)",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsence(*configFile, args[0], args[1], true)
		},
	}

	removeCmd := &cobra.Command{
		Use:          "remove <team> <date>",
		Short:        "Clear a team's absence on a date",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsence(*configFile, args[0], args[1], false)
		},
	}

	var date string
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List absences, optionally for one date",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbsencesList(*configFile, date)
		},
	}
	listCmd.Flags().StringVar(&date, "date", "", "Match date (YYYY-MM-DD)")

	absencesCmd.AddCommand(addCmd, listCmd, removeCmd)
	return absencesCmd
}

func runAbsence(configFile, team, dateStr string, add bool) error {
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
	if add {
		if err := s.AddAbsence(ctx, team, date); err != nil {
			return err
		}
		fmt.Printf("✓ %s marked absent on %s\n", team, dateStr)
		return nil
	}
	if err := s.RemoveAbsence(ctx, team, date); err != nil {
		return err
	}
	fmt.Printf("✓ %s no longer absent on %s\n", team, dateStr)
	return nil
}

func runAbsencesList(configFile, dateStr string) error {
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	var absences []league.Absence
	if dateStr == "" {
		absences, err = s.Absences(ctx)
	} else {
		date, perr := config.ParseDate(dateStr)
		if perr != nil {
			return perr
		}
		absences, err = s.AbsencesOn(ctx, date)
	}
	if err != nil {
		return err
	}

	if len(absences) == 0 {
		fmt.Println("No absences recorded")
		return nil
	}
	fmt.Printf("  %-12s %s\n", "Date", "Team")
	for _, a := range absences {
		fmt.Printf("  %-12s %s\n", a.Date.Format(config.DateLayout), a.TeamName)
	}
	return nil
}
