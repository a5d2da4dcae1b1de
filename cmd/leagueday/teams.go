package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/derekprior/leagueday/internal/league"
	"github.com/derekprior/leagueday/internal/strategy"
)

func newTeamsCmd(configFile *string) *cobra.Command {
	teamsCmd := &cobra.Command{
		Use:   "teams",
		Short: "Manage the team roster",
	}

	var day string
	var rank float64
	addCmd := &cobra.Command{
		Use:          "add <name>",
		Short:        "Register a team on a league day, or update it",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := league.Team{Name: args[0], Day: day}
			if cmd.Flags().Changed("rank") {
				t.Rank = &rank
			}
			return runTeamsAdd(*configFile, t)
		},
	}
	addCmd.Flags().StringVar(&day, "day", "", "League day the team plays on")
	addCmd.Flags().Float64Var(&rank, "rank", 0, "Strength rank; lower ranks are listed first")
	addCmd.MarkFlagRequired("day")

	var listDay string
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List teams in rank order",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamsList(*configFile, listDay)
		},
	}
	listCmd.Flags().StringVar(&listDay, "day", "", "Only list teams of this league day")

	removeCmd := &cobra.Command{
		Use:          "remove <name>",
		Short:        "Remove a team and its absences",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTeamsRemove(*configFile, args[0])
		},
	}

	teamsCmd.AddCommand(addCmd, listCmd, removeCmd)
	return teamsCmd
}

func runTeamsAdd(configFile string, t league.Team) error {
	cfg, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	if !cfg.HasDay(t.Day) {
		return fmt.Errorf("%q is not a configured league day (days: %v)", t.Day, cfg.Days)
	}
	if err := s.UpsertTeam(context.Background(), t); err != nil {
		return err
	}
	fmt.Printf("✓ %s plays on %s\n", t.Name, t.Day)
	return nil
}

func runTeamsList(configFile, day string) error {
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	teams, err := s.Teams(context.Background(), day)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		fmt.Println("No teams registered")
		return nil
	}

	fmt.Printf("  %-20s %-10s %6s\n", "Team", "Day", "Rank")
	for _, t := range strategy.RankTeams(teams) {
		rank := "-"
		if t.Rank != nil {
			rank = fmt.Sprintf("%g", *t.Rank)
		}
		fmt.Printf("  %-20s %-10s %6s\n", t.Name, t.Day, rank)
	}
	return nil
}

func runTeamsRemove(configFile, name string) error {
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteTeam(context.Background(), name); err != nil {
		return err
	}
	fmt.Printf("✓ Removed %s\n", name)
	return nil
}
