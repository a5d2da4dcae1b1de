package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/league"
	"github.com/derekprior/leagueday/internal/resolve"
	"github.com/derekprior/leagueday/internal/standings"
)

func newScoresCmd(configFile *string) *cobra.Command {
	scoresCmd := &cobra.Command{
		Use:   "scores",
		Short: "Submit, approve and resolve match scores",
	}

	var resolveDate string
	resolveCmd := &cobra.Command{
		Use:          "resolve",
		Short:        "Record forfeits for posted matches involving absent teams",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(*configFile, resolveDate)
		},
	}
	resolveCmd.Flags().StringVar(&resolveDate, "date", "", "Match date (YYYY-MM-DD)")
	resolveCmd.MarkFlagRequired("date")

	var submitter string
	submitCmd := &cobra.Command{
		Use:          "submit <match-id> <team1-score> <team2-score>",
		Short:        "Submit a score for a posted match",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(*configFile, submitter, args)
		},
	}
	submitCmd.Flags().StringVar(&submitter, "by", "", "Submitting team")
	submitCmd.MarkFlagRequired("by")

	var approveBy string
	approveCmd := &cobra.Command{
		Use:          "approve <match-id>",
		Short:        "Approve a submitted score",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApprove(*configFile, approveBy, args[0])
		},
	}
	approveCmd.Flags().StringVar(&approveBy, "by", "", "Team whose submission to approve")
	approveCmd.MarkFlagRequired("by")

	var listDate string
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List score submissions for a posted schedule",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScoresList(*configFile, listDate)
		},
	}
	listCmd.Flags().StringVar(&listDate, "date", "", "Match date (YYYY-MM-DD)")
	listCmd.MarkFlagRequired("date")

	scoresCmd.AddCommand(resolveCmd, submitCmd, approveCmd, listCmd)
	return scoresCmd
}

func newStandingsCmd(configFile *string) *cobra.Command {
	standingsCmd := &cobra.Command{
		Use:          "standings",
		Short:        "Print the league table from approved scores",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandings(*configFile)
		},
	}

	historyCmd := &cobra.Command{
		Use:          "history <team>",
		Short:        "Print a team's approved match history",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(*configFile, args[0])
		},
	}

	standingsCmd.AddCommand(historyCmd)
	return standingsCmd
}

func runResolve(configFile, dateStr string) error {
	date, err := config.ParseDate(dateStr)
	if err != nil {
		return err
	}
	cfg, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := resolve.New(s, cfg.League.ForfeitScore).Resolve(context.Background(), date, nil)
	if err != nil {
		return err
	}
	printReport(report)
	return nil
}

func runSubmit(configFile, submitter string, args []string) error {
	matchID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[0])
	}
	score1, err := strconv.Atoi(args[1])
	if err != nil || score1 < 0 {
		return fmt.Errorf("invalid score %q", args[1])
	}
	score2, err := strconv.Atoi(args[2])
	if err != nil || score2 < 0 {
		return fmt.Errorf("invalid score %q", args[2])
	}

	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()
	ctx := context.Background()

	m, err := s.Match(ctx, matchID)
	if err != nil {
		return err
	}
	if m.IsBye() {
		return fmt.Errorf("match %d is a bye", matchID)
	}
	if !m.Involves(submitter) {
		return fmt.Errorf("%s does not play in match %d (%s vs %s)", submitter, matchID, m.Team1, m.Team2)
	}

	winner := league.Draw
	switch {
	case score1 > score2:
		winner = m.Team1
	case score2 > score1:
		winner = m.Team2
	}
	inserted, err := s.UpsertSubmission(ctx, league.Submission{
		MatchID:     matchID,
		SubmittedBy: submitter,
		Team1Score:  score1,
		Team2Score:  score2,
		Winner:      winner,
	})
	if err != nil {
		return err
	}
	verb := "Updated"
	if inserted {
		verb = "Recorded"
	}
	fmt.Printf("✓ %s %s %d - %d %s (submitted by %s)\n", verb, m.Team1, score1, score2, m.Team2, submitter)
	return nil
}

func runApprove(configFile, submitter, matchArg string) error {
	matchID, err := strconv.ParseInt(matchArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q", matchArg)
	}
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ApproveSubmission(context.Background(), matchID, submitter); err != nil {
		return err
	}
	fmt.Printf("✓ Approved %s's score for match %d\n", submitter, matchID)
	return nil
}

func runScoresList(configFile, dateStr string) error {
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
	fmt.Printf("  %5s %5s %-20s %-20s %7s %-12s %s\n", "ID", "Round", "Team 1", "Team 2", "Score", "By", "Approved")
	for _, m := range matches {
		subs, err := s.Submissions(ctx, m.ID)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Printf("  %5d %5d %-20s %-20s %7s\n", m.ID, m.Round, m.Team1, m.Team2, "-")
			continue
		}
		for _, sub := range subs {
			approved := ""
			if sub.Approved {
				approved = "✓"
			}
			score := fmt.Sprintf("%d-%d", sub.Team1Score, sub.Team2Score)
			fmt.Printf("  %5d %5d %-20s %-20s %7s %-12s %s\n", m.ID, m.Round, m.Team1, m.Team2, score, sub.SubmittedBy, approved)
		}
	}
	return nil
}

func runStandings(configFile string) error {
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.ApprovedResults(context.Background())
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No approved results yet")
		return nil
	}
	fmt.Print(standings.Format(standings.Compute(results)))
	return nil
}

func runHistory(configFile, team string) error {
	_, s, err := openStore(configFile)
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.TeamResults(context.Background(), team)
	if err != nil {
		return err
	}
	records := standings.History(team, results)
	if len(records) == 0 {
		fmt.Printf("No approved matches for %s\n", team)
		return nil
	}
	fmt.Printf("%s\n", team)
	fmt.Print(standings.FormatHistory(records))
	return nil
}
