package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/derekprior/leagueday/internal/config"
	"github.com/derekprior/leagueday/internal/store"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func setupLogger(verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// openStore loads the config and opens its database.
func openStore(configFlag string) (*config.Config, *store.Store, error) {
	configPath, err := resolveConfigPath(configFlag)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	s, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return cfg, s, nil
}

func main() {
	var configFile string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "leagueday",
		Short: "League day match scheduler",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	rootCmd.AddCommand(
		initCmd,
		newTeamsCmd(&configFile),
		newAbsencesCmd(&configFile),
		newScheduleCmd(&configFile),
		newScoresCmd(&configFile),
		newStandingsCmd(&configFile),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}
	if _, err := config.LoadFromBytes([]byte(configTemplate)); err != nil {
		return fmt.Errorf("starter config is invalid: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# League Day Configuration
# ========================
# This file defines the parameters for generating league day match schedules.

# The SQLite database holding teams, absences, posted schedules and scores.
# LEAGUEDAY_DATABASE (environment or a .env file next to this config)
# overrides this path.
database:
  path: leagueday.db

league:
  # Target number of matches per team on a match date.
  match_quota: 6

  # Courts available per round.
  courts: 4

  # Pools with fewer eligible teams than small_pool_threshold play on
  # small_pool_courts courts per round.
  small_pool_threshold: 8
  small_pool_courts: 3

  # The greedy solver avoids pairing a team with any of its last
  # recent_window opponents.
  recent_window: 3

  # "rotation" uses the precomputed balanced tables (4-16 teams, quota 6).
  # "greedy" builds rounds for any team count.
  # "auto" picks rotation when a table fits the pool and greedy otherwise.
  strategy: auto

  # Greedy restarts; the best attempt is kept.
  attempts: 25

  # Fix the random seed to make greedy schedules reproducible.
  # seed: 42

  # Score awarded to the present team when its opponent is absent.
  forfeit_score: 1

# League days teams can register for.
days: [Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday]
`
