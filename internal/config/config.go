package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DateLayout is the calendar date format used for match and absence dates.
const DateLayout = "2006-01-02"

// Strategy names accepted in league.strategy.
const (
	StrategyAuto     = "auto"
	StrategyRotation = "rotation"
	StrategyGreedy   = "greedy"
)

// ParseDate parses a calendar date in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

type Database struct {
	Path string `yaml:"path"`
}

// League holds the scheduling parameters for a league day.
type League struct {
	MatchQuota         int    `yaml:"match_quota"`
	Courts             int    `yaml:"courts"`
	SmallPoolThreshold int    `yaml:"small_pool_threshold"`
	SmallPoolCourts    int    `yaml:"small_pool_courts"`
	RecentWindow       int    `yaml:"recent_window"`
	Strategy           string `yaml:"strategy"`
	Attempts           int    `yaml:"attempts"`
	Seed               *int64 `yaml:"seed"`
	ForfeitScore       int    `yaml:"forfeit_score"`
}

// CourtsFor returns the court capacity for an eligible pool of the given size.
func (l League) CourtsFor(teams int) int {
	if l.SmallPoolThreshold > 0 && teams < l.SmallPoolThreshold && l.SmallPoolCourts > 0 && l.SmallPoolCourts < l.Courts {
		return l.SmallPoolCourts
	}
	return l.Courts
}

type Config struct {
	Database Database `yaml:"database"`
	League   League   `yaml:"league"`
	Days     []string `yaml:"days"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{
		League: League{
			MatchQuota:         6,
			Courts:             4,
			SmallPoolThreshold: 8,
			SmallPoolCourts:    3,
			RecentWindow:       3,
			Attempts:           25,
			ForfeitScore:       1,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// HasDay reports whether name is one of the configured league days.
func (c *Config) HasDay(name string) bool {
	for _, d := range c.Days {
		if d == name {
			return true
		}
	}
	return false
}

// LoadFromBytes parses YAML bytes over the defaults and validates the
// result. Numeric fields keep explicit zeros.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file. A .env file in the same
// directory is loaded first; LEAGUEDAY_DATABASE overrides database.path.
func LoadFromFile(path string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg, err := LoadFromBytes(data)
	if err != nil {
		return nil, err
	}
	if p := os.Getenv("LEAGUEDAY_DATABASE"); p != "" {
		cfg.Database.Path = p
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Path == "" {
		c.Database.Path = "leagueday.db"
	}
	if c.League.Strategy == "" {
		c.League.Strategy = StrategyAuto
	}
	if len(c.Days) == 0 {
		c.Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	}
}

func (c *Config) validate() error {
	l := c.League
	if l.MatchQuota < 1 {
		return fmt.Errorf("league.match_quota must be at least 1, got %d", l.MatchQuota)
	}
	if l.Courts < 1 {
		return fmt.Errorf("league.courts must be at least 1, got %d", l.Courts)
	}
	if l.SmallPoolCourts < 1 {
		return fmt.Errorf("league.small_pool_courts must be at least 1, got %d", l.SmallPoolCourts)
	}
	if l.SmallPoolThreshold < 0 {
		return fmt.Errorf("league.small_pool_threshold must not be negative, got %d", l.SmallPoolThreshold)
	}
	if l.RecentWindow < 0 {
		return fmt.Errorf("league.recent_window must not be negative, got %d", l.RecentWindow)
	}
	if l.Attempts < 1 {
		return fmt.Errorf("league.attempts must be at least 1, got %d", l.Attempts)
	}
	if l.ForfeitScore < 1 {
		return fmt.Errorf("league.forfeit_score must be at least 1, got %d", l.ForfeitScore)
	}
	switch l.Strategy {
	case StrategyAuto, StrategyRotation, StrategyGreedy:
	default:
		return fmt.Errorf("unknown strategy %q (want %s, %s or %s)", l.Strategy, StrategyAuto, StrategyRotation, StrategyGreedy)
	}

	seen := make(map[string]bool)
	for _, d := range c.Days {
		if d == "" {
			return fmt.Errorf("days must not contain an empty name")
		}
		if seen[d] {
			return fmt.Errorf("day %q listed twice", d)
		}
		seen[d] = true
	}
	return nil
}
