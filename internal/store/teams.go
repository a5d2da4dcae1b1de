package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/derekprior/leagueday/internal/league"
)

// UpsertTeam registers a team or updates its day and rank.
func (s *Store) UpsertTeam(ctx context.Context, t league.Team) error {
	if t.Name == "" {
		return fmt.Errorf("team name must not be empty")
	}
	var rank sql.NullFloat64
	if t.Rank != nil {
		rank = sql.NullFloat64{Float64: *t.Rank, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (name, day, rank) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET day = excluded.day, rank = excluded.rank`,
		t.Name, t.Day, rank)
	if err != nil {
		return fmt.Errorf("saving team %s: %w", t.Name, err)
	}
	return nil
}

// Teams returns the teams registered on day ordered by name. An empty day
// returns every team.
func (s *Store) Teams(ctx context.Context, day string) ([]league.Team, error) {
	query := `SELECT name, day, rank FROM teams`
	var args []any
	if day != "" {
		query += ` WHERE day = ?`
		args = append(args, day)
	}
	query += ` ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []league.Team
	for rows.Next() {
		var t league.Team
		var rank sql.NullFloat64
		if err := rows.Scan(&t.Name, &t.Day, &rank); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		if rank.Valid {
			r := rank.Float64
			t.Rank = &r
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// DeleteTeam removes a team and its absences.
func (s *Store) DeleteTeam(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting team %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("team %s: %w", name, ErrNotFound)
	}
	return nil
}
