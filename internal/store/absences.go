package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/derekprior/leagueday/internal/league"
)

// AddAbsence records that team will miss date. Adding the same absence twice
// is a no-op.
func (s *Store) AddAbsence(ctx context.Context, team string, date time.Time) error {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM teams WHERE name = ?`, team).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("team %s: %w", team, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up team %s: %w", team, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO absences (team_name, match_date) VALUES (?, ?)`,
		team, formatDate(date))
	if err != nil {
		return fmt.Errorf("saving absence: %w", err)
	}
	return nil
}

// RemoveAbsence deletes an absence.
func (s *Store) RemoveAbsence(ctx context.Context, team string, date time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM absences WHERE team_name = ? AND match_date = ?`,
		team, formatDate(date))
	if err != nil {
		return fmt.Errorf("deleting absence: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("absence of %s on %s: %w", team, formatDate(date), ErrNotFound)
	}
	return nil
}

// AbsencesOn returns the absences recorded for date ordered by team.
func (s *Store) AbsencesOn(ctx context.Context, date time.Time) ([]league.Absence, error) {
	return s.queryAbsences(ctx, `
		SELECT id, team_name, match_date FROM absences
		WHERE match_date = ? ORDER BY team_name`, formatDate(date))
}

// Absences returns every absence ordered by date and team.
func (s *Store) Absences(ctx context.Context) ([]league.Absence, error) {
	return s.queryAbsences(ctx, `
		SELECT id, team_name, match_date FROM absences
		ORDER BY match_date, team_name`)
}

func (s *Store) queryAbsences(ctx context.Context, query string, args ...any) ([]league.Absence, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying absences: %w", err)
	}
	defer rows.Close()

	var out []league.Absence
	for rows.Next() {
		var a league.Absence
		var date string
		if err := rows.Scan(&a.ID, &a.TeamName, &date); err != nil {
			return nil, fmt.Errorf("scanning absence: %w", err)
		}
		if a.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
