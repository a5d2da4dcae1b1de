package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/derekprior/leagueday/internal/league"
)

// Posting is the outcome of PostSchedule.
type Posting struct {
	BatchID  string
	Matches  []league.Match // as persisted, with IDs
	Replaced int            // matches removed by an overwrite
}

// ScheduleExists reports whether any match is stored for date.
func (s *Store) ScheduleExists(ctx context.Context, date time.Time) (bool, error) {
	return scheduleExists(ctx, s.db, date)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scheduleExists(ctx context.Context, q queryer, date time.Time) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules WHERE match_date = ?`, formatDate(date)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking schedule for %s: %w", formatDate(date), err)
	}
	return n > 0, nil
}

// PostSchedule stores matches as the posted schedule for date. An existing
// schedule is left untouched and ErrScheduleExists returned unless overwrite
// is set, in which case it is replaced in the same transaction. Scores
// submitted against replaced matches are removed with them.
func (s *Store) PostSchedule(ctx context.Context, date time.Time, matches []league.Match, overwrite bool) (*Posting, error) {
	if len(matches) == 0 {
		return nil, errors.New("no matches to post")
	}
	key := formatDate(date)
	for _, m := range matches {
		if formatDate(m.Date) != key {
			return nil, fmt.Errorf("match %s vs %s is dated %s, posting for %s", m.Team1, m.Team2, formatDate(m.Date), key)
		}
	}

	p := &Posting{BatchID: uuid.NewString()}
	err := s.runInTx(ctx, func(tx *sql.Tx) error {
		exists, err := scheduleExists(ctx, tx, date)
		if err != nil {
			return err
		}
		if exists {
			if !overwrite {
				return fmt.Errorf("%s: %w", key, ErrScheduleExists)
			}
			res, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE match_date = ?`, key)
			if err != nil {
				return fmt.Errorf("deleting existing schedule: %w", err)
			}
			n, _ := res.RowsAffected()
			p.Replaced = int(n)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO schedules (batch_id, match_date, day, round, court, team1, team2, is_posted)
			VALUES (?, ?, ?, ?, ?, ?, ?, 1)`)
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		for _, m := range matches {
			var team2 sql.NullString
			if !m.IsBye() {
				team2 = sql.NullString{String: m.Team2, Valid: true}
			}
			res, err := stmt.ExecContext(ctx, p.BatchID, key, m.Day, m.Round, m.Court, m.Team1, team2)
			if err != nil {
				return fmt.Errorf("inserting round %d court %d: %w", m.Round, m.Court, err)
			}
			if m.ID, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("reading match id: %w", err)
			}
			m.Posted = true
			p.Matches = append(p.Matches, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("date", key).
		Str("batch", p.BatchID).
		Int("matches", len(p.Matches)).
		Int("replaced", p.Replaced).
		Msg("Posted schedule")
	return p, nil
}

// PostedMatches returns the posted matches for date ordered by round and court.
func (s *Store) PostedMatches(ctx context.Context, date time.Time) ([]league.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_date, day, round, court, team1, team2, is_posted
		FROM schedules
		WHERE match_date = ? AND is_posted = 1
		ORDER BY round, court`, formatDate(date))
	if err != nil {
		return nil, fmt.Errorf("querying schedule: %w", err)
	}
	defer rows.Close()

	var out []league.Match
	for rows.Next() {
		var m league.Match
		var d string
		var team2 sql.NullString
		if err := rows.Scan(&m.ID, &d, &m.Day, &m.Round, &m.Court, &m.Team1, &team2, &m.Posted); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		if m.Date, err = parseDate(d); err != nil {
			return nil, err
		}
		m.Team2 = team2.String
		out = append(out, m)
	}
	return out, rows.Err()
}

// PostedDates returns every date with a posted schedule, oldest first.
func (s *Store) PostedDates(ctx context.Context) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT match_date FROM schedules
		WHERE is_posted = 1
		ORDER BY match_date`)
	if err != nil {
		return nil, fmt.Errorf("querying posted dates: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		t, err := parseDate(d)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Match returns a persisted match by ID.
func (s *Store) Match(ctx context.Context, id int64) (league.Match, error) {
	var m league.Match
	var d string
	var team2 sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, match_date, day, round, court, team1, team2, is_posted
		FROM schedules WHERE id = ?`, id).
		Scan(&m.ID, &d, &m.Day, &m.Round, &m.Court, &m.Team1, &team2, &m.Posted)
	if errors.Is(err, sql.ErrNoRows) {
		return m, fmt.Errorf("match %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return m, fmt.Errorf("querying match %d: %w", id, err)
	}
	if m.Date, err = parseDate(d); err != nil {
		return m, err
	}
	m.Team2 = team2.String
	return m, nil
}
