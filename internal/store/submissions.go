package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/derekprior/leagueday/internal/league"
)

// UpsertSubmission saves a score keyed by (match, submitter). It reports
// whether a new row was inserted rather than an existing one updated.
func (s *Store) UpsertSubmission(ctx context.Context, sub league.Submission) (bool, error) {
	if sub.SubmittedBy == "" {
		return false, errors.New("submitter must not be empty")
	}
	inserted := false
	err := s.runInTx(ctx, func(tx *sql.Tx) error {
		var matchID int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM schedules WHERE id = ?`, sub.MatchID).Scan(&matchID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("match %d: %w", sub.MatchID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("looking up match %d: %w", sub.MatchID, err)
		}

		var id int64
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM score_submissions WHERE match_id = ? AND submitted_by = ?`,
			sub.MatchID, sub.SubmittedBy).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx, `
				INSERT INTO score_submissions (match_id, submitted_by, team1_score, team2_score, winner, approved)
				VALUES (?, ?, ?, ?, ?, ?)`,
				sub.MatchID, sub.SubmittedBy, sub.Team1Score, sub.Team2Score, sub.Winner, sub.Approved)
			if err != nil {
				return fmt.Errorf("inserting submission: %w", err)
			}
			inserted = true
		case err != nil:
			return fmt.Errorf("looking up submission: %w", err)
		default:
			_, err = tx.ExecContext(ctx, `
				UPDATE score_submissions
				SET team1_score = ?, team2_score = ?, winner = ?, approved = ?, updated_at = CURRENT_TIMESTAMP
				WHERE id = ?`,
				sub.Team1Score, sub.Team2Score, sub.Winner, sub.Approved, id)
			if err != nil {
				return fmt.Errorf("updating submission: %w", err)
			}
		}
		return nil
	})
	return inserted, err
}

// Submissions returns every submission for a match ordered by submitter.
func (s *Store) Submissions(ctx context.Context, matchID int64) ([]league.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_id, submitted_by, team1_score, team2_score, winner, approved
		FROM score_submissions WHERE match_id = ? ORDER BY submitted_by`, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var out []league.Submission
	for rows.Next() {
		var sub league.Submission
		if err := rows.Scan(&sub.ID, &sub.MatchID, &sub.SubmittedBy, &sub.Team1Score, &sub.Team2Score, &sub.Winner, &sub.Approved); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// ApproveSubmission marks a submission as the accepted result of its match.
func (s *Store) ApproveSubmission(ctx context.Context, matchID int64, submittedBy string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE score_submissions SET approved = 1, updated_at = CURRENT_TIMESTAMP
		WHERE match_id = ? AND submitted_by = ?`, matchID, submittedBy)
	if err != nil {
		return fmt.Errorf("approving submission: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("submission by %s for match %d: %w", submittedBy, matchID, ErrNotFound)
	}
	return nil
}

// ApprovedResults returns one approved result per match, the most recently
// saved when a match has several, ordered by date, round and court.
func (s *Store) ApprovedResults(ctx context.Context) ([]league.Result, error) {
	return s.queryResults(ctx, "")
}

// TeamResults returns the approved results of the matches team played, in
// the same order as ApprovedResults.
func (s *Store) TeamResults(ctx context.Context, team string) ([]league.Result, error) {
	return s.queryResults(ctx, "AND (m.team1 = ? OR m.team2 = ?)", team, team)
}

func (s *Store) queryResults(ctx context.Context, filter string, args ...any) ([]league.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.match_date, m.round, m.court, m.team1, COALESCE(m.team2, ''),
			s.team1_score, s.team2_score, s.winner
		FROM score_submissions s
		JOIN schedules m ON m.id = s.match_id
		WHERE s.approved = 1 `+filter+`
		ORDER BY m.match_date, m.round, m.court, s.updated_at DESC, s.id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []league.Result
	seen := make(map[int64]bool)
	for rows.Next() {
		var r league.Result
		var d string
		if err := rows.Scan(&r.MatchID, &d, &r.Round, &r.Court, &r.Team1, &r.Team2, &r.Team1Score, &r.Team2Score, &r.Winner); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if seen[r.MatchID] {
			continue
		}
		seen[r.MatchID] = true
		if r.Date, err = parseDate(d); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
