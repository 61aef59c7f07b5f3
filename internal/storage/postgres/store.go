package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pviana/matchview-api/internal/domain/datasets"
	"github.com/pviana/matchview-api/internal/domain/matches"
	"github.com/pviana/matchview-api/internal/domain/stats"
	"github.com/pviana/matchview-api/internal/domain/uploads"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) CreateDataset(ctx context.Context, v datasets.Dataset) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO datasets (id, owner_id, name, season, row_count, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, v.ID, v.OwnerID, v.Name, v.Season, v.RowCount, v.CreatedAt, v.UpdatedAt)
	return err
}

// GetDataset returns a zero-value dataset (Nil ID) when none exists.
func (s *Store) GetDataset(ctx context.Context, id uuid.UUID) (datasets.Dataset, error) {
	var out datasets.Dataset
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, name, season, row_count, created_at, updated_at
		FROM datasets WHERE id = $1
	`, id).Scan(&out.ID, &out.OwnerID, &out.Name, &out.Season, &out.RowCount, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return datasets.Dataset{}, nil
		}
		return datasets.Dataset{}, err
	}
	return out, nil
}

func (s *Store) ListDatasetsByOwner(ctx context.Context, ownerID uuid.UUID) ([]datasets.Dataset, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, name, season, row_count, created_at, updated_at
		FROM datasets
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]datasets.Dataset, 0)
	for rows.Next() {
		var v datasets.Dataset
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Season, &v.RowCount, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

// RefreshDatasetRowCount recounts stored matches after an upload merge.
func (s *Store) RefreshDatasetRowCount(ctx context.Context, datasetID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE datasets SET
			row_count = (SELECT COUNT(*) FROM matches WHERE dataset_id = $1),
			updated_at = $2
		WHERE id = $1
	`, datasetID, time.Now().UTC())
	return err
}

// UpsertMatchByFixture merges one incoming schedule row into a dataset. The
// fixture key is (week, home team, away team); identical rows are left
// untouched so a weekly re-upload only writes what changed.
func (s *Store) UpsertMatchByFixture(ctx context.Context, incoming matches.MatchRecord) (uploads.MergeDecision, error) {
	stored, err := s.getMatchByFixture(ctx, incoming)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return uploads.DecisionUnchanged, err
	}

	decision := uploads.ResolveRow(incoming, stored)
	switch decision {
	case uploads.DecisionInsert:
		return decision, s.insertMatch(ctx, incoming)
	case uploads.DecisionUnchanged:
		return decision, nil
	}

	_, err = s.pool.Exec(ctx, `
		UPDATE matches SET
			day = $2,
			date = $3,
			kickoff_time = $4,
			xg_home = $5,
			xg_away = $6,
			score = $7,
			attendance = $8,
			venue = $9,
			referee = $10,
			updated_at = $11
		WHERE id = $1
	`,
		stored.ID, incoming.Day, incoming.Date, incoming.KickoffTime,
		incoming.XGHome, incoming.XGAway, incoming.Score,
		incoming.Attendance, incoming.Venue, incoming.Referee, incoming.UpdatedAt,
	)
	return decision, err
}

func (s *Store) getMatchByFixture(ctx context.Context, key matches.MatchRecord) (matches.MatchRecord, error) {
	var out matches.MatchRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, dataset_id, week, day, date, kickoff_time, home_team, away_team,
		       xg_home, xg_away, score, attendance, venue, referee, created_at, updated_at
		FROM matches
		WHERE dataset_id = $1 AND week = $2 AND home_team = $3 AND away_team = $4
	`, key.DatasetID, key.Week, key.HomeTeam, key.AwayTeam).Scan(
		&out.ID, &out.DatasetID, &out.Week, &out.Day, &out.Date, &out.KickoffTime,
		&out.HomeTeam, &out.AwayTeam, &out.XGHome, &out.XGAway, &out.Score,
		&out.Attendance, &out.Venue, &out.Referee, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (s *Store) insertMatch(ctx context.Context, v matches.MatchRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO matches (
			id, dataset_id, week, day, date, kickoff_time, home_team, away_team,
			xg_home, xg_away, score, attendance, venue, referee, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		v.ID, v.DatasetID, v.Week, v.Day, v.Date, v.KickoffTime, v.HomeTeam, v.AwayTeam,
		v.XGHome, v.XGAway, v.Score, v.Attendance, v.Venue, v.Referee, v.CreatedAt, v.UpdatedAt,
	)
	return err
}

func (s *Store) ListMatchesByDataset(ctx context.Context, datasetID uuid.UUID) ([]matches.MatchRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, dataset_id, week, day, date, kickoff_time, home_team, away_team,
		       xg_home, xg_away, score, attendance, venue, referee, created_at, updated_at
		FROM matches
		WHERE dataset_id = $1
		ORDER BY date ASC, week ASC, home_team ASC
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (s *Store) ListMatchesPage(ctx context.Context, datasetID uuid.UUID, limit, offset int) ([]matches.MatchRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, dataset_id, week, day, date, kickoff_time, home_team, away_team,
		       xg_home, xg_away, score, attendance, venue, referee, created_at, updated_at
		FROM matches
		WHERE dataset_id = $1
		ORDER BY date ASC, week ASC, home_team ASC
		LIMIT $2 OFFSET $3
	`, datasetID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

func (s *Store) CountMatchesByDataset(ctx context.Context, datasetID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE dataset_id = $1`, datasetID).Scan(&count)
	return count, err
}

func scanMatches(rows pgx.Rows) ([]matches.MatchRecord, error) {
	items := make([]matches.MatchRecord, 0)
	for rows.Next() {
		var v matches.MatchRecord
		if err := rows.Scan(
			&v.ID, &v.DatasetID, &v.Week, &v.Day, &v.Date, &v.KickoffTime,
			&v.HomeTeam, &v.AwayTeam, &v.XGHome, &v.XGAway, &v.Score,
			&v.Attendance, &v.Venue, &v.Referee, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (s *Store) ReplaceTeamGoalRates(ctx context.Context, datasetID uuid.UUID, rows []stats.TeamGoalRate) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM team_goal_rates WHERE dataset_id = $1`, datasetID); err != nil {
		return err
	}
	for rank, row := range rows {
		if _, err := tx.Exec(ctx, `
			INSERT INTO team_goal_rates (dataset_id, rank, team, goals_scored, matches_played, goals_per_match)
			VALUES ($1,$2,$3,$4,$5,$6)
		`, datasetID, rank, row.Team, row.GoalsScored, row.MatchesPlayed, row.GoalsPerMatch); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) ListTeamGoalRates(ctx context.Context, datasetID uuid.UUID) ([]stats.TeamGoalRate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT team, goals_scored, matches_played, goals_per_match
		FROM team_goal_rates
		WHERE dataset_id = $1
		ORDER BY rank ASC
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]stats.TeamGoalRate, 0)
	for rows.Next() {
		var v stats.TeamGoalRate
		if err := rows.Scan(&v.Team, &v.GoalsScored, &v.MatchesPlayed, &v.GoalsPerMatch); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

func (s *Store) UpsertOutcomeSummary(ctx context.Context, datasetID uuid.UUID, v stats.OutcomeSummary) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO outcome_summaries (
			dataset_id, home_wins, away_wins, draws, total,
			home_win_pct, away_win_pct, draw_pct, last_calculated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (dataset_id)
		DO UPDATE SET
			home_wins = EXCLUDED.home_wins,
			away_wins = EXCLUDED.away_wins,
			draws = EXCLUDED.draws,
			total = EXCLUDED.total,
			home_win_pct = EXCLUDED.home_win_pct,
			away_win_pct = EXCLUDED.away_win_pct,
			draw_pct = EXCLUDED.draw_pct,
			last_calculated_at = EXCLUDED.last_calculated_at
	`, datasetID, v.HomeWins, v.AwayWins, v.Draws, v.Total,
		v.HomeWinPct, v.AwayWinPct, v.DrawPct, time.Now().UTC())
	return err
}

func (s *Store) GetOutcomeSummary(ctx context.Context, datasetID uuid.UUID) (stats.OutcomeSummary, error) {
	var out stats.OutcomeSummary
	err := s.pool.QueryRow(ctx, `
		SELECT home_wins, away_wins, draws, total, home_win_pct, away_win_pct, draw_pct
		FROM outcome_summaries WHERE dataset_id = $1
	`, datasetID).Scan(
		&out.HomeWins, &out.AwayWins, &out.Draws, &out.Total,
		&out.HomeWinPct, &out.AwayWinPct, &out.DrawPct,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return stats.OutcomeSummary{}, nil
		}
		return stats.OutcomeSummary{}, err
	}
	return out, nil
}

func (s *Store) ReplaceTeamXgSummaries(ctx context.Context, datasetID uuid.UUID, rows []stats.TeamXgSummary) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM team_xg_summaries WHERE dataset_id = $1`, datasetID); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := tx.Exec(ctx, `
			INSERT INTO team_xg_summaries (
				dataset_id, team, matches_played, avg_xg_for, avg_xg_against,
				avg_goals_for, avg_goals_against, goal_differential
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, datasetID, row.Team, row.MatchesPlayed, row.AvgXGFor, row.AvgXGAgainst,
			row.AvgGoalsFor, row.AvgGoalsAgainst, row.GoalDifferential); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) ListTeamXgSummaries(ctx context.Context, datasetID uuid.UUID) ([]stats.TeamXgSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT team, matches_played, avg_xg_for, avg_xg_against,
		       avg_goals_for, avg_goals_against, goal_differential
		FROM team_xg_summaries
		WHERE dataset_id = $1
		ORDER BY team ASC
	`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]stats.TeamXgSummary, 0)
	for rows.Next() {
		var v stats.TeamXgSummary
		if err := rows.Scan(
			&v.Team, &v.MatchesPlayed, &v.AvgXGFor, &v.AvgXGAgainst,
			&v.AvgGoalsFor, &v.AvgGoalsAgainst, &v.GoalDifferential,
		); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}
