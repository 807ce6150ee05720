package db

import (
	"context"
	"time"
)

const matchColumns = `id, academy_id, team_a_name, team_b_name, venue, match_date, match_format, status, result,
       team_a_score, team_a_wickets, team_a_balls, team_b_score, team_b_wickets, team_b_balls, created_at, updated_at`

func scanMatch(row interface{ Scan(...interface{}) error }) (Match, error) {
	var i Match
	err := row.Scan(
		&i.ID,
		&i.AcademyID,
		&i.TeamAName,
		&i.TeamBName,
		&i.Venue,
		&i.MatchDate,
		&i.MatchFormat,
		&i.Status,
		&i.Result,
		&i.TeamAScore,
		&i.TeamAWickets,
		&i.TeamABalls,
		&i.TeamBScore,
		&i.TeamBWickets,
		&i.TeamBBalls,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createMatch = `INSERT INTO matches (academy_id, team_a_name, team_b_name, venue, match_date, match_format, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateMatchParams struct {
	AcademyID   int64
	TeamAName   string
	TeamBName   string
	Venue       string
	MatchDate   string
	MatchFormat string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createMatch,
		arg.AcademyID,
		arg.TeamAName,
		arg.TeamBName,
		arg.Venue,
		arg.MatchDate,
		arg.MatchFormat,
		arg.Status,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getMatch = `SELECT ` + matchColumns + `
FROM matches
WHERE id = ?
`

func (q *Queries) GetMatch(ctx context.Context, id int64) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	return scanMatch(row)
}

const getMatchAcademy = `SELECT academy_id FROM matches WHERE id = ?
`

func (q *Queries) GetMatchAcademy(ctx context.Context, id int64) (int64, error) {
	row := q.db.QueryRowContext(ctx, getMatchAcademy, id)
	var academyID int64
	err := row.Scan(&academyID)
	return academyID, err
}

const listMatchesByAcademy = `SELECT ` + matchColumns + `
FROM matches
WHERE academy_id = ?
ORDER BY match_date DESC, id DESC
`

func (q *Queries) ListMatchesByAcademy(ctx context.Context, academyID int64) ([]Match, error) {
	rows, err := q.db.QueryContext(ctx, listMatchesByAcademy, academyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Match
	for rows.Next() {
		i, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateMatchStatus = `UPDATE matches
SET status = ?, result = ?, updated_at = ?
WHERE id = ?
`

type UpdateMatchStatusParams struct {
	Status    string
	Result    string
	UpdatedAt time.Time
	ID        int64
}

func (q *Queries) UpdateMatchStatus(ctx context.Context, arg UpdateMatchStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMatchStatus,
		arg.Status,
		arg.Result,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const registerFinalScore = `UPDATE matches
SET status = ?, result = ?,
    team_a_score = ?, team_a_wickets = ?, team_a_balls = ?,
    team_b_score = ?, team_b_wickets = ?, team_b_balls = ?,
    updated_at = ?
WHERE id = ?
`

type RegisterFinalScoreParams struct {
	Status       string
	Result       string
	TeamAScore   int64
	TeamAWickets int64
	TeamABalls   int64
	TeamBScore   int64
	TeamBWickets int64
	TeamBBalls   int64
	UpdatedAt    time.Time
	ID           int64
}

func (q *Queries) RegisterFinalScore(ctx context.Context, arg RegisterFinalScoreParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, registerFinalScore,
		arg.Status,
		arg.Result,
		arg.TeamAScore,
		arg.TeamAWickets,
		arg.TeamABalls,
		arg.TeamBScore,
		arg.TeamBWickets,
		arg.TeamBBalls,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
