package db

import (
	"context"
	"time"
)

const insertMatchBall = `INSERT INTO match_balls (match_id, inning_number, over_number, ball_number, striker_name, non_striker_name, bowler_name,
                         runs_scored, extras, extra_type, is_wicket, wicket_type, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertMatchBallParams struct {
	MatchID        int64
	InningNumber   int64
	OverNumber     int64
	BallNumber     int64
	StrikerName    string
	NonStrikerName string
	BowlerName     string
	RunsScored     int64
	Extras         int64
	ExtraType      string
	IsWicket       bool
	WicketType     string
	CreatedAt      time.Time
}

func (q *Queries) InsertMatchBall(ctx context.Context, arg InsertMatchBallParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertMatchBall,
		arg.MatchID,
		arg.InningNumber,
		arg.OverNumber,
		arg.BallNumber,
		arg.StrikerName,
		arg.NonStrikerName,
		arg.BowlerName,
		arg.RunsScored,
		arg.Extras,
		arg.ExtraType,
		arg.IsWicket,
		arg.WicketType,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const listMatchBalls = `SELECT id, match_id, inning_number, over_number, ball_number, striker_name, non_striker_name, bowler_name,
       runs_scored, extras, extra_type, is_wicket, wicket_type, created_at
FROM match_balls
WHERE match_id = ?
ORDER BY id ASC
`

func (q *Queries) ListMatchBalls(ctx context.Context, matchID int64) ([]MatchBall, error) {
	rows, err := q.db.QueryContext(ctx, listMatchBalls, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MatchBall
	for rows.Next() {
		var i MatchBall
		if err := rows.Scan(
			&i.ID,
			&i.MatchID,
			&i.InningNumber,
			&i.OverNumber,
			&i.BallNumber,
			&i.StrikerName,
			&i.NonStrikerName,
			&i.BowlerName,
			&i.RunsScored,
			&i.Extras,
			&i.ExtraType,
			&i.IsWicket,
			&i.WicketType,
			&i.CreatedAt,
		); err != nil {
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
