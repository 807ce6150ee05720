package db

import (
	"context"
	"time"
)

const createTournament = `INSERT INTO tournaments (id, academy_id, name, tournament_type, start_date, end_date, venue, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateTournamentParams struct {
	ID             string
	AcademyID      int64
	Name           string
	TournamentType string
	StartDate      string
	EndDate        string
	Venue          string
	Status         string
	CreatedAt      time.Time
}

func (q *Queries) CreateTournament(ctx context.Context, arg CreateTournamentParams) error {
	_, err := q.db.ExecContext(ctx, createTournament,
		arg.ID,
		arg.AcademyID,
		arg.Name,
		arg.TournamentType,
		arg.StartDate,
		arg.EndDate,
		arg.Venue,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const tournamentColumns = `id, academy_id, name, tournament_type, start_date, end_date, venue, status, winner_team_id, created_at`

func scanTournament(row interface{ Scan(...interface{}) error }) (Tournament, error) {
	var i Tournament
	err := row.Scan(
		&i.ID,
		&i.AcademyID,
		&i.Name,
		&i.TournamentType,
		&i.StartDate,
		&i.EndDate,
		&i.Venue,
		&i.Status,
		&i.WinnerTeamID,
		&i.CreatedAt,
	)
	return i, err
}

const getTournament = `SELECT ` + tournamentColumns + `
FROM tournaments
WHERE id = ?
`

func (q *Queries) GetTournament(ctx context.Context, id string) (Tournament, error) {
	row := q.db.QueryRowContext(ctx, getTournament, id)
	return scanTournament(row)
}

const listTournamentsByAcademy = `SELECT ` + tournamentColumns + `
FROM tournaments
WHERE academy_id = ?1 AND (?2 = '' OR status = ?2)
ORDER BY start_date DESC
`

type ListTournamentsByAcademyParams struct {
	AcademyID int64
	Status    string
}

func (q *Queries) ListTournamentsByAcademy(ctx context.Context, arg ListTournamentsByAcademyParams) ([]Tournament, error) {
	rows, err := q.db.QueryContext(ctx, listTournamentsByAcademy, arg.AcademyID, arg.Status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Tournament
	for rows.Next() {
		i, err := scanTournament(rows)
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

const updateTournamentStatus = `UPDATE tournaments
SET status = ?, winner_team_id = ?
WHERE id = ?
`

type UpdateTournamentStatusParams struct {
	Status       string
	WinnerTeamID string
	ID           string
}

func (q *Queries) UpdateTournamentStatus(ctx context.Context, arg UpdateTournamentStatusParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateTournamentStatus, arg.Status, arg.WinnerTeamID, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createTournamentTeam = `INSERT INTO tournament_teams (id, tournament_id, team_name, captain_name)
VALUES (?, ?, ?, ?)
`

type CreateTournamentTeamParams struct {
	ID           string
	TournamentID string
	TeamName     string
	CaptainName  string
}

func (q *Queries) CreateTournamentTeam(ctx context.Context, arg CreateTournamentTeamParams) error {
	_, err := q.db.ExecContext(ctx, createTournamentTeam, arg.ID, arg.TournamentID, arg.TeamName, arg.CaptainName)
	return err
}

const teamColumns = `id, tournament_id, team_name, captain_name, matches_played, matches_won, matches_lost, matches_tied,
       points, runs_scored, balls_faced, runs_conceded, balls_bowled`

func scanTournamentTeam(row interface{ Scan(...interface{}) error }) (TournamentTeam, error) {
	var i TournamentTeam
	err := row.Scan(
		&i.ID,
		&i.TournamentID,
		&i.TeamName,
		&i.CaptainName,
		&i.MatchesPlayed,
		&i.MatchesWon,
		&i.MatchesLost,
		&i.MatchesTied,
		&i.Points,
		&i.RunsScored,
		&i.BallsFaced,
		&i.RunsConceded,
		&i.BallsBowled,
	)
	return i, err
}

const getTournamentTeam = `SELECT ` + teamColumns + `
FROM tournament_teams
WHERE id = ?
`

func (q *Queries) GetTournamentTeam(ctx context.Context, id string) (TournamentTeam, error) {
	row := q.db.QueryRowContext(ctx, getTournamentTeam, id)
	return scanTournamentTeam(row)
}

const listTournamentTeams = `SELECT ` + teamColumns + `
FROM tournament_teams
WHERE tournament_id = ?
ORDER BY points DESC, team_name ASC
`

func (q *Queries) ListTournamentTeams(ctx context.Context, tournamentID string) ([]TournamentTeam, error) {
	rows, err := q.db.QueryContext(ctx, listTournamentTeams, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TournamentTeam
	for rows.Next() {
		i, err := scanTournamentTeam(rows)
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

const addTeamResult = `UPDATE tournament_teams
SET matches_played = matches_played + 1,
    matches_won    = matches_won + ?,
    matches_lost   = matches_lost + ?,
    matches_tied   = matches_tied + ?,
    points         = points + ?,
    runs_scored    = runs_scored + ?,
    balls_faced    = balls_faced + ?,
    runs_conceded  = runs_conceded + ?,
    balls_bowled   = balls_bowled + ?
WHERE id = ?
`

type AddTeamResultParams struct {
	Won          int64
	Lost         int64
	Tied         int64
	Points       int64
	RunsScored   int64
	BallsFaced   int64
	RunsConceded int64
	BallsBowled  int64
	ID           string
}

func (q *Queries) AddTeamResult(ctx context.Context, arg AddTeamResultParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, addTeamResult,
		arg.Won,
		arg.Lost,
		arg.Tied,
		arg.Points,
		arg.RunsScored,
		arg.BallsFaced,
		arg.RunsConceded,
		arg.BallsBowled,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createTournamentMatch = `INSERT INTO tournament_matches (id, tournament_id, match_id, team_a_id, team_b_id, match_number, round_name)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type CreateTournamentMatchParams struct {
	ID           string
	TournamentID string
	MatchID      int64
	TeamAID      string
	TeamBID      string
	MatchNumber  int64
	RoundName    string
}

func (q *Queries) CreateTournamentMatch(ctx context.Context, arg CreateTournamentMatchParams) error {
	_, err := q.db.ExecContext(ctx, createTournamentMatch,
		arg.ID,
		arg.TournamentID,
		arg.MatchID,
		arg.TeamAID,
		arg.TeamBID,
		arg.MatchNumber,
		arg.RoundName,
	)
	return err
}

const getTournamentMatch = `SELECT id, tournament_id, match_id, team_a_id, team_b_id, match_number, round_name, result_applied
FROM tournament_matches
WHERE id = ?
`

func (q *Queries) GetTournamentMatch(ctx context.Context, id string) (TournamentMatch, error) {
	row := q.db.QueryRowContext(ctx, getTournamentMatch, id)
	var i TournamentMatch
	err := row.Scan(
		&i.ID,
		&i.TournamentID,
		&i.MatchID,
		&i.TeamAID,
		&i.TeamBID,
		&i.MatchNumber,
		&i.RoundName,
		&i.ResultApplied,
	)
	return i, err
}

const listTournamentMatches = `SELECT tm.id, tm.tournament_id, tm.match_id, tm.team_a_id, tm.team_b_id, tm.match_number, tm.round_name, tm.result_applied,
       m.team_a_name, m.team_b_name, m.status, m.result
FROM tournament_matches tm
JOIN matches m ON tm.match_id = m.id
WHERE tm.tournament_id = ?
ORDER BY tm.match_number
`

type ListTournamentMatchesRow struct {
	ID            string
	TournamentID  string
	MatchID       int64
	TeamAID       string
	TeamBID       string
	MatchNumber   int64
	RoundName     string
	ResultApplied bool
	TeamAName     string
	TeamBName     string
	Status        string
	Result        string
}

func (q *Queries) ListTournamentMatches(ctx context.Context, tournamentID string) ([]ListTournamentMatchesRow, error) {
	rows, err := q.db.QueryContext(ctx, listTournamentMatches, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTournamentMatchesRow
	for rows.Next() {
		var i ListTournamentMatchesRow
		if err := rows.Scan(
			&i.ID,
			&i.TournamentID,
			&i.MatchID,
			&i.TeamAID,
			&i.TeamBID,
			&i.MatchNumber,
			&i.RoundName,
			&i.ResultApplied,
			&i.TeamAName,
			&i.TeamBName,
			&i.Status,
			&i.Result,
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

const markFixtureResultApplied = `UPDATE tournament_matches
SET result_applied = 1
WHERE id = ? AND result_applied = 0
`

func (q *Queries) MarkFixtureResultApplied(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, markFixtureResultApplied, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
