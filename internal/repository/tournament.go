package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cricket-academy/internal/db"
	"cricket-academy/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type TournamentRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTournamentRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TournamentRepository {
	return &TournamentRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func newID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate nanoid: %w", err)
	}
	return id, nil
}

func (r *TournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	id, err := newID()
	if err != nil {
		return err
	}
	createdAt := time.Now().UTC()

	err = r.queries.CreateTournament(ctx, db.CreateTournamentParams{
		ID:             id,
		AcademyID:      t.AcademyID,
		Name:           t.Name,
		TournamentType: t.TournamentType,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		Venue:          t.Venue,
		Status:         string(t.Status),
		CreatedAt:      createdAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert tournament: %w", err)
	}

	t.ID = id
	t.CreatedAt = createdAt
	return nil
}

func (r *TournamentRepository) Get(ctx context.Context, id string) (*domain.Tournament, error) {
	row, err := r.queries.GetTournament(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tournament %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	t := toDomainTournament(row)
	return &t, nil
}

func (r *TournamentRepository) ListByAcademy(ctx context.Context, academyID int64, status domain.TournamentStatus) ([]domain.Tournament, error) {
	rows, err := r.queries.ListTournamentsByAcademy(ctx, db.ListTournamentsByAcademyParams{
		AcademyID: academyID,
		Status:    string(status),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Tournament, len(rows))
	for i, row := range rows {
		result[i] = toDomainTournament(row)
	}
	return result, nil
}

func (r *TournamentRepository) UpdateStatus(ctx context.Context, id string, status domain.TournamentStatus, winnerTeamID string) error {
	affected, err := r.queries.UpdateTournamentStatus(ctx, db.UpdateTournamentStatusParams{
		Status:       string(status),
		WinnerTeamID: winnerTeamID,
		ID:           id,
	})
	if err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("tournament %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *TournamentRepository) AddTeam(ctx context.Context, team *domain.TournamentTeam) error {
	id, err := newID()
	if err != nil {
		return err
	}

	err = r.queries.CreateTournamentTeam(ctx, db.CreateTournamentTeamParams{
		ID:           id,
		TournamentID: team.TournamentID,
		TeamName:     team.TeamName,
		CaptainName:  team.CaptainName,
	})
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}

	team.ID = id
	return nil
}

func (r *TournamentRepository) GetTeam(ctx context.Context, id string) (*domain.TournamentTeam, error) {
	row, err := r.queries.GetTournamentTeam(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	t := toDomainTeam(row)
	return &t, nil
}

func (r *TournamentRepository) ListTeams(ctx context.Context, tournamentID string) ([]domain.TournamentTeam, error) {
	rows, err := r.queries.ListTournamentTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TournamentTeam, len(rows))
	for i, row := range rows {
		result[i] = toDomainTeam(row)
	}
	return result, nil
}

func (r *TournamentRepository) AddFixture(ctx context.Context, f *domain.Fixture) error {
	id, err := newID()
	if err != nil {
		return err
	}

	err = r.queries.CreateTournamentMatch(ctx, db.CreateTournamentMatchParams{
		ID:           id,
		TournamentID: f.TournamentID,
		MatchID:      f.MatchID,
		TeamAID:      f.TeamAID,
		TeamBID:      f.TeamBID,
		MatchNumber:  int64(f.MatchNumber),
		RoundName:    f.RoundName,
	})
	if err != nil {
		return fmt.Errorf("failed to insert fixture: %w", err)
	}

	f.ID = id
	return nil
}

func (r *TournamentRepository) GetFixture(ctx context.Context, id string) (*domain.Fixture, error) {
	row, err := r.queries.GetTournamentMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("fixture %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &domain.Fixture{
		ID:            row.ID,
		TournamentID:  row.TournamentID,
		MatchID:       row.MatchID,
		TeamAID:       row.TeamAID,
		TeamBID:       row.TeamBID,
		MatchNumber:   int(row.MatchNumber),
		RoundName:     row.RoundName,
		ResultApplied: row.ResultApplied,
	}, nil
}

func (r *TournamentRepository) ListFixtures(ctx context.Context, tournamentID string) ([]domain.FixtureView, error) {
	rows, err := r.queries.ListTournamentMatches(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.FixtureView, len(rows))
	for i, row := range rows {
		result[i] = domain.FixtureView{
			Fixture: domain.Fixture{
				ID:            row.ID,
				TournamentID:  row.TournamentID,
				MatchID:       row.MatchID,
				TeamAID:       row.TeamAID,
				TeamBID:       row.TeamBID,
				MatchNumber:   int(row.MatchNumber),
				RoundName:     row.RoundName,
				ResultApplied: row.ResultApplied,
			},
			TeamAName: row.TeamAName,
			TeamBName: row.TeamBName,
			Status:    domain.MatchStatus(row.Status),
			Result:    row.Result,
		}
	}
	return result, nil
}

// ApplyResult marks the fixture as applied and adds both teams' deltas in one
// transaction. A fixture that was already applied yields ErrConflict.
func (r *TournamentRepository) ApplyResult(ctx context.Context, fixture *domain.Fixture, teamA, teamB domain.TeamResult) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	marked, err := qtx.MarkFixtureResultApplied(ctx, fixture.ID)
	if err != nil {
		return fmt.Errorf("failed to mark fixture %s: %w", fixture.ID, err)
	}
	if marked == 0 {
		return fmt.Errorf("fixture %s result already applied: %w", fixture.ID, domain.ErrConflict)
	}

	for _, update := range []struct {
		teamID string
		result domain.TeamResult
	}{
		{fixture.TeamAID, teamA},
		{fixture.TeamBID, teamB},
	} {
		affected, err := qtx.AddTeamResult(ctx, db.AddTeamResultParams{
			Won:          int64(update.result.Won),
			Lost:         int64(update.result.Lost),
			Tied:         int64(update.result.Tied),
			Points:       int64(update.result.Points),
			RunsScored:   int64(update.result.RunsScored),
			BallsFaced:   int64(update.result.BallsFaced),
			RunsConceded: int64(update.result.RunsConceded),
			BallsBowled:  int64(update.result.BallsBowled),
			ID:           update.teamID,
		})
		if err != nil {
			return fmt.Errorf("failed to update team %s: %w", update.teamID, err)
		}
		if affected == 0 {
			return fmt.Errorf("team %s: %w", update.teamID, domain.ErrNotFound)
		}
	}

	return tx.Commit()
}

func toDomainTournament(row db.Tournament) domain.Tournament {
	return domain.Tournament{
		ID:             row.ID,
		AcademyID:      row.AcademyID,
		Name:           row.Name,
		TournamentType: row.TournamentType,
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		Venue:          row.Venue,
		Status:         domain.TournamentStatus(row.Status),
		WinnerTeamID:   row.WinnerTeamID,
		CreatedAt:      row.CreatedAt,
	}
}

func toDomainTeam(row db.TournamentTeam) domain.TournamentTeam {
	return domain.TournamentTeam{
		ID:            row.ID,
		TournamentID:  row.TournamentID,
		TeamName:      row.TeamName,
		CaptainName:   row.CaptainName,
		MatchesPlayed: int(row.MatchesPlayed),
		MatchesWon:    int(row.MatchesWon),
		MatchesLost:   int(row.MatchesLost),
		MatchesTied:   int(row.MatchesTied),
		Points:        int(row.Points),
		RunsScored:    int(row.RunsScored),
		BallsFaced:    int(row.BallsFaced),
		RunsConceded:  int(row.RunsConceded),
		BallsBowled:   int(row.BallsBowled),
	}
}

// AcademyOf resolves the owning academy of a tournament for authorization checks.
func (r *TournamentRepository) AcademyOf(ctx context.Context, id string) (int64, error) {
	t, err := r.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return t.AcademyID, nil
}
