package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cricket-academy/internal/db"
	"cricket-academy/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *MatchRepository) Create(ctx context.Context, match *domain.Match) error {
	now := time.Now().UTC()
	id, err := r.queries.CreateMatch(ctx, db.CreateMatchParams{
		AcademyID:   match.AcademyID,
		TeamAName:   match.TeamAName,
		TeamBName:   match.TeamBName,
		Venue:       match.Venue,
		MatchDate:   match.MatchDate,
		MatchFormat: match.MatchFormat,
		Status:      string(match.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("failed to insert match: %w", err)
	}

	match.ID = id
	match.CreatedAt = now
	match.UpdatedAt = now
	return nil
}

func (r *MatchRepository) Get(ctx context.Context, id int64) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	m := toDomainMatch(row)
	return &m, nil
}

// AcademyOf resolves the owning academy of a match for authorization checks.
func (r *MatchRepository) AcademyOf(ctx context.Context, id int64) (int64, error) {
	academyID, err := r.queries.GetMatchAcademy(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("match %d: %w", id, domain.ErrNotFound)
	}
	return academyID, err
}

func (r *MatchRepository) ListByAcademy(ctx context.Context, academyID int64) ([]domain.Match, error) {
	rows, err := r.queries.ListMatchesByAcademy(ctx, academyID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Match, len(rows))
	for i, row := range rows {
		result[i] = toDomainMatch(row)
	}
	return result, nil
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, id int64, status domain.MatchStatus, resultText string) error {
	affected, err := r.queries.UpdateMatchStatus(ctx, db.UpdateMatchStatusParams{
		Status:    string(status),
		Result:    resultText,
		UpdatedAt: time.Now().UTC(),
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("failed to update match %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("match %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *MatchRepository) RegisterFinalScore(ctx context.Context, id int64, score domain.FinalScore, resultText string) error {
	affected, err := r.queries.RegisterFinalScore(ctx, db.RegisterFinalScoreParams{
		Status:       string(domain.MatchCompleted),
		Result:       resultText,
		TeamAScore:   int64(score.TeamAScore),
		TeamAWickets: int64(score.TeamAWickets),
		TeamABalls:   int64(score.TeamABalls),
		TeamBScore:   int64(score.TeamBScore),
		TeamBWickets: int64(score.TeamBWickets),
		TeamBBalls:   int64(score.TeamBBalls),
		UpdatedAt:    time.Now().UTC(),
		ID:           id,
	})
	if err != nil {
		return fmt.Errorf("failed to register final score for match %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("match %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toDomainMatch(row db.Match) domain.Match {
	return domain.Match{
		ID:          row.ID,
		AcademyID:   row.AcademyID,
		TeamAName:   row.TeamAName,
		TeamBName:   row.TeamBName,
		Venue:       row.Venue,
		MatchDate:   row.MatchDate,
		MatchFormat: row.MatchFormat,
		Status:      domain.MatchStatus(row.Status),
		Result:      row.Result,
		FinalScore: domain.FinalScore{
			TeamAScore:   int(row.TeamAScore),
			TeamAWickets: int(row.TeamAWickets),
			TeamABalls:   int(row.TeamABalls),
			TeamBScore:   int(row.TeamBScore),
			TeamBWickets: int(row.TeamBWickets),
			TeamBBalls:   int(row.TeamBBalls),
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
