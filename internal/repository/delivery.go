package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cricket-academy/internal/db"
	"cricket-academy/internal/domain"

	"github.com/rs/zerolog"
)

// DeliveryRepository is the append-only ball log. Rows are never updated or
// deleted, and nothing here deduplicates a retried append.
type DeliveryRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewDeliveryRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *DeliveryRepository {
	return &DeliveryRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *DeliveryRepository) Append(ctx context.Context, d *domain.Delivery) error {
	if d.ExtraType == "" {
		d.ExtraType = domain.ExtraNone
	}
	createdAt := time.Now().UTC()

	id, err := r.queries.InsertMatchBall(ctx, db.InsertMatchBallParams{
		MatchID:        d.MatchID,
		InningNumber:   int64(d.InningNumber),
		OverNumber:     int64(d.OverNumber),
		BallNumber:     int64(d.BallNumber),
		StrikerName:    d.StrikerName,
		NonStrikerName: d.NonStrikerName,
		BowlerName:     d.BowlerName,
		RunsScored:     int64(d.RunsScored),
		Extras:         int64(d.Extras),
		ExtraType:      string(d.ExtraType),
		IsWicket:       d.IsWicket,
		WicketType:     d.WicketType,
		CreatedAt:      createdAt,
	})
	if err != nil {
		r.logger.Error().Err(err).Int64("match_id", d.MatchID).Msg("failed to insert delivery")
		return fmt.Errorf("failed to insert delivery for match %d: %w", d.MatchID, err)
	}

	d.ID = id
	d.CreatedAt = createdAt
	return nil
}

// ListByMatch returns the log in insertion order, not (inning, over, ball) order.
func (r *DeliveryRepository) ListByMatch(ctx context.Context, matchID int64) ([]domain.Delivery, error) {
	rows, err := r.queries.ListMatchBalls(ctx, matchID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Delivery, len(rows))
	for i, row := range rows {
		result[i] = domain.Delivery{
			ID:             row.ID,
			MatchID:        row.MatchID,
			InningNumber:   int(row.InningNumber),
			OverNumber:     int(row.OverNumber),
			BallNumber:     int(row.BallNumber),
			StrikerName:    row.StrikerName,
			NonStrikerName: row.NonStrikerName,
			BowlerName:     row.BowlerName,
			RunsScored:     int(row.RunsScored),
			Extras:         int(row.Extras),
			ExtraType:      domain.ExtraType(row.ExtraType),
			IsWicket:       row.IsWicket,
			WicketType:     row.WicketType,
			CreatedAt:      row.CreatedAt,
		}
	}
	return result, nil
}
