package auth

import (
	"context"
	"fmt"

	"cricket-academy/internal/domain"
	"cricket-academy/internal/repository"

	"github.com/rs/zerolog"
)

type matchOwners interface {
	AcademyOf(ctx context.Context, id int64) (int64, error)
}

type tournamentOwners interface {
	AcademyOf(ctx context.Context, id string) (int64, error)
}

// Guard resolves the academy that owns a resource and compares it with the
// caller. Unknown resources surface as ErrNotFound, not ErrForbidden.
type Guard struct {
	matches     matchOwners
	tournaments tournamentOwners
	logger      zerolog.Logger
}

func NewGuard(matches *repository.MatchRepository, tournaments *repository.TournamentRepository, logger zerolog.Logger) *Guard {
	return newGuard(matches, tournaments, logger)
}

func newGuard(matches matchOwners, tournaments tournamentOwners, logger zerolog.Logger) *Guard {
	return &Guard{
		matches:     matches,
		tournaments: tournaments,
		logger:      logger.With().Str("component", "guard").Logger(),
	}
}

func (g *Guard) Academy(ctx context.Context, academyID int64) error {
	p, ok := FromContext(ctx)
	if !ok {
		return fmt.Errorf("no principal: %w", domain.ErrUnauthorized)
	}
	if p.AcademyID != academyID {
		g.logger.Warn().
			Int64("caller_academy_id", p.AcademyID).
			Int64("academy_id", academyID).
			Msg("cross-academy access denied")
		return fmt.Errorf("academy %d: %w", academyID, domain.ErrForbidden)
	}
	return nil
}

func (g *Guard) Match(ctx context.Context, matchID int64) error {
	if _, ok := FromContext(ctx); !ok {
		return fmt.Errorf("no principal: %w", domain.ErrUnauthorized)
	}
	owner, err := g.matches.AcademyOf(ctx, matchID)
	if err != nil {
		return err
	}
	return g.Academy(ctx, owner)
}

func (g *Guard) Tournament(ctx context.Context, tournamentID string) error {
	if _, ok := FromContext(ctx); !ok {
		return fmt.Errorf("no principal: %w", domain.ErrUnauthorized)
	}
	owner, err := g.tournaments.AcademyOf(ctx, tournamentID)
	if err != nil {
		return err
	}
	return g.Academy(ctx, owner)
}
