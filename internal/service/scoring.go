package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cricket-academy/internal/config"
	"cricket-academy/internal/constants"
	"cricket-academy/internal/domain"
	"cricket-academy/internal/metrics"
	"cricket-academy/internal/repository"
	"cricket-academy/internal/scoring"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ScoringService struct {
	matches      *repository.MatchRepository
	deliveries   *repository.DeliveryRepository
	metrics      *metrics.Recorder
	strict       bool
	pollInterval time.Duration
	logger       zerolog.Logger

	// Strict appends read the log before writing; the lock keeps two
	// scorers from validating against the same tail.
	appendMu sync.Mutex
}

func NewScoringService(cfg *config.Config, matches *repository.MatchRepository, deliveries *repository.DeliveryRepository, recorder *metrics.Recorder, logger zerolog.Logger) *ScoringService {
	return &ScoringService{
		matches:      matches,
		deliveries:   deliveries,
		metrics:      recorder,
		strict:       cfg.StrictDeliveryOrder,
		pollInterval: cfg.FeedPollInterval,
		logger:       logger,
	}
}

// AppendDelivery records one ball. In the default mode the position is taken
// as given, so duplicates and out-of-order corrections are stored verbatim.
func (s *ScoringService) AppendDelivery(ctx context.Context, d *domain.Delivery) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if d.ExtraType == "" {
		d.ExtraType = domain.ExtraNone
	}
	if !d.ExtraType.Valid() {
		s.reject("invalid_extra_type")
		return fmt.Errorf("%w: unknown extra type %q", domain.ErrInvalidInput, d.ExtraType)
	}

	if s.strict {
		s.appendMu.Lock()
		defer s.appendMu.Unlock()

		log, err := s.deliveries.ListByMatch(ctx, d.MatchID)
		if err != nil {
			return err
		}
		if err := scoring.NewSequencer(log).Check(*d); err != nil {
			reason := "invalid_input"
			if errors.Is(err, domain.ErrOutOfSequence) {
				reason = "out_of_sequence"
			}
			s.reject(reason)
			s.logger.Warn().Err(err).Int64("match_id", d.MatchID).Msg("delivery rejected")
			return err
		}
	}

	if err := s.deliveries.Append(ctx, d); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.DeliveryAppended(string(d.ExtraType))
	}
	s.logger.Debug().
		Int64("match_id", d.MatchID).
		Int64("delivery_id", d.ID).
		Int("inning", d.InningNumber).
		Int("over", d.OverNumber).
		Int("ball", d.BallNumber).
		Msg("delivery appended")
	return nil
}

func (s *ScoringService) reject(reason string) {
	if s.metrics != nil {
		s.metrics.DeliveryRejected(reason)
	}
}

// ReadLog returns the raw log in insertion order. An unknown match reads as
// an empty log, the same as a match with no balls yet.
func (s *ScoringService) ReadLog(ctx context.Context, matchID int64) ([]domain.Delivery, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.deliveries.ListByMatch(ctx, matchID)
}

type LiveView struct {
	Scorecard scoring.Scorecard
	Next      scoring.NextBall
}

// Live is the scorer's view: the derived scorecard and the suggested next ball.
func (s *ScoringService) Live(ctx context.Context, matchID int64) (*LiveView, error) {
	log, err := s.ReadLog(ctx, matchID)
	if err != nil {
		return nil, err
	}
	card := scoring.Derive(log)
	return &LiveView{
		Scorecard: card,
		Next:      scoring.Suggest(log),
	}, nil
}

type Feed struct {
	Match        *domain.Match
	Scorecard    scoring.Scorecard
	Commentary   []scoring.CommentaryLine
	PollInterval time.Duration
}

func (s *ScoringService) Feed(ctx context.Context, matchID int64) (*Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var match *domain.Match
	var log []domain.Delivery

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		match, err = s.matches.Get(gCtx, matchID)
		return err
	})
	g.Go(func() error {
		var err error
		log, err = s.deliveries.ListByMatch(gCtx, matchID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Feed{
		Match:        match,
		Scorecard:    scoring.Derive(log),
		Commentary:   scoring.Commentary(log),
		PollInterval: s.pollInterval,
	}, nil
}
