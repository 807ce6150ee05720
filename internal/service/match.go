package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cricket-academy/internal/api"
	"cricket-academy/internal/constants"
	"cricket-academy/internal/domain"
	"cricket-academy/internal/metrics"
	"cricket-academy/internal/repository"
	"cricket-academy/internal/scoring"

	"github.com/rs/zerolog"
)

type resultNotifier interface {
	Enabled() bool
	NotifyMatchCompleted(ctx context.Context, match *domain.Match) error
}

type MatchService struct {
	matches  *repository.MatchRepository
	notifier resultNotifier
	metrics  *metrics.Recorder
	logger   zerolog.Logger

	background sync.WaitGroup
}

func NewMatchService(matches *repository.MatchRepository, notifier *api.ResultNotifier, recorder *metrics.Recorder, logger zerolog.Logger) *MatchService {
	return newMatchService(matches, notifier, recorder, logger)
}

func newMatchService(matches *repository.MatchRepository, notifier resultNotifier, recorder *metrics.Recorder, logger zerolog.Logger) *MatchService {
	return &MatchService{matches: matches, notifier: notifier, metrics: recorder, logger: logger}
}

type ScheduleInput struct {
	AcademyID   int64
	TeamAName   string
	TeamBName   string
	Venue       string
	MatchDate   string
	MatchFormat string
}

// Schedule registers a new match. There is no double-booking or date check.
func (s *MatchService) Schedule(ctx context.Context, in ScheduleInput) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	in.TeamAName = strings.TrimSpace(in.TeamAName)
	in.TeamBName = strings.TrimSpace(in.TeamBName)
	switch {
	case in.AcademyID <= 0:
		return nil, fmt.Errorf("%w: academy is required", domain.ErrInvalidInput)
	case in.TeamAName == "" || in.TeamBName == "":
		return nil, fmt.Errorf("%w: both team names are required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.MatchDate) == "":
		return nil, fmt.Errorf("%w: match date is required", domain.ErrInvalidInput)
	}
	if in.MatchFormat == "" {
		in.MatchFormat = constants.DefaultMatchFormat
	}

	match := &domain.Match{
		AcademyID:   in.AcademyID,
		TeamAName:   in.TeamAName,
		TeamBName:   in.TeamBName,
		Venue:       in.Venue,
		MatchDate:   in.MatchDate,
		MatchFormat: in.MatchFormat,
		Status:      domain.MatchScheduled,
	}
	if err := s.matches.Create(ctx, match); err != nil {
		s.logger.Error().Err(err).Int64("academy_id", in.AcademyID).Msg("failed to schedule match")
		return nil, err
	}

	s.logger.Info().Int64("match_id", match.ID).Int64("academy_id", match.AcademyID).Msg("match scheduled")
	return match, nil
}

func (s *MatchService) Get(ctx context.Context, id int64) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matches.Get(ctx, id)
}

func (s *MatchService) ListByAcademy(ctx context.Context, academyID int64) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.matches.ListByAcademy(ctx, academyID)
}

// UpdateStatus overwrites status and result unconditionally. Any transition
// between the three statuses is allowed.
func (s *MatchService) UpdateStatus(ctx context.Context, id int64, status domain.MatchStatus, result string) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if err := s.matches.UpdateStatus(ctx, id, status, result); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("match_id", id).Str("status", string(status)).Msg("match status updated")
	if status == domain.MatchCompleted {
		s.notifyCompleted(id)
	}
	return s.matches.Get(ctx, id)
}

type FinalScoreInput struct {
	TeamAScore   int
	TeamAWickets int
	TeamAOvers   scoring.Overs
	TeamBScore   int
	TeamBWickets int
	TeamBOvers   scoring.Overs
	Result       string
}

// RegisterFinalScore completes the match with a manually entered snapshot.
// The snapshot is never reconciled with the ball log.
func (s *MatchService) RegisterFinalScore(ctx context.Context, id int64, in FinalScoreInput) (*domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	for _, v := range []int{in.TeamAScore, in.TeamAWickets, in.TeamAOvers.Balls(), in.TeamBScore, in.TeamBWickets, in.TeamBOvers.Balls()} {
		if v < 0 {
			return nil, fmt.Errorf("%w: scores must not be negative", domain.ErrInvalidInput)
		}
	}

	score := domain.FinalScore{
		TeamAScore:   in.TeamAScore,
		TeamAWickets: in.TeamAWickets,
		TeamABalls:   in.TeamAOvers.Balls(),
		TeamBScore:   in.TeamBScore,
		TeamBWickets: in.TeamBWickets,
		TeamBBalls:   in.TeamBOvers.Balls(),
	}
	if err := s.matches.RegisterFinalScore(ctx, id, score, in.Result); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("match_id", id).Str("result", in.Result).Msg("final score registered")
	s.notifyCompleted(id)
	return s.matches.Get(ctx, id)
}

func (s *MatchService) notifyCompleted(matchID int64) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}

	s.background.Add(1)
	go func() {
		defer s.background.Done()

		ctx, cancel := context.WithTimeout(context.Background(), constants.WebhookTimeout)
		defer cancel()

		err := s.sendResult(ctx, matchID)
		if s.metrics != nil {
			s.metrics.WebhookSent(err)
		}
		if err != nil {
			s.logger.Error().Err(err).Int64("match_id", matchID).Msg("background result notification failed")
		}
	}()
}

func (s *MatchService) sendResult(ctx context.Context, matchID int64) error {
	match, err := s.matches.Get(ctx, matchID)
	if err != nil {
		return err
	}
	return s.notifier.NotifyMatchCompleted(ctx, match)
}

// Wait blocks until pending result notifications finish.
func (s *MatchService) Wait() {
	s.background.Wait()
}
