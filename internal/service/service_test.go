package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cricket-academy/internal/config"
	"cricket-academy/internal/database"
	"cricket-academy/internal/db"
	"cricket-academy/internal/domain"
	"cricket-academy/internal/metrics"
	"cricket-academy/internal/repository"
	"cricket-academy/internal/scoring"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	matches     *repository.MatchRepository
	deliveries  *repository.DeliveryRepository
	tournaments *repository.TournamentRepository
	recorder    *metrics.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "test.db")}
	sqlDB, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	return &testEnv{
		matches:     repository.NewMatchRepository(sqlDB, q, zerolog.Nop()),
		deliveries:  repository.NewDeliveryRepository(sqlDB, q, zerolog.Nop()),
		tournaments: repository.NewTournamentRepository(sqlDB, q, zerolog.Nop()),
		recorder:    metrics.New(),
	}
}

type fakeNotifier struct {
	mu       sync.Mutex
	received []*domain.Match
	err      error
}

func (f *fakeNotifier) Enabled() bool { return true }

func (f *fakeNotifier) NotifyMatchCompleted(_ context.Context, m *domain.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, m)
	return f.err
}

func (env *testEnv) scoringService(strict bool) *ScoringService {
	cfg := &config.Config{StrictDeliveryOrder: strict, FeedPollInterval: 30 * time.Second}
	return NewScoringService(cfg, env.matches, env.deliveries, env.recorder, zerolog.Nop())
}

func schedule(t *testing.T, svc *MatchService, academyID int64) *domain.Match {
	t.Helper()
	m, err := svc.Schedule(context.Background(), ScheduleInput{
		AcademyID: academyID,
		TeamAName: "Lions",
		TeamBName: "Tigers",
		Venue:     "Main Ground",
		MatchDate: "2026-05-01",
	})
	require.NoError(t, err)
	return m
}

func TestMatchService_Schedule(t *testing.T) {
	env := newTestEnv(t)
	svc := newMatchService(env.matches, nil, env.recorder, zerolog.Nop())

	m := schedule(t, svc, 1)
	assert.Equal(t, domain.MatchScheduled, m.Status)
	assert.Equal(t, "T20", m.MatchFormat)

	_, err := svc.Schedule(context.Background(), ScheduleInput{AcademyID: 1, TeamAName: "Lions", MatchDate: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMatchService_StatusTransitionsAreFree(t *testing.T) {
	env := newTestEnv(t)
	notifier := &fakeNotifier{}
	svc := newMatchService(env.matches, notifier, env.recorder, zerolog.Nop())
	ctx := context.Background()

	m := schedule(t, svc, 1)

	got, err := svc.UpdateStatus(ctx, m.ID, domain.MatchCompleted, "abandoned")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCompleted, got.Status)

	got, err = svc.UpdateStatus(ctx, m.ID, domain.MatchScheduled, "")
	require.NoError(t, err)
	assert.Equal(t, domain.MatchScheduled, got.Status)

	_, err = svc.UpdateStatus(ctx, m.ID, "PAUSED", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, 999, domain.MatchLive, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	svc.Wait()
	assert.Len(t, notifier.received, 1)
}

func TestMatchService_RegisterFinalScoreNotifies(t *testing.T) {
	env := newTestEnv(t)
	notifier := &fakeNotifier{}
	svc := newMatchService(env.matches, notifier, env.recorder, zerolog.Nop())
	ctx := context.Background()

	m := schedule(t, svc, 1)
	overs, err := scoring.ParseOvers("19.4")
	require.NoError(t, err)

	got, err := svc.RegisterFinalScore(ctx, m.ID, FinalScoreInput{
		TeamAScore:   170,
		TeamAWickets: 5,
		TeamAOvers:   scoring.Overs(120),
		TeamBScore:   171,
		TeamBWickets: 4,
		TeamBOvers:   overs,
		Result:       "Tigers won by 6 wickets",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCompleted, got.Status)
	assert.Equal(t, 118, got.FinalScore.TeamBBalls)

	svc.Wait()
	require.Len(t, notifier.received, 1)
	assert.Equal(t, "Tigers won by 6 wickets", notifier.received[0].Result)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.recorder.WebhookCounter("ok")))

	_, err = svc.RegisterFinalScore(ctx, m.ID, FinalScoreInput{TeamAScore: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMatchService_FailedNotificationIsCounted(t *testing.T) {
	env := newTestEnv(t)
	notifier := &fakeNotifier{err: errors.New("webhook error: 502")}
	svc := newMatchService(env.matches, notifier, env.recorder, zerolog.Nop())

	m := schedule(t, svc, 1)
	_, err := svc.UpdateStatus(context.Background(), m.ID, domain.MatchCompleted, "Lions won")
	require.NoError(t, err)

	svc.Wait()
	assert.Len(t, notifier.received, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.recorder.WebhookCounter("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(env.recorder.WebhookCounter("ok")))
}

func delivery(matchID int64, inning, over, ball, runs int, extra domain.ExtraType) *domain.Delivery {
	return &domain.Delivery{
		MatchID:        matchID,
		InningNumber:   inning,
		OverNumber:     over,
		BallNumber:     ball,
		StrikerName:    "A",
		NonStrikerName: "B",
		BowlerName:     "X",
		RunsScored:     runs,
		ExtraType:      extra,
	}
}

func TestScoringService_LenientAcceptsDuplicatesAndOutOfOrder(t *testing.T) {
	env := newTestEnv(t)
	matches := newMatchService(env.matches, nil, env.recorder, zerolog.Nop())
	svc := env.scoringService(false)
	ctx := context.Background()

	m := schedule(t, matches, 1)

	require.NoError(t, svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, 3, 1, "")))
	require.NoError(t, svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, 1, 4, domain.ExtraNone)))
	require.NoError(t, svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, 1, 4, domain.ExtraNone)))

	log, err := svc.ReadLog(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, log, 3)
	assert.Equal(t, 3, log[0].BallNumber)
	assert.Equal(t, domain.ExtraNone, log[0].ExtraType)

	err = svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, 4, 0, "DEAD"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestScoringService_StrictRejectsOutOfSequence(t *testing.T) {
	env := newTestEnv(t)
	matches := newMatchService(env.matches, nil, env.recorder, zerolog.Nop())
	svc := env.scoringService(true)
	ctx := context.Background()

	m := schedule(t, matches, 1)

	require.NoError(t, svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, 1, 0, domain.ExtraNone)))
	require.NoError(t, svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, 2, 0, domain.ExtraNone)))

	err := svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, 2, 0, domain.ExtraNone))
	assert.ErrorIs(t, err, domain.ErrOutOfSequence)

	err = svc.AppendDelivery(ctx, delivery(m.ID, 1, 1, 1, 0, domain.ExtraNone))
	assert.ErrorIs(t, err, domain.ErrOutOfSequence)

	log, err := svc.ReadLog(ctx, m.ID)
	require.NoError(t, err)
	assert.Len(t, log, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(env.recorder.RejectedCounter("out_of_sequence")))
}

func TestScoringService_LiveAndFeed(t *testing.T) {
	env := newTestEnv(t)
	matches := newMatchService(env.matches, nil, env.recorder, zerolog.Nop())
	svc := env.scoringService(false)
	ctx := context.Background()

	m := schedule(t, matches, 1)

	live, err := svc.Live(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, live.Scorecard.TotalRuns)
	assert.Equal(t, scoring.NextBall{Inning: 1, Over: 0, Ball: 1}, live.Next)

	for ball := 1; ball <= 5; ball++ {
		require.NoError(t, svc.AppendDelivery(ctx, delivery(m.ID, 1, 0, ball, 1, domain.ExtraNone)))
	}
	wide := delivery(m.ID, 1, 0, 6, 0, domain.ExtraWide)
	wide.Extras = 1
	require.NoError(t, svc.AppendDelivery(ctx, wide))

	live, err = svc.Live(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, live.Scorecard.TotalRuns)
	assert.Equal(t, "0.5", live.Scorecard.Overs.String())
	assert.Equal(t, 0, live.Next.Over)
	assert.Equal(t, 7, live.Next.Ball)

	feed, err := svc.Feed(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, feed.Match.ID)
	assert.Equal(t, 30*time.Second, feed.PollInterval)
	require.Len(t, feed.Commentary, 6)
	assert.Equal(t, "0.6", feed.Commentary[0].Position)

	_, err = svc.Feed(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTournamentService_ResultFlow(t *testing.T) {
	env := newTestEnv(t)
	matches := newMatchService(env.matches, nil, env.recorder, zerolog.Nop())
	svc := NewTournamentService(env.tournaments, env.matches, zerolog.Nop())
	ctx := context.Background()

	tour, err := svc.Create(ctx, CreateTournamentInput{AcademyID: 1, Name: "Summer Cup", StartDate: "2026-06-01"})
	require.NoError(t, err)
	assert.Equal(t, "LEAGUE", tour.TournamentType)
	assert.Equal(t, domain.TournamentUpcoming, tour.Status)

	lions, err := svc.AddTeam(ctx, tour.ID, "Lions", "Asha")
	require.NoError(t, err)
	tigers, err := svc.AddTeam(ctx, tour.ID, "Tigers", "")
	require.NoError(t, err)
	bears, err := svc.AddTeam(ctx, tour.ID, "Bears", "")
	require.NoError(t, err)

	first := schedule(t, matches, 1)
	second := schedule(t, matches, 1)

	f1, err := svc.AddFixture(ctx, tour.ID, FixtureInput{MatchID: first.ID, TeamAID: lions.ID, TeamBID: tigers.ID, MatchNumber: 1})
	require.NoError(t, err)
	f2, err := svc.AddFixture(ctx, tour.ID, FixtureInput{MatchID: second.ID, TeamAID: bears.ID, TeamBID: tigers.ID, MatchNumber: 2})
	require.NoError(t, err)

	_, err = svc.ApplyResult(ctx, tour.ID, f1.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = matches.RegisterFinalScore(ctx, first.ID, FinalScoreInput{TeamAScore: 150, TeamAOvers: 120, TeamBScore: 120, TeamBOvers: 120})
	require.NoError(t, err)
	_, err = matches.RegisterFinalScore(ctx, second.ID, FinalScoreInput{TeamAScore: 200, TeamAOvers: 120, TeamBScore: 100, TeamBOvers: 120})
	require.NoError(t, err)

	_, err = svc.ApplyResult(ctx, tour.ID, f1.ID)
	require.NoError(t, err)
	table, err := svc.ApplyResult(ctx, tour.ID, f2.ID)
	require.NoError(t, err)

	_, err = svc.ApplyResult(ctx, tour.ID, f1.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.Len(t, table, 3)
	// Lions and Bears both have 2 points; Bears won by more.
	assert.Equal(t, "Bears", table[0].TeamName)
	assert.Equal(t, 5.0, table[0].NetRunRate)
	assert.Equal(t, "Lions", table[1].TeamName)
	assert.Equal(t, 1.5, table[1].NetRunRate)
	assert.Equal(t, "Tigers", table[2].TeamName)
	assert.Equal(t, 2, table[2].MatchesPlayed)
	assert.Equal(t, 0, table[2].Points)

	detail, err := svc.Detail(ctx, tour.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Fixtures, 2)
	assert.Equal(t, domain.MatchCompleted, detail.Fixtures[0].Status)
}

func TestTournamentService_FixtureRequiresSameAcademy(t *testing.T) {
	env := newTestEnv(t)
	matches := newMatchService(env.matches, nil, env.recorder, zerolog.Nop())
	svc := NewTournamentService(env.tournaments, env.matches, zerolog.Nop())
	ctx := context.Background()

	tour, err := svc.Create(ctx, CreateTournamentInput{AcademyID: 1, Name: "Cup", StartDate: "2026-06-01"})
	require.NoError(t, err)
	a, err := svc.AddTeam(ctx, tour.ID, "A", "")
	require.NoError(t, err)
	b, err := svc.AddTeam(ctx, tour.ID, "B", "")
	require.NoError(t, err)

	foreign := schedule(t, matches, 2)
	_, err = svc.AddFixture(ctx, tour.ID, FixtureInput{MatchID: foreign.ID, TeamAID: a.ID, TeamBID: b.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.AddFixture(ctx, tour.ID, FixtureInput{MatchID: foreign.ID, TeamAID: a.ID, TeamBID: a.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Create(ctx, CreateTournamentInput{AcademyID: 1, Name: "Cup", StartDate: "2026-06-01", TournamentType: "SWISS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
