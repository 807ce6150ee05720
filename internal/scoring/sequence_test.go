package scoring

import (
	"testing"

	"cricket-academy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullOver(inning, over int) []domain.Delivery {
	var log []domain.Delivery
	for i := 1; i <= BallsPerOver; i++ {
		d := ball(over, i, 1, 0, domain.ExtraNone)
		d.InningNumber = inning
		log = append(log, d)
	}
	return log
}

func TestSequencer_FirstBallMustOpenInnings(t *testing.T) {
	s := NewSequencer(nil)

	require.NoError(t, s.Check(ball(0, 1, 0, 0, domain.ExtraNone)))

	err := s.Check(ball(0, 2, 0, 0, domain.ExtraNone))
	assert.ErrorIs(t, err, domain.ErrOutOfSequence)
}

func TestSequencer_RejectsDuplicateAndGap(t *testing.T) {
	s := NewSequencer([]domain.Delivery{ball(0, 1, 0, 0, domain.ExtraNone)})

	assert.ErrorIs(t, s.Check(ball(0, 1, 0, 0, domain.ExtraNone)), domain.ErrOutOfSequence)
	assert.ErrorIs(t, s.Check(ball(0, 3, 0, 0, domain.ExtraNone)), domain.ErrOutOfSequence)
	assert.NoError(t, s.Check(ball(0, 2, 0, 0, domain.ExtraNone)))
}

func TestSequencer_OverNeedsSixLegalBalls(t *testing.T) {
	log := fullOver(1, 0)
	log[5] = ball(0, 6, 0, 1, domain.ExtraWide)
	s := NewSequencer(log)

	assert.ErrorIs(t, s.Check(ball(1, 1, 0, 0, domain.ExtraNone)), domain.ErrOutOfSequence)
	assert.NoError(t, s.Check(ball(0, 7, 0, 0, domain.ExtraNone)))

	s.Advance(ball(0, 7, 0, 0, domain.ExtraNone))
	assert.NoError(t, s.Check(ball(1, 1, 0, 0, domain.ExtraNone)))
	assert.ErrorIs(t, s.Check(ball(1, 2, 0, 0, domain.ExtraNone)), domain.ErrOutOfSequence)
	assert.ErrorIs(t, s.Check(ball(2, 1, 0, 0, domain.ExtraNone)), domain.ErrOutOfSequence)
}

func TestSequencer_CompleteOverRejectsSeventhBall(t *testing.T) {
	s := NewSequencer(fullOver(1, 0))

	assert.True(t, s.OverComplete())
	assert.ErrorIs(t, s.Check(ball(0, 7, 0, 0, domain.ExtraNone)), domain.ErrOutOfSequence)
	assert.ErrorIs(t, s.Check(ball(0, 7, 0, 1, domain.ExtraWide)), domain.ErrOutOfSequence)
	assert.NoError(t, s.Check(ball(1, 1, 0, 0, domain.ExtraNone)))
}

func TestSequencer_EarlyWideDelaysRollover(t *testing.T) {
	s := NewSequencer([]domain.Delivery{
		ball(0, 1, 0, 0, domain.ExtraNone),
		ball(0, 2, 0, 1, domain.ExtraWide),
		ball(0, 3, 0, 0, domain.ExtraNone),
		ball(0, 4, 0, 0, domain.ExtraNone),
		ball(0, 5, 0, 0, domain.ExtraNone),
		ball(0, 6, 0, 0, domain.ExtraNone),
	})

	assert.Equal(t, 5, s.LegalInOver())
	assert.ErrorIs(t, s.Check(ball(1, 1, 0, 0, domain.ExtraNone)), domain.ErrOutOfSequence)
	assert.NoError(t, s.Check(ball(0, 7, 0, 0, domain.ExtraNone)))
}

func TestSequencer_LongOverOfExtras(t *testing.T) {
	s := NewSequencer(nil)
	n := 1
	bowl := func(extra domain.ExtraType) {
		d := ball(0, n, 0, 0, extra)
		require.NoError(t, s.Check(d), "ball 0.%d", n)
		s.Advance(d)
		n++
	}

	for i := 0; i < 10; i++ {
		bowl(domain.ExtraWide)
	}
	for i := 0; i < BallsPerOver; i++ {
		bowl(domain.ExtraNone)
	}

	assert.Equal(t, 16, s.last.BallNumber)
	assert.True(t, s.OverComplete())
	assert.NoError(t, s.Check(ball(1, 1, 0, 0, domain.ExtraNone)))
}

// Following every suggestion must always pass the strict check.
func TestSequencer_AcceptsItsOwnSuggestion(t *testing.T) {
	pattern := []domain.ExtraType{
		domain.ExtraNone, domain.ExtraWide, domain.ExtraNone, domain.ExtraLegBye,
		domain.ExtraNoBall, domain.ExtraNone, domain.ExtraBye, domain.ExtraNone,
		domain.ExtraNone, domain.ExtraWide, domain.ExtraNone, domain.ExtraNone,
	}

	var log []domain.Delivery
	for i := 0; i < 60; i++ {
		next := Suggest(log)
		d := ball(next.Over, next.Ball, 1, 0, pattern[i%len(pattern)])
		require.NoError(t, NewSequencer(log).Check(d), "delivery %d at %d.%d", i, next.Over, next.Ball)
		log = append(log, d)
	}

	card := Derive(log)
	assert.Equal(t, 60-3*5, card.Overs.Balls())
}

func TestSequencer_InningsTransitions(t *testing.T) {
	s := NewSequencer(fullOver(1, 0))

	second := ball(0, 1, 0, 0, domain.ExtraNone)
	second.InningNumber = 2
	assert.NoError(t, s.Check(second))

	third := second
	third.InningNumber = 3
	assert.ErrorIs(t, s.Check(third), domain.ErrOutOfSequence)

	s.Advance(second)
	back := ball(1, 1, 0, 0, domain.ExtraNone)
	assert.ErrorIs(t, s.Check(back), domain.ErrOutOfSequence)
}

func TestSequencer_FieldChecks(t *testing.T) {
	s := NewSequencer(nil)

	tests := []struct {
		name string
		d    domain.Delivery
	}{
		{"unknown extra", ball(0, 1, 0, 0, domain.ExtraType("PENALTY"))},
		{"ball zero", ball(0, 0, 0, 0, domain.ExtraNone)},
		{"negative runs", ball(0, 1, -4, 0, domain.ExtraNone)},
		{"negative over", ball(-1, 1, 0, 0, domain.ExtraNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Check(tt.d), domain.ErrInvalidInput)
		})
	}
}
