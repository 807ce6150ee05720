package scoring

import (
	"testing"

	"cricket-academy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ball(over, n, runs, extras int, extra domain.ExtraType) domain.Delivery {
	return domain.Delivery{
		InningNumber: 1,
		OverNumber:   over,
		BallNumber:   n,
		StrikerName:  "Rohan",
		BowlerName:   "Imran",
		RunsScored:   runs,
		Extras:       extras,
		ExtraType:    extra,
	}
}

func TestDerive_EmptyLog(t *testing.T) {
	card := Derive(nil)

	assert.Equal(t, 0, card.TotalRuns)
	assert.Equal(t, 0, card.Wickets)
	assert.Equal(t, "0.0", card.Overs.String())
	assert.Nil(t, card.LastDelivery)
	assert.Empty(t, card.Innings)
}

func TestDerive_WideAddsRunsButNoLegalBall(t *testing.T) {
	card := Derive([]domain.Delivery{
		ball(0, 1, 1, 0, domain.ExtraNone),
		ball(0, 2, 0, 1, domain.ExtraWide),
	})

	assert.Equal(t, 2, card.TotalRuns)
	assert.Equal(t, 1, card.LegalBalls)
	assert.Equal(t, "0.1", card.Overs.String())
}

func TestDerive_LegalBallsDriveOversDisplay(t *testing.T) {
	var log []domain.Delivery
	for i := 1; i <= 6; i++ {
		log = append(log, ball(0, i, 1, 0, domain.ExtraNone))
	}
	log = append(log,
		ball(1, 1, 0, 1, domain.ExtraBye),
		ball(1, 2, 0, 1, domain.ExtraLegBye),
		ball(1, 3, 0, 1, domain.ExtraNoBall),
	)

	card := Derive(log)

	assert.Equal(t, 8, card.LegalBalls)
	assert.Equal(t, "1.2", card.Overs.String())
	assert.Equal(t, 9, card.TotalRuns)
	assert.Equal(t, 3, card.Extras)
}

func TestDerive_WicketCountIgnoresOrder(t *testing.T) {
	log := []domain.Delivery{
		ball(0, 1, 0, 0, domain.ExtraNone),
		ball(0, 2, 0, 0, domain.ExtraNone),
		ball(0, 3, 0, 0, domain.ExtraNone),
		ball(0, 4, 2, 0, domain.ExtraNone),
		ball(0, 5, 0, 0, domain.ExtraNone),
	}
	log[0].IsWicket = true
	log[3].IsWicket = true
	log[4].IsWicket = true

	reversed := make([]domain.Delivery, len(log))
	for i := range log {
		reversed[len(log)-1-i] = log[i]
	}

	assert.Equal(t, 3, Derive(log).Wickets)
	assert.Equal(t, 3, Derive(reversed).Wickets)
}

func TestDerive_LastDeliveryFollowsLogOrder(t *testing.T) {
	log := []domain.Delivery{
		ball(2, 3, 4, 0, domain.ExtraNone),
		ball(0, 1, 1, 0, domain.ExtraNone),
	}

	card := Derive(log)

	require.NotNil(t, card.LastDelivery)
	assert.Equal(t, 0, card.LastDelivery.OverNumber)
	assert.Equal(t, 1, card.LastDelivery.BallNumber)
}

func TestDerive_InningsAndFigures(t *testing.T) {
	log := []domain.Delivery{
		{InningNumber: 1, OverNumber: 0, BallNumber: 1, StrikerName: "A", NonStrikerName: "B", BowlerName: "X", RunsScored: 4, ExtraType: domain.ExtraNone},
		{InningNumber: 1, OverNumber: 0, BallNumber: 2, StrikerName: "A", NonStrikerName: "B", BowlerName: "X", Extras: 1, ExtraType: domain.ExtraWide},
		{InningNumber: 1, OverNumber: 0, BallNumber: 3, StrikerName: "A", NonStrikerName: "B", BowlerName: "X", RunsScored: 6, ExtraType: domain.ExtraNone},
		{InningNumber: 1, OverNumber: 0, BallNumber: 4, StrikerName: "A", NonStrikerName: "B", BowlerName: "X", Extras: 2, ExtraType: domain.ExtraLegBye},
		{InningNumber: 1, OverNumber: 0, BallNumber: 5, StrikerName: "B", NonStrikerName: "A", BowlerName: "X", IsWicket: true, WicketType: "bowled", ExtraType: domain.ExtraNone},
		{InningNumber: 1, OverNumber: 0, BallNumber: 6, StrikerName: "C", NonStrikerName: "A", BowlerName: "X", IsWicket: true, WicketType: "Run Out", ExtraType: domain.ExtraNone},
		{InningNumber: 2, OverNumber: 0, BallNumber: 1, StrikerName: "P", NonStrikerName: "Q", BowlerName: "Y", RunsScored: 1, ExtraType: domain.ExtraNone},
	}

	card := Derive(log)
	require.Len(t, card.Innings, 2)

	first := card.Innings[0]
	assert.Equal(t, 1, first.Inning)
	assert.Equal(t, 13, first.TotalRuns)
	assert.Equal(t, 2, first.Wickets)
	assert.Equal(t, "0.5", first.Overs.String())

	require.Len(t, first.Batting, 3)
	a := first.Batting[0]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, 10, a.Runs)
	assert.Equal(t, 3, a.Balls)
	assert.Equal(t, 1, a.Fours)
	assert.Equal(t, 1, a.Sixes)
	assert.False(t, a.Out)
	assert.Equal(t, 333.33, a.StrikeRate)

	b := first.Batting[1]
	assert.Equal(t, "B", b.Name)
	assert.True(t, b.Out)
	assert.Equal(t, "bowled", b.HowOut)

	require.Len(t, first.Bowling, 1)
	x := first.Bowling[0]
	assert.Equal(t, 5, x.LegalBalls)
	assert.Equal(t, 11, x.RunsConceded)
	assert.Equal(t, 1, x.Wickets)
	assert.Equal(t, 1, x.Wides)
	assert.Equal(t, 13.2, x.Economy)

	second := card.Innings[1]
	assert.Equal(t, 2, second.Inning)
	assert.Equal(t, 1, second.TotalRuns)
	assert.Equal(t, 14, card.TotalRuns)
}

func TestSuggest(t *testing.T) {
	wideSix := ball(0, 6, 0, 1, domain.ExtraWide)
	noBallSix := ball(4, 6, 0, 1, domain.ExtraNoBall)

	tests := []struct {
		name     string
		log      []domain.Delivery
		wantOver int
		wantBall int
	}{
		{"empty log opens the innings", nil, 0, 1},
		{"mid over", []domain.Delivery{ball(3, 2, 0, 0, domain.ExtraNone)}, 3, 3},
		{"legal sixth ball rolls over", []domain.Delivery{ball(0, 6, 1, 0, domain.ExtraNone)}, 1, 1},
		{"wide sixth ball stays in over", []domain.Delivery{wideSix}, 0, 7},
		{"no-ball sixth ball stays in over", []domain.Delivery{noBallSix}, 4, 7},
		{"bye sixth ball is legal and rolls over", []domain.Delivery{ball(0, 6, 0, 1, domain.ExtraBye)}, 1, 1},
		{"legal seventh ball rolls over", []domain.Delivery{ball(0, 7, 0, 0, domain.ExtraNone)}, 1, 1},
		{"full over rolls over", fullOver(1, 0), 1, 1},
		{"earlier wide keeps the over open", []domain.Delivery{
			ball(0, 1, 0, 0, domain.ExtraNone),
			ball(0, 2, 0, 1, domain.ExtraWide),
			ball(0, 3, 0, 0, domain.ExtraNone),
			ball(0, 4, 0, 0, domain.ExtraNone),
			ball(0, 5, 0, 0, domain.ExtraNone),
			ball(0, 6, 0, 0, domain.ExtraNone),
		}, 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Suggest(tt.log)
			assert.Equal(t, tt.wantOver, next.Over)
			assert.Equal(t, tt.wantBall, next.Ball)
		})
	}
}

func TestSuggest_CarriesPlayers(t *testing.T) {
	next := Suggest([]domain.Delivery{{
		InningNumber:   2,
		OverNumber:     5,
		BallNumber:     6,
		StrikerName:    "Rohan",
		NonStrikerName: "Arjun",
		BowlerName:     "Imran",
		ExtraType:      domain.ExtraNone,
	}})

	assert.Equal(t, NextBall{Inning: 2, Over: 6, Ball: 1, Striker: "Rohan", NonStriker: "Arjun", Bowler: "Imran"}, next)
}
