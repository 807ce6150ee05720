package scoring

import "cricket-academy/internal/domain"

type NextBall struct {
	Inning     int
	Over       int
	Ball       int
	Striker    string
	NonStriker string
	Bowler     string
}

// Suggest proposes the next (inning, over, ball) for the scorer, carrying the
// players of the last delivery. An empty log yields the opening ball.
func Suggest(log []domain.Delivery) NextBall {
	return NewSequencer(log).Next()
}

// Next is the position Check accepts after the last delivery. The over rolls
// only once it holds six legal balls, so a wide or no-ball bowled as ball six
// of a clean over suggests ball seven.
func (s *Sequencer) Next() NextBall {
	last := s.last
	if last == nil {
		return NextBall{Inning: 1, Over: 0, Ball: 1}
	}

	next := NextBall{
		Inning:     last.InningNumber,
		Over:       last.OverNumber,
		Ball:       last.BallNumber + 1,
		Striker:    last.StrikerName,
		NonStriker: last.NonStrikerName,
		Bowler:     last.BowlerName,
	}
	if s.OverComplete() {
		next.Ball = 1
		next.Over++
	}
	return next
}
