// Package scoring derives live match state from the delivery log.
//
// Nothing here is persisted. Every read recomputes the scorecard from the
// full log in a single pass, which is cheap at the size of one match.
package scoring

import (
	"cricket-academy/internal/domain"
)

type Scorecard struct {
	TotalRuns    int
	Wickets      int
	LegalBalls   int
	Extras       int
	Overs        Overs
	RunRate      float64
	LastDelivery *domain.Delivery
	Innings      []InningsSummary
}

type InningsSummary struct {
	Inning    int
	TotalRuns int
	Wickets   int
	Extras    int
	Overs     Overs
	RunRate   float64
	Batting   []BattingFigures
	Bowling   []BowlingFigures
}

// IsLegal reports whether a delivery counts toward the six-ball over.
// Both the overs display and the next-ball rollover use it.
func IsLegal(extra domain.ExtraType) bool {
	switch extra {
	case domain.ExtraNone, domain.ExtraBye, domain.ExtraLegBye:
		return true
	}
	return false
}

// Derive folds the log, in log order, into a scorecard.
func Derive(deliveries []domain.Delivery) Scorecard {
	var card Scorecard
	innings := make(map[int]*inningsBuilder)
	var order []int

	for i := range deliveries {
		d := deliveries[i]

		card.TotalRuns += d.RunsScored + d.Extras
		card.Extras += d.Extras
		if d.IsWicket {
			card.Wickets++
		}
		if IsLegal(d.ExtraType) {
			card.LegalBalls++
		}

		b, ok := innings[d.InningNumber]
		if !ok {
			b = newInningsBuilder(d.InningNumber)
			innings[d.InningNumber] = b
			order = append(order, d.InningNumber)
		}
		b.add(d)
	}

	card.Overs = Overs(card.LegalBalls)
	card.RunRate = rate(card.TotalRuns, card.LegalBalls)

	if n := len(deliveries); n > 0 {
		last := deliveries[n-1]
		card.LastDelivery = &last
	}

	card.Innings = make([]InningsSummary, 0, len(order))
	for _, inning := range order {
		card.Innings = append(card.Innings, innings[inning].summary())
	}

	return card
}
