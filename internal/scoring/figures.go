package scoring

import (
	"strings"

	"cricket-academy/internal/domain"
)

type BattingFigures struct {
	Name       string
	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	Out        bool
	HowOut     string
	StrikeRate float64
}

type BowlingFigures struct {
	Name         string
	LegalBalls   int
	Overs        Overs
	RunsConceded int
	Wickets      int
	Wides        int
	NoBalls      int
	Economy      float64
}

// dismissals that are not credited to the bowler
var nonBowlerWickets = map[string]bool{
	"run out":               true,
	"runout":                true,
	"retired":               true,
	"retired hurt":          true,
	"obstructing the field": true,
}

func creditsBowler(wicketType string) bool {
	return !nonBowlerWickets[strings.ToLower(strings.TrimSpace(wicketType))]
}

type inningsBuilder struct {
	inning    int
	runs      int
	wickets   int
	extras    int
	legal     int
	batters   map[string]*BattingFigures
	batOrder  []string
	bowlers   map[string]*BowlingFigures
	bowlOrder []string
}

func newInningsBuilder(inning int) *inningsBuilder {
	return &inningsBuilder{
		inning:  inning,
		batters: make(map[string]*BattingFigures),
		bowlers: make(map[string]*BowlingFigures),
	}
}

func (b *inningsBuilder) add(d domain.Delivery) {
	b.runs += d.RunsScored + d.Extras
	b.extras += d.Extras
	if d.IsWicket {
		b.wickets++
	}
	legal := IsLegal(d.ExtraType)
	if legal {
		b.legal++
	}

	if d.StrikerName != "" {
		bat := b.batter(d.StrikerName)
		bat.Runs += d.RunsScored
		if d.ExtraType != domain.ExtraWide {
			bat.Balls++
		}
		switch d.RunsScored {
		case 4:
			bat.Fours++
		case 6:
			bat.Sixes++
		}
		if d.IsWicket {
			bat.Out = true
			bat.HowOut = d.WicketType
		}
	}
	if d.NonStrikerName != "" {
		b.batter(d.NonStrikerName)
	}

	if d.BowlerName != "" {
		bowl := b.bowler(d.BowlerName)
		if legal {
			bowl.LegalBalls++
		}
		bowl.RunsConceded += d.RunsScored
		switch d.ExtraType {
		case domain.ExtraBye, domain.ExtraLegBye:
		case domain.ExtraWide:
			bowl.Wides++
			bowl.RunsConceded += d.Extras
		case domain.ExtraNoBall:
			bowl.NoBalls++
			bowl.RunsConceded += d.Extras
		default:
			bowl.RunsConceded += d.Extras
		}
		if d.IsWicket && creditsBowler(d.WicketType) {
			bowl.Wickets++
		}
	}
}

func (b *inningsBuilder) batter(name string) *BattingFigures {
	if f, ok := b.batters[name]; ok {
		return f
	}
	f := &BattingFigures{Name: name}
	b.batters[name] = f
	b.batOrder = append(b.batOrder, name)
	return f
}

func (b *inningsBuilder) bowler(name string) *BowlingFigures {
	if f, ok := b.bowlers[name]; ok {
		return f
	}
	f := &BowlingFigures{Name: name}
	b.bowlers[name] = f
	b.bowlOrder = append(b.bowlOrder, name)
	return f
}

func (b *inningsBuilder) summary() InningsSummary {
	s := InningsSummary{
		Inning:    b.inning,
		TotalRuns: b.runs,
		Wickets:   b.wickets,
		Extras:    b.extras,
		Overs:     Overs(b.legal),
		RunRate:   rate(b.runs, b.legal),
		Batting:   make([]BattingFigures, 0, len(b.batOrder)),
		Bowling:   make([]BowlingFigures, 0, len(b.bowlOrder)),
	}

	for _, name := range b.batOrder {
		f := *b.batters[name]
		if f.Balls > 0 {
			f.StrikeRate = round2(float64(f.Runs) * 100 / float64(f.Balls))
		}
		s.Batting = append(s.Batting, f)
	}
	for _, name := range b.bowlOrder {
		f := *b.bowlers[name]
		f.Overs = Overs(f.LegalBalls)
		f.Economy = rate(f.RunsConceded, f.LegalBalls)
		s.Bowling = append(s.Bowling, f)
	}

	return s
}
