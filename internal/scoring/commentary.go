package scoring

import (
	"fmt"
	"strconv"

	"cricket-academy/internal/domain"
)

type CommentaryLine struct {
	DeliveryID int64
	Inning     int
	Position   string
	Bowler     string
	Striker    string
	Runs       int
	ExtraType  domain.ExtraType
	IsWicket   bool
	Outcome    string
	Text       string
}

// Commentary lists the log newest first, one line per delivery.
func Commentary(deliveries []domain.Delivery) []CommentaryLine {
	lines := make([]CommentaryLine, 0, len(deliveries))
	for i := len(deliveries) - 1; i >= 0; i-- {
		lines = append(lines, describe(deliveries[i]))
	}
	return lines
}

func describe(d domain.Delivery) CommentaryLine {
	runs := d.RunsScored + d.Extras
	line := CommentaryLine{
		DeliveryID: d.ID,
		Inning:     d.InningNumber,
		Position:   fmt.Sprintf("%d.%d", d.OverNumber, d.BallNumber),
		Bowler:     d.BowlerName,
		Striker:    d.StrikerName,
		Runs:       runs,
		ExtraType:  d.ExtraType,
		IsWicket:   d.IsWicket,
		Outcome:    strconv.Itoa(runs),
	}

	text := fmt.Sprintf("%s to %s, ", d.BowlerName, d.StrikerName)
	switch {
	case d.IsWicket:
		line.Outcome = "OUT"
		text += "OUT"
		if d.WicketType != "" {
			text += " (" + d.WicketType + ")"
		}
	case d.ExtraType == domain.ExtraWide:
		text += fmt.Sprintf("wide, %s", runsPhrase(runs))
	case d.ExtraType == domain.ExtraNoBall:
		text += fmt.Sprintf("no ball, %s", runsPhrase(runs))
	case d.ExtraType == domain.ExtraBye:
		text += fmt.Sprintf("%d bye", d.Extras) + plural(d.Extras)
	case d.ExtraType == domain.ExtraLegBye:
		text += fmt.Sprintf("%d leg bye", d.Extras) + plural(d.Extras)
	case d.RunsScored == 4:
		text += "FOUR"
	case d.RunsScored == 6:
		text += "SIX"
	default:
		text += runsPhrase(runs)
	}
	line.Text = text
	return line
}

func runsPhrase(runs int) string {
	if runs == 0 {
		return "no run"
	}
	return fmt.Sprintf("%d run", runs) + plural(runs)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
