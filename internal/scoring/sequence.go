package scoring

import (
	"fmt"

	"cricket-academy/internal/domain"
)

// Sequencer tracks the position of the last accepted delivery and rejects
// appends that do not follow it. It is only consulted in strict mode.
type Sequencer struct {
	last          *domain.Delivery
	illegalInOver int
}

// NewSequencer replays an existing log. The log is trusted as-is.
func NewSequencer(log []domain.Delivery) *Sequencer {
	s := &Sequencer{}
	for i := range log {
		s.Advance(log[i])
	}
	return s
}

func (s *Sequencer) Advance(d domain.Delivery) {
	if s.last == nil || s.last.InningNumber != d.InningNumber || s.last.OverNumber != d.OverNumber {
		s.illegalInOver = 0
	}
	if !IsLegal(d.ExtraType) {
		s.illegalInOver++
	}
	s.last = &d
}

// LegalInOver is the number of legal balls bowled in the current over, taken
// from the last ball number less the wides and no-balls seen in that over.
func (s *Sequencer) LegalInOver() int {
	if s.last == nil {
		return 0
	}
	return s.last.BallNumber - s.illegalInOver
}

// OverComplete reports whether the current over has its six legal balls.
// Both Check and Next use it to decide when the over rolls.
func (s *Sequencer) OverComplete() bool {
	return s.last != nil && s.LegalInOver() >= BallsPerOver
}

func (s *Sequencer) Check(d domain.Delivery) error {
	if err := checkFields(d); err != nil {
		return err
	}

	if s.last == nil {
		return expectOpening(d)
	}

	last := s.last
	switch {
	case d.InningNumber < last.InningNumber:
		return fmt.Errorf("%w: inning %d already closed, current inning is %d", domain.ErrOutOfSequence, d.InningNumber, last.InningNumber)
	case d.InningNumber > last.InningNumber+1:
		return fmt.Errorf("%w: inning %d skips inning %d", domain.ErrOutOfSequence, d.InningNumber, last.InningNumber+1)
	case d.InningNumber == last.InningNumber+1:
		return expectOpening(d)
	}

	switch {
	case d.OverNumber == last.OverNumber:
		if s.OverComplete() {
			return fmt.Errorf("%w: over %d is complete, expected ball %d.1, got %d.%d", domain.ErrOutOfSequence, last.OverNumber, last.OverNumber+1, d.OverNumber, d.BallNumber)
		}
		if d.BallNumber != last.BallNumber+1 {
			return fmt.Errorf("%w: expected ball %d.%d, got %d.%d", domain.ErrOutOfSequence, last.OverNumber, last.BallNumber+1, d.OverNumber, d.BallNumber)
		}
	case d.OverNumber == last.OverNumber+1:
		if !s.OverComplete() {
			return fmt.Errorf("%w: over %d has %d legal balls, cannot start over %d", domain.ErrOutOfSequence, last.OverNumber, s.LegalInOver(), d.OverNumber)
		}
		if d.BallNumber != 1 {
			return fmt.Errorf("%w: over %d must start at ball 1, got %d", domain.ErrOutOfSequence, d.OverNumber, d.BallNumber)
		}
	default:
		return fmt.Errorf("%w: over %d does not follow over %d", domain.ErrOutOfSequence, d.OverNumber, last.OverNumber)
	}

	return nil
}

func expectOpening(d domain.Delivery) error {
	if d.OverNumber != 0 || d.BallNumber != 1 {
		return fmt.Errorf("%w: inning %d must open at 0.1, got %d.%d", domain.ErrOutOfSequence, d.InningNumber, d.OverNumber, d.BallNumber)
	}
	return nil
}

func checkFields(d domain.Delivery) error {
	switch {
	case !d.ExtraType.Valid():
		return fmt.Errorf("%w: unknown extra type %q", domain.ErrInvalidInput, d.ExtraType)
	case d.InningNumber < 1:
		return fmt.Errorf("%w: inning must be at least 1", domain.ErrInvalidInput)
	case d.OverNumber < 0:
		return fmt.Errorf("%w: over must not be negative", domain.ErrInvalidInput)
	case d.BallNumber < 1:
		return fmt.Errorf("%w: ball must be at least 1", domain.ErrInvalidInput)
	case d.RunsScored < 0 || d.Extras < 0:
		return fmt.Errorf("%w: runs and extras must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
