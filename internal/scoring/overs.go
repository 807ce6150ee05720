package scoring

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const BallsPerOver = 6

// Overs counts legal balls and renders in "overs.balls" notation.
// 19.4 means nineteen overs and four balls, not a decimal fraction.
type Overs int

func (o Overs) String() string {
	if o < 0 {
		return "-" + (-o).String()
	}
	return fmt.Sprintf("%d.%d", int(o)/BallsPerOver, int(o)%BallsPerOver)
}

func (o Overs) Balls() int {
	return int(o)
}

// Decimal converts to a true fraction of overs, used for rates.
func (o Overs) Decimal() float64 {
	return float64(o) / BallsPerOver
}

func ParseOvers(s string) (Overs, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	overs, err := strconv.Atoi(whole)
	if err != nil || overs < 0 {
		return 0, fmt.Errorf("invalid overs %q", s)
	}

	balls := 0
	if hasFrac {
		frac = strings.TrimRight(frac, "0")
		if frac != "" {
			if len(frac) != 1 {
				return 0, fmt.Errorf("invalid overs %q", s)
			}
			balls, err = strconv.Atoi(frac)
			if err != nil || balls >= BallsPerOver {
				return 0, fmt.Errorf("invalid overs %q: ball part must be 0-5", s)
			}
		}
	}

	return Overs(overs*BallsPerOver + balls), nil
}

func (o Overs) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts both 19.4 and "19.4".
func (o *Overs) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*o = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	parsed, err := ParseOvers(raw)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

func rate(runs int, balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return round2(float64(runs) / Overs(balls).Decimal())
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NetRunRate is runs per over scored minus runs per over conceded, rounded
// to three places. Either side with no balls contributes zero.
func NetRunRate(runsScored, ballsFaced, runsConceded, ballsBowled int) float64 {
	var scored, conceded float64
	if ballsFaced > 0 {
		scored = float64(runsScored) / Overs(ballsFaced).Decimal()
	}
	if ballsBowled > 0 {
		conceded = float64(runsConceded) / Overs(ballsBowled).Decimal()
	}
	return math.Round((scored-conceded)*1000) / 1000
}
