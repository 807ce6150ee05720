package domain

import (
	"time"
)

type MatchStatus string

const (
	MatchScheduled MatchStatus = "SCHEDULED"
	MatchLive      MatchStatus = "LIVE"
	MatchCompleted MatchStatus = "COMPLETED"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchLive, MatchCompleted:
		return true
	}
	return false
}

type ExtraType string

const (
	ExtraNone   ExtraType = "NONE"
	ExtraWide   ExtraType = "WIDE"
	ExtraNoBall ExtraType = "NOBALL"
	ExtraBye    ExtraType = "BYE"
	ExtraLegBye ExtraType = "LEGBYE"
)

func (e ExtraType) Valid() bool {
	switch e {
	case ExtraNone, ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye:
		return true
	}
	return false
}

type Match struct {
	ID          int64
	AcademyID   int64
	TeamAName   string
	TeamBName   string
	Venue       string
	MatchDate   string
	MatchFormat string // "T20", "ODI", "T10", ...
	Status      MatchStatus
	Result      string
	FinalScore  FinalScore
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FinalScore is the summary snapshot registered once a match is over.
// It is never reconciled with the delivery log.
type FinalScore struct {
	TeamAScore   int
	TeamAWickets int
	TeamABalls   int // legal balls
	TeamBScore   int
	TeamBWickets int
	TeamBBalls   int
}

type Delivery struct {
	ID             int64
	MatchID        int64
	InningNumber   int
	OverNumber     int
	BallNumber     int
	StrikerName    string
	NonStrikerName string
	BowlerName     string
	RunsScored     int
	Extras         int
	ExtraType      ExtraType
	IsWicket       bool
	WicketType     string
	CreatedAt      time.Time
}

type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "UPCOMING"
	TournamentOngoing   TournamentStatus = "ONGOING"
	TournamentCompleted TournamentStatus = "COMPLETED"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentUpcoming, TournamentOngoing, TournamentCompleted:
		return true
	}
	return false
}

type Tournament struct {
	ID             string // nanoid
	AcademyID      int64
	Name           string
	TournamentType string // "KNOCKOUT", "LEAGUE", "ROUND_ROBIN"
	StartDate      string
	EndDate        string
	Venue          string
	Status         TournamentStatus
	WinnerTeamID   string
	CreatedAt      time.Time
}

type TournamentTeam struct {
	ID            string // nanoid
	TournamentID  string
	TeamName      string
	CaptainName   string
	MatchesPlayed int
	MatchesWon    int
	MatchesLost   int
	MatchesTied   int
	Points        int
	RunsScored    int
	BallsFaced    int
	RunsConceded  int
	BallsBowled   int
}

type Fixture struct {
	ID            string // nanoid
	TournamentID  string
	MatchID       int64
	TeamAID       string
	TeamBID       string
	MatchNumber   int
	RoundName     string // "QUARTER_FINAL", "SEMI_FINAL", "FINAL", ...
	ResultApplied bool
}

// FixtureView joins a fixture with the registry match it points at.
type FixtureView struct {
	Fixture
	TeamAName string
	TeamBName string
	Status    MatchStatus
	Result    string
}

// TeamResult is the delta applied to a tournament team's tally for one fixture.
type TeamResult struct {
	Won          int
	Lost         int
	Tied         int
	Points       int
	RunsScored   int
	BallsFaced   int
	RunsConceded int
	BallsBowled  int
}
