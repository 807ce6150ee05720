package db

import (
	"time"
)

type Match struct {
	ID           int64
	AcademyID    int64
	TeamAName    string
	TeamBName    string
	Venue        string
	MatchDate    string
	MatchFormat  string
	Status       string
	Result       string
	TeamAScore   int64
	TeamAWickets int64
	TeamABalls   int64
	TeamBScore   int64
	TeamBWickets int64
	TeamBBalls   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type MatchBall struct {
	ID             int64
	MatchID        int64
	InningNumber   int64
	OverNumber     int64
	BallNumber     int64
	StrikerName    string
	NonStrikerName string
	BowlerName     string
	RunsScored     int64
	Extras         int64
	ExtraType      string
	IsWicket       bool
	WicketType     string
	CreatedAt      time.Time
}

type Tournament struct {
	ID             string
	AcademyID      int64
	Name           string
	TournamentType string
	StartDate      string
	EndDate        string
	Venue          string
	Status         string
	WinnerTeamID   string
	CreatedAt      time.Time
}

type TournamentTeam struct {
	ID            string
	TournamentID  string
	TeamName      string
	CaptainName   string
	MatchesPlayed int64
	MatchesWon    int64
	MatchesLost   int64
	MatchesTied   int64
	Points        int64
	RunsScored    int64
	BallsFaced    int64
	RunsConceded  int64
	BallsBowled   int64
}

type TournamentMatch struct {
	ID            string
	TournamentID  string
	MatchID       int64
	TeamAID       string
	TeamBID       string
	MatchNumber   int64
	RoundName     string
	ResultApplied bool
}
