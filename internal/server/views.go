package server

import (
	"time"

	"cricket-academy/internal/domain"
	"cricket-academy/internal/scoring"
	"cricket-academy/internal/service"
)

type matchView struct {
	ID           int64         `json:"id"`
	AcademyID    int64         `json:"academy_id"`
	TeamAName    string        `json:"team_a_name"`
	TeamBName    string        `json:"team_b_name"`
	Venue        string        `json:"venue"`
	MatchDate    string        `json:"match_date"`
	MatchFormat  string        `json:"match_format"`
	Status       string        `json:"status"`
	Result       string        `json:"result"`
	TeamAScore   int           `json:"team_a_score"`
	TeamAWickets int           `json:"team_a_wickets"`
	TeamAOvers   scoring.Overs `json:"team_a_overs"`
	TeamBScore   int           `json:"team_b_score"`
	TeamBWickets int           `json:"team_b_wickets"`
	TeamBOvers   scoring.Overs `json:"team_b_overs"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func toMatchView(m *domain.Match) matchView {
	return matchView{
		ID:           m.ID,
		AcademyID:    m.AcademyID,
		TeamAName:    m.TeamAName,
		TeamBName:    m.TeamBName,
		Venue:        m.Venue,
		MatchDate:    m.MatchDate,
		MatchFormat:  m.MatchFormat,
		Status:       string(m.Status),
		Result:       m.Result,
		TeamAScore:   m.FinalScore.TeamAScore,
		TeamAWickets: m.FinalScore.TeamAWickets,
		TeamAOvers:   scoring.Overs(m.FinalScore.TeamABalls),
		TeamBScore:   m.FinalScore.TeamBScore,
		TeamBWickets: m.FinalScore.TeamBWickets,
		TeamBOvers:   scoring.Overs(m.FinalScore.TeamBBalls),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type deliveryView struct {
	ID             int64     `json:"id"`
	MatchID        int64     `json:"match_id"`
	InningNumber   int       `json:"inning_number"`
	OverNumber     int       `json:"over_number"`
	BallNumber     int       `json:"ball_number"`
	StrikerName    string    `json:"striker_name"`
	NonStrikerName string    `json:"non_striker_name"`
	BowlerName     string    `json:"bowler_name"`
	RunsScored     int       `json:"runs_scored"`
	Extras         int       `json:"extras"`
	ExtraType      string    `json:"extra_type"`
	IsWicket       bool      `json:"is_wicket"`
	WicketType     string    `json:"wicket_type"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDeliveryView(d *domain.Delivery) deliveryView {
	return deliveryView{
		ID:             d.ID,
		MatchID:        d.MatchID,
		InningNumber:   d.InningNumber,
		OverNumber:     d.OverNumber,
		BallNumber:     d.BallNumber,
		StrikerName:    d.StrikerName,
		NonStrikerName: d.NonStrikerName,
		BowlerName:     d.BowlerName,
		RunsScored:     d.RunsScored,
		Extras:         d.Extras,
		ExtraType:      string(d.ExtraType),
		IsWicket:       d.IsWicket,
		WicketType:     d.WicketType,
		CreatedAt:      d.CreatedAt,
	}
}

type battingView struct {
	Name       string  `json:"name"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	Out        bool    `json:"out"`
	HowOut     string  `json:"how_out,omitempty"`
	StrikeRate float64 `json:"strike_rate"`
}

type bowlingView struct {
	Name         string        `json:"name"`
	Overs        scoring.Overs `json:"overs"`
	RunsConceded int           `json:"runs_conceded"`
	Wickets      int           `json:"wickets"`
	Wides        int           `json:"wides"`
	NoBalls      int           `json:"no_balls"`
	Economy      float64       `json:"economy"`
}

type inningsView struct {
	Inning    int           `json:"inning_number"`
	TotalRuns int           `json:"total_runs"`
	Wickets   int           `json:"wickets"`
	Extras    int           `json:"extras"`
	Overs     scoring.Overs `json:"overs"`
	RunRate   float64       `json:"run_rate"`
	Batting   []battingView `json:"batting"`
	Bowling   []bowlingView `json:"bowling"`
}

type scorecardView struct {
	TotalRuns    int           `json:"total_runs"`
	Wickets      int           `json:"wickets"`
	Overs        scoring.Overs `json:"overs"`
	LegalBalls   int           `json:"legal_balls"`
	Extras       int           `json:"extras"`
	RunRate      float64       `json:"run_rate"`
	LastDelivery *deliveryView `json:"last_delivery"`
	Innings      []inningsView `json:"innings"`
}

func toScorecardView(card scoring.Scorecard) scorecardView {
	v := scorecardView{
		TotalRuns:  card.TotalRuns,
		Wickets:    card.Wickets,
		Overs:      card.Overs,
		LegalBalls: card.LegalBalls,
		Extras:     card.Extras,
		RunRate:    card.RunRate,
		Innings:    make([]inningsView, 0, len(card.Innings)),
	}
	if card.LastDelivery != nil {
		last := toDeliveryView(card.LastDelivery)
		v.LastDelivery = &last
	}

	for _, in := range card.Innings {
		iv := inningsView{
			Inning:    in.Inning,
			TotalRuns: in.TotalRuns,
			Wickets:   in.Wickets,
			Extras:    in.Extras,
			Overs:     in.Overs,
			RunRate:   in.RunRate,
			Batting:   make([]battingView, 0, len(in.Batting)),
			Bowling:   make([]bowlingView, 0, len(in.Bowling)),
		}
		for _, b := range in.Batting {
			iv.Batting = append(iv.Batting, battingView{
				Name:       b.Name,
				Runs:       b.Runs,
				Balls:      b.Balls,
				Fours:      b.Fours,
				Sixes:      b.Sixes,
				Out:        b.Out,
				HowOut:     b.HowOut,
				StrikeRate: b.StrikeRate,
			})
		}
		for _, b := range in.Bowling {
			iv.Bowling = append(iv.Bowling, bowlingView{
				Name:         b.Name,
				Overs:        b.Overs,
				RunsConceded: b.RunsConceded,
				Wickets:      b.Wickets,
				Wides:        b.Wides,
				NoBalls:      b.NoBalls,
				Economy:      b.Economy,
			})
		}
		v.Innings = append(v.Innings, iv)
	}
	return v
}

// nextBallView mirrors the append request so a scorer can submit it as-is.
type nextBallView struct {
	InningNumber   int    `json:"inning_number"`
	OverNumber     int    `json:"over_number"`
	BallNumber     int    `json:"ball_number"`
	StrikerName    string `json:"striker_name"`
	NonStrikerName string `json:"non_striker_name"`
	BowlerName     string `json:"bowler_name"`
}

type liveView struct {
	MatchID      int64         `json:"match_id"`
	Scorecard    scorecardView `json:"scorecard"`
	NextDelivery nextBallView  `json:"next_delivery"`
}

func toLiveView(matchID int64, live *service.LiveView) liveView {
	return liveView{
		MatchID:   matchID,
		Scorecard: toScorecardView(live.Scorecard),
		NextDelivery: nextBallView{
			InningNumber:   live.Next.Inning,
			OverNumber:     live.Next.Over,
			BallNumber:     live.Next.Ball,
			StrikerName:    live.Next.Striker,
			NonStrikerName: live.Next.NonStriker,
			BowlerName:     live.Next.Bowler,
		},
	}
}

type commentaryView struct {
	DeliveryID int64  `json:"delivery_id"`
	Inning     int    `json:"inning_number"`
	Position   string `json:"position"`
	Bowler     string `json:"bowler_name"`
	Striker    string `json:"striker_name"`
	Runs       int    `json:"runs"`
	ExtraType  string `json:"extra_type"`
	IsWicket   bool   `json:"is_wicket"`
	Outcome    string `json:"outcome"`
	Text       string `json:"text"`
}

type feedView struct {
	Match               matchView        `json:"match"`
	Scorecard           scorecardView    `json:"scorecard"`
	Commentary          []commentaryView `json:"commentary"`
	PollIntervalSeconds int              `json:"poll_interval_seconds"`
}

func toFeedView(feed *service.Feed) feedView {
	v := feedView{
		Match:               toMatchView(feed.Match),
		Scorecard:           toScorecardView(feed.Scorecard),
		Commentary:          make([]commentaryView, 0, len(feed.Commentary)),
		PollIntervalSeconds: int(feed.PollInterval.Seconds()),
	}
	for _, c := range feed.Commentary {
		v.Commentary = append(v.Commentary, commentaryView{
			DeliveryID: c.DeliveryID,
			Inning:     c.Inning,
			Position:   c.Position,
			Bowler:     c.Bowler,
			Striker:    c.Striker,
			Runs:       c.Runs,
			ExtraType:  string(c.ExtraType),
			IsWicket:   c.IsWicket,
			Outcome:    c.Outcome,
			Text:       c.Text,
		})
	}
	return v
}

type tournamentView struct {
	ID             string    `json:"id"`
	AcademyID      int64     `json:"academy_id"`
	Name           string    `json:"name"`
	TournamentType string    `json:"tournament_type"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Venue          string    `json:"venue"`
	Status         string    `json:"status"`
	WinnerTeamID   string    `json:"winner_team_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func toTournamentView(t *domain.Tournament) tournamentView {
	return tournamentView{
		ID:             t.ID,
		AcademyID:      t.AcademyID,
		Name:           t.Name,
		TournamentType: t.TournamentType,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		Venue:          t.Venue,
		Status:         string(t.Status),
		WinnerTeamID:   t.WinnerTeamID,
		CreatedAt:      t.CreatedAt,
	}
}

type standingView struct {
	ID            string  `json:"id"`
	TournamentID  string  `json:"tournament_id"`
	TeamName      string  `json:"team_name"`
	CaptainName   string  `json:"captain_name"`
	MatchesPlayed int     `json:"matches_played"`
	MatchesWon    int     `json:"matches_won"`
	MatchesLost   int     `json:"matches_lost"`
	MatchesTied   int     `json:"matches_tied"`
	Points        int     `json:"points"`
	NetRunRate    float64 `json:"net_run_rate"`
}

func toStandingViews(table []service.Standing) []standingView {
	out := make([]standingView, 0, len(table))
	for _, s := range table {
		out = append(out, standingView{
			ID:            s.ID,
			TournamentID:  s.TournamentID,
			TeamName:      s.TeamName,
			CaptainName:   s.CaptainName,
			MatchesPlayed: s.MatchesPlayed,
			MatchesWon:    s.MatchesWon,
			MatchesLost:   s.MatchesLost,
			MatchesTied:   s.MatchesTied,
			Points:        s.Points,
			NetRunRate:    s.NetRunRate,
		})
	}
	return out
}

type fixtureView struct {
	ID            string `json:"id"`
	TournamentID  string `json:"tournament_id"`
	MatchID       int64  `json:"match_id"`
	TeamAID       string `json:"team_a_id"`
	TeamBID       string `json:"team_b_id"`
	MatchNumber   int    `json:"match_number"`
	RoundName     string `json:"round_name"`
	ResultApplied bool   `json:"result_applied"`
	TeamAName     string `json:"team_a_name,omitempty"`
	TeamBName     string `json:"team_b_name,omitempty"`
	Status        string `json:"status,omitempty"`
	Result        string `json:"result,omitempty"`
}

func toFixtureView(f *domain.Fixture) fixtureView {
	return fixtureView{
		ID:            f.ID,
		TournamentID:  f.TournamentID,
		MatchID:       f.MatchID,
		TeamAID:       f.TeamAID,
		TeamBID:       f.TeamBID,
		MatchNumber:   f.MatchNumber,
		RoundName:     f.RoundName,
		ResultApplied: f.ResultApplied,
	}
}

type tournamentDetailView struct {
	tournamentView
	Teams    []standingView `json:"teams"`
	Fixtures []fixtureView  `json:"matches"`
}

func toTournamentDetailView(d *service.TournamentDetail) tournamentDetailView {
	v := tournamentDetailView{
		tournamentView: toTournamentView(d.Tournament),
		Teams:          toStandingViews(d.Teams),
		Fixtures:       make([]fixtureView, 0, len(d.Fixtures)),
	}
	for i := range d.Fixtures {
		fv := toFixtureView(&d.Fixtures[i].Fixture)
		fv.TeamAName = d.Fixtures[i].TeamAName
		fv.TeamBName = d.Fixtures[i].TeamBName
		fv.Status = string(d.Fixtures[i].Status)
		fv.Result = d.Fixtures[i].Result
		v.Fixtures = append(v.Fixtures, fv)
	}
	return v
}
