package server

import (
	"fmt"
	"net/http"

	"cricket-academy/internal/auth"
	"cricket-academy/internal/domain"
	"cricket-academy/internal/scoring"
	"cricket-academy/internal/service"
)

type createMatchRequest struct {
	AcademyID   int64  `json:"academy_id"`
	TeamAName   string `json:"team_a_name"`
	TeamBName   string `json:"team_b_name"`
	Venue       string `json:"venue"`
	MatchDate   string `json:"match_date"`
	MatchFormat string `json:"match_format"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// The tenant comes from the token; a body academy_id is only checked.
	principal, _ := auth.FromContext(r.Context())
	if req.AcademyID == 0 {
		req.AcademyID = principal.AcademyID
	}
	if err := s.guard.Academy(r.Context(), req.AcademyID); err != nil {
		handleError(w, r, err)
		return
	}

	match, err := s.matches.Schedule(r.Context(), service.ScheduleInput{
		AcademyID:   req.AcademyID,
		TeamAName:   req.TeamAName,
		TeamBName:   req.TeamBName,
		Venue:       req.Venue,
		MatchDate:   req.MatchDate,
		MatchFormat: req.MatchFormat,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{
		"id":      match.ID,
		"message": "Match created",
		"match":   toMatchView(match),
	})
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	academyID, err := pathInt64(r, "academyId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.guard.Academy(r.Context(), academyID); err != nil {
		handleError(w, r, err)
		return
	}

	matches, err := s.matches.ListByAcademy(r.Context(), academyID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	out := make([]matchView, 0, len(matches))
	for i := range matches {
		out = append(out, toMatchView(&matches[i]))
	}
	writeJSON(w, r, http.StatusOK, out)
}

type updateMatchRequest struct {
	Status string `json:"status"`
	Result string `json:"result"`
}

func (s *Server) handleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req updateMatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.guard.Match(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	match, err := s.matches.UpdateStatus(r.Context(), id, domain.MatchStatus(req.Status), req.Result)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"message": "Match updated",
		"match":   toMatchView(match),
	})
}

type registerScoresRequest struct {
	TeamAScore   int           `json:"team_a_score"`
	TeamAWickets int           `json:"team_a_wickets"`
	TeamAOvers   scoring.Overs `json:"team_a_overs"`
	TeamBScore   int           `json:"team_b_score"`
	TeamBWickets int           `json:"team_b_wickets"`
	TeamBOvers   scoring.Overs `json:"team_b_overs"`
	Result       string        `json:"result"`
}

func (s *Server) handleRegisterScores(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req registerScoresRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.guard.Match(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	match, err := s.matches.RegisterFinalScore(r.Context(), id, service.FinalScoreInput{
		TeamAScore:   req.TeamAScore,
		TeamAWickets: req.TeamAWickets,
		TeamAOvers:   req.TeamAOvers,
		TeamBScore:   req.TeamBScore,
		TeamBWickets: req.TeamBWickets,
		TeamBOvers:   req.TeamBOvers,
		Result:       req.Result,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"message": "Scores registered",
		"match":   toMatchView(match),
	})
}

type appendBallRequest struct {
	MatchID        int64  `json:"match_id"`
	InningNumber   int    `json:"inning_number"`
	OverNumber     int    `json:"over_number"`
	BallNumber     int    `json:"ball_number"`
	StrikerName    string `json:"striker_name"`
	NonStrikerName string `json:"non_striker_name"`
	BowlerName     string `json:"bowler_name"`
	RunsScored     int    `json:"runs_scored"`
	Extras         int    `json:"extras"`
	ExtraType      string `json:"extra_type"`
	IsWicket       bool   `json:"is_wicket"`
	WicketType     string `json:"wicket_type"`
}

func (s *Server) handleAppendBall(w http.ResponseWriter, r *http.Request) {
	var req appendBallRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MatchID <= 0 {
		handleError(w, r, fmt.Errorf("%w: match_id is required", domain.ErrInvalidInput))
		return
	}
	if err := s.guard.Match(r.Context(), req.MatchID); err != nil {
		handleError(w, r, err)
		return
	}

	d := &domain.Delivery{
		MatchID:        req.MatchID,
		InningNumber:   req.InningNumber,
		OverNumber:     req.OverNumber,
		BallNumber:     req.BallNumber,
		StrikerName:    req.StrikerName,
		NonStrikerName: req.NonStrikerName,
		BowlerName:     req.BowlerName,
		RunsScored:     req.RunsScored,
		Extras:         req.Extras,
		ExtraType:      domain.ExtraType(req.ExtraType),
		IsWicket:       req.IsWicket,
		WicketType:     req.WicketType,
	}
	if err := s.scoring.AppendDelivery(r.Context(), d); err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{
		"id":       d.ID,
		"message":  "Ball recorded",
		"delivery": toDeliveryView(d),
	})
}

// handleScorecard serves the raw ball log to anonymous viewers.
func (s *Server) handleScorecard(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	log, err := s.scoring.ReadLog(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	out := make([]deliveryView, 0, len(log))
	for i := range log {
		out = append(out, toDeliveryView(&log[i]))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.guard.Match(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	live, err := s.scoring.Live(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toLiveView(id, live))
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	feed, err := s.scoring.Feed(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toFeedView(feed))
}
