package server

import (
	"net/http"

	"cricket-academy/internal/auth"
	"cricket-academy/internal/domain"
	"cricket-academy/internal/service"

	"github.com/gorilla/mux"
)

type createTournamentRequest struct {
	AcademyID      int64  `json:"academy_id"`
	Name           string `json:"name"`
	TournamentType string `json:"tournament_type"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Venue          string `json:"venue"`
}

func (s *Server) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	principal, _ := auth.FromContext(r.Context())
	if req.AcademyID == 0 {
		req.AcademyID = principal.AcademyID
	}
	if err := s.guard.Academy(r.Context(), req.AcademyID); err != nil {
		handleError(w, r, err)
		return
	}

	t, err := s.tournaments.Create(r.Context(), service.CreateTournamentInput{
		AcademyID:      req.AcademyID,
		Name:           req.Name,
		TournamentType: req.TournamentType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Venue:          req.Venue,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"id":         t.ID,
		"message":    "Tournament created",
		"tournament": toTournamentView(t),
	})
}

func (s *Server) handleListTournaments(w http.ResponseWriter, r *http.Request) {
	academyID, err := pathInt64(r, "academyId")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.guard.Academy(r.Context(), academyID); err != nil {
		handleError(w, r, err)
		return
	}

	status := domain.TournamentStatus(r.URL.Query().Get("status"))
	list, err := s.tournaments.ListByAcademy(r.Context(), academyID, status)
	if err != nil {
		handleError(w, r, err)
		return
	}

	out := make([]tournamentView, 0, len(list))
	for i := range list {
		out = append(out, toTournamentView(&list[i]))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// guardTournament resolves the {id} path variable and checks ownership.
func (s *Server) guardTournament(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["id"]
	if err := s.guard.Tournament(r.Context(), id); err != nil {
		handleError(w, r, err)
		return "", false
	}
	return id, true
}

func (s *Server) handleTournamentDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := s.guardTournament(w, r)
	if !ok {
		return
	}

	detail, err := s.tournaments.Detail(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toTournamentDetailView(detail))
}

type addTeamRequest struct {
	TeamName    string `json:"team_name"`
	CaptainName string `json:"captain_name"`
}

func (s *Server) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	var req addTeamRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, ok := s.guardTournament(w, r)
	if !ok {
		return
	}

	team, err := s.tournaments.AddTeam(r.Context(), id, req.TeamName, req.CaptainName)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"id":      team.ID,
		"message": "Team added",
	})
}

type addFixtureRequest struct {
	MatchID     int64  `json:"match_id"`
	TeamAID     string `json:"team_a_id"`
	TeamBID     string `json:"team_b_id"`
	MatchNumber int    `json:"match_number"`
	RoundName   string `json:"round_name"`
}

func (s *Server) handleAddFixture(w http.ResponseWriter, r *http.Request) {
	var req addFixtureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, ok := s.guardTournament(w, r)
	if !ok {
		return
	}

	f, err := s.tournaments.AddFixture(r.Context(), id, service.FixtureInput{
		MatchID:     req.MatchID,
		TeamAID:     req.TeamAID,
		TeamBID:     req.TeamBID,
		MatchNumber: req.MatchNumber,
		RoundName:   req.RoundName,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{
		"id":      f.ID,
		"message": "Match added to tournament",
		"fixture": toFixtureView(f),
	})
}

type tournamentStatusRequest struct {
	Status       string `json:"status"`
	WinnerTeamID string `json:"winner_team_id"`
}

func (s *Server) handleTournamentStatus(w http.ResponseWriter, r *http.Request) {
	var req tournamentStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, ok := s.guardTournament(w, r)
	if !ok {
		return
	}

	t, err := s.tournaments.UpdateStatus(r.Context(), id, domain.TournamentStatus(req.Status), req.WinnerTeamID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"message":    "Tournament status updated",
		"tournament": toTournamentView(t),
	})
}

type applyResultRequest struct {
	FixtureID string `json:"fixture_id"`
}

func (s *Server) handleApplyResult(w http.ResponseWriter, r *http.Request) {
	var req applyResultRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id, ok := s.guardTournament(w, r)
	if !ok {
		return
	}

	table, err := s.tournaments.ApplyResult(r.Context(), id, req.FixtureID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"message":      "Points table updated",
		"points_table": toStandingViews(table),
	})
}

func (s *Server) handlePointsTable(w http.ResponseWriter, r *http.Request) {
	id, ok := s.guardTournament(w, r)
	if !ok {
		return
	}

	table, err := s.tournaments.PointsTable(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toStandingViews(table))
}
