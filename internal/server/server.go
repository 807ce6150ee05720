package server

import (
	"context"
	"database/sql"
	"net/http"

	"cricket-academy/internal/auth"
	"cricket-academy/internal/constants"
	"cricket-academy/internal/metrics"
	"cricket-academy/internal/middleware"
	"cricket-academy/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Server struct {
	matches     *service.MatchService
	scoring     *service.ScoringService
	tournaments *service.TournamentService
	auth        *auth.Authenticator
	guard       *auth.Guard
	recorder    *metrics.Recorder
	db          *sql.DB
	logger      zerolog.Logger
}

func NewServer(
	matches *service.MatchService,
	scoring *service.ScoringService,
	tournaments *service.TournamentService,
	authenticator *auth.Authenticator,
	guard *auth.Guard,
	recorder *metrics.Recorder,
	db *sql.DB,
	logger zerolog.Logger,
) *Server {
	return &Server{
		matches:     matches,
		scoring:     scoring,
		tournaments: tournaments,
		auth:        authenticator,
		guard:       guard,
		recorder:    recorder,
		db:          db,
		logger:      logger,
	}
}

// Router wires every route. Public routes are registered before the
// authenticated ones.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID(s.logger, s.recorder))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.recorder.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// public
	api.HandleFunc("/matches/{id:[0-9]+}/scorecard", s.handleScorecard).Methods(http.MethodGet)
	api.HandleFunc("/public/matches/{id:[0-9]+}/feed", s.handleFeed).Methods(http.MethodGet)

	authed := middleware.Authenticate(s.auth)
	protect := func(h http.HandlerFunc) http.Handler { return authed(h) }

	api.Handle("/matches", protect(s.handleCreateMatch)).Methods(http.MethodPost)
	api.Handle("/matches/ball", protect(s.handleAppendBall)).Methods(http.MethodPost)
	api.Handle("/matches/{academyId:[0-9]+}", protect(s.handleListMatches)).Methods(http.MethodGet)
	api.Handle("/matches/{id:[0-9]+}", protect(s.handleUpdateMatch)).Methods(http.MethodPut)
	api.Handle("/matches/{id:[0-9]+}/register-scores", protect(s.handleRegisterScores)).Methods(http.MethodPost)
	api.Handle("/matches/{id:[0-9]+}/live", protect(s.handleLive)).Methods(http.MethodGet)

	api.Handle("/tournaments", protect(s.handleCreateTournament)).Methods(http.MethodPost)
	api.Handle("/tournaments/detail/{id}", protect(s.handleTournamentDetail)).Methods(http.MethodGet)
	api.Handle("/tournaments/{academyId:[0-9]+}", protect(s.handleListTournaments)).Methods(http.MethodGet)
	api.Handle("/tournaments/{id}/teams", protect(s.handleAddTeam)).Methods(http.MethodPost)
	api.Handle("/tournaments/{id}/matches", protect(s.handleAddFixture)).Methods(http.MethodPost)
	api.Handle("/tournaments/{id}/status", protect(s.handleTournamentStatus)).Methods(http.MethodPatch)
	api.Handle("/tournaments/{id}/results", protect(s.handleApplyResult)).Methods(http.MethodPost)
	api.Handle("/tournaments/{id}/points-table", protect(s.handlePointsTable)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		writeError(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
