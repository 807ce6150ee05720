package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cricket-academy/internal/constants"
	"cricket-academy/internal/domain"
	"cricket-academy/internal/repository"
	"cricket-academy/internal/scoring"

	"github.com/rs/zerolog"
)

var tournamentTypes = map[string]bool{
	"KNOCKOUT":    true,
	"LEAGUE":      true,
	"ROUND_ROBIN": true,
}

type TournamentService struct {
	tournaments *repository.TournamentRepository
	matches     *repository.MatchRepository
	logger      zerolog.Logger
}

func NewTournamentService(tournaments *repository.TournamentRepository, matches *repository.MatchRepository, logger zerolog.Logger) *TournamentService {
	return &TournamentService{tournaments: tournaments, matches: matches, logger: logger}
}

type CreateTournamentInput struct {
	AcademyID      int64
	Name           string
	TournamentType string
	StartDate      string
	EndDate        string
	Venue          string
}

func (s *TournamentService) Create(ctx context.Context, in CreateTournamentInput) (*domain.Tournament, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	in.Name = strings.TrimSpace(in.Name)
	in.TournamentType = strings.ToUpper(strings.TrimSpace(in.TournamentType))
	if in.TournamentType == "" {
		in.TournamentType = "LEAGUE"
	}
	switch {
	case in.AcademyID <= 0:
		return nil, fmt.Errorf("%w: academy is required", domain.ErrInvalidInput)
	case in.Name == "":
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case in.StartDate == "":
		return nil, fmt.Errorf("%w: start date is required", domain.ErrInvalidInput)
	case !tournamentTypes[in.TournamentType]:
		return nil, fmt.Errorf("%w: unknown tournament type %q", domain.ErrInvalidInput, in.TournamentType)
	}

	t := &domain.Tournament{
		AcademyID:      in.AcademyID,
		Name:           in.Name,
		TournamentType: in.TournamentType,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Venue:          in.Venue,
		Status:         domain.TournamentUpcoming,
	}
	if err := s.tournaments.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info().Str("tournament_id", t.ID).Int64("academy_id", t.AcademyID).Msg("tournament created")
	return t, nil
}

func (s *TournamentService) ListByAcademy(ctx context.Context, academyID int64, status domain.TournamentStatus) ([]domain.Tournament, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	return s.tournaments.ListByAcademy(ctx, academyID, status)
}

type Standing struct {
	domain.TournamentTeam
	NetRunRate float64
}

type TournamentDetail struct {
	Tournament *domain.Tournament
	Teams      []Standing
	Fixtures   []domain.FixtureView
}

func (s *TournamentService) Detail(ctx context.Context, id string) (*TournamentDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	t, err := s.tournaments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	teams, err := s.pointsTable(ctx, id)
	if err != nil {
		return nil, err
	}
	fixtures, err := s.tournaments.ListFixtures(ctx, id)
	if err != nil {
		return nil, err
	}
	return &TournamentDetail{Tournament: t, Teams: teams, Fixtures: fixtures}, nil
}

// PointsTable orders teams by points, then net run rate, then name.
func (s *TournamentService) PointsTable(ctx context.Context, id string) ([]Standing, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if _, err := s.tournaments.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.pointsTable(ctx, id)
}

func (s *TournamentService) pointsTable(ctx context.Context, id string) ([]Standing, error) {
	teams, err := s.tournaments.ListTeams(ctx, id)
	if err != nil {
		return nil, err
	}

	table := make([]Standing, len(teams))
	for i, team := range teams {
		table[i] = Standing{
			TournamentTeam: team,
			NetRunRate:     scoring.NetRunRate(team.RunsScored, team.BallsFaced, team.RunsConceded, team.BallsBowled),
		}
	}
	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].NetRunRate != table[j].NetRunRate {
			return table[i].NetRunRate > table[j].NetRunRate
		}
		return table[i].TeamName < table[j].TeamName
	})
	return table, nil
}

func (s *TournamentService) AddTeam(ctx context.Context, tournamentID, teamName, captainName string) (*domain.TournamentTeam, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", domain.ErrInvalidInput)
	}
	if _, err := s.tournaments.Get(ctx, tournamentID); err != nil {
		return nil, err
	}

	team := &domain.TournamentTeam{
		TournamentID: tournamentID,
		TeamName:     teamName,
		CaptainName:  strings.TrimSpace(captainName),
	}
	if err := s.tournaments.AddTeam(ctx, team); err != nil {
		return nil, err
	}

	s.logger.Info().Str("tournament_id", tournamentID).Str("team_id", team.ID).Msg("team added")
	return team, nil
}

type FixtureInput struct {
	MatchID     int64
	TeamAID     string
	TeamBID     string
	MatchNumber int
	RoundName   string
}

// AddFixture links a registry match to two teams of the tournament. The match
// must belong to the tournament's academy.
func (s *TournamentService) AddFixture(ctx context.Context, tournamentID string, in FixtureInput) (*domain.Fixture, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if in.TeamAID == "" || in.TeamBID == "" || in.TeamAID == in.TeamBID {
		return nil, fmt.Errorf("%w: two distinct teams are required", domain.ErrInvalidInput)
	}

	t, err := s.tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	match, err := s.matches.Get(ctx, in.MatchID)
	if err != nil {
		return nil, err
	}
	if match.AcademyID != t.AcademyID {
		return nil, fmt.Errorf("match %d: %w", in.MatchID, domain.ErrForbidden)
	}
	for _, teamID := range []string{in.TeamAID, in.TeamBID} {
		team, err := s.tournaments.GetTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if team.TournamentID != tournamentID {
			return nil, fmt.Errorf("%w: team %s is not in tournament %s", domain.ErrInvalidInput, teamID, tournamentID)
		}
	}

	f := &domain.Fixture{
		TournamentID: tournamentID,
		MatchID:      in.MatchID,
		TeamAID:      in.TeamAID,
		TeamBID:      in.TeamBID,
		MatchNumber:  in.MatchNumber,
		RoundName:    in.RoundName,
	}
	if err := s.tournaments.AddFixture(ctx, f); err != nil {
		return nil, err
	}

	s.logger.Info().Str("tournament_id", tournamentID).Str("fixture_id", f.ID).Int64("match_id", f.MatchID).Msg("fixture added")
	return f, nil
}

func (s *TournamentService) UpdateStatus(ctx context.Context, id string, status domain.TournamentStatus, winnerTeamID string) (*domain.Tournament, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if winnerTeamID != "" {
		team, err := s.tournaments.GetTeam(ctx, winnerTeamID)
		if err != nil {
			return nil, err
		}
		if team.TournamentID != id {
			return nil, fmt.Errorf("%w: team %s is not in tournament %s", domain.ErrInvalidInput, winnerTeamID, id)
		}
	}
	if err := s.tournaments.UpdateStatus(ctx, id, status, winnerTeamID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("tournament_id", id).Str("status", string(status)).Msg("tournament status updated")
	return s.tournaments.Get(ctx, id)
}

// ApplyResult folds a completed fixture's final snapshot into the points
// table. Team A of the fixture is team A of the linked match.
func (s *TournamentService) ApplyResult(ctx context.Context, tournamentID, fixtureID string) ([]Standing, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	fixture, err := s.tournaments.GetFixture(ctx, fixtureID)
	if err != nil {
		return nil, err
	}
	if fixture.TournamentID != tournamentID {
		return nil, fmt.Errorf("fixture %s: %w", fixtureID, domain.ErrNotFound)
	}
	if fixture.ResultApplied {
		return nil, fmt.Errorf("fixture %s result already applied: %w", fixtureID, domain.ErrConflict)
	}

	match, err := s.matches.Get(ctx, fixture.MatchID)
	if err != nil {
		return nil, err
	}
	if match.Status != domain.MatchCompleted {
		return nil, fmt.Errorf("%w: match %d is not completed", domain.ErrInvalidInput, match.ID)
	}

	teamA, teamB := teamResults(match.FinalScore)
	if err := s.tournaments.ApplyResult(ctx, fixture, teamA, teamB); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("tournament_id", tournamentID).
		Str("fixture_id", fixtureID).
		Int64("match_id", match.ID).
		Msg("fixture result applied")
	return s.pointsTable(ctx, tournamentID)
}

func teamResults(score domain.FinalScore) (domain.TeamResult, domain.TeamResult) {
	a := domain.TeamResult{
		RunsScored:   score.TeamAScore,
		BallsFaced:   score.TeamABalls,
		RunsConceded: score.TeamBScore,
		BallsBowled:  score.TeamBBalls,
	}
	b := domain.TeamResult{
		RunsScored:   score.TeamBScore,
		BallsFaced:   score.TeamBBalls,
		RunsConceded: score.TeamAScore,
		BallsBowled:  score.TeamABalls,
	}

	switch {
	case score.TeamAScore > score.TeamBScore:
		a.Won, a.Points = 1, constants.PointsForWin
		b.Lost = 1
	case score.TeamBScore > score.TeamAScore:
		b.Won, b.Points = 1, constants.PointsForWin
		a.Lost = 1
	default:
		a.Tied, a.Points = 1, constants.PointsForTie
		b.Tied, b.Points = 1, constants.PointsForTie
	}
	return a, b
}
