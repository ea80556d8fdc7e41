package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchday/competition-engine/internal/domain/competition"
	"github.com/matchday/competition-engine/internal/domain/team"
)

// CompetitionService covers the competition/team read surface and team
// enrollment. Entity CRUD beyond enrollment belongs to the consuming
// application.
type CompetitionService struct {
	competitionRepo competition.Repository
	teamRepo        team.Repository
}

func NewCompetitionService(competitionRepo competition.Repository, teamRepo team.Repository) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		teamRepo:        teamRepo,
	}
}

func (s *CompetitionService) List(ctx context.Context) ([]competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.List")
	defer span.End()

	items, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}

	return items, nil
}

func (s *CompetitionService) GetByID(ctx context.Context, competitionID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.GetByID")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition id is required", ErrInvalidInput)
	}

	item, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	return item, nil
}

// ListAllTeams returns every registered club, enrolled or not.
func (s *CompetitionService) ListAllTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListAllTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

// ListTeams returns the teams currently enrolled in the competition.
func (s *CompetitionService) ListTeams(ctx context.Context, competitionID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListTeams")
	defer span.End()

	comp, err := s.GetByID(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByIDs(ctx, comp.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("list enrolled teams: %w", err)
	}

	return teams, nil
}

// EnrollTeam adds a team to the competition's field. Enrolling the same team
// twice is rejected; fixtures are not touched until the next generation.
func (s *CompetitionService) EnrollTeam(ctx context.Context, competitionID, teamID string) (competition.Competition, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.EnrollTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return competition.Competition{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	comp, err := s.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, err
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	if comp.HasTeam(teamID) {
		return competition.Competition{}, fmt.Errorf("%w: team %s is already enrolled", ErrInvalidInput, teamID)
	}

	comp.TeamIDs = append(append([]string{}, comp.TeamIDs...), teamID)
	if err := s.competitionRepo.Update(ctx, comp); err != nil {
		return competition.Competition{}, fmt.Errorf("update competition: %w", err)
	}

	return comp, nil
}
