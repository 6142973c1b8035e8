package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/repository"
)

// DuplicateService performs the advisory pre-upload duplicate lookup.
// Each provided field is checked independently; a field that is not
// supplied is never evaluated. The lookup is not transactional with the
// upload, so two concurrent uploads can still both pass it.
type DuplicateService interface {
	Check(ctx context.Context, teamNumber, projectTitle string) (*models.DuplicateCheckResult, error)
}

type duplicateService struct {
	submissionRepo repository.SubmissionRepository
	logger         zerolog.Logger
}

func NewDuplicateService(submissionRepo repository.SubmissionRepository, logger zerolog.Logger) DuplicateService {
	return &duplicateService{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (s *duplicateService) Check(ctx context.Context, teamNumber, projectTitle string) (*models.DuplicateCheckResult, error) {
	result := &models.DuplicateCheckResult{}

	if teamNumber != "" {
		exists, err := s.submissionRepo.TeamNumberExists(ctx, teamNumber)
		if err != nil {
			return nil, err
		}
		result.TeamNumberExists = exists
	}

	if projectTitle != "" {
		exists, err := s.submissionRepo.ProjectTitleExists(ctx, projectTitle)
		if err != nil {
			return nil, err
		}
		result.ProjectTitleExists = exists
	}

	s.logger.Debug().
		Str("team_number", teamNumber).
		Str("project_title", projectTitle).
		Bool("team_number_exists", result.TeamNumberExists).
		Bool("project_title_exists", result.ProjectTitleExists).
		Msg("Duplicate lookup completed")

	return result, nil
}
