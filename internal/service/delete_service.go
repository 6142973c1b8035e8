package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/repository"
)

type DeleteService interface {
	DeleteSubmission(ctx context.Context, fileID string) error
}

type deleteService struct {
	submissionRepo repository.SubmissionRepository
	storageRepo    repository.StorageRepository
	logger         zerolog.Logger
}

func NewDeleteService(
	submissionRepo repository.SubmissionRepository,
	storageRepo repository.StorageRepository,
	logger zerolog.Logger,
) DeleteService {
	return &deleteService{
		submissionRepo: submissionRepo,
		storageRepo:    storageRepo,
		logger:         logger,
	}
}

func (s *deleteService) DeleteSubmission(ctx context.Context, fileID string) error {
	submission, err := s.submissionRepo.GetByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to get submission metadata: %w", err)
	}
	if submission == nil {
		return ErrSubmissionNotFound
	}

	if err := s.storageRepo.DeleteObject(ctx, submission.StorageBucket, submission.StoragePath); err != nil {
		if !errors.Is(err, repository.ErrObjectNotFound) {
			return fmt.Errorf("failed to delete file from storage: %w", err)
		}
		s.logger.Warn().Str("file_id", fileID).Msg("Stored object already missing, removing metadata only")
	}

	if err := s.submissionRepo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete submission metadata: %w", err)
	}

	s.logger.Info().
		Str("file_id", fileID).
		Str("storage_path", submission.StoragePath).
		Msg("Submission deleted")

	return nil
}
