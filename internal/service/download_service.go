package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/repository"
)

type DownloadService interface {
	ListSubmissions(ctx context.Context) ([]*models.Submission, error)
	OpenPDF(ctx context.Context, fileID string) (io.ReadCloser, *models.Submission, error)
	GetStats(ctx context.Context) (*models.SubmissionStats, error)
}

type downloadService struct {
	submissionRepo repository.SubmissionRepository
	storageRepo    repository.StorageRepository
	logger         zerolog.Logger
}

func NewDownloadService(
	submissionRepo repository.SubmissionRepository,
	storageRepo repository.StorageRepository,
	logger zerolog.Logger,
) DownloadService {
	return &downloadService{
		submissionRepo: submissionRepo,
		storageRepo:    storageRepo,
		logger:         logger,
	}
}

func (s *downloadService) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	return s.submissionRepo.GetAll(ctx)
}

// OpenPDF returns a reader over the stored document. The caller owns the
// reader and must close it.
func (s *downloadService) OpenPDF(ctx context.Context, fileID string) (io.ReadCloser, *models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get submission metadata: %w", err)
	}
	if submission == nil {
		return nil, nil, ErrSubmissionNotFound
	}

	reader, size, err := s.storageRepo.DownloadObject(ctx, submission.StorageBucket, submission.StoragePath)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, nil, ErrSubmissionNotFound
		}
		return nil, nil, fmt.Errorf("failed to download file from storage: %w", err)
	}

	s.logger.Debug().
		Str("file_id", fileID).
		Int64("size", size).
		Msg("Streaming stored PDF")

	return reader, submission, nil
}

func (s *downloadService) GetStats(ctx context.Context) (*models.SubmissionStats, error) {
	return s.submissionRepo.GetStats(ctx)
}
