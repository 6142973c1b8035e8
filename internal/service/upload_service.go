package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/repository"
	"github.com/proposalhub/submission-service/internal/service/integration"
)

const acceptedMimeType = "application/pdf"

type UploadService interface {
	UploadSubmission(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
}

type UploadConfig struct {
	MaxUploadSize int64
	BucketName    string
}

type uploadService struct {
	submissionRepo   repository.SubmissionRepository
	storageRepo      repository.StorageRepository
	hashService      HashService
	duplicateService DuplicateService
	reportService    ReportService
	nlpClient        integration.NLPClient
	publisher        integration.EventPublisher
	logger           zerolog.Logger
	config           UploadConfig
}

func NewUploadService(
	submissionRepo repository.SubmissionRepository,
	storageRepo repository.StorageRepository,
	hashService HashService,
	duplicateService DuplicateService,
	reportService ReportService,
	nlpClient integration.NLPClient,
	publisher integration.EventPublisher,
	logger zerolog.Logger,
	config UploadConfig,
) UploadService {
	return &uploadService{
		submissionRepo:   submissionRepo,
		storageRepo:      storageRepo,
		hashService:      hashService,
		duplicateService: duplicateService,
		reportService:    reportService,
		nlpClient:        nlpClient,
		publisher:        publisher,
		logger:           logger,
		config:           config,
	}
}

func (s *uploadService) UploadSubmission(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	contentHash, err := s.hashService.CalculateHash(req.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate content hash: %w", err)
	}

	// Advisory only: a duplicate does not block the upload and two
	// concurrent uploads can both pass this check.
	s.logDuplicates(ctx, req)

	fileID := uuid.New().String()
	fileName := s.generateStorageName(req.FileName)

	if err := s.storageRepo.UploadObject(
		ctx,
		s.config.BucketName,
		fileName,
		bytes.NewReader(req.Content),
		int64(len(req.Content)),
		acceptedMimeType,
	); err != nil {
		return nil, fmt.Errorf("failed to upload file to storage: %w", err)
	}

	submission := &models.Submission{
		ID:            fileID,
		OriginalName:  req.FileName,
		FileName:      fileName,
		FileSize:      int64(len(req.Content)),
		MimeType:      acceptedMimeType,
		ContentHash:   contentHash,
		TeamNumber:    req.TeamNumber,
		TeamName:      req.TeamName,
		TeamLeader:    req.TeamLeader,
		TeamEmail:     req.TeamEmail,
		ProjectTitle:  req.ProjectTitle,
		StorageBucket: s.config.BucketName,
		StoragePath:   fileName,
		UploadedAt:    time.Now(),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		// Keep the bucket and the metadata index consistent.
		if delErr := s.storageRepo.DeleteObject(ctx, s.config.BucketName, fileName); delErr != nil {
			s.logger.Error().Err(delErr).Str("file_name", fileName).Msg("Failed to remove orphaned object")
		}
		return nil, fmt.Errorf("failed to save submission metadata: %w", err)
	}

	s.logger.Info().
		Str("file_id", fileID).
		Str("original_name", req.FileName).
		Str("content_hash", contentHash).
		Str("team_name", req.TeamName).
		Int64("size", submission.FileSize).
		Msg("Submission uploaded")

	s.publishUploaded(ctx, submission)

	return s.runSimilarityCheck(ctx, submission), nil
}

func (s *uploadService) validate(req *models.UploadRequest) error {
	if len(req.Content) == 0 || req.TeamName == "" || req.TeamLeader == "" || req.TeamEmail == "" {
		return NewValidationError("Missing file or metadata (Team Name, Team Leader, or Email Address).")
	}

	if req.ContentType != acceptedMimeType {
		return NewValidationError("Only PDF files are allowed.")
	}

	if s.config.MaxUploadSize > 0 && int64(len(req.Content)) > s.config.MaxUploadSize {
		return NewValidationError(fmt.Sprintf("File size exceeds limit of %d bytes.", s.config.MaxUploadSize))
	}

	return nil
}

func (s *uploadService) logDuplicates(ctx context.Context, req *models.UploadRequest) {
	if req.TeamNumber == "" && req.ProjectTitle == "" {
		return
	}

	result, err := s.duplicateService.Check(ctx, req.TeamNumber, req.ProjectTitle)
	if err != nil {
		s.logger.Error().Err(err).Msg("Pre-upload duplicate lookup failed")
		return
	}

	if result.TeamNumberExists || result.ProjectTitleExists {
		s.logger.Warn().
			Str("team_number", req.TeamNumber).
			Str("project_title", req.ProjectTitle).
			Bool("team_number_exists", result.TeamNumberExists).
			Bool("project_title_exists", result.ProjectTitleExists).
			Msg("Upload matches existing submission metadata")
	}
}

func (s *uploadService) publishUploaded(ctx context.Context, submission *models.Submission) {
	if s.publisher == nil {
		return
	}

	event := &models.SubmissionUploadedEvent{
		FileID:       submission.ID,
		TeamNumber:   submission.TeamNumber,
		TeamName:     submission.TeamName,
		ProjectTitle: submission.ProjectTitle,
		ContentHash:  submission.ContentHash,
		UploadedAt:   submission.UploadedAt,
	}

	if err := s.publisher.PublishSubmissionUploaded(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("file_id", submission.ID).Msg("Failed to publish upload event")
	}
}

// runSimilarityCheck calls the external NLP service. A failed check never
// fails the upload: the client gets a degraded report instead.
func (s *uploadService) runSimilarityCheck(ctx context.Context, submission *models.Submission) *models.UploadResponse {
	if s.nlpClient == nil {
		return &models.UploadResponse{
			Message: "Upload successful.",
			FileID:  submission.ID,
		}
	}

	report, err := s.nlpClient.CheckFile(ctx, submission.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("file_id", submission.ID).Msg("NLP similarity check failed")

		degraded, _ := json.Marshal(map[string]string{"error": err.Error()})
		return &models.UploadResponse{
			Message:          "File uploaded successfully, but plagiarism check failed.",
			FileID:           submission.ID,
			PlagiarismReport: degraded,
		}
	}

	if err := s.reportService.SaveFromNLP(ctx, submission, report); err != nil {
		s.logger.Error().Err(err).Str("file_id", submission.ID).Msg("Failed to persist plagiarism verdict")
	}

	raw, _ := json.Marshal(report)
	return &models.UploadResponse{
		Message:          "Upload successful and plagiarism check initiated.",
		FileID:           submission.ID,
		PlagiarismReport: raw,
	}
}

// generateStorageName builds a randomized object key so that stored names
// cannot collide or leak the original filename.
func (s *uploadService) generateStorageName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return strings.ReplaceAll(uuid.New().String(), "-", "") + ext
}
