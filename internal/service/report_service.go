package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/repository"
	"github.com/proposalhub/submission-service/internal/service/integration"
)

// ReportService persists plagiarism verdicts, either mapped from the NLP
// service's response or saved directly by a client.
type ReportService interface {
	SaveFromNLP(ctx context.Context, submission *models.Submission, report *integration.NLPReport) error
	Save(ctx context.Context, req *models.SaveReportRequest) (*models.PlagiarismReport, error)
	List(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error)
	Delete(ctx context.Context, id string) error
	DeleteByTeam(ctx context.Context, teamName string) (int64, error)
}

type reportService struct {
	reportRepo     repository.ReportRepository
	submissionRepo repository.SubmissionRepository
	logger         zerolog.Logger
}

func NewReportService(
	reportRepo repository.ReportRepository,
	submissionRepo repository.SubmissionRepository,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		reportRepo:     reportRepo,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// SaveFromNLP resolves each compared file id to its stored team identity
// and persists the verdict with labeled per-comparison rows.
func (s *reportService) SaveFromNLP(ctx context.Context, submission *models.Submission, report *integration.NLPReport) error {
	details := make([]models.ReportDetail, 0, len(report.DetailedResults))
	for _, d := range report.DetailedResults {
		detail := models.ReportDetail{
			ComparedFileID:  d.FileID,
			SimilarityScore: d.SimilarityScore,
			ResultLabel:     d.Result,
		}

		compared, err := s.submissionRepo.GetByID(ctx, d.FileID)
		if err != nil {
			s.logger.Error().Err(err).Str("compared_file_id", d.FileID).Msg("Failed to resolve compared submission")
		} else if compared != nil {
			detail.ComparedTeamName = compared.TeamName
			detail.ComparedTeamLeader = compared.TeamLeader
		}

		details = append(details, detail)
	}

	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to marshal report details: %w", err)
	}

	record := &models.PlagiarismReport{
		ID:                 uuid.New().String(),
		TeamName:           submission.TeamName,
		TeamLeader:         submission.TeamLeader,
		TeamEmail:          submission.TeamEmail,
		Message:            report.Message,
		Plagiarised:        report.Plagiarised,
		AvgSimilarityScore: report.AvgSimilarityScore,
		Details:            detailsJSON,
		CreatedAt:          time.Now(),
	}

	if err := s.reportRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to save plagiarism report: %w", err)
	}

	s.logger.Info().
		Str("report_id", record.ID).
		Str("team_name", record.TeamName).
		Bool("plagiarised", record.Plagiarised).
		Float64("avg_similarity_score", record.AvgSimilarityScore).
		Msg("Plagiarism verdict saved")

	return nil
}

func (s *reportService) Save(ctx context.Context, req *models.SaveReportRequest) (*models.PlagiarismReport, error) {
	if req.TeamName == "" || req.TeamLeader == "" || req.TeamEmail == "" {
		return nil, NewValidationError("Missing team identity (name, leader, or email).")
	}

	detailsJSON, err := json.Marshal(req.DetailedResults)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report details: %w", err)
	}

	record := &models.PlagiarismReport{
		ID:                 uuid.New().String(),
		TeamName:           req.TeamName,
		TeamLeader:         req.TeamLeader,
		TeamEmail:          req.TeamEmail,
		Message:            req.Message,
		Plagiarised:        req.Plagiarised,
		AvgSimilarityScore: req.AvgSimilarityScore,
		Details:            detailsJSON,
		CreatedAt:          time.Now(),
	}

	if err := s.reportRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save plagiarism report: %w", err)
	}

	return record, nil
}

func (s *reportService) List(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error) {
	if teamName != "" {
		return s.reportRepo.GetByTeamName(ctx, teamName)
	}
	return s.reportRepo.GetAll(ctx)
}

func (s *reportService) Delete(ctx context.Context, id string) error {
	deleted, err := s.reportRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if deleted == 0 {
		return ErrReportNotFound
	}
	return nil
}

func (s *reportService) DeleteByTeam(ctx context.Context, teamName string) (int64, error) {
	if teamName == "" {
		return 0, NewValidationError("teamName is required")
	}
	return s.reportRepo.DeleteByTeamName(ctx, teamName)
}
