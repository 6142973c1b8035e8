package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	GetAll(ctx context.Context) ([]*models.Submission, error)
	GetAllExcept(ctx context.Context, id string) ([]*models.Submission, error)
	TeamNumberExists(ctx context.Context, teamNumber string) (bool, error)
	ProjectTitleExists(ctx context.Context, projectTitle string) (bool, error)
	Delete(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*models.SubmissionStats, error)
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const submissionColumns = `
	id, original_name, file_name, file_size, mime_type, content_hash,
	team_number, team_name, team_leader, team_email, project_title,
	storage_bucket, storage_path, uploaded_at
`

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (
			id, original_name, file_name, file_size, mime_type, content_hash,
			team_number, team_name, team_leader, team_email, project_title,
			storage_bucket, storage_path, uploaded_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.OriginalName,
		submission.FileName,
		submission.FileSize,
		submission.MimeType,
		submission.ContentHash,
		submission.TeamNumber,
		submission.TeamName,
		submission.TeamLeader,
		submission.TeamEmail,
		submission.ProjectTitle,
		submission.StorageBucket,
		submission.StoragePath,
		submission.UploadedAt,
	)

	return err
}

func (r *submissionRepository) scanSubmission(row interface {
	Scan(dest ...interface{}) error
}) (*models.Submission, error) {
	submission := &models.Submission{}
	err := row.Scan(
		&submission.ID,
		&submission.OriginalName,
		&submission.FileName,
		&submission.FileSize,
		&submission.MimeType,
		&submission.ContentHash,
		&submission.TeamNumber,
		&submission.TeamName,
		&submission.TeamLeader,
		&submission.TeamEmail,
		&submission.ProjectTitle,
		&submission.StorageBucket,
		&submission.StoragePath,
		&submission.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return submission, nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	submission, err := r.scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return submission, err
}

func (r *submissionRepository) GetAll(ctx context.Context) ([]*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY uploaded_at DESC`

	return r.querySubmissions(ctx, query)
}

func (r *submissionRepository) GetAllExcept(ctx context.Context, id string) ([]*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id != $1 ORDER BY uploaded_at DESC`

	return r.querySubmissions(ctx, query, id)
}

func (r *submissionRepository) querySubmissions(ctx context.Context, query string, args ...interface{}) ([]*models.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.Submission
	for rows.Next() {
		submission, err := r.scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

// TeamNumberExists matches case-insensitively but otherwise exactly; no
// whitespace normalization is applied.
func (r *submissionRepository) TeamNumberExists(ctx context.Context, teamNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM submissions WHERE LOWER(team_number) = LOWER($1))`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, teamNumber).Scan(&exists)
	return exists, err
}

func (r *submissionRepository) ProjectTitleExists(ctx context.Context, projectTitle string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM submissions WHERE LOWER(project_title) = LOWER($1))`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, projectTitle).Scan(&exists)
	return exists, err
}

func (r *submissionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM submissions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *submissionRepository) GetStats(ctx context.Context) (*models.SubmissionStats, error) {
	stats := &models.SubmissionStats{}

	totalQuery := `
		SELECT
			COUNT(*) as total_submissions,
			COALESCE(SUM(file_size), 0) as total_size,
			COALESCE(AVG(file_size), 0) as avg_size
		FROM submissions
	`

	err := r.db.QueryRowContext(ctx, totalQuery).Scan(
		&stats.TotalSubmissions,
		&stats.TotalSize,
		&stats.AverageFileSize,
	)
	if err != nil {
		return nil, err
	}

	todayQuery := `
		SELECT COUNT(*)
		FROM submissions
		WHERE DATE(uploaded_at) = CURRENT_DATE
	`

	if err := r.db.QueryRowContext(ctx, todayQuery).Scan(&stats.UploadedToday); err != nil {
		return nil, err
	}

	return stats, nil
}
