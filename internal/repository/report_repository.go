package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.PlagiarismReport) error
	GetByID(ctx context.Context, id string) (*models.PlagiarismReport, error)
	GetAll(ctx context.Context) ([]*models.PlagiarismReport, error)
	GetByTeamName(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByTeamName(ctx context.Context, teamName string) (int64, error)
}

type reportRepository struct {
	*PostgresRepository
}

func NewReportRepository(db *sql.DB, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const reportColumns = `
	id, team_name, team_leader, team_email, message, plagiarised,
	avg_similarity_score, details, created_at
`

func (r *reportRepository) Create(ctx context.Context, report *models.PlagiarismReport) error {
	query := `
		INSERT INTO plagiarism_reports (
			id, team_name, team_leader, team_email, message, plagiarised,
			avg_similarity_score, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.TeamName,
		report.TeamLeader,
		report.TeamEmail,
		report.Message,
		report.Plagiarised,
		report.AvgSimilarityScore,
		[]byte(report.Details),
		report.CreatedAt,
	)

	return err
}

func (r *reportRepository) scanReport(row interface {
	Scan(dest ...interface{}) error
}) (*models.PlagiarismReport, error) {
	report := &models.PlagiarismReport{}
	var details []byte
	err := row.Scan(
		&report.ID,
		&report.TeamName,
		&report.TeamLeader,
		&report.TeamEmail,
		&report.Message,
		&report.Plagiarised,
		&report.AvgSimilarityScore,
		&details,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	report.Details = details
	return report, nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.PlagiarismReport, error) {
	query := `SELECT ` + reportColumns + ` FROM plagiarism_reports WHERE id = $1`

	report, err := r.scanReport(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return report, err
}

func (r *reportRepository) GetAll(ctx context.Context) ([]*models.PlagiarismReport, error) {
	query := `SELECT ` + reportColumns + ` FROM plagiarism_reports ORDER BY created_at DESC`

	return r.queryReports(ctx, query)
}

func (r *reportRepository) GetByTeamName(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error) {
	query := `SELECT ` + reportColumns + ` FROM plagiarism_reports WHERE LOWER(team_name) = LOWER($1) ORDER BY created_at DESC`

	return r.queryReports(ctx, query, teamName)
}

func (r *reportRepository) queryReports(ctx context.Context, query string, args ...interface{}) ([]*models.PlagiarismReport, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.PlagiarismReport
	for rows.Next() {
		report, err := r.scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

func (r *reportRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plagiarism_reports WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *reportRepository) DeleteByTeamName(ctx context.Context, teamName string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM plagiarism_reports WHERE LOWER(team_name) = LOWER($1)`, teamName)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
