package service

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/service/integration"
)

type fakeSubmissionRepo struct {
	submissions map[string]*models.Submission
	created     []*models.Submission
	deleted     []string
	createErr   error

	teamNumberLookups   int
	projectTitleLookups int
	teamNumbers         map[string]bool
	projectTitles       map[string]bool
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		submissions:   map[string]*models.Submission{},
		teamNumbers:   map[string]bool{},
		projectTitles: map[string]bool{},
	}
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.submissions[submission.ID] = submission
	r.created = append(r.created, submission)
	return nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	return r.submissions[id], nil
}

func (r *fakeSubmissionRepo) GetAll(ctx context.Context) ([]*models.Submission, error) {
	var all []*models.Submission
	for _, s := range r.submissions {
		all = append(all, s)
	}
	return all, nil
}

func (r *fakeSubmissionRepo) GetAllExcept(ctx context.Context, id string) ([]*models.Submission, error) {
	var others []*models.Submission
	for _, s := range r.submissions {
		if s.ID != id {
			others = append(others, s)
		}
	}
	return others, nil
}

func (r *fakeSubmissionRepo) TeamNumberExists(ctx context.Context, teamNumber string) (bool, error) {
	r.teamNumberLookups++
	return r.teamNumbers[teamNumber], nil
}

func (r *fakeSubmissionRepo) ProjectTitleExists(ctx context.Context, projectTitle string) (bool, error) {
	r.projectTitleLookups++
	return r.projectTitles[projectTitle], nil
}

func (r *fakeSubmissionRepo) Delete(ctx context.Context, id string) error {
	delete(r.submissions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeSubmissionRepo) GetStats(ctx context.Context) (*models.SubmissionStats, error) {
	return &models.SubmissionStats{TotalSubmissions: int64(len(r.submissions))}, nil
}

type fakeStudentRepo struct {
	students map[string]*models.Student
	created  []*models.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: map[string]*models.Student{}}
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.students[student.Email] = student
	r.created = append(r.created, student)
	return nil
}

func (r *fakeStudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.students[email], nil
}

func (r *fakeStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := r.students[email]
	return ok, nil
}

type storedObject struct {
	bucket      string
	key         string
	content     []byte
	contentType string
}

type fakeStorageRepo struct {
	objects   map[string]storedObject
	uploads   []string
	deletes   []string
	uploadErr error
}

func newFakeStorageRepo() *fakeStorageRepo {
	return &fakeStorageRepo{objects: map[string]storedObject{}}
}

func (r *fakeStorageRepo) UploadObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	if r.uploadErr != nil {
		return r.uploadErr
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	r.objects[key] = storedObject{bucket: bucket, key: key, content: content, contentType: contentType}
	r.uploads = append(r.uploads, key)
	return nil
}

func (r *fakeStorageRepo) DownloadObject(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	obj, ok := r.objects[key]
	if !ok {
		return nil, 0, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(obj.content)), int64(len(obj.content)), nil
}

func (r *fakeStorageRepo) DeleteObject(ctx context.Context, bucket, key string) error {
	delete(r.objects, key)
	r.deletes = append(r.deletes, key)
	return nil
}

func (r *fakeStorageRepo) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	_, ok := r.objects[key]
	return ok, nil
}

type fakeReportRepo struct {
	reports   []*models.PlagiarismReport
	deleteN   int64
	createErr error
}

func (r *fakeReportRepo) Create(ctx context.Context, report *models.PlagiarismReport) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.reports = append(r.reports, report)
	return nil
}

func (r *fakeReportRepo) GetByID(ctx context.Context, id string) (*models.PlagiarismReport, error) {
	for _, rep := range r.reports {
		if rep.ID == id {
			return rep, nil
		}
	}
	return nil, nil
}

func (r *fakeReportRepo) GetAll(ctx context.Context) ([]*models.PlagiarismReport, error) {
	return r.reports, nil
}

func (r *fakeReportRepo) GetByTeamName(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error) {
	var matched []*models.PlagiarismReport
	for _, rep := range r.reports {
		if rep.TeamName == teamName {
			matched = append(matched, rep)
		}
	}
	return matched, nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, id string) (int64, error) {
	return r.deleteN, nil
}

func (r *fakeReportRepo) DeleteByTeamName(ctx context.Context, teamName string) (int64, error) {
	return r.deleteN, nil
}

type fakeNLPClient struct {
	report *integration.NLPReport
	err    error
	calls  []string
}

func (c *fakeNLPClient) CheckFile(ctx context.Context, fileID string) (*integration.NLPReport, error) {
	c.calls = append(c.calls, fileID)
	if c.err != nil {
		return nil, c.err
	}
	return c.report, nil
}
