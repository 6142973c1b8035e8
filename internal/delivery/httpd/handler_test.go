package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/internal/service"
	"github.com/proposalhub/submission-service/internal/service/integration"
)

type stubUploadService struct {
	fn func(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
}

func (s *stubUploadService) UploadSubmission(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	return s.fn(ctx, req)
}

type stubDownloadService struct {
	list  func(ctx context.Context) ([]*models.Submission, error)
	open  func(ctx context.Context, fileID string) (io.ReadCloser, *models.Submission, error)
	stats func(ctx context.Context) (*models.SubmissionStats, error)
}

func (s *stubDownloadService) ListSubmissions(ctx context.Context) ([]*models.Submission, error) {
	return s.list(ctx)
}

func (s *stubDownloadService) OpenPDF(ctx context.Context, fileID string) (io.ReadCloser, *models.Submission, error) {
	return s.open(ctx, fileID)
}

func (s *stubDownloadService) GetStats(ctx context.Context) (*models.SubmissionStats, error) {
	return s.stats(ctx)
}

type stubDeleteService struct {
	fn func(ctx context.Context, fileID string) error
}

func (s *stubDeleteService) DeleteSubmission(ctx context.Context, fileID string) error {
	return s.fn(ctx, fileID)
}

type stubDuplicateService struct {
	fn func(ctx context.Context, teamNumber, projectTitle string) (*models.DuplicateCheckResult, error)
}

func (s *stubDuplicateService) Check(ctx context.Context, teamNumber, projectTitle string) (*models.DuplicateCheckResult, error) {
	return s.fn(ctx, teamNumber, projectTitle)
}

type stubFallbackChecker struct {
	fn func(ctx context.Context, selectedFileID string) (*models.FallbackCheckResponse, error)
}

func (s *stubFallbackChecker) Check(ctx context.Context, selectedFileID string) (*models.FallbackCheckResponse, error) {
	return s.fn(ctx, selectedFileID)
}

type stubAuthService struct {
	signup func(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	login  func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	verify func(token string) (*service.Claims, error)
}

func (s *stubAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	return s.signup(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	return s.login(ctx, req)
}

func (s *stubAuthService) VerifyToken(token string) (*service.Claims, error) {
	return s.verify(token)
}

type stubReportService struct {
	save         func(ctx context.Context, req *models.SaveReportRequest) (*models.PlagiarismReport, error)
	list         func(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error)
	deleteOne    func(ctx context.Context, id string) error
	deleteByTeam func(ctx context.Context, teamName string) (int64, error)
}

func (s *stubReportService) SaveFromNLP(ctx context.Context, submission *models.Submission, report *integration.NLPReport) error {
	return nil
}

func (s *stubReportService) Save(ctx context.Context, req *models.SaveReportRequest) (*models.PlagiarismReport, error) {
	return s.save(ctx, req)
}

func (s *stubReportService) List(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error) {
	return s.list(ctx, teamName)
}

func (s *stubReportService) Delete(ctx context.Context, id string) error {
	return s.deleteOne(ctx, id)
}

func (s *stubReportService) DeleteByTeam(ctx context.Context, teamName string) (int64, error) {
	return s.deleteByTeam(ctx, teamName)
}

type handlerStubs struct {
	upload    *stubUploadService
	download  *stubDownloadService
	delete    *stubDeleteService
	duplicate *stubDuplicateService
	fallback  *stubFallbackChecker
	auth      *stubAuthService
	report    *stubReportService
}

func newTestHandler(stubs handlerStubs) http.Handler {
	if stubs.upload == nil {
		stubs.upload = &stubUploadService{}
	}
	if stubs.download == nil {
		stubs.download = &stubDownloadService{}
	}
	if stubs.delete == nil {
		stubs.delete = &stubDeleteService{}
	}
	if stubs.duplicate == nil {
		stubs.duplicate = &stubDuplicateService{}
	}
	if stubs.fallback == nil {
		stubs.fallback = &stubFallbackChecker{}
	}
	if stubs.auth == nil {
		stubs.auth = &stubAuthService{}
	}
	if stubs.report == nil {
		stubs.report = &stubReportService{}
	}

	h := NewHandler(
		stubs.upload,
		stubs.download,
		stubs.delete,
		stubs.duplicate,
		stubs.fallback,
		stubs.auth,
		stubs.report,
		zerolog.Nop(),
	)

	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestUploadRequiresMultipart(t *testing.T) {
	router := newTestHandler(handlerStubs{})

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestUploadParsesFormAndFile(t *testing.T) {
	var captured *models.UploadRequest
	router := newTestHandler(handlerStubs{
		upload: &stubUploadService{fn: func(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
			captured = req
			return &models.UploadResponse{Message: "Upload successful.", FileID: "new-id"}, nil
		}},
	})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("teamName", "Falcons")
	form.WriteField("teamLeader", "Maya")
	form.WriteField("teamEmail", "maya@example.com")
	part, _ := form.CreateFormFile("file", "proposal.pdf")
	part.Write([]byte("%PDF-1.4"))
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if captured == nil {
		t.Fatal("upload service was not called")
	}
	if captured.TeamName != "Falcons" || captured.TeamLeader != "Maya" || captured.TeamEmail != "maya@example.com" {
		t.Errorf("form fields not propagated: %+v", captured)
	}
	if captured.FileName != "proposal.pdf" || len(captured.Content) == 0 {
		t.Errorf("file not propagated: name=%q len=%d", captured.FileName, len(captured.Content))
	}

	body := decodeBody(t, rec)
	if body["fileId"] != "new-id" {
		t.Errorf("fileId = %v", body["fileId"])
	}
}

func TestUploadValidationMapsTo400(t *testing.T) {
	router := newTestHandler(handlerStubs{
		upload: &stubUploadService{fn: func(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
			return nil, service.NewValidationError("Only PDF files are allowed.")
		}},
	})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	form.WriteField("teamName", "Falcons")
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Only PDF files are allowed." {
		t.Errorf("error = %v", body["error"])
	}
}

func TestCheckDuplicateRequiresAField(t *testing.T) {
	router := newTestHandler(handlerStubs{})

	req := httptest.NewRequest(http.MethodGet, "/check-duplicate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCheckDuplicateReturnsFlags(t *testing.T) {
	router := newTestHandler(handlerStubs{
		duplicate: &stubDuplicateService{fn: func(ctx context.Context, teamNumber, projectTitle string) (*models.DuplicateCheckResult, error) {
			return &models.DuplicateCheckResult{TeamNumberExists: true}, nil
		}},
	})

	req := httptest.NewRequest(http.MethodGet, "/check-duplicate?teamNumber=42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["teamNumberExists"] != true || body["projectTitleExists"] != false {
		t.Errorf("body = %v", body)
	}
}

func TestCheckPlagiarismUnknownFile(t *testing.T) {
	router := newTestHandler(handlerStubs{
		fallback: &stubFallbackChecker{fn: func(ctx context.Context, selectedFileID string) (*models.FallbackCheckResponse, error) {
			return nil, service.ErrSubmissionNotFound
		}},
	})

	req := httptest.NewRequest(http.MethodGet, "/check-plagiarism?selectedFileId=nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "File not found" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestStreamPDF(t *testing.T) {
	content := []byte("%PDF-1.4 streamed")
	router := newTestHandler(handlerStubs{
		download: &stubDownloadService{
			open: func(ctx context.Context, fileID string) (io.ReadCloser, *models.Submission, error) {
				return io.NopCloser(bytes.NewReader(content)), &models.Submission{
					ID:       fileID,
					MimeType: "application/pdf",
					FileSize: int64(len(content)),
				}, nil
			},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/pdf/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.Equal(rec.Body.Bytes(), content) {
		t.Error("streamed body does not match stored content")
	}
}

func TestDeleteFileNotFound(t *testing.T) {
	router := newTestHandler(handlerStubs{
		delete: &stubDeleteService{fn: func(ctx context.Context, fileID string) error {
			return service.ErrSubmissionNotFound
		}},
	})

	req := httptest.NewRequest(http.MethodPost, "/delete/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newTestHandler(handlerStubs{
		auth: &stubAuthService{login: func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
			return nil, service.ErrInvalidCredentials
		}},
	})

	req := httptest.NewRequest(http.MethodPost, "/user/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid email or password." {
		t.Errorf("error = %v", body["error"])
	}
}

func TestSignupCreated(t *testing.T) {
	router := newTestHandler(handlerStubs{
		auth: &stubAuthService{signup: func(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
			return &models.AuthResponse{Message: "User created successfully", Token: "tok"}, nil
		}},
	})

	req := httptest.NewRequest(http.MethodPost, "/user/signup",
		strings.NewReader(`{"fullname":"A","email":"a@b.c","password":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestSaveReportRequiresToken(t *testing.T) {
	router := newTestHandler(handlerStubs{})

	req := httptest.NewRequest(http.MethodPost, "/results/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSaveReportWithToken(t *testing.T) {
	router := newTestHandler(handlerStubs{
		auth: &stubAuthService{verify: func(token string) (*service.Claims, error) {
			return &service.Claims{StudentID: "s1"}, nil
		}},
		report: &stubReportService{save: func(ctx context.Context, req *models.SaveReportRequest) (*models.PlagiarismReport, error) {
			return &models.PlagiarismReport{ID: "r1", TeamName: req.TeamName}, nil
		}},
	})

	payload := `{"originalTeamName":"Falcons","originalTeamLeader":"Maya","originalTeamEmail":"maya@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/results/", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer valid")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["message"] != "Plagiarism result saved successfully." {
		t.Errorf("message = %v", body["message"])
	}
}

func TestListReportsIsPublic(t *testing.T) {
	router := newTestHandler(handlerStubs{
		report: &stubReportService{list: func(ctx context.Context, teamName string) ([]*models.PlagiarismReport, error) {
			return []*models.PlagiarismReport{{ID: "r1"}}, nil
		}},
	})

	req := httptest.NewRequest(http.MethodGet, "/results/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
