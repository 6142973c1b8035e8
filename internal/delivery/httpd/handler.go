package httpd

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/proposalhub/submission-service/internal/service"
	"github.com/proposalhub/submission-service/pkg/utils"
)

type Handler struct {
	uploadService    service.UploadService
	downloadService  service.DownloadService
	deleteService    service.DeleteService
	duplicateService service.DuplicateService
	fallbackChecker  service.FallbackChecker
	authService      service.AuthService
	reportService    service.ReportService
	logger           zerolog.Logger
}

func NewHandler(
	uploadService service.UploadService,
	downloadService service.DownloadService,
	deleteService service.DeleteService,
	duplicateService service.DuplicateService,
	fallbackChecker service.FallbackChecker,
	authService service.AuthService,
	reportService service.ReportService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		uploadService:    uploadService,
		downloadService:  downloadService,
		deleteService:    deleteService,
		duplicateService: duplicateService,
		fallbackChecker:  fallbackChecker,
		authService:      authService,
		reportService:    reportService,
		logger:           logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)
	router.Get("/ready", h.ReadyCheck)
	router.Get("/stats", h.GetStats)

	// Submission flow
	router.Post("/upload", h.UploadSubmission)
	router.Get("/files", h.ListFiles)
	router.Get("/pdf/{id}", h.StreamPDF)
	router.Post("/delete/{id}", h.DeleteFile)
	router.Get("/check-duplicate", h.CheckDuplicate)
	router.Get("/check-plagiarism", h.CheckPlagiarism)

	// Accounts
	router.Route("/user", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
	})

	// Stored verdicts
	router.Route("/results", func(r chi.Router) {
		r.Get("/", h.ListReports)
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuth)
			r.Post("/", h.SaveReport)
			r.Post("/delete/{id}", h.DeleteReport)
			r.Post("/delete", h.DeleteReportsByTeam)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "submission-service",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.downloadService.GetStats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to collect stats")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to collect stats")
		return
	}

	utils.WriteJSON(w, http.StatusOK, stats)
}

// respondError maps service errors onto HTTP statuses.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case service.IsValidationError(err):
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSubmissionNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, "File not found")
	case errors.Is(err, service.ErrReportNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, "Report not found")
	case errors.Is(err, service.ErrEmailTaken):
		utils.ErrorResponse(w, http.StatusBadRequest, "User already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid email or password.")
	default:
		h.logger.Error().Err(err).Msg("Request failed")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
