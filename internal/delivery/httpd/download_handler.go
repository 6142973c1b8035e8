package httpd

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/proposalhub/submission-service/pkg/utils"
)

func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.downloadService.ListSubmissions(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list submissions")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch files")
		return
	}

	utils.WriteJSON(w, http.StatusOK, submissions)
}

func (h *Handler) StreamPDF(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "id")
	if fileID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "File ID is required")
		return
	}

	reader, submission, err := h.downloadService.OpenPDF(r.Context(), fileID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", submission.MimeType)
	w.Header().Set("Content-Length", strconv.FormatInt(submission.FileSize, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error().Err(err).Str("file_id", fileID).Msg("Failed to stream PDF")
	}
}
