package httpd

import (
	"io"
	"net/http"
	"strings"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/pkg/utils"
)

const maxMultipartMemory = 32 << 20 // 32MB

func (h *Handler) UploadSubmission(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		utils.ErrorResponse(w, http.StatusBadRequest, "Content-Type must be multipart/form-data")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	req := &models.UploadRequest{
		TeamNumber:   r.FormValue("teamNumber"),
		TeamName:     r.FormValue("teamName"),
		TeamLeader:   r.FormValue("teamLeader"),
		TeamEmail:    r.FormValue("teamEmail"),
		ProjectTitle: r.FormValue("projectTitle"),
	}

	file, fileHeader, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		content, readErr := io.ReadAll(file)
		if readErr != nil {
			h.logger.Error().Err(readErr).Msg("Failed to read uploaded file")
			utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to read file")
			return
		}

		req.FileName = fileHeader.Filename
		req.ContentType = fileHeader.Header.Get("Content-Type")
		req.Content = content
	}

	response, err := h.uploadService.UploadSubmission(r.Context(), req)
	if err != nil {
		h.handleUploadError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) handleUploadError(w http.ResponseWriter, err error) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "failed to upload file to storage"):
		h.logger.Error().Err(err).Msg("Storage upload error")
		utils.ErrorResponse(w, http.StatusInternalServerError, "File upload to storage failed.")
	case strings.Contains(errMsg, "failed to save submission metadata"):
		h.logger.Error().Err(err).Msg("Metadata store error")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to save file information.")
	default:
		h.respondError(w, err)
	}
}
