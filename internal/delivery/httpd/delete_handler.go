package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/proposalhub/submission-service/pkg/utils"
)

func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "id")
	if fileID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "File ID is required")
		return
	}

	if err := h.deleteService.DeleteSubmission(r.Context(), fileID); err != nil {
		h.respondError(w, err)
		return
	}

	utils.MessageResponse(w, http.StatusOK, "File deleted")
}
