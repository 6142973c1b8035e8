package httpd

import (
	"net/http"

	"github.com/proposalhub/submission-service/pkg/utils"
)

// CheckPlagiarism runs the hash-equality fallback checker against every
// other stored submission.
func (h *Handler) CheckPlagiarism(w http.ResponseWriter, r *http.Request) {
	selectedFileID := r.URL.Query().Get("selectedFileId")
	if selectedFileID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "File ID is required")
		return
	}

	results, err := h.fallbackChecker.Check(r.Context(), selectedFileID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, results)
}
