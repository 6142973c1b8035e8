package httpd

import (
	"net/http"

	"github.com/proposalhub/submission-service/pkg/utils"
)

// CheckDuplicate evaluates each supplied query field independently; an
// omitted field is reported as not duplicated without being queried.
func (h *Handler) CheckDuplicate(w http.ResponseWriter, r *http.Request) {
	teamNumber := r.URL.Query().Get("teamNumber")
	projectTitle := r.URL.Query().Get("projectTitle")

	if teamNumber == "" && projectTitle == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "teamNumber or projectTitle is required")
		return
	}

	result, err := h.duplicateService.Check(r.Context(), teamNumber, projectTitle)
	if err != nil {
		h.logger.Error().Err(err).Msg("Duplicate lookup failed")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to check duplicates")
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}
