package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/pkg/utils"
)

func (h *Handler) SaveReport(w http.ResponseWriter, r *http.Request) {
	var req models.SaveReportRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.reportService.Save(r.Context(), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Plagiarism result saved successfully.",
		"id":      report.ID,
	})
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("teamName")

	reports, err := h.reportService.List(r.Context(), teamName)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list reports")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch results")
		return
	}

	utils.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")
	if reportID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Report ID is required")
		return
	}

	if err := h.reportService.Delete(r.Context(), reportID); err != nil {
		h.respondError(w, err)
		return
	}

	utils.MessageResponse(w, http.StatusOK, "Result deleted")
}

func (h *Handler) DeleteReportsByTeam(w http.ResponseWriter, r *http.Request) {
	teamName := r.URL.Query().Get("teamName")

	deleted, err := h.reportService.DeleteByTeam(r.Context(), teamName)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Results deleted",
		"deleted": deleted,
	})
}
