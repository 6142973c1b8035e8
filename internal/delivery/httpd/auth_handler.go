package httpd

import (
	"net/http"

	"github.com/proposalhub/submission-service/internal/models"
	"github.com/proposalhub/submission-service/pkg/utils"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, response)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, response)
}
