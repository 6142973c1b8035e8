package httpd

import (
	"context"
	"net/http"
	"strings"

	"github.com/proposalhub/submission-service/pkg/utils"
)

type contextKey string

const studentIDKey contextKey = "student_id"

// RequireAuth validates the bearer token and stores the authenticated
// student id on the request context.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.ErrorResponse(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		claims, err := h.authService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), studentIDKey, claims.StudentID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StudentIDFromContext returns the authenticated student id, if any.
func StudentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(studentIDKey).(string)
	return id, ok
}
