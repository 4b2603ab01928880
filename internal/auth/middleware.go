package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"kowapp/internal/auth/service"
	"kowapp/internal/common/apperr"
)

// CookieName is the HTTP-only cookie carrying the bearer token.
const CookieName = "token"

type contextKey string

const tutorIDContextKey = contextKey("tutor_id")

// Middleware gates protected routes: no downstream handler runs unless the
// cookie resolves to a tutor with an active session.
func Middleware(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string
			if cookie, err := r.Cookie(CookieName); err == nil {
				tokenStr = cookie.Value
			}

			tutorID, err := sessions.Authenticate(r.Context(), tokenStr)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tutorIDContextKey, tutorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TutorFromContext returns the authenticated tutor id stashed by Middleware.
func TutorFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(tutorIDContextKey).(int)
	return id, ok
}

func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.Status(err))
	json.NewEncoder(w).Encode(map[string]string{"message": errMessage(err)})
}

func errMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "error interno"
}
