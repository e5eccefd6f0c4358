package middleware

import (
	"feedback-board/backend/app/session"
	"net/http"

	"github.com/rs/zerolog"
)

// Session loads the session data of the request into its context.
func Session(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := m.Load(r)
			if err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("load session")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithData(r.Context(), d)))
		})
	}
}
