package middleware

import (
	"context"
	"errors"
	"feedback-board/backend/app/models"
	"feedback-board/backend/app/session"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type Auth struct {
	Sessions *session.Manager
	Users    UserFinder
}

// Identify resolves the session's user id. A session pointing at a user that
// no longer exists is logged out.
func (a *Auth) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := session.CurrentUserID(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		u, err := a.Users.FindByID(r.Context(), id)
		switch {
		case errors.Is(err, models.ErrNotFound):
			if err := a.Sessions.Clear(w, r); err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("clear stale session")
			}
			next.ServeHTTP(w, r)
		case err != nil:
			zerolog.Ctx(r.Context()).Error().Err(err).Uint("user_id", id).Msg("load session user")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		default:
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		}
	})
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			if err := a.Sessions.AddFlash(w, r, session.CategoryDanger, "Please login first!"); err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("add flash")
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AnonymousOnly sends a logged in user to their own profile.
func (a *Auth) AnonymousOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := GetUser(r.Context()); u != nil {
			http.Redirect(w, r, "/users/"+url.PathEscape(u.Username), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
