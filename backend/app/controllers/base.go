package controllers

import (
	"errors"
	"feedback-board/backend/app/middleware"
	"feedback-board/backend/app/models"
	"feedback-board/backend/app/session"
	"feedback-board/backend/app/view"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
)

// base holds what every page controller needs to answer a request.
type base struct {
	Renderer view.Renderer
	Sessions *session.Manager
}

func (b *base) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.Data) {
	if data == nil {
		data = view.Data{}
	}
	data["CurrentUser"] = middleware.GetUser(r.Context())
	flashes, err := b.Sessions.Flashes(w, r)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("pop flashes")
	}
	data["Flashes"] = flashes
	if err := b.Renderer.Render(w, status, page, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("render")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (b *base) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	if err := b.Sessions.AddFlash(w, r, category, message); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("add flash")
	}
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusFound)
}

func profilePath(username string) string { return "/users/" + url.PathEscape(username) }

// fail answers a request that ended in err.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		b.render(w, r, http.StatusNotFound, "404", nil)
	case errors.Is(err, models.ErrUnauthorized):
		b.flash(w, r, session.CategoryDanger, "Please login first!")
		redirect(w, r, "/login")
	case errors.Is(err, models.ErrForbidden):
		b.flash(w, r, session.CategoryWarning, "Nice Try!")
		if u := middleware.GetUser(r.Context()); u != nil {
			redirect(w, r, profilePath(u.Username))
			return
		}
		redirect(w, r, "/")
	case errors.Is(err, models.ErrValidation):
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		b.render(w, r, http.StatusInternalServerError, "error", nil)
	}
}

// pathID parses the {id} wildcard; anything that is not a positive integer
// cannot name a record.
func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, models.ErrNotFound
	}
	return uint(id), nil
}

func currentUser(r *http.Request) (*models.User, error) {
	u := middleware.GetUser(r.Context())
	if u == nil {
		return nil, models.ErrUnauthorized
	}
	return u, nil
}
