package controllers

import (
	"feedback-board/backend/app/services"
	"feedback-board/backend/app/session"
	"feedback-board/backend/app/view"
	"net/http"

	"github.com/rs/zerolog"
)

type UserController struct {
	base
	Users    *services.UserService
	Feedback *services.FeedbackService
}

func NewUserController(users *services.UserService, feedback *services.FeedbackService, sessions *session.Manager, renderer view.Renderer) *UserController {
	return &UserController{base: base{Renderer: renderer, Sessions: sessions}, Users: users, Feedback: feedback}
}

func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUser(r); err != nil {
		c.fail(w, r, err)
		return
	}
	u, err := c.Users.FindByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	feed, err := c.Feedback.Feed(r.Context(), u)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "profile", view.Data{"User": u, "Feed": feed})
}

func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	me, err := currentUser(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if err := c.Users.Delete(r.Context(), me.ID, r.PathValue("username")); err != nil {
		c.fail(w, r, err)
		return
	}
	if err := c.Sessions.Clear(w, r); err != nil {
		c.fail(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Uint("user_id", me.ID).Msg("user deleted")
	c.flash(w, r, session.CategoryInfo, "You've successfully deleted your account!")
	redirect(w, r, "/")
}
