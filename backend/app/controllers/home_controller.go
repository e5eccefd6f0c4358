package controllers

import (
	"feedback-board/backend/app/middleware"
	"feedback-board/backend/app/session"
	"feedback-board/backend/app/view"
	"net/http"
)

type HomeController struct{ base }

func NewHomeController(sessions *session.Manager, renderer view.Renderer) *HomeController {
	return &HomeController{base{Renderer: renderer, Sessions: sessions}}
}

func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	if u := middleware.GetUser(r.Context()); u != nil {
		redirect(w, r, profilePath(u.Username))
		return
	}
	c.render(w, r, http.StatusOK, "index", nil)
}

// NotFound renders the 404 page for paths no route matches.
func (c *HomeController) NotFound(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusNotFound, "404", nil)
}
