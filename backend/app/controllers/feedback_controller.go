package controllers

import (
	"feedback-board/backend/app/dto"
	"feedback-board/backend/app/models"
	"feedback-board/backend/app/services"
	"feedback-board/backend/app/session"
	"feedback-board/backend/app/view"
	"fmt"
	"net/http"
)

type FeedbackController struct {
	base
	Users    *services.UserService
	Feedback *services.FeedbackService
}

func NewFeedbackController(users *services.UserService, feedback *services.FeedbackService, sessions *session.Manager, renderer view.Renderer) *FeedbackController {
	return &FeedbackController{base: base{Renderer: renderer, Sessions: sessions}, Users: users, Feedback: feedback}
}

// author resolves the {username} of an add-feedback route. Users only post
// on their own page.
func (c *FeedbackController) author(r *http.Request) (*models.User, error) {
	me, err := currentUser(r)
	if err != nil {
		return nil, err
	}
	u, err := c.Users.FindByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		return nil, err
	}
	if u.ID != me.ID {
		return nil, fmt.Errorf("post as %s: %w", u.Username, models.ErrForbidden)
	}
	return me, nil
}

func (c *FeedbackController) AddForm(w http.ResponseWriter, r *http.Request) {
	me, err := c.author(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, "feedback", view.Data{"User": me, "Form": &dto.FeedbackForm{}, "Errors": dto.FieldErrors{}})
}

func (c *FeedbackController) Add(w http.ResponseWriter, r *http.Request) {
	me, err := c.author(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	var form dto.FeedbackForm
	fe, err := dto.Bind(r, &form)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if len(fe) > 0 {
		c.render(w, r, http.StatusOK, "feedback", view.Data{"User": me, "Form": &form, "Errors": fe})
		return
	}
	if _, err := c.Feedback.Post(r.Context(), me.ID, form.Title, form.Content); err != nil {
		c.fail(w, r, err)
		return
	}
	c.flash(w, r, session.CategorySuccess, "Feedback Created!")
	redirect(w, r, profilePath(me.Username))
}

// editable loads the {id} feedback for its owner.
func (c *FeedbackController) editable(r *http.Request) (*models.User, *models.Feedback, error) {
	me, err := currentUser(r)
	if err != nil {
		return nil, nil, err
	}
	id, err := pathID(r)
	if err != nil {
		return nil, nil, err
	}
	f, err := c.Feedback.Editable(r.Context(), me.ID, id)
	if err != nil {
		return nil, nil, err
	}
	return me, f, nil
}

func (c *FeedbackController) EditForm(w http.ResponseWriter, r *http.Request) {
	me, f, err := c.editable(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	form := &dto.UpdateFeedbackForm{Title: f.Title, Content: f.Content}
	c.render(w, r, http.StatusOK, "feedback-edit", view.Data{"User": me, "Feedback": f, "Form": form, "Errors": dto.FieldErrors{}})
}

func (c *FeedbackController) Update(w http.ResponseWriter, r *http.Request) {
	me, f, err := c.editable(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	var form dto.UpdateFeedbackForm
	fe, err := dto.Bind(r, &form)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if len(fe) > 0 {
		c.render(w, r, http.StatusOK, "feedback-edit", view.Data{"User": me, "Feedback": f, "Form": &form, "Errors": fe})
		return
	}
	if err := c.Feedback.Update(r.Context(), me.ID, f, form.Title, form.Content); err != nil {
		c.fail(w, r, err)
		return
	}
	c.flash(w, r, session.CategorySuccess, "Feedback Modified!")
	redirect(w, r, profilePath(me.Username))
}

func (c *FeedbackController) Delete(w http.ResponseWriter, r *http.Request) {
	me, err := currentUser(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if _, err := c.Feedback.Delete(r.Context(), me.ID, id); err != nil {
		c.fail(w, r, err)
		return
	}
	c.flash(w, r, session.CategorySuccess, "Feedback Deleted!")
	redirect(w, r, profilePath(me.Username))
}
