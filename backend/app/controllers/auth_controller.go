package controllers

import (
	"errors"
	"feedback-board/backend/app/dto"
	"feedback-board/backend/app/models"
	"feedback-board/backend/app/services"
	"feedback-board/backend/app/session"
	"feedback-board/backend/app/view"
	"net/http"

	"github.com/rs/zerolog"
)

type AuthController struct {
	base
	Users *services.UserService
}

func NewAuthController(users *services.UserService, sessions *session.Manager, renderer view.Renderer) *AuthController {
	return &AuthController{base: base{Renderer: renderer, Sessions: sessions}, Users: users}
}

func (c *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "register", view.Data{"Form": &dto.RegisterForm{}, "Errors": dto.FieldErrors{}})
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var form dto.RegisterForm
	fe, err := dto.Bind(r, &form)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if len(fe) > 0 {
		c.render(w, r, http.StatusOK, "register", view.Data{"Form": &form, "Errors": fe})
		return
	}

	u, err := c.Users.Register(r.Context(), services.Registration{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Username:  form.Username,
		Password:  form.Password,
	})
	if errors.Is(err, models.ErrDuplicateUsernameOrEmail) {
		fe.Add("username", "Username or email taken. Please pick another.")
		c.render(w, r, http.StatusOK, "register", view.Data{"Form": &form, "Errors": fe})
		return
	}
	if err != nil {
		c.fail(w, r, err)
		return
	}

	if err := c.Sessions.Set(w, r, u.ID); err != nil {
		c.fail(w, r, err)
		return
	}
	zerolog.Ctx(r.Context()).Info().Uint("user_id", u.ID).Str("username", u.Username).Msg("user registered")
	c.flash(w, r, session.CategorySuccess, "Welcome! Successfully Created Your Account!")
	redirect(w, r, profilePath(u.Username))
}

func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "login", view.Data{"Form": &dto.LoginForm{}, "Errors": dto.FieldErrors{}})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var form dto.LoginForm
	fe, err := dto.Bind(r, &form)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if len(fe) > 0 {
		c.render(w, r, http.StatusOK, "login", view.Data{"Form": &form, "Errors": fe})
		return
	}

	u, err := c.Users.Authenticate(r.Context(), form.Username, form.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		zerolog.Ctx(r.Context()).Info().Str("username", form.Username).Msg("login failed")
		fe.Add("username", "Invalid username/password.")
		c.render(w, r, http.StatusOK, "login", view.Data{"Form": &form, "Errors": fe})
		return
	}
	if err != nil {
		c.fail(w, r, err)
		return
	}

	if err := c.Sessions.Set(w, r, u.ID); err != nil {
		c.fail(w, r, err)
		return
	}
	c.flash(w, r, session.CategoryPrimary, "Welcome Back, "+u.Username+"!")
	redirect(w, r, profilePath(u.Username))
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := c.Sessions.Clear(w, r); err != nil {
		c.fail(w, r, err)
		return
	}
	c.flash(w, r, session.CategoryInfo, "Goodbye!")
	redirect(w, r, "/")
}
