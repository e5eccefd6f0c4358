package router

import (
	"feedback-board/backend/app/controllers"
	"feedback-board/backend/app/middleware"
	"feedback-board/backend/app/session"
	"net/http"

	"github.com/rs/zerolog"
)

func NewRouter(homeCtrl *controllers.HomeController, authCtrl *controllers.AuthController, userCtrl *controllers.UserController, feedbackCtrl *controllers.FeedbackController, httpCtrl *controllers.HTTPController, mw *middleware.Auth, sessions *session.Manager, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.HandlerFunc, guards ...func(http.Handler) http.Handler) {
		var handler http.Handler = h
		for i := len(guards) - 1; i >= 0; i-- {
			handler = guards[i](handler)
		}
		mux.Handle(pattern, middleware.WithRoute(pattern, handler))
	}

	// public
	handle("GET /{$}", homeCtrl.Index)
	handle("GET /healthz", httpCtrl.Health)
	handle("GET /logout", authCtrl.Logout)

	// anonymous only
	handle("GET /register", authCtrl.RegisterForm, mw.AnonymousOnly)
	handle("POST /register", authCtrl.Register, mw.AnonymousOnly)
	handle("GET /login", authCtrl.LoginForm, mw.AnonymousOnly)
	handle("POST /login", authCtrl.Login, mw.AnonymousOnly)

	// logged in
	handle("GET /users/{username}", userCtrl.Profile, mw.RequireAuth)
	handle("POST /users/{username}/delete", userCtrl.Delete, mw.RequireAuth)
	handle("GET /users/{username}/feedback/add", feedbackCtrl.AddForm, mw.RequireAuth)
	handle("POST /users/{username}/feedback/add", feedbackCtrl.Add, mw.RequireAuth)
	handle("GET /feedback/{id}/update", feedbackCtrl.EditForm, mw.RequireAuth)
	handle("POST /feedback/{id}/update", feedbackCtrl.Update, mw.RequireAuth)
	handle("POST /feedback/{id}/delete", feedbackCtrl.Delete, mw.RequireAuth)

	handle("/", homeCtrl.NotFound)

	var h http.Handler = mux
	h = mw.Identify(h)
	h = middleware.Session(sessions)(h)
	h = middleware.Recover(h)
	h = middleware.Logging(h)
	h = middleware.RequestID(log)(h)
	return h
}
