package initialize

import (
	"context"
	"feedback-board/backend/app/controllers"
	"feedback-board/backend/app/db"
	jwtutil "feedback-board/backend/app/jwt"
	"feedback-board/backend/app/middleware"
	"feedback-board/backend/app/repo"
	"feedback-board/backend/app/services"
	"feedback-board/backend/app/session"
	"feedback-board/backend/app/view"
	"feedback-board/backend/config"
	"feedback-board/backend/global"
	"feedback-board/backend/router"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type App struct {
	Cfg      config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Router   http.Handler
	Sessions *session.Manager
	Users    *services.UserService
	Feedback *services.FeedbackService
}

// Close releases the connections opened by Build.
func (a *App) Close() error { return closeConnections(a.DB, a.Redis) }

func closeConnections(gdb *gorm.DB, rdb *redis.Client) error {
	var firstErr error
	if rdb != nil {
		firstErr = rdb.Close()
	}
	if gdb == nil {
		return firstErr
	}
	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.LoadAndWatch(configPath, func(c *config.Config, err error) {
		if err != nil {
			global.Logger.Error().Err(err).Msg("config reload rejected")
			return
		}
		SetLevel(c.Log.Level)
		global.Logger.Info().Str("level", c.Log.Level).Msg("config reloaded")
	})
	if err != nil {
		return nil, err
	}
	global.Config = *cfg
	log := InitLogger(cfg.Log)
	warnInsecureDefaults(*cfg, log)

	// Connect DB
	gdb, err := db.Connect(db.Config{
		Driver:   cfg.DB.Driver,
		Path:     cfg.DB.Path,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Pass,
		DBName:   cfg.DB.Name,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	// Migrate
	if err := db.Migrate(gdb); err != nil {
		_ = closeConnections(gdb, nil)
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Session.Store == "redis" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = closeConnections(gdb, rdb)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		global.Rdb = rdb
	}

	app, err := openApp(*cfg, gdb, rdb, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("db", cfg.DB.Driver).Str("sessions", cfg.Session.Store).Str("feed", cfg.Feed.Scope).Msg("app ready")
	return app, nil
}

// openApp is NewApp that closes gdb and rdb when wiring fails.
func openApp(cfg config.Config, gdb *gorm.DB, rdb *redis.Client, log zerolog.Logger) (*App, error) {
	app, err := NewApp(cfg, gdb, rdb, log)
	if err != nil {
		if cerr := closeConnections(gdb, rdb); cerr != nil {
			log.Error().Err(cerr).Msg("close connections")
		}
		return nil, err
	}
	return app, nil
}

// warnInsecureDefaults flags a cookie session store signed with the
// built-in secret.
func warnInsecureDefaults(cfg config.Config, log zerolog.Logger) {
	if cfg.Session.Store == "cookie" && cfg.Session.Secret == config.DefaultSessionSecret {
		log.Warn().Str("key", "app.session.secret").Msg("cookie sessions are signed with the default secret; set FEEDBACK_APP_SESSION_SECRET")
	}
}

// NewApp wires repositories, services and controllers on top of open
// connections. rdb is only used by the redis session store.
func NewApp(cfg config.Config, gdb *gorm.DB, rdb *redis.Client, log zerolog.Logger) (*App, error) {
	// Services
	userRepo := repo.NewUserRepository(gdb)
	feedbackRepo := repo.NewFeedbackRepository(gdb)
	scope, err := services.ParseFeedScope(cfg.Feed.Scope)
	if err != nil {
		return nil, err
	}
	userSvc := services.NewUserService(userRepo, services.NewCredentialStore(cfg.Security.BcryptCost))
	feedbackSvc := services.NewFeedbackService(feedbackRepo, scope)

	// Sessions
	maxAge := time.Duration(cfg.Session.MaxAgeMin) * time.Minute
	var store session.Store
	switch cfg.Session.Store {
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("redis session store without a redis client")
		}
		store = &session.RedisStore{Client: rdb, Name: cfg.Session.CookieName, TTL: maxAge, Secure: cfg.Session.Secure}
	default:
		signer := &jwtutil.Signer{Secret: []byte(cfg.Session.Secret), Issuer: cfg.Session.Issuer, ExpMin: cfg.Session.MaxAgeMin}
		store = &session.CookieStore{Signer: signer, Name: cfg.Session.CookieName, MaxAge: maxAge, Secure: cfg.Session.Secure}
	}
	sessions := session.NewManager(store)

	renderer, err := view.NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	// Controllers
	homeCtrl := controllers.NewHomeController(sessions, renderer)
	authCtrl := controllers.NewAuthController(userSvc, sessions, renderer)
	userCtrl := controllers.NewUserController(userSvc, feedbackSvc, sessions, renderer)
	feedbackCtrl := controllers.NewFeedbackController(userSvc, feedbackSvc, sessions, renderer)
	httpCtrl := controllers.NewHTTPController(gdb, rdb)
	mw := &middleware.Auth{Sessions: sessions, Users: userSvc}

	// Router
	h := router.NewRouter(homeCtrl, authCtrl, userCtrl, feedbackCtrl, httpCtrl, mw, sessions, log)

	return &App{Cfg: cfg, DB: gdb, Redis: rdb, Router: h, Sessions: sessions, Users: userSvc, Feedback: feedbackSvc}, nil
}
