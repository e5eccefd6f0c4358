package controllers

import (
	"context"
	"feedback-board/backend/app/db"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HTTPController serves the plain-text operational endpoints.
type HTTPController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHTTPController(gdb *gorm.DB, rdb *redis.Client) *HTTPController {
	return &HTTPController{DB: gdb, Redis: rdb}
}

// Health pings the database, and Redis when sessions live there.
func (c *HTTPController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := db.Ping(ctx, c.DB); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health: db")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("db unavailable"))
		return
	}
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health: redis")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("redis unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
