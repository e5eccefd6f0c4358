package main

import (
	"context"
	"feedback-board/backend/global"
	"feedback-board/backend/initialize"
	"feedback-board/backend/server"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the YAML config file")
	flag.Parse()

	app, err := initialize.Build(*configPath)
	if err != nil {
		global.Logger.Fatal().Err(err).Msg("build app")
	}
	defer func() {
		if err := app.Close(); err != nil {
			global.Logger.Error().Err(err).Msg("close app")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := app.Cfg
	if err := server.RunHTTPServer(ctx, cfg.HTTP.Host, cfg.HTTP.Port, app.Router, time.Duration(cfg.HTTP.ShutdownTimeoutSec)*time.Second, global.Logger); err != nil {
		global.Logger.Error().Err(err).Msg("server stopped")
		return
	}
	global.Logger.Info().Msg("bye")
}
