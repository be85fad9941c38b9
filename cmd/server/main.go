package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/elisiyan/internal/app"
	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	fmt.Println("\033[36m\033[1melisiyan catalog api\033[0m")

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()

	fatal := false
	for _, finding := range app.Preflight(cfg) {
		if finding.Fatal {
			fatal = true
			logger.Errorw("preflight_failed", "problem", finding.Problem)
			continue
		}
		logger.Warnw("preflight_warning", "problem", finding.Problem)
	}
	if fatal {
		logger.Sync()
		os.Exit(1)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		logger.Errorw("server_exit", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}
