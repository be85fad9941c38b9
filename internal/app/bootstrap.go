package app

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/provider"
	"github.com/elisiyan/internal/router"
	"github.com/elisiyan/internal/worker"
)

// OpenDatabase 按配置建立全局数据库连接
func OpenDatabase(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := ensureSQLiteDir(cfg.Database.Driver, cfg.Database.DSN); err != nil {
		return err
	}
	return models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogMode, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
}

// PrepareDatabase 迁移表结构并补齐兜底分类与初始超级管理员
func PrepareDatabase(cfg *config.Config) error {
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if err := models.EnsureDefaultCategory(models.DB, cfg.Catalog.DefaultCategoryID, cfg.Catalog.DefaultCategoryName); err != nil {
		return fmt.Errorf("ensure default category: %w", err)
	}
	bootstrap := cfg.Bootstrap
	if err := models.InitDefaultSuperuser(models.DB, bootstrap.SuperuserUsername, bootstrap.SuperuserEmail, bootstrap.SuperuserPassword); err != nil {
		return fmt.Errorf("init superuser: %w", err)
	}
	return nil
}

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
	}

	// 队列未启用时 all 模式只运行 HTTP，邮件改为同步发送
	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = opts.withDefaults()
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	if err := OpenDatabase(opts.Config); err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if !opts.SkipPrepare {
		if err := PrepareDatabase(opts.Config); err != nil {
			return err
		}
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", opts.Mode, "services", runner.Names())
	return RunWithOptions(runner, opts)
}

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}

func ensureSQLiteDir(driver, dsn string) error {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
	default:
		return nil
	}
	path := strings.TrimPrefix(strings.TrimSpace(dsn), "file:")
	if idx := strings.Index(path, "?"); idx >= 0 {
		path = path[:idx]
	}
	if path == "" || path == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}
	return nil
}
