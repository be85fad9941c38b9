package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：all 同进程运行 API 与 worker，api/worker 分别单独运行
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
	SkipPrepare     bool // 跳过迁移与初始数据，由 manage 命令单独执行时使用
}

// ParseMode 校验启动模式，空值视为 all
func ParseMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if mode == "" {
		return ModeAll, nil
	}
	for _, known := range []string{ModeAll, ModeAPI, ModeWorker} {
		if mode == known {
			return mode, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (want all, api or worker)", raw)
}

// withDefaults 补齐未设置的日志、关停超时与模式
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	if strings.TrimSpace(o.Mode) == "" {
		o.Mode = ModeAll
	}
	return o
}
