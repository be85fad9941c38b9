package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirName    = "logs"
	defaultLogFilename   = "elisiyan.log"
	defaultLogMaxSizeMB  = 100
	defaultLogMaxBackups = 7
	defaultLogMaxAgeDays = 30
)

// Options 日志输出配置
type Options struct {
	Dir        string
	Filename   string
	Level      string // debug / info / warn / error，空值按运行模式推导
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Console    bool // release 模式下是否同时输出到控制台
}

var (
	current atomic.Pointer[zap.Logger]
	level   = zap.NewAtomicLevelAt(zap.InfoLevel)
	// 未 Init 前（单测、CLI 早期阶段）使用的控制台 logger
	bootstrap = zap.New(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.AddSync(os.Stdout), zap.InfoLevel),
		zap.AddCaller(), zap.AddCallerSkip(1),
	)
)

// Init 初始化全局日志，并替换 zap 全局实例
func Init(mode string, options Options) *zap.Logger {
	level.SetLevel(resolveLevel(options.Level, isDebug(mode)).Level())
	l := build(mode, options, level)
	current.Store(l)
	zap.ReplaceGlobals(l)
	return l
}

// Current 返回已初始化的全局日志
func Current() (*zap.Logger, bool) {
	l := current.Load()
	return l, l != nil
}

// New 创建独立的日志实例，不影响全局状态
// debug 模式仅输出到控制台，其余模式写入滚动文件
func New(mode string, options Options) *zap.Logger {
	return build(mode, options, resolveLevel(options.Level, isDebug(mode)))
}

// SetLevel 运行期调整全局日志级别
func SetLevel(text string) error {
	parsed, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		return err
	}
	level.SetLevel(parsed)
	return nil
}

func isDebug(mode string) bool {
	return strings.EqualFold(strings.TrimSpace(mode), "debug")
}

func build(mode string, options Options, lvl zap.AtomicLevel) *zap.Logger {
	enc := encoderConfig()
	stdout := zapcore.AddSync(os.Stdout)

	var core zapcore.Core
	switch {
	case isDebug(mode):
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(enc), stdout, lvl)
	default:
		file, err := fileSink(options)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger init failed, fallback to stdout: %v\n", err)
			core = zapcore.NewCore(zapcore.NewJSONEncoder(enc), stdout, lvl)
			break
		}
		core = zapcore.NewCore(zapcore.NewJSONEncoder(enc), file, lvl)
		if options.Console {
			core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewConsoleEncoder(enc), stdout, lvl))
		}
	}
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// Sync 刷新缓冲区，进程退出前调用
func Sync() {
	if l, ok := Current(); ok {
		_ = l.Sync()
	}
}

// StdLogger 返回兼容标准库 log 的 logger
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z 返回可用的结构化日志实例
func Z() *zap.Logger {
	if l, ok := Current(); ok {
		return l
	}
	return bootstrap
}

// S 返回可用的 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 返回带上下文字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }

func Infow(message string, kv ...interface{}) { S().Infow(message, kv...) }

func Warnw(message string, kv ...interface{}) { S().Warnw(message, kv...) }

func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

func resolveLevel(raw string, debug bool) zap.AtomicLevel {
	fallback := zap.InfoLevel
	if debug {
		fallback = zap.DebugLevel
	}
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return zap.NewAtomicLevelAt(fallback)
	}
	parsed, err := zapcore.ParseLevel(text)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zap.NewAtomicLevelAt(parsed)
}

// fileSink 按大小滚动的日志文件，目录不存在时自动创建
func fileSink(options Options) (zapcore.WriteSyncer, error) {
	path, err := resolveLogFilePath(options)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(options.MaxSizeMB, defaultLogMaxSizeMB),
		MaxBackups: positiveOr(options.MaxBackups, defaultLogMaxBackups),
		MaxAge:     positiveOr(options.MaxAgeDays, defaultLogMaxAgeDays),
		Compress:   options.Compress,
	}), nil
}

func resolveLogFilePath(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir failed: %w", err)
		}
		dir = filepath.Join(workDir, defaultLogDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir failed: %w", err)
	}
	filename := strings.TrimSpace(options.Filename)
	if filename == "" {
		filename = defaultLogFilename
	}
	return filepath.Join(dir, filename), nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
