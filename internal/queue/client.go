package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 注册链路等高优先级任务
	CriticalQueue = constants.QueueCritical

	emailMaxRetry       = 5
	emailTimeout        = 30 * time.Second
	welcomeUniqueTTL    = 24 * time.Hour
	activationUniqueTTL = 10 * time.Minute
	defaultConcurrency  = 10

	// HousekeepingSchedule 周期清理的 cron 表达式
	HousekeepingSchedule = "@every 1h"
	housekeepingTimeout  = 5 * time.Minute
)

// Client asynq 客户端封装，未启用时所有投递均为空操作
type Client struct {
	client *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{client: asynq.NewClient(buildRedisOpt(cfg))}, nil
}

// Enabled 是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// EnqueueUserActivationEmail 投递激活邮件，同一载荷短时间内只投递一次
func (c *Client) EnqueueUserActivationEmail(payload UserActivationEmailPayload, opts ...asynq.Option) error {
	return enqueueWith(c, NewUserActivationEmailTask, payload, append([]asynq.Option{
		asynq.Queue(CriticalQueue),
		asynq.Unique(activationUniqueTTL),
	}, opts...))
}

// EnqueueUserWelcomeEmail 投递欢迎邮件，每个用户一天内至多一封
func (c *Client) EnqueueUserWelcomeEmail(payload UserWelcomeEmailPayload, opts ...asynq.Option) error {
	return enqueueWith(c, NewUserWelcomeEmailTask, payload, append([]asynq.Option{
		asynq.Queue(DefaultQueue),
		asynq.Unique(welcomeUniqueTTL),
	}, opts...))
}

// enqueueWith 统一的投递流程，重复任务视为成功
func enqueueWith[P any](c *Client, build func(P) (*asynq.Task, error), payload P, opts []asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := build(payload)
	if err != nil {
		return err
	}
	options := append([]asynq.Option{asynq.MaxRetry(emailMaxRetry), asynq.Timeout(emailTimeout)}, opts...)
	if _, err := c.client.Enqueue(task, options...); err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		return err
	}
	return nil
}

// HousekeepingOptions 周期清理任务的投递参数；同一周期内只保留一个实例，失败等下一周期重跑
func HousekeepingOptions() []asynq.Option {
	return []asynq.Option{
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(0),
		asynq.Timeout(housekeepingTimeout),
		asynq.Unique(time.Hour - time.Minute),
	}
}

// BuildServerConfig 生成 worker 端配置，critical 队列权重更高
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := defaultConcurrency
	queues := map[string]int{DefaultQueue: 1, CriticalQueue: 2}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
