package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务：消费任务，并按计划投递周期清理任务
type Service struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	redisOpt, serverCfg := queue.BuildServerConfig(cfg)
	serverCfg.Logger = logger.S()

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Logger: logger.S(),
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
				logger.Warnw("worker_schedule_enqueue_failed", "error", err)
			}
		},
	})
	if _, err := scheduler.Register(queue.HousekeepingSchedule, queue.NewHousekeepingTask(), queue.HousekeepingOptions()...); err != nil {
		return nil, fmt.Errorf("register housekeeping schedule: %w", err)
	}

	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server:    asynq.NewServer(redisOpt, serverCfg),
		scheduler: scheduler,
		mux:       mux,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	return "worker"
}

// Start 启动调度器与消费者，阻塞直到消费者退出
func (s *Service) Start(_ context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(_ context.Context) error {
	if s == nil {
		return nil
	}
	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}
