package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/provider"
	"github.com/elisiyan/internal/queue"
	"github.com/elisiyan/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskUserActivationEmail, c.handleUserActivationEmail)
	mux.HandleFunc(queue.TaskUserActivatedWelcome, c.handleUserWelcomeEmail)
	mux.HandleFunc(queue.TaskHousekeeping, c.handleHousekeeping)
}

func (c *Consumer) handleUserActivationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_activation_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.UserActivationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_activation_email_unmarshal_failed", "error", err)
		return err
	}
	receiver := strings.TrimSpace(payload.Email)
	link := strings.TrimSpace(payload.Link)
	if payload.UserID == 0 || receiver == "" || link == "" {
		logger.Debugw("worker_activation_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_activation_email_skip_email_service_nil", "user_id", payload.UserID)
		return nil
	}
	return finishEmailTask("worker_activation_email", payload.UserID,
		c.EmailService.SendActivationEmail(receiver, payload.Username, link))
}

func (c *Consumer) handleUserWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_welcome_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.UserWelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_welcome_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 {
		logger.Debugw("worker_welcome_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.UserRepo == nil || c.EmailService == nil {
		logger.Warnw("worker_welcome_email_skip_dependency_nil", "user_id", payload.UserID)
		return nil
	}
	user, err := c.UserRepo.GetByID(payload.UserID)
	if err != nil {
		logger.Warnw("worker_welcome_email_fetch_user_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	if user == nil || !user.IsActive {
		logger.Debugw("worker_welcome_email_skip_user_unavailable", "user_id", payload.UserID)
		return nil
	}
	return finishEmailTask("worker_welcome_email", user.ID,
		c.EmailService.SendWelcomeEmail(user.Email, user.DisplayName()))
}

// handleHousekeeping 清理过期激活令牌与超出保留期的登录审计，单项失败不影响其余清理
func (c *Consumer) handleHousekeeping(_ context.Context, _ *asynq.Task) error {
	if c == nil || c.Container == nil {
		return nil
	}
	now := time.Now()
	var errs []error
	purge := func(target string, run func(time.Time) (int64, error)) {
		removed, err := run(now)
		if err != nil {
			logger.Warnw("worker_housekeeping_failed", "target", target, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
			return
		}
		if removed > 0 {
			logger.Infow("worker_housekeeping_purged", "target", target, "removed", removed)
		}
	}
	if c.UserAuthService != nil {
		purge("activation_tokens", c.UserAuthService.PurgeStaleActivationTokens)
	}
	if c.LoginAuditService != nil {
		purge("login_audits", c.LoginAuditService.PurgeExpired)
	}
	return errors.Join(errs...)
}

// finishEmailTask 配置类与收件人类错误不再重试，其余错误交给 asynq 重试
func finishEmailTask(event string, userID uint, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, service.ErrEmailServiceDisabled),
		errors.Is(err, service.ErrEmailServiceNotConfigured),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrEmailRecipientRejected):
		logger.Warnw(event+"_skip", "user_id", userID, "reason", err.Error())
		return nil
	default:
		logger.Warnw(event+"_send_failed", "user_id", userID, "error", err)
		return err
	}
}
