package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/provider"
	"github.com/elisiyan/internal/queue"
	"github.com/elisiyan/internal/repository"
	"github.com/elisiyan/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), models.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateWith(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	container := &provider.Container{
		UserRepo:     repository.NewUserRepository(db),
		EmailService: service.NewEmailService(&config.EmailConfig{Enabled: false}),
	}
	return NewConsumer(container), db
}

func TestHandleUserActivationEmail(t *testing.T) {
	consumer, _ := setupConsumerTest(t)

	if err := consumer.handleUserActivationEmail(context.Background(), asynq.NewTask(queue.TaskUserActivationEmail, []byte("{bad"))); err == nil {
		t.Fatalf("malformed payload should fail")
	}

	task, err := queue.NewUserActivationEmailTask(queue.UserActivationEmailPayload{UserID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleUserActivationEmail(context.Background(), task); err != nil {
		t.Fatalf("payload without link should be skipped, got %v", err)
	}

	task, err = queue.NewUserActivationEmailTask(queue.UserActivationEmailPayload{
		UserID:   1,
		Email:    "a@example.com",
		Username: "alice",
		Link:     "https://shop.example.com/api/v1/users/active/MQ/abc",
	})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// 邮件服务关闭时不重试
	if err := consumer.handleUserActivationEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email service should not trigger retry, got %v", err)
	}
}

func TestHandleUserWelcomeEmail(t *testing.T) {
	consumer, db := setupConsumerTest(t)

	task, err := queue.NewUserWelcomeEmailTask(queue.UserWelcomeEmailPayload{UserID: 42})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleUserWelcomeEmail(context.Background(), task); err != nil {
		t.Fatalf("missing user should be skipped, got %v", err)
	}

	user := models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	task, err = queue.NewUserWelcomeEmailTask(queue.UserWelcomeEmailPayload{UserID: user.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleUserWelcomeEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email service should not trigger retry, got %v", err)
	}
}

func TestFinishEmailTask(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "ok", err: nil},
		{name: "disabled", err: service.ErrEmailServiceDisabled},
		{name: "not configured", err: fmt.Errorf("wrap: %w", service.ErrEmailServiceNotConfigured)},
		{name: "bad receiver", err: service.ErrInvalidEmail},
		{name: "rejected receiver", err: fmt.Errorf("%w: 550 no mailbox", service.ErrEmailRecipientRejected)},
		{name: "smtp", err: errors.New("dial tcp: connection refused"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := finishEmailTask("worker_test", 1, tc.err)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, NewConsumer(&provider.Container{})); err == nil {
		t.Fatalf("disabled queue should not build a worker")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should not build a worker")
	}
}

func TestHandleHousekeepingPurgesExpiredAudits(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	consumer.LoginAuditService = service.NewLoginAuditService(repository.NewLoginAuditRepository(db))

	now := time.Now()
	audits := []models.LoginAudit{
		{Username: "stale", Status: constants.LoginStatusFailed, CreatedAt: now.Add(-120 * 24 * time.Hour)},
		{Username: "fresh", Status: constants.LoginStatusSuccess, CreatedAt: now.Add(-time.Minute)},
	}
	if err := db.Create(&audits).Error; err != nil {
		t.Fatalf("create audits failed: %v", err)
	}

	if err := consumer.handleHousekeeping(context.Background(), queue.NewHousekeepingTask()); err != nil {
		t.Fatalf("housekeeping failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.LoginAudit{}).Count(&count).Error; err != nil {
		t.Fatalf("count audits failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("want 1 audit left got %d", count)
	}
}
