package queue

import (
	"encoding/json"
	"testing"

	"github.com/elisiyan/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("disabled client should report Enabled=false")
	}
	if err := client.EnqueueUserActivationEmail(UserActivationEmailPayload{UserID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op, got %v", err)
	}
	if err := client.EnqueueUserWelcomeEmail(UserWelcomeEmailPayload{UserID: 1}); err != nil {
		t.Fatalf("disabled welcome enqueue should be a no-op, got %v", err)
	}
	var nilClient *Client
	if nilClient.Enabled() || nilClient.Close() != nil {
		t.Fatalf("nil client should behave as disabled")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("want default addr got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("want concurrency 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[CriticalQueue] <= cfg.Queues[DefaultQueue] {
		t.Fatalf("critical queue should outweigh default: %+v", cfg.Queues)
	}
}

func TestBuildServerConfigFromConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{
		Host:        " redis.local ",
		Port:        6380,
		DB:          3,
		Concurrency: 4,
		Queues:      map[string]int{"default": 1},
	})
	if opt.Addr != "redis.local:6380" || opt.DB != 3 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 4 || len(cfg.Queues) != 1 {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
}

func TestNewUserActivationEmailTask(t *testing.T) {
	task, err := NewUserActivationEmailTask(UserActivationEmailPayload{
		UserID:   7,
		Email:    "a@example.com",
		Username: "alice",
		Link:     "http://localhost/api/v1/users/active/Nw/abc",
	})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskUserActivationEmail {
		t.Fatalf("want type %s got %s", TaskUserActivationEmail, task.Type())
	}
	var payload UserActivationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload failed: %v", err)
	}
	if payload.UserID != 7 || payload.Username != "alice" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildRedisOptIPv6(t *testing.T) {
	opt := buildRedisOpt(&config.QueueConfig{Host: "::1"})
	if opt.Addr != "[::1]:6379" {
		t.Fatalf("want bracketed ipv6 addr got %s", opt.Addr)
	}
}

func TestNewHousekeepingTask(t *testing.T) {
	task := NewHousekeepingTask()
	if task.Type() != TaskHousekeeping {
		t.Fatalf("want type %s got %s", TaskHousekeeping, task.Type())
	}
	if len(task.Payload()) != 0 {
		t.Fatalf("housekeeping task should carry no payload, got %q", task.Payload())
	}
	if len(HousekeepingOptions()) == 0 {
		t.Fatalf("housekeeping options should not be empty")
	}
}
