package queue

import (
	"encoding/json"
	"fmt"

	"github.com/elisiyan/internal/constants"

	"github.com/hibiken/asynq"
)

// 任务类型
const (
	TaskUserActivationEmail  = constants.TaskUserActivationEmail
	TaskUserActivatedWelcome = constants.TaskUserActivatedWelcome
	TaskHousekeeping         = constants.TaskHousekeeping
)

// UserActivationEmailPayload 激活邮件任务载荷
type UserActivationEmailPayload struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Link     string `json:"link"`
}

// UserWelcomeEmailPayload 欢迎邮件任务载荷，收件信息在消费时按 UserID 重新读取
type UserWelcomeEmailPayload struct {
	UserID uint `json:"user_id"`
}

// NewUserActivationEmailTask 创建激活邮件任务
func NewUserActivationEmailTask(payload UserActivationEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskUserActivationEmail, payload)
}

// NewUserWelcomeEmailTask 创建欢迎邮件任务
func NewUserWelcomeEmailTask(payload UserWelcomeEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskUserActivatedWelcome, payload)
}

// NewHousekeepingTask 周期清理任务，无载荷
func NewHousekeepingTask() *asynq.Task {
	return asynq.NewTask(TaskHousekeeping, nil)
}

func newJSONTask(taskType string, payload any) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, body), nil
}
