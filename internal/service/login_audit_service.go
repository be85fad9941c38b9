package service

import (
	"errors"
	"strings"
	"time"

	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/models"
	"github.com/elisiyan/internal/repository"
)

const (
	maxLoginAuditUsernameLength = 254
	maxLoginAuditUserAgent      = 512
	loginAuditRetention         = 90 * 24 * time.Hour
)

// LoginAuditService 登录审计服务
type LoginAuditService struct {
	repo repository.LoginAuditRepository
}

// NewLoginAuditService 创建登录审计服务
func NewLoginAuditService(repo repository.LoginAuditRepository) *LoginAuditService {
	return &LoginAuditService{repo: repo}
}

// LoginAuditInput 登录审计输入
type LoginAuditInput struct {
	UserID    uint
	Username  string
	Err       error
	ClientIP  string
	UserAgent string
	RequestID string
}

// Record 记录一次登录尝试，Err 为空视为成功
func (s *LoginAuditService) Record(input LoginAuditInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	status := constants.LoginStatusSuccess
	failReason := ""
	if input.Err != nil {
		status = constants.LoginStatusFailed
		failReason = LoginFailReason(input.Err)
	}
	return s.repo.Create(&models.LoginAudit{
		UserID:     input.UserID,
		Username:   truncateRunes(strings.TrimSpace(input.Username), maxLoginAuditUsernameLength),
		Status:     status,
		FailReason: failReason,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  truncateRunes(strings.TrimSpace(input.UserAgent), maxLoginAuditUserAgent),
		RequestID:  strings.TrimSpace(input.RequestID),
		CreatedAt:  time.Now(),
	})
}

// List 管理端查询登录审计
func (s *LoginAuditService) List(filter repository.LoginAuditListFilter) ([]models.LoginAudit, int64, error) {
	if s == nil || s.repo == nil {
		return []models.LoginAudit{}, 0, nil
	}
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	switch filter.Status {
	case "", constants.LoginStatusSuccess, constants.LoginStatusFailed:
	default:
		return nil, 0, ErrInvalidInput
	}
	return s.repo.List(filter)
}

// PurgeExpired 删除超过保留期的记录
func (s *LoginAuditService) PurgeExpired(now time.Time) (int64, error) {
	if s == nil || s.repo == nil {
		return 0, nil
	}
	return s.repo.DeleteBefore(now.Add(-loginAuditRetention))
}

// LoginFailReason 登录错误到审计失败原因的映射
func LoginFailReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return constants.LoginFailInvalidCredentials
	case errors.Is(err, ErrUserInactive):
		return constants.LoginFailUserInactive
	case errors.Is(err, ErrCaptchaRequired), errors.Is(err, ErrCaptchaInvalid):
		return constants.LoginFailCaptcha
	default:
		return constants.LoginFailInternal
	}
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
