package models

import "time"

// LoginAudit 登录审计记录，成功与失败都会写入
type LoginAudit struct {
	ID         uint      `gorm:"primarykey" json:"id"`                             // 主键
	UserID     uint      `gorm:"index" json:"user_id"`                             // 用户ID（用户不存在时为0）
	Username   string    `gorm:"type:varchar(254);index;not null" json:"username"` // 提交的用户名或邮箱
	Status     string    `gorm:"type:varchar(16);index;not null" json:"status"`    // success / failed
	FailReason string    `gorm:"type:varchar(32)" json:"fail_reason"`              // 失败原因
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"`          // 客户端IP
	UserAgent  string    `gorm:"type:text" json:"user_agent"`                      // 客户端UA
	RequestID  string    `gorm:"type:varchar(64)" json:"request_id"`               // 请求追踪ID
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                          // 记录时间
}

// TableName 指定表名
func (LoginAudit) TableName() string {
	return "login_audits"
}
