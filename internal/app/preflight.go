package app

import (
	"strings"

	"github.com/elisiyan/internal/config"
)

// Finding 启动前配置检查结果
type Finding struct {
	Problem string
	Fatal   bool
}

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

// Preflight 检查生产环境不应出现的配置；Fatal 的问题只在 release 模式下阻止启动
func Preflight(cfg *config.Config) []Finding {
	if cfg == nil {
		return nil
	}
	release := strings.EqualFold(strings.TrimSpace(cfg.Server.Mode), "release")
	var findings []Finding
	add := func(problem string, fatal bool) {
		findings = append(findings, Finding{Problem: problem, Fatal: fatal && release})
	}

	if isWeakSecret(cfg.UserJWT.SecretKey) {
		add("user_jwt.secret is weak or still the default value", true)
	}
	if release && strings.TrimSpace(cfg.Bootstrap.SuperuserPassword) == "" {
		add("bootstrap.superuser_password is empty, the initial superuser uses the default password", false)
	}
	if release && cfg.CORS.AllowCredentials && allowsAnyOrigin(cfg.CORS.AllowedOrigins) {
		add("cors allows credentials from any origin", false)
	}
	if cfg.Email.Enabled && (strings.TrimSpace(cfg.Email.Host) == "" || strings.TrimSpace(cfg.Email.From) == "") {
		add("email is enabled but host or from is missing, activation mails will be dropped", false)
	}
	if cfg.Queue.Enabled && !cfg.Email.Enabled {
		add("queue is enabled while email is disabled, email tasks will be skipped", false)
	}
	return findings
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

func allowsAnyOrigin(origins []string) bool {
	if len(origins) == 0 {
		return true
	}
	for _, origin := range origins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return false
}
