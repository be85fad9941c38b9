package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/elisiyan/internal/config"
)

// passwordPolicyError 携带具体未满足的规则，errors.Is 时等同 ErrWeakPassword
type passwordPolicyError struct {
	rule    string
	message string
}

func (e passwordPolicyError) Error() string { return e.message }

func (e passwordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

// Rule 未满足的规则名
func (e passwordPolicyError) Rule() string { return e.rule }

// 最常见的弱口令（小写比较）
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "11111111": {},
	"qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "abc12345": {},
	"letmein1": {}, "welcome1": {}, "admin123": {}, "sunshine1": {},
}

// 相似度检查只看长度不少于该值的用户属性片段
const minSimilarFragment = 4

type passwordRule struct {
	name    string
	enabled func(config.PasswordPolicyConfig) bool
	message func(config.PasswordPolicyConfig) string
	fails   func(policy config.PasswordPolicyConfig, password string, attrs []string) bool
}

var passwordRules = []passwordRule{
	{
		name:    "min_length",
		enabled: func(p config.PasswordPolicyConfig) bool { return p.MinLength > 0 },
		message: func(p config.PasswordPolicyConfig) string {
			return fmt.Sprintf("password must be at least %d characters", p.MinLength)
		},
		fails: func(p config.PasswordPolicyConfig, pw string, _ []string) bool {
			return len([]rune(pw)) < p.MinLength
		},
	},
	charClassRule("require_upper", "password must contain an uppercase letter",
		func(p config.PasswordPolicyConfig) bool { return p.RequireUpper }, unicode.IsUpper),
	charClassRule("require_lower", "password must contain a lowercase letter",
		func(p config.PasswordPolicyConfig) bool { return p.RequireLower }, unicode.IsLower),
	charClassRule("require_number", "password must contain a digit",
		func(p config.PasswordPolicyConfig) bool { return p.RequireNumber }, unicode.IsDigit),
	charClassRule("require_special", "password must contain a special character",
		func(p config.PasswordPolicyConfig) bool { return p.RequireSpecial }, isSpecialRune),
	{
		name:    "entirely_numeric",
		enabled: func(p config.PasswordPolicyConfig) bool { return p.RejectCommon },
		message: func(config.PasswordPolicyConfig) string { return "password cannot be entirely numeric" },
		fails: func(_ config.PasswordPolicyConfig, pw string, _ []string) bool {
			return pw != "" && strings.IndexFunc(pw, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
		},
	},
	{
		name:    "too_common",
		enabled: func(p config.PasswordPolicyConfig) bool { return p.RejectCommon },
		message: func(config.PasswordPolicyConfig) string { return "password is too common" },
		fails: func(_ config.PasswordPolicyConfig, pw string, _ []string) bool {
			_, hit := commonPasswords[strings.ToLower(pw)]
			return hit
		},
	},
	{
		name:    "too_similar",
		enabled: func(p config.PasswordPolicyConfig) bool { return p.RejectSimilar },
		message: func(config.PasswordPolicyConfig) string { return "password is too similar to the username or email" },
		fails:   similarToAttributes,
	},
}

func charClassRule(name, message string, enabled func(config.PasswordPolicyConfig) bool, class func(rune) bool) passwordRule {
	return passwordRule{
		name:    name,
		enabled: enabled,
		message: func(config.PasswordPolicyConfig) string { return message },
		fails: func(_ config.PasswordPolicyConfig, pw string, _ []string) bool {
			return strings.IndexFunc(pw, class) < 0
		},
	}
}

func isSpecialRune(r rune) bool {
	return !unicode.IsUpper(r) && !unicode.IsLower(r) && !unicode.IsDigit(r)
}

// ValidatePassword 按密码策略校验密码，attrs 为用户名、邮箱等用于相似度检查的属性
func ValidatePassword(policy config.PasswordPolicyConfig, password string, attrs ...string) error {
	for _, rule := range passwordRules {
		if !rule.enabled(policy) || !rule.fails(policy, password, attrs) {
			continue
		}
		return passwordPolicyError{rule: rule.name, message: rule.message(policy)}
	}
	return nil
}

// similarToAttributes 邮箱按 @ 与分隔符拆分后逐段比较
func similarToAttributes(_ config.PasswordPolicyConfig, password string, attrs []string) bool {
	pw := strings.ToLower(password)
	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if attr == "" {
			continue
		}
		fragments := append([]string{attr}, strings.FieldsFunc(attr, func(r rune) bool {
			return r == '@' || r == '.' || r == '_' || r == '-' || r == '+'
		})...)
		for _, fragment := range fragments {
			if len([]rune(fragment)) < minSimilarFragment {
				continue
			}
			if strings.Contains(pw, fragment) || strings.Contains(fragment, pw) {
				return true
			}
		}
	}
	return false
}
