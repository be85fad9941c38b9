package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/i18n"
	"github.com/elisiyan/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// maxProbeBody 读取凭证字段时最多缓冲的请求体大小
const maxProbeBody = 64 << 10

// ThrottleKeyFunc 生成节流维度 key
type ThrottleKeyFunc func(*gin.Context) string

// ThrottleRule 登录/注册节流规则
type ThrottleRule struct {
	Scope      string
	Window     time.Duration
	Limit      int
	Block      time.Duration
	MessageKey string
}

func (r ThrottleRule) enabled() bool {
	return r.Window > 0 && r.Limit > 0
}

// 首次计数设置窗口；刚超限的那一次把过期时间延长到封禁时长
var throttleScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local block = tonumber(ARGV[3])
if block > 0 and current == tonumber(ARGV[2]) + 1 then
	redis.call("PEXPIRE", KEYS[1], block)
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// ThrottleMiddleware 基于 Redis 计数的节流，Redis 未启用或异常时放行
func ThrottleMiddleware(client *redis.Client, rule ThrottleRule, keyFunc ThrottleKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}
		subject := ""
		if keyFunc != nil {
			subject = strings.TrimSpace(keyFunc(c))
		}
		if subject == "" {
			subject = c.ClientIP()
		}

		values, err := throttleScript.Run(c.Request.Context(), client, []string{rule.Scope + ":" + subject},
			rule.Window.Milliseconds(), rule.Limit, rule.Block.Milliseconds()).Int64Slice()
		if err != nil || len(values) < 2 {
			logger.Warnw("throttle_check_failed", "scope", rule.Scope, "error", err)
			c.Next()
			return
		}
		if values[0] <= int64(rule.Limit) {
			c.Next()
			return
		}

		wait := retryAfterSeconds(time.Duration(values[1])*time.Millisecond, rule.Window)
		c.Header("Retry-After", strconv.Itoa(wait))
		msgKey := rule.MessageKey
		if msgKey == "" {
			msgKey = "error.rate_limited"
		}
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, wait))
		c.Abort()
	}
}

// retryAfterSeconds 向上取整到秒，TTL 缺失时退回窗口长度
func retryAfterSeconds(ttl, window time.Duration) int {
	if ttl <= 0 {
		ttl = window
	}
	seconds := int((ttl + time.Second - 1) / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// ThrottleByIP 仅按客户端 IP 节流
func ThrottleByIP(c *gin.Context) string {
	return c.ClientIP()
}

// ThrottleByCredential 按登录标识 + IP 节流，标识缺失时退回 IP
func ThrottleByCredential(c *gin.Context) string {
	identity := strings.ToLower(peekCredential(c))
	if identity == "" {
		return c.ClientIP()
	}
	return identity + "|" + c.ClientIP()
}

type credentialProbe struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// peekCredential 读取请求体中的 username（缺失时用 email），并还原请求体供后续绑定
func peekCredential(c *gin.Context) string {
	if c == nil || c.Request == nil || c.Request.Body == nil || c.Request.Body == http.NoBody {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProbeBody))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))

	var probe credentialProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	if name := strings.TrimSpace(probe.Username); name != "" {
		return name
	}
	return strings.TrimSpace(probe.Email)
}
