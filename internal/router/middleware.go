package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/elisiyan/internal/authz"
	"github.com/elisiyan/internal/cache"
	"github.com/elisiyan/internal/constants"
	"github.com/elisiyan/internal/http/response"
	"github.com/elisiyan/internal/i18n"
	"github.com/elisiyan/internal/logger"
	"github.com/elisiyan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 64
)

// AuthStateResolver 读取用户鉴权快照
type AuthStateResolver interface {
	ResolveAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error)
}

// RoleEnforcer 按角色判定接口访问权限
type RoleEnforcer interface {
	EnforceRole(role, obj, act string) (bool, error)
}

// RequestIDMiddleware 请求 ID 中间件，沿用上游传入的合法 ID，否则生成新的
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequest, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// validRequestID 限制长度与字符集，避免日志注入
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == ':':
		default:
			return false
		}
	}
	return true
}

// LoggerMiddleware 结构化请求日志中间件，按响应状态选择日志级别
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("client_ip", c.ClientIP()),
		}
		if userID := c.GetUint(constants.ContextKeyUserID); userID != 0 {
			fields = append(fields, zap.Uint("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case status >= http.StatusInternalServerError || len(c.Errors) > 0:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequest)
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
// 校验签名后比对鉴权快照中的激活状态与 token 版本，登出后旧 token 立即失效
func UserJWTAuthMiddleware(secretKey string, resolver AuthStateResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		if resolver == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortUnauthorized(c, "error.auth_header_missing")
			return
		}
		token, ok := bearerToken(authHeader)
		if !ok {
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}

		claims, err := service.ParseUserJWT(secretKey, token)
		if err != nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		state, err := resolver.ResolveAuthState(c.Request.Context(), claims.UserID)
		if err != nil || state == nil {
			if err != nil && !errors.Is(err, service.ErrUserNotFound) {
				logger.Errorw("user_auth_state_resolve_failed", "user_id", claims.UserID, "error", err)
			}
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !state.IsActive {
			abortUnauthorized(c, "error.user_inactive")
			return
		}
		if claims.TokenVersion != state.TokenVersion {
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set(constants.ContextKeyUserID, state.UserID)
		c.Set(constants.ContextKeyUsername, state.Username)
		c.Set(constants.ContextKeyUserRole, state.Role())
		c.Next()
	}
}

// PolicyMiddleware 按策略表判定当前角色能否访问匹配到的路由
func PolicyMiddleware(enforcer RoleEnforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enforcer == nil {
			logger.Errorw("authz_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		role := strings.TrimSpace(c.GetString(constants.ContextKeyUserRole))
		if role == "" {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := enforcer.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("authz_enforce_failed",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortWith(c, response.CodeInternal, "error.internal")
			return
		}
		if !allowed {
			logger.Warnw("authz_permission_denied",
				"user_id", c.GetUint(constants.ContextKeyUserID),
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			abortWith(c, response.CodeForbidden, "error.forbidden")
			return
		}

		c.Next()
	}
}

// bearerToken 解析 "Bearer <token>"，scheme 大小写不敏感
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortUnauthorized(c *gin.Context, key string) {
	abortWith(c, response.CodeUnauthorized, key)
}

func abortWith(c *gin.Context, code int, key string) {
	response.Error(c, code, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}
