package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/elisiyan/internal/config"
	"github.com/elisiyan/internal/logger"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "elisiyan"

// store 当前生效的 Redis 连接与键前缀
type store struct {
	client *redis.Client
	prefix string
}

var active atomic.Pointer[store]

// InitRedis 初始化 Redis 客户端（未启用时所有缓存操作为空操作）
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		swap(nil)
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	swap(&store{
		client: redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: normalizePrefix(cfg.Prefix),
	})
	return nil
}

// swap 替换当前连接并关闭旧连接
func swap(next *store) {
	if prev := active.Swap(next); prev != nil && prev.client != nil {
		_ = prev.client.Close()
	}
}

func normalizePrefix(prefix string) string {
	if trimmed := strings.Trim(strings.TrimSpace(prefix), ":"); trimmed != "" {
		return trimmed
	}
	return defaultPrefix
}

// Ping 检查 Redis 连通性
func Ping(ctx context.Context) error {
	s := active.Load()
	if s == nil {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close 关闭 Redis 客户端
func Close() error {
	prev := active.Swap(nil)
	if prev == nil {
		return nil
	}
	return prev.client.Close()
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return active.Load() != nil
}

// Client 获取 Redis 客户端，未启用时返回 nil
func Client() *redis.Client {
	if s := active.Load(); s != nil {
		return s.client
	}
	return nil
}

// BuildKey 拼接带前缀的缓存键
func BuildKey(key string) string {
	prefix := defaultPrefix
	if s := active.Load(); s != nil {
		prefix = s.prefix
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return prefix
	}
	return prefix + ":" + trimmed
}

// GetJSON 获取 JSON 缓存
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s := active.Load()
	if s == nil {
		return false, nil
	}
	val, err := s.client.Get(ctx, BuildKey(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存，ttl <= 0 时不写入
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s := active.Load()
	if s == nil || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, BuildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, keys ...string) error {
	s := active.Load()
	if s == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = BuildKey(key)
	}
	return s.client.Del(ctx, full...).Err()
}

// Remember 旁路缓存：命中直接返回，否则调用 load 并回填
// 缓存读写失败只记录日志，不影响 load 的结果
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	hit, err := GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("cache_get_failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	fresh, err := load()
	if err != nil {
		return fresh, err
	}
	if err := SetJSON(ctx, key, fresh, ttl); err != nil {
		logger.Warnw("cache_set_failed", "key", key, "error", err)
	}
	return fresh, nil
}
