package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/salesorder-next/internal/config"
	"github.com/salesorder-next/internal/logger"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "so"

// store 进程内唯一的 Redis 连接；未启用时所有操作为空操作
var store struct {
	mu     sync.RWMutex
	client *redis.Client
	prefix string
}

// InitRedis 初始化 Redis 客户端，参考数据缓存与限流共用
func InitRedis(cfg *config.RedisConfig) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.client != nil {
		_ = store.client.Close()
		store.client = nil
	}
	if cfg == nil || !cfg.Enabled {
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
	store.prefix = strings.TrimSpace(cfg.Prefix)
	if store.prefix == "" {
		store.prefix = defaultPrefix
	}
	store.client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return nil
}

// Close 关闭 Redis 连接
func Close() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.client == nil {
		return nil
	}
	err := store.client.Close()
	store.client = nil
	return err
}

// Ping 检查 Redis 连通性
func Ping(ctx context.Context) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Ping(ctx).Err()
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return Client() != nil
}

// Client 获取 Redis 客户端，未启用时为 nil
func Client() *redis.Client {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.client
}

// GetJSON 获取 JSON 缓存
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	client := Client()
	if client == nil {
		return false, nil
	}
	val, err := client.Get(ctx, buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	client := Client()
	if client == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, buildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	client := Client()
	if client == nil {
		return nil
	}
	return client.Del(ctx, buildKey(key)).Err()
}

// Remember 读穿缓存：命中直接返回，否则调用 load 并回写。
// 缓存读写失败只记日志，不影响 load 的结果。
func Remember[T any](ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("cache_get_failed", "key", key, "error", err)
	}
	if hit && err == nil {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if err := SetJSON(ctx, key, value, ttl); err != nil {
		logger.Warnw("cache_set_failed", "key", key, "error", err)
	}
	return value, nil
}

func buildKey(key string) string {
	store.mu.RLock()
	prefix := store.prefix
	store.mu.RUnlock()
	if prefix == "" {
		prefix = defaultPrefix
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return prefix
	}
	return prefix + ":" + trimmed
}
