package router

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/salesorder-next/internal/http/response"
	"github.com/salesorder-next/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitRemainingHeader = "X-RateLimit-Remaining"

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// INCR 后首次命中设置过期，返回 {当前计数, 剩余秒数}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

type rateLimitState struct {
	count      int64
	ttlSeconds int64
}

func hitRateLimit(ctx context.Context, client *redis.Client, key string, window int) (rateLimitState, error) {
	values, err := rateLimitScript.Run(ctx, client, []string{key}, window).Int64Slice()
	if err != nil {
		return rateLimitState{}, err
	}
	if len(values) < 2 {
		return rateLimitState{}, fmt.Errorf("unexpected rate limit reply: %v", values)
	}
	return rateLimitState{count: values[0], ttlSeconds: values[1]}, nil
}

// RateLimitMiddleware Redis 频率限制中间件；未配置 Redis 时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		state, err := hitRateLimit(c.Request.Context(), client, rule.key(c, keyFunc), rule.WindowSeconds)
		if err != nil {
			msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
			response.Error(c, response.CodeInternal, msg)
			c.Abort()
			return
		}

		remaining := int64(rule.MaxRequests) - state.count
		if remaining < 0 {
			remaining = 0
		}
		c.Header(rateLimitRemainingHeader, strconv.FormatInt(remaining, 10))

		if state.count > int64(rule.MaxRequests) {
			wait := rule.retryAfter(state.ttlSeconds)
			c.Header("Retry-After", strconv.Itoa(wait))
			msgKey := strings.TrimSpace(rule.MessageKey)
			if msgKey == "" {
				msgKey = "error.rate_limited"
			}
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, wait))
			c.Abort()
			return
		}

		c.Next()
	}
}

func (r RateLimitRule) key(c *gin.Context, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if r.Prefix == "" {
		return key
	}
	return r.Prefix + ":" + key
}

// retryAfter ttl 异常（无过期或已过期）时按整个窗口计算
func (r RateLimitRule) retryAfter(ttlSeconds int64) int {
	if ttlSeconds < 1 {
		return r.WindowSeconds
	}
	return int(ttlSeconds)
}

// KeyByIP 使用 IP 作为限流 key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndParam 使用 IP + 路由参数作为限流 key（如表单会话 ID）
func KeyByIPAndParam(param string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.TrimSpace(c.Param(param))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}
