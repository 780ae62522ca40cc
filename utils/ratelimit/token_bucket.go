package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket 令牌桶限流器, 用于控制对模型服务的调用频率
type TokenBucket struct {
	rate       float64 // 每秒生成的令牌数
	capacity   float64
	tokens     float64
	lastUpdate time.Time
	mutex      sync.Mutex
	now        func() time.Time
}

// NewTokenBucket 创建令牌桶, rate 为每秒令牌数, capacity 为桶容量(也是初始令牌数)
// rate <= 0 时返回 nil, nil 桶不做任何限制
func NewTokenBucket(rate float64, capacity int64) *TokenBucket {
	if rate <= 0 {
		return nil
	}
	if capacity <= 0 {
		capacity = 1
	}
	return &TokenBucket{
		rate:       rate,
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		lastUpdate: time.Now(),
		now:        time.Now,
	}
}

// refill 必须在持有锁时调用
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.rate)
	tb.lastUpdate = now
}

// Allow 尝试立即获取一个令牌
func (tb *TokenBucket) Allow() bool {
	return tb.AllowN(1)
}

// AllowN 尝试立即获取 n 个令牌, 不足时不扣减
func (tb *TokenBucket) AllowN(n int64) bool {
	if tb == nil {
		return true
	}
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.refill()
	if tb.tokens < float64(n) {
		return false
	}
	tb.tokens -= float64(n)
	return true
}

// Wait 阻塞直到获取一个令牌或 ctx 结束
func (tb *TokenBucket) Wait(ctx context.Context) error {
	return tb.WaitN(ctx, 1)
}

// WaitN 阻塞直到获取 n 个令牌或 ctx 结束
func (tb *TokenBucket) WaitN(ctx context.Context, n int64) error {
	if tb == nil {
		return nil
	}
	for {
		tb.mutex.Lock()
		tb.refill()
		if tb.tokens >= float64(n) {
			tb.tokens -= float64(n)
			tb.mutex.Unlock()
			return nil
		}
		// 按缺口计算下一次可用的时间
		waitTime := time.Duration((float64(n) - tb.tokens) / tb.rate * float64(time.Second))
		tb.mutex.Unlock()

		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
