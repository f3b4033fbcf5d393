package core

import (
	"sync"

	"golang.org/x/time/rate"
)

// OrderRateLimiter 每个客户端一个令牌桶，限制增量指令频率
type OrderRateLimiter struct {
	mu       sync.Mutex
	limiters map[int]*rate.Limiter

	perSecond rate.Limit
	burst     int
}

// NewOrderRateLimiter 创建增量指令限流器。perSecond <= 0 表示不限流
func NewOrderRateLimiter(perSecond float64, burst int) *OrderRateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &OrderRateLimiter{
		limiters:  make(map[int]*rate.Limiter),
		perSecond: limit,
		burst:     burst,
	}
}

// Allow 检查客户端是否还有令牌
func (l *OrderRateLimiter) Allow(clientID int) bool {
	l.mu.Lock()
	lim, ok := l.limiters[clientID]
	if !ok {
		lim = rate.NewLimiter(l.perSecond, l.burst)
		l.limiters[clientID] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// RemoveClient 客户端断开后释放其令牌桶
func (l *OrderRateLimiter) RemoveClient(clientID int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, clientID)
}
