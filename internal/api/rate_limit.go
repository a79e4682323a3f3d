package api

import (
	"sync"

	"golang.org/x/time/rate"
)

const maxTrackedClients = 10000

// limiterCache 按键维护令牌桶，双重检查加锁
// 跟踪的键超过 maxKeys 后，下一个新键会清空全部令牌桶
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	maxKeys  int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	if burst < 1 {
		burst = 1
	}
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		maxKeys:  maxTrackedClients,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	if len(lc.limiters) >= lc.maxKeys {
		lc.limiters = make(map[K]*rate.Limiter)
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}
