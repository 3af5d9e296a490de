package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map
const maxTrackedClients = 10000

type RateLimiter struct {
	mu                sync.Mutex
	limiters          map[string]*rate.Limiter
	requestsPerSecond float64
	burstSize         int
}

func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:          make(map[string]*rate.Limiter),
		requestsPerSecond: requestsPerSecond,
		burstSize:         burst,
	}
}

func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if len(rl.limiters) >= maxTrackedClients {
		rl.limiters = make(map[string]*rate.Limiter)
	}

	limiter, exists := rl.limiters[client]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(rl.requestsPerSecond), rl.burstSize)
		rl.limiters[client] = limiter
	}

	return limiter.Allow()
}

func (rl *RateLimiter) Burst() int {
	return rl.burstSize
}
