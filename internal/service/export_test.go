package service

import "time"

func (rl *RateLimiter) EvictIdle(now time.Time) { rl.evictIdle(now) }

func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}
