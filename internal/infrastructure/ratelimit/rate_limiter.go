package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Action names a limited operation.
type Action string

const (
	ActionSubmitLead Action = "submit_lead"
	ActionUpload     Action = "upload"
)

// Policy is a token bucket: Burst tokens, refilled at PerMinute a minute.
type Policy struct {
	PerMinute int
	Burst     int
}

func (p Policy) limiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(p.PerMinute)/60), p.Burst)
}

var defaultPolicy = Policy{PerMinute: 20, Burst: 20}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per caller and action.
type RateLimiter struct {
	policies map[Action]Policy
	buckets  map[string]*bucket
	mutex    sync.Mutex
	now      func() time.Time
}

func NewRateLimiter(policies map[Action]Policy) *RateLimiter {
	return &RateLimiter{
		policies: policies,
		buckets:  make(map[string]*bucket),
		now:      time.Now,
	}
}

// Allow consumes a token for key. When denied it returns how long until the
// next token.
func (rl *RateLimiter) Allow(key string, action Action) (bool, time.Duration) {
	now := rl.now()

	rl.mutex.Lock()
	b, exists := rl.buckets[string(action)+":"+key]
	if !exists {
		policy, ok := rl.policies[action]
		if !ok {
			policy = defaultPolicy
		}
		b = &bucket{limiter: policy.limiter()}
		rl.buckets[string(action)+":"+key] = b
	}
	b.lastSeen = now
	rl.mutex.Unlock()

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Minute
	}
	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	reservation.CancelAt(now)
	return false, delay
}

// Cleanup removes buckets idle for longer than idle.
func (rl *RateLimiter) Cleanup(idle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > idle {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) Size() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.buckets)
}

// StartCleanupRoutine prunes idle buckets until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			}
		}
	}()
}
