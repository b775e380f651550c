package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Visitors hands out one token bucket per client key.
type Visitors struct {
	mu       sync.Mutex
	visitors map[string]*clientLimiter
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

// NewVisitors allows perSecond requests per client with the given burst.
func NewVisitors(perSecond float64, burst int) *Visitors {
	return &Visitors{
		visitors: make(map[string]*clientLimiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
	}
}

func (v *Visitors) GetVisitor(key string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, exists := v.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(v.limit, v.burst)
		v.visitors[key] = &clientLimiter{limiter, v.now()}
		return limiter
	}

	c.lastSeen = v.now()
	return c.limiter
}

// Allow reports whether key may make a request now.
func (v *Visitors) Allow(key string) bool {
	return v.GetVisitor(key).Allow()
}

// Cleanup forgets clients idle for longer than idle.
func (v *Visitors) Cleanup(idle time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for key, c := range v.visitors {
		if v.now().Sub(c.lastSeen) > idle {
			delete(v.visitors, key)
		}
	}
}

// StartCleanupLoop runs Cleanup every minute until ctx is done.
func (v *Visitors) StartCleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.Cleanup(5 * time.Minute)
		}
	}
}

func (v *Visitors) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.visitors)
}
