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

const idleTTL = 5 * time.Minute

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex

	limit rate.Limit
	burst int
)

// Configure sets the per-client rate. A non-positive rps disables limiting.
// Existing visitors are dropped so the new rate applies to everyone.
func Configure(rps float64, b int) {
	mu.Lock()
	defer mu.Unlock()
	limit = rate.Limit(rps)
	burst = b
	visitors = make(map[string]*clientLimiter)
}

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return limit > 0
}

func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(limit, burst)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// StartVisitorCleanupLoop forgets idle clients every minute until ctx ends.
func StartVisitorCleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mu.Lock()
			for ip, v := range visitors {
				if time.Since(v.lastSeen) > idleTTL {
					delete(visitors, ip)
				}
			}
			mu.Unlock()
		}
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()
	visitors = make(map[string]*clientLimiter)
}
