package scrape

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// hostMinDelay is the minimum spacing between requests to the same host.
// Cache hits do not count against it.
const hostMinDelay = 2 * time.Second

// hostLimiter spaces out requests per host so repeated scrapes do not
// hammer a single job board.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newHostLimiter() *hostLimiter {
	return &hostLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (l *hostLimiter) wait(ctx context.Context, host string) error {
	l.mu.Lock()
	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(hostMinDelay), 1)
		l.limiters[host] = lim
	}
	l.mu.Unlock()
	return lim.Wait(ctx)
}
