/* ratelimit.go
 * Contains the per user command rate limiter
 * Authors: Zachary Bower
 */

package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultCommandRate  = rate.Limit(1) // commands per second
	defaultCommandBurst = 3
)

type userLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	notified map[string]bool
}

func newUserLimiter(limit rate.Limit, burst int) *userLimiter {
	return &userLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
		notified: make(map[string]bool),
	}
}

// allow reports whether the user may run a command now. When the user is throttled notify is true only for the first
// rejected command, so the bot warns once instead of replying to every message
func (l *userLimiter) allow(userID string, now time.Time) (allowed bool, notify bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[userID] = limiter
	}

	if limiter.AllowN(now, 1) {
		l.notified[userID] = false
		return true, false
	}
	if l.notified[userID] {
		return false, false
	}
	l.notified[userID] = true
	return false, true
}
