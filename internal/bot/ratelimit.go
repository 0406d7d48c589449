package bot

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// userLimiter throttles dialogue starts per user so one chat can't hammer
// the generative backend.
type userLimiter struct {
	perMinute int

	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
}

func newUserLimiter(perMinute int) *userLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &userLimiter{
		perMinute: perMinute,
		limiters:  make(map[int64]*rate.Limiter),
	}
}

func (ul *userLimiter) allow(userID int64) bool {
	ul.mu.Lock()
	l, ok := ul.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ul.perMinute)), ul.perMinute)
		ul.limiters[userID] = l
	}
	ul.mu.Unlock()
	return l.Allow()
}
