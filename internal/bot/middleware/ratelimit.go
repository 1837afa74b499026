package middleware

import (
	"sync"
	"time"
)

// RateLimiter ограничивает частоту событий по ключу (user_id)
// скользящим окном. Часы инъектируются для тестов.
type RateLimiter struct {
	mu     sync.Mutex
	events map[int64][]time.Time
	limit  int
	window time.Duration
	now    func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		events: make(map[int64][]time.Time),
		limit:  limit,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Close останавливает фоновую горутину очистки.
// Его надо вызывать на shutdown (иначе cleanup будет жить вечно).
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Allow сообщает, укладывается ли очередное событие ключа в лимит,
// и при положительном ответе учитывает его.
func (rl *RateLimiter) Allow(key int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	recent := rl.recentLocked(key, now)

	if len(recent) >= rl.limit {
		rl.events[key] = recent
		return false
	}

	rl.events[key] = append(recent, now)
	return true
}

// recentLocked отбрасывает события, выпавшие из окна. Вызывать под mu.
func (rl *RateLimiter) recentLocked(key int64, now time.Time) []time.Time {
	cutoff := now.Add(-rl.window)
	var recent []time.Time
	for _, t := range rl.events[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

// cleanup периодически выбрасывает ключи без событий в окне,
// чтобы карта не росла бесконечно.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for key := range rl.events {
				recent := rl.recentLocked(key, now)
				if len(recent) == 0 {
					delete(rl.events, key)
				} else {
					rl.events[key] = recent
				}
			}
			rl.mu.Unlock()
		}
	}
}
