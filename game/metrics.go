package game

import (
	"sync/atomic"
	"time"
)

// GameMetrics counts engine activity. Counters are atomic so a renderer on
// another goroutine can read them while the owner keeps ticking.
type GameMetrics struct {
	Sessions         int64
	TickCount        int64
	FoodEaten        int64
	FoodExpired      int64
	ObstaclesSkipped int64
	RejectedCalls    int64
	TotalTickNs      int64
}

func (m *GameMetrics) IncSessions()     { atomic.AddInt64(&m.Sessions, 1) }
func (m *GameMetrics) IncFoodEaten()    { atomic.AddInt64(&m.FoodEaten, 1) }
func (m *GameMetrics) IncFoodExpired()  { atomic.AddInt64(&m.FoodExpired, 1) }
func (m *GameMetrics) IncRejected()     { atomic.AddInt64(&m.RejectedCalls, 1) }
func (m *GameMetrics) AddSkipped(n int) { atomic.AddInt64(&m.ObstaclesSkipped, int64(n)) }
func (m *GameMetrics) AddTick(d time.Duration) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, d.Nanoseconds())
}

// MetricsSnapshot is a point-in-time copy of GameMetrics.
type MetricsSnapshot struct {
	Sessions         int64   `json:"sessions"`
	TickCount        int64   `json:"tick_count"`
	FoodEaten        int64   `json:"food_eaten"`
	FoodExpired      int64   `json:"food_expired"`
	ObstaclesSkipped int64   `json:"obstacles_skipped"`
	RejectedCalls    int64   `json:"rejected_calls"`
	AvgTickMs        float64 `json:"avg_tick_ms"`
}

func (m *GameMetrics) Snapshot() MetricsSnapshot {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return MetricsSnapshot{
		Sessions:         atomic.LoadInt64(&m.Sessions),
		TickCount:        tick,
		FoodEaten:        atomic.LoadInt64(&m.FoodEaten),
		FoodExpired:      atomic.LoadInt64(&m.FoodExpired),
		ObstaclesSkipped: atomic.LoadInt64(&m.ObstaclesSkipped),
		RejectedCalls:    atomic.LoadInt64(&m.RejectedCalls),
		AvgTickMs:        avgMs,
	}
}
