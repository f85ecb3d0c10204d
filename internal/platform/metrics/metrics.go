package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers in-process counters for the /metrics endpoint.
type Collector struct {
	requests    uint64
	errors      uint64
	rateLimited uint64
	durationMs  uint64

	mu          sync.Mutex
	transitions map[string]uint64
}

func New() *Collector {
	return &Collector{transitions: make(map[string]uint64)}
}

func (c *Collector) RecordRequest(status int, duration time.Duration) {
	atomic.AddUint64(&c.requests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errors, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.durationMs, uint64(duration.Milliseconds()))
}

// RecordTransition counts successful appraisal status changes by target status.
func (c *Collector) RecordTransition(target string) {
	c.mu.Lock()
	c.transitions[target]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	requests := atomic.LoadUint64(&c.requests)
	totalMs := atomic.LoadUint64(&c.durationMs)
	avg := float64(0)
	if requests > 0 {
		avg = float64(totalMs) / float64(requests)
	}

	c.mu.Lock()
	transitions := make(map[string]uint64, len(c.transitions))
	for target, count := range c.transitions {
		transitions[target] = count
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":    requests,
		"errorsTotal":      atomic.LoadUint64(&c.errors),
		"rateLimitedTotal": atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":    avg,
		"transitionsTotal": transitions,
	}
}
