package logging

import (
	"log/slog"
	"sync"
)

// Progress logs a counter every Interval steps. It is safe for concurrent use.
type Progress struct {
	logger   *slog.Logger
	msg      string
	interval int

	mu    sync.Mutex
	count int
}

// NewProgress returns a counter that logs msg with the running count.
// A non-positive interval disables periodic logging.
func NewProgress(logger *slog.Logger, msg string, interval int) *Progress {
	return &Progress{logger: logger, msg: msg, interval: interval}
}

// Step advances the counter by one and logs when it reaches a multiple of
// the interval. Extra attributes are attached to that log line only.
func (p *Progress) Step(args ...any) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count++
	if p.interval > 0 && p.count%p.interval == 0 {
		p.logger.Info(p.msg, append([]any{"processed", p.count}, args...)...)
	}
}

// Report logs n as the processed count when n is a multiple of the interval.
// It fits callbacks that already track their own count.
func (p *Progress) Report(n int) {
	if p == nil || p.interval <= 0 || n%p.interval != 0 {
		return
	}
	p.logger.Info(p.msg, "processed", n)
}

// Count returns the number of steps taken.
func (p *Progress) Count() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}
