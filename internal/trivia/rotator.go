package trivia

import (
	"context"
	"sync"
	"time"
)

// Rotator cycles a display index over a fixed list of lines on a repeating
// interval. It is a cosmetic affordance for the network wait: the owner
// starts it before the fetch and stops it once replay begins.
type Rotator struct {
	mu     sync.Mutex
	lines  []string
	idx    int
	ticker *time.Ticker
	cancel context.CancelFunc
	onTick func(line string)
}

func NewRotator(lines []string) *Rotator {
	return &Rotator{lines: append([]string(nil), lines...)}
}

// OnTick registers a callback invoked with the new current line after every
// advance. Must be set before Start.
func (r *Rotator) OnTick(fn func(line string)) {
	r.mu.Lock()
	r.onTick = fn
	r.mu.Unlock()
}

// Current returns the line at the display index.
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[r.idx]
}

// Index reports the current display index.
func (r *Rotator) Index() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idx
}

// Start begins advancing the index every interval until Stop is called or
// ctx is cancelled. Starting an already running rotator is a no-op.
func (r *Rotator) Start(ctx context.Context, interval time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil || len(r.lines) == 0 || interval <= 0 {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.ticker = time.NewTicker(interval)

	go func(t *time.Ticker) {
		defer t.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-t.C:
				r.advance()
			}
		}
	}(r.ticker)
}

// Stop freezes the index; the current line stays readable afterwards.
func (r *Rotator) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.ticker = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *Rotator) advance() {
	r.mu.Lock()
	if r.cancel == nil || len(r.lines) == 0 {
		r.mu.Unlock()
		return
	}
	r.idx = (r.idx + 1) % len(r.lines)
	line := r.lines[r.idx]
	fn := r.onTick
	r.mu.Unlock()
	if fn != nil {
		fn(line)
	}
}
