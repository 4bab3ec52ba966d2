package viewport

import (
	"log/slog"
	"sync"
	"time"
)

// Coalescer debounces bursts of state reports, such as a window being dragged
// to a new size, and applies only the last one once the window has been quiet.
type Coalescer struct {
	mu      sync.Mutex
	shell   *Shell
	window  time.Duration
	timer   *time.Timer
	pending *State
	stopped bool
	logger  *slog.Logger
}

// NewCoalescer creates a coalescer in front of shell. A zero window applies
// every submission immediately.
func NewCoalescer(shell *Shell, window time.Duration) *Coalescer {
	return &Coalescer{shell: shell, window: window, logger: shell.logger}
}

// Submit records st as the latest state and (re)starts the quiet window.
func (c *Coalescer) Submit(st State) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if c.window <= 0 {
		c.mu.Unlock()
		c.apply(st)
		return
	}
	c.pending = &st
	if c.timer == nil {
		c.timer = time.AfterFunc(c.window, func() { c.Flush() })
	} else {
		c.timer.Reset(c.window)
	}
	c.mu.Unlock()
}

// Flush applies the pending state now, if there is one.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	st := c.pending
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()

	if st != nil {
		c.apply(*st)
	}
}

// Pending reports whether a state is waiting for its quiet window.
func (c *Coalescer) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

// Stop discards any pending state. Later submissions are ignored.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
	}
}

func (c *Coalescer) apply(st State) {
	if _, err := c.shell.Apply(st); err != nil {
		c.logger.Error("applying viewport state", "error", err, "density", st.Density)
	}
}
