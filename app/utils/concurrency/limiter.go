package concurrency

import "context"

// Limiter bounds how many functions execute at once. Callers beyond the
// configured width block until a running task finishes; blocked callers are
// released in arrival order. One task failing never affects the others.
type Limiter struct {
	slots chan struct{}
}

// NewLimiter creates a limiter allowing at most width concurrent tasks.
func NewLimiter(width int) *Limiter {
	if width < 1 {
		width = 1
	}
	return &Limiter{slots: make(chan struct{}, width)}
}

// Run executes fn once a slot is free. It returns fn's error, or the context
// error if ctx is cancelled while waiting for a slot.
func (l *Limiter) Run(ctx context.Context, fn func() error) error {
	select {
	case l.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.slots }()
	return fn()
}

// Width returns the configured concurrency width.
func (l *Limiter) Width() int {
	return cap(l.slots)
}
