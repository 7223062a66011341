package hours

import (
	"context"
	"sync"
	"time"

	"github.com/appetiteclub/apt"

	"github.com/ulmind-com/spice-heaven/pkg"
)

const defaultCheckInterval = time.Minute

// Watcher re-evaluates the window on a fixed interval and caches the latest
// status so request handlers read a current answer without recomputing.
// Poke forces an immediate re-check, bounding staleness after the process
// or client was suspended.
type Watcher struct {
	window   Window
	clock    pkg.Clock
	logger   apt.Logger
	interval time.Duration

	mu      sync.RWMutex
	current Status

	poke chan struct{}
	stop chan struct{}
	once sync.Once
}

func NewWatcher(window Window, clock pkg.Clock, logger apt.Logger) *Watcher {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if clock == nil {
		clock = pkg.NewSystemClock()
	}
	w := &Watcher{
		window:   window,
		clock:    clock,
		logger:   logger,
		interval: defaultCheckInterval,
		poke:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	w.current = Evaluate(clock.Now(), window)
	return w
}

// Current returns the most recently evaluated status.
func (w *Watcher) Current() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Refresh re-evaluates synchronously and returns the fresh status. Used on
// the request path where a stale cached answer could wrongly gate an order.
func (w *Watcher) Refresh() Status {
	w.check()
	return w.Current()
}

// Poke requests an asynchronous re-evaluation. Safe to call from any
// goroutine; coalesces if a re-check is already pending.
func (w *Watcher) Poke() {
	select {
	case w.poke <- struct{}{}:
	default:
	}
}

// Start begins the polling loop.
func (w *Watcher) Start(ctx context.Context) error {
	w.check()
	go w.run(ctx)
	w.logger.Info("Hours watcher started", "opening_hours", w.window.OpeningHours())
	return nil
}

// Stop terminates the polling loop.
func (w *Watcher) Stop(ctx context.Context) error {
	w.once.Do(func() { close(w.stop) })
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			w.check()
		case <-w.poke:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	status := Evaluate(w.clock.Now(), w.window)

	w.mu.Lock()
	changed := status.Open != w.current.Open
	w.current = status
	w.mu.Unlock()

	if changed {
		w.logger.Info("Restaurant open state changed", "open", status.Open)
	}
}
