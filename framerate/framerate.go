// Package framerate implements the FramerateLimiter: a drift-corrected,
// single-threaded cooperative scheduler that emits render ticks at a
// target FPS, coalescing dirty writes between ticks and tracking render
// time and cadence.
package framerate

import (
	"sync"
	"sync/atomic"
	"time"
)

// FPS is one of the three supported target frame rates.
type FPS int

const (
	FPS30  FPS = 30
	FPS60  FPS = 60
	FPS120 FPS = 120
)

// maxSamples bounds the rolling render-time and timestamp windows.
const maxSamples = 60

// Stats is a snapshot of the limiter's running counters.
type Stats struct {
	RenderedFrames int64
	SkippedFrames  int64
	TotalFrames    int64
	SlowFrames     int64
	ActualFPS      float64
	AvgRenderTime  time.Duration
}

// Limiter schedules render ticks at a target FPS, correcting scheduling
// drift so the long-run average cadence stays on target even after a
// slow frame. Grounded on a deadline-based reschedule loop: each tick
// computes how far the actual elapsed time missed the target interval
// and shortens or lengthens the next wait accordingly.
type Limiter struct {
	interval atomic.Int64 // nanoseconds
	dirty    atomic.Bool
	paused   atomic.Bool

	render func()

	mu             sync.Mutex
	lastTick       time.Time
	renderSamples  []time.Duration
	tickTimestamps []time.Time
	rendered       int64
	skipped        int64
	slow           int64

	stop chan struct{}
	once sync.Once
}

// NewLimiter returns a Limiter at the given FPS invoking render on each
// non-skipped tick. The scheduling loop is started by Start.
func NewLimiter(fps FPS, render func()) *Limiter {
	l := &Limiter{render: render, stop: make(chan struct{})}
	l.interval.Store(int64(time.Second) / int64(fps))
	l.lastTick = time.Now()
	return l
}

// Start begins the cooperative scheduling loop in its own goroutine.
// The loop runs until Stop is called.
func (l *Limiter) Start() {
	go l.loop()
}

// Stop cancels the outstanding timer and releases the scheduling
// goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) loop() {
	next := time.Duration(l.interval.Load())
	timer := time.NewTimer(next)
	defer timer.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-timer.C:
			if l.paused.Load() {
				timer.Reset(time.Duration(l.interval.Load()))
				continue
			}
			elapsed := l.tick()
			drift := elapsed - time.Duration(l.interval.Load())
			wait := time.Duration(l.interval.Load()) - drift
			if wait < 0 {
				wait = 0
			}
			timer.Reset(wait)
		}
	}
}

// tick runs one scheduling step and returns the elapsed wall time since
// the previous tick.
func (l *Limiter) tick() time.Duration {
	now := time.Now()
	elapsed := now.Sub(l.lastTick)
	l.lastTick = now

	if l.dirty.CompareAndSwap(true, false) {
		start := time.Now()
		l.render()
		renderTime := time.Since(start)

		l.mu.Lock()
		l.rendered++
		l.renderSamples = appendBounded(l.renderSamples, renderTime, maxSamples)
		if renderTime > time.Duration(l.interval.Load()) {
			l.slow++
		}
		l.tickTimestamps = appendBoundedTime(l.tickTimestamps, now, maxSamples)
		l.mu.Unlock()
	} else {
		l.mu.Lock()
		l.skipped++
		l.tickTimestamps = appendBoundedTime(l.tickTimestamps, now, maxSamples)
		l.mu.Unlock()
	}
	return elapsed
}

func appendBounded(s []time.Duration, v time.Duration, max int) []time.Duration {
	s = append(s, v)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

func appendBoundedTime(s []time.Time, v time.Time, max int) []time.Time {
	s = append(s, v)
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}

// MarkDirty sets the dirty flag. Any goroutine may call this.
func (l *Limiter) MarkDirty() { l.dirty.Store(true) }

// ClearDirty clears the dirty flag. Any goroutine may call this.
func (l *Limiter) ClearDirty() { l.dirty.Store(false) }

// Dirty reports the dirty flag's current value.
func (l *Limiter) Dirty() bool { return l.dirty.Load() }

// RenderImmediate runs the render callback now, bypassing pacing.
func (l *Limiter) RenderImmediate() {
	l.dirty.Store(true)
	l.tick()
}

// Pause cancels the effect of the outstanding timer: ticks still fire
// but are no-ops until Resume.
func (l *Limiter) Pause() { l.paused.Store(true) }

// Resume re-arms ticking and resets lastTick so drift correction
// doesn't attribute the paused duration as a slow frame.
func (l *Limiter) Resume() {
	l.mu.Lock()
	l.lastTick = time.Now()
	l.mu.Unlock()
	l.paused.Store(false)
}

// SetFPS recomputes the tick interval.
func (l *Limiter) SetFPS(fps FPS) {
	l.interval.Store(int64(time.Second) / int64(fps))
}

// StatsSnapshot returns the limiter's current counters, including
// actual FPS computed from the rolling timestamp window and average
// render time from the rolling render-time window.
func (l *Limiter) StatsSnapshot() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var avg time.Duration
	if len(l.renderSamples) > 0 {
		var sum time.Duration
		for _, d := range l.renderSamples {
			sum += d
		}
		avg = sum / time.Duration(len(l.renderSamples))
	}

	var actualFPS float64
	if len(l.tickTimestamps) > 1 {
		span := l.tickTimestamps[len(l.tickTimestamps)-1].Sub(l.tickTimestamps[0])
		if span > 0 {
			actualFPS = float64(len(l.tickTimestamps)-1) / span.Seconds()
		}
	}

	return Stats{
		RenderedFrames: l.rendered,
		SkippedFrames:  l.skipped,
		TotalFrames:    l.rendered + l.skipped,
		SlowFrames:     l.slow,
		ActualFPS:      actualFPS,
		AvgRenderTime:  avg,
	}
}
