package gradient

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ErrInvalidInterval is returned when an animation is started with a
// non-positive frame interval.
var ErrInvalidInterval = errors.New("frame interval must be positive")

// ErrLoopClosed is returned when an animation is started on a closed Loop.
var ErrLoopClosed = errors.New("loop is closed")

// AnimationOptions configures an Animation.
type AnimationOptions struct {
	// Options are passed to Lookup when starting by name.
	Options

	// OnFrame receives every rendered frame. When nil, frames are written to
	// Output prefixed with a carriage return so each one overwrites the last.
	OnFrame func(frame string)

	// OnStop is called once when the animation is stopped.
	OnStop func()

	// Output is the default frame destination. Defaults to os.Stdout.
	Output io.Writer

	// Loop, if set, runs every frame callback on the loop's goroutine.
	Loop *Loop
}

// Animation drives an Effect with a fixed-interval ticker.
type Animation struct {
	effect   Effect
	text     string
	interval time.Duration
	opts     AnimationOptions

	// frame is only touched by render, which never runs concurrently with
	// itself.
	frame int

	frames   atomic.Int64
	stopped  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// Start looks up the named effect and animates text with it.
func Start(name, text string, interval time.Duration, opts AnimationOptions) (*Animation, error) {
	effect, err := Lookup(name, opts.Options)
	if err != nil {
		return nil, err
	}
	return Animate(effect, text, interval, opts)
}

// Animate renders the first frame right away and then one frame per
// interval until Stop is called.
func Animate(effect Effect, text string, interval time.Duration, opts AnimationOptions) (*Animation, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	a := &Animation{
		effect:   effect,
		text:     text,
		interval: interval,
		opts:     opts,
		done:     make(chan struct{}),
	}
	if opts.Loop != nil {
		if !opts.Loop.dispatch(a.render, a.done) {
			return nil, ErrLoopClosed
		}
	} else {
		a.render()
	}
	go a.run()
	return a, nil
}

func (a *Animation) run() {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if a.opts.Loop == nil {
				a.render()
			} else if !a.opts.Loop.dispatch(a.render, a.done) {
				return
			}
		case <-a.done:
			return
		}
	}
}

func (a *Animation) render() {
	if a.stopped.Load() {
		return
	}
	colored := a.effect.Frame(a.text, a.frame)
	a.frame = a.effect.Advance(a.text, a.frame)
	a.frames.Add(1)

	if a.opts.OnFrame != nil {
		a.opts.OnFrame(colored)
		return
	}
	out := a.opts.Output
	if out == nil {
		out = os.Stdout
	}
	_, _ = io.WriteString(out, "\r"+colored)
}

// Stop ends the animation. It is safe to call more than once and from
// within OnFrame.
func (a *Animation) Stop() {
	a.stopOnce.Do(func() {
		a.stopped.Store(true)
		close(a.done)
		if a.opts.OnStop != nil {
			a.opts.OnStop()
		}
	})
}

// Done is closed once the animation is stopped.
func (a *Animation) Done() <-chan struct{} {
	return a.done
}

// Frames returns how many frames have been delivered.
func (a *Animation) Frames() int {
	return int(a.frames.Load())
}

// Interval returns the time between frames.
func (a *Animation) Interval() time.Duration {
	return a.interval
}
