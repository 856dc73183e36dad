// Package demo runs several gradient effects side by side, each labeled with
// its name, packed into as many lines as the terminal width requires.
package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vito/clitl/pkg/config"
	"github.com/vito/clitl/pkg/gradient"
	"github.com/vito/clitl/pkg/pitui"
)

// Effect is one animation in the demo.
type Effect struct {
	Name     string
	Interval time.Duration
}

// Config configures a demo run.
type Config struct {
	// Effects are shown in order.
	Effects []Effect

	// Divider separates effects on the same line.
	Divider string

	// Options are applied to every effect.
	Options gradient.Options

	// DebugWriter, if set, receives per-frame render stats as JSONL.
	DebugWriter io.Writer
}

// DefaultConfig is the demo as configured by config.Default.
func DefaultConfig() Config {
	cfg, err := ConfigFrom(config.Default())
	if err != nil {
		panic(err)
	}
	return cfg
}

// ConfigFrom builds a demo config from the [example] section of a config
// file.
func ConfigFrom(c *config.Config) (Config, error) {
	dir, err := c.DirectionValue()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Divider: c.Example.Divider,
		Options: gradient.Options{Direction: dir},
	}
	for _, name := range c.Example.Effects {
		canonical, err := gradient.Canonical(name)
		if err != nil {
			return Config{}, err
		}
		cfg.Effects = append(cfg.Effects, Effect{
			Name:     canonical,
			Interval: c.Interval(canonical),
		})
	}
	return cfg, nil
}

// Demo is a running demo.
type Demo struct {
	term    pitui.Terminal
	region  *pitui.Region
	loop    *gradient.Loop
	divider string

	mu      sync.Mutex // protects labels, frames and stopped
	labels  []string
	frames  []string
	stopped bool

	anims    []*gradient.Animation
	done     chan struct{}
	stopOnce sync.Once
}

// Run starts every configured effect animating text on term. The combined
// view is drawn right away, before any effect has produced a frame, and
// again whenever any effect advances.
//
// If loop is non-nil, every frame callback runs on it. The demo stops when
// ctx is done or Stop is called.
func Run(ctx context.Context, text string, cfg Config, term pitui.Terminal, loop *gradient.Loop) (*Demo, error) {
	effects := make([]gradient.Effect, len(cfg.Effects))
	for i, e := range cfg.Effects {
		effect, err := gradient.Lookup(e.Name, cfg.Options)
		if err != nil {
			return nil, err
		}
		if e.Interval <= 0 {
			return nil, fmt.Errorf("%s: %w: got %s", e.Name, gradient.ErrInvalidInterval, e.Interval)
		}
		effects[i] = effect
	}

	d := &Demo{
		term:    term,
		region:  pitui.NewRegion(term),
		loop:    loop,
		divider: cfg.Divider,
		labels:  make([]string, len(cfg.Effects)),
		frames:  make([]string, len(cfg.Effects)),
		done:    make(chan struct{}),
	}
	if cfg.DebugWriter != nil {
		d.region.SetDebugWriter(cfg.DebugWriter)
	}
	for i, e := range cfg.Effects {
		d.labels[i] = gradient.Title(e.Name)
	}

	if err := term.Start(d.resized); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}
	term.HideCursor()

	d.mu.Lock()
	d.renderLocked()
	d.mu.Unlock()

	for i, e := range cfg.Effects {
		anim, err := gradient.Animate(effects[i], text, e.Interval, gradient.AnimationOptions{
			Options: cfg.Options,
			OnFrame: func(frame string) { d.update(i, frame) },
			Loop:    loop,
		})
		if err != nil {
			d.Stop()
			return nil, fmt.Errorf("start %s: %w", e.Name, err)
		}
		d.anims = append(d.anims, anim)
	}

	slog.Debug("demo started", "effects", len(cfg.Effects), "tty", term.IsTTY(), "columns", term.Columns())

	go func() {
		select {
		case <-ctx.Done():
			d.Stop()
		case <-d.done:
		}
	}()

	return d, nil
}

func (d *Demo) update(i int, frame string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.frames[i] = frame
	d.renderLocked()
}

// resized re-packs the current frames for the new width.
func (d *Demo) resized() {
	redraw := func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if !d.stopped {
			d.renderLocked()
		}
	}
	if d.loop != nil {
		d.loop.Dispatch(redraw)
		return
	}
	redraw()
}

func (d *Demo) parts() []string {
	parts := make([]string, len(d.labels))
	for i, label := range d.labels {
		parts[i] = label + ": " + d.frames[i]
	}
	return parts
}

func (d *Demo) renderLocked() {
	parts := d.parts()
	if !d.term.IsTTY() {
		d.term.WriteString("\r" + strings.Join(parts, d.divider))
		return
	}
	d.region.Rewrite(pitui.Pack(parts, d.term.Columns(), d.divider))
}

// Stop stops every animation and leaves the cursor below the demo output.
// It is safe to call more than once.
func (d *Demo) Stop() {
	d.stopOnce.Do(func() {
		for _, anim := range d.anims {
			anim.Stop()
		}

		d.mu.Lock()
		d.stopped = true
		if d.term.IsTTY() {
			d.region.Finish()
		} else {
			d.term.WriteString("\n")
		}
		d.mu.Unlock()

		d.term.ShowCursor()
		d.term.Stop()
		close(d.done)
	})
}

// Done is closed once the demo has stopped.
func (d *Demo) Done() <-chan struct{} {
	return d.done
}

// Frames returns the total number of frames rendered by all effects.
func (d *Demo) Frames() int {
	var n int
	for _, anim := range d.anims {
		n += anim.Frames()
	}
	return n
}
