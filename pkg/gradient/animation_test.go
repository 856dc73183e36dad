package gradient

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartEmitsFramesAndStops(t *testing.T) {
	frames := make(chan string, 100)
	anim, err := Start("rainbow", "Test", 5*time.Millisecond, AnimationOptions{
		OnFrame: func(frame string) { frames <- frame },
	})
	require.NoError(t, err)
	defer anim.Stop()

	// The first frame is rendered before Start returns.
	require.NotEmpty(t, frames)
	assert.Equal(t, NewRainbow(Left).Frame("Test", 0), <-frames)

	for i := 1; i < 3; i++ {
		select {
		case frame := <-frames:
			assert.Equal(t, NewRainbow(Left).Frame("Test", i*hueStep), frame)
		case <-time.After(time.Second):
			t.Fatal("animation did not emit enough frames in time")
		}
	}

	anim.Stop()
	// Let a frame that was already rendering finish.
	time.Sleep(10 * time.Millisecond)
	stoppedAt := anim.Frames()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stoppedAt, anim.Frames())
	assert.GreaterOrEqual(t, stoppedAt, 3)
}

func TestStartUnknownEffect(t *testing.T) {
	_, err := Start("unknown-effect", "Test", time.Millisecond, AnimationOptions{})
	assert.ErrorIs(t, err, ErrUnknownEffect)
}

func TestAnimateRejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		_, err := Animate(NewRainbow(Left), "x", interval, AnimationOptions{})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	var stops atomic.Int32
	anim, err := Start("sunset", "x", time.Hour, AnimationOptions{
		OnFrame: func(string) {},
		OnStop:  func() { stops.Add(1) },
	})
	require.NoError(t, err)

	anim.Stop()
	anim.Stop()
	assert.Equal(t, int32(1), stops.Load())

	select {
	case <-anim.Done():
	default:
		t.Fatal("Done was not closed")
	}
}

func TestStopFromOnFrame(t *testing.T) {
	stopped := make(chan struct{})
	started := make(chan *Animation, 1)
	var count atomic.Int32
	anim, err := Start("loading", "Test", 2*time.Millisecond, AnimationOptions{
		OnFrame: func(string) {
			if count.Add(1) == 3 {
				(<-started).Stop()
			}
		},
		OnStop: func() { close(stopped) },
	})
	require.NoError(t, err)
	started <- anim

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("animation did not stop itself")
	}
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(3), count.Load())
}

func TestDefaultWriter(t *testing.T) {
	var out syncBuffer
	anim, err := Start("darkrainbow", "Hi", time.Hour, AnimationOptions{Output: &out})
	require.NoError(t, err)
	anim.Stop()

	assert.Equal(t, "\r"+NewDarkRainbow(Left).Frame("Hi", 0), out.String())
}

func TestAnimationsShareLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := NewLoop()
	go loop.Run(ctx) //nolint:errcheck

	var (
		running atomic.Int32
		overlap atomic.Bool
		total   atomic.Int32
	)
	onFrame := func(string) {
		if running.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(100 * time.Microsecond)
		running.Add(-1)
		total.Add(1)
	}

	var anims []*Animation
	for _, name := range Names() {
		anim, err := Start(name, "shared", time.Millisecond, AnimationOptions{
			OnFrame: onFrame,
			Loop:    loop,
		})
		require.NoError(t, err)
		anims = append(anims, anim)
	}

	require.Eventually(t, func() bool { return total.Load() >= 50 }, 2*time.Second, time.Millisecond)
	for _, anim := range anims {
		anim.Stop()
	}
	assert.False(t, overlap.Load(), "frame callbacks overlapped")
}

func TestAnimateOnClosedLoop(t *testing.T) {
	loop := NewLoop()
	loop.Close()
	_, err := Start("rainbow", "x", time.Millisecond, AnimationOptions{Loop: loop})
	assert.ErrorIs(t, err, ErrLoopClosed)
}
