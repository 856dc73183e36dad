// Package gradient renders animated color effects over a line of text.
//
// An Effect is a pure function of (text, frame counter) to an ANSI-colored
// string. Animations drive an Effect with a fixed-interval ticker and hand
// every frame to a callback or to stdout.
package gradient

// Effect renders one frame of a color animation.
type Effect interface {
	// Frame renders text at the given frame counter. It must not depend on
	// anything besides its arguments and the effect's configuration.
	Frame(text string, frame int) string

	// Advance returns the counter for the frame after frame. Cyclic effects
	// wrap the counter to stay within their cycle, which may depend on the
	// length of text.
	Advance(text string, frame int) int
}

// Options configures an effect built by Lookup.
type Options struct {
	// Direction reverses the sweep when set to Right. Effects without a
	// positional sweep ignore it.
	Direction Direction

	// Seed keys the pseudo-random source of effects that jitter their
	// output. The same seed always produces the same frames.
	Seed uint64
}
