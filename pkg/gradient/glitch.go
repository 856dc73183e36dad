package gradient

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const glitchAlphabet = `!@#$%^&*()_+-=[]{}|;:,.<>?/\~ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789`

const (
	// glitchSwapChance is the per-character chance of a random substitute.
	glitchSwapChance = 0.05
	// glitchGrayChance is the per-character chance of a gray flicker.
	glitchGrayChance = 0.1
	// glitchBlankEvery blanks the whole line once per this many frames.
	glitchBlankEvery = 17
	// glitchGrayEvery grays the whole line once per this many frames.
	glitchGrayEvery = 13
)

// Glitch corrupts the text with random substitutions, blank flickers and
// gray noise. Randomness is drawn from a source keyed by the seed and the
// frame, so a frame always renders the same way for the same seed.
type Glitch struct {
	Seed uint64
}

func (e Glitch) Frame(text string, frame int) string {
	rng := rand.New(rand.NewPCG(e.Seed, uint64(frame)))
	blank := frame%glitchBlankEvery == 0
	grayPhase := frame%glitchGrayEvery == 0

	var buf strings.Builder
	for _, r := range text {
		if r == ' ' || r == '\n' || r == '\r' {
			buf.WriteRune(r)
			continue
		}
		if rng.Float64() < glitchSwapChance {
			r = rune(glitchAlphabet[rng.IntN(len(glitchAlphabet))])
		} else if blank {
			buf.WriteByte(' ')
			continue
		}
		var c ansi.Color = ansi.White
		if grayPhase || rng.Float64() < glitchGrayChance {
			c = gray(uint8(100 + rng.IntN(155)))
		}
		buf.WriteString(paint(string(r), c))
	}
	return buf.String()
}

func (e Glitch) Advance(_ string, frame int) int {
	return frame + 1
}
