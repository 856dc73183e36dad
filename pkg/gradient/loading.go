package gradient

import (
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

var (
	loadingBase      = gray(50)
	loadingHighlight = []ansi.Color{gray(255), gray(220), gray(190), gray(220)}
)

// Loading dims the text and runs a short bright pulse across it. The pulse
// leaves the text entirely before wrapping around, so the cycle is the
// text length plus the pulse width.
type Loading struct {
	Direction Direction
}

func (e Loading) cycle(text string) int {
	return utf8.RuneCountInString(text) + len(loadingHighlight)
}

func (e Loading) Frame(text string, frame int) string {
	cycle := e.cycle(text)
	return sweep(text, e.Direction, func(i int) ansi.Color {
		offset := mod(frame+i, cycle)
		if offset < len(loadingHighlight) {
			return loadingHighlight[offset]
		}
		return loadingBase
	})
}

func (e Loading) Advance(text string, frame int) int {
	return mod(frame+1, e.cycle(text))
}
