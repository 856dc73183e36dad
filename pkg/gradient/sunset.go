package gradient

import "github.com/charmbracelet/x/ansi"

// sunsetWave is how many adjacent characters share a palette color.
const sunsetWave = 2

var sunsetPalette = []ansi.Color{
	hsl(18, 95, 55),
	hsl(30, 90, 50),
	hsl(345, 80, 60),
	hsl(285, 75, 55),
	hsl(260, 70, 50),
}

// Sunset walks a warm orange-to-violet palette across the text in bands of
// sunsetWave characters.
type Sunset struct {
	Direction Direction
}

func (e Sunset) steps() int {
	return len(sunsetPalette) * sunsetWave
}

func (e Sunset) Frame(text string, frame int) string {
	steps := e.steps()
	return sweep(text, e.Direction, func(i int) ansi.Color {
		return sunsetPalette[mod(frame+i, steps)/sunsetWave]
	})
}

func (e Sunset) Advance(_ string, frame int) int {
	return mod(frame+1, e.steps())
}
