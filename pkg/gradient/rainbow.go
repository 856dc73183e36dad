package gradient

import "github.com/charmbracelet/x/ansi"

// hueStep is both the per-character hue offset and the per-frame hue
// advance of the rainbow effects.
const hueStep = 12

// Rainbow cycles every character through the hue wheel at a fixed
// saturation and lightness.
type Rainbow struct {
	// Saturation and Lightness are percentages (0-100).
	Saturation float64
	Lightness  float64
	Direction  Direction
}

// NewRainbow returns the bright rainbow.
func NewRainbow(dir Direction) Rainbow {
	return Rainbow{Saturation: 100, Lightness: 50, Direction: dir}
}

// NewDarkRainbow returns a darker, slightly desaturated rainbow.
func NewDarkRainbow(dir Direction) Rainbow {
	return Rainbow{Saturation: 90, Lightness: 35, Direction: dir}
}

func (e Rainbow) Frame(text string, frame int) string {
	return sweep(text, e.Direction, func(i int) ansi.Color {
		return hsl(float64(mod(frame+i*hueStep, 360)), e.Saturation, e.Lightness)
	})
}

func (e Rainbow) Advance(_ string, frame int) int {
	return mod(frame+hueStep, 360)
}
