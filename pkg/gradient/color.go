package gradient

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

// hsl converts a hue in degrees and saturation/lightness percentages into a
// 24-bit terminal color.
func hsl(h, s, l float64) ansi.Color {
	r, g, b := colorful.Hsl(h, s/100, l/100).Clamped().RGB255()
	return ansi.RGBColor{R: r, G: g, B: b}
}

func gray(v uint8) ansi.Color {
	return ansi.RGBColor{R: v, G: v, B: v}
}

// paint wraps s in a foreground color and a trailing reset.
func paint(s string, c ansi.Color) string {
	return ansi.Style{}.ForegroundColor(c).Styled(s)
}

// sweep paints every rune of text with the color picked for its index.
// Spaces are written as-is but still occupy an index, so the palette stays
// aligned with character positions.
func sweep(text string, dir Direction, pick func(i int) ansi.Color) string {
	runes := []rune(text)
	var buf strings.Builder
	buf.Grow(len(text) * 20)
	for i, r := range runes {
		if r == ' ' {
			buf.WriteByte(' ')
			continue
		}
		buf.WriteString(paint(string(r), pick(dir.index(i, len(runes)))))
	}
	return buf.String()
}

// mod is a modulo that never returns a negative value.
func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
