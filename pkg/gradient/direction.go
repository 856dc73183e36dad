package gradient

import (
	"fmt"
	"strings"
)

// Direction controls which way a color sweep travels across the text.
type Direction int

const (
	// Left sweeps colors toward the start of the text. This is the default.
	Left Direction = iota
	// Right sweeps colors toward the end of the text.
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// ParseDirection parses "left" or "right", case-insensitively. An empty
// string yields Left.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Left, fmt.Errorf("invalid direction %q: expected \"left\" or \"right\"", s)
	}
}

// index maps a rune position to the position used for color lookup.
func (d Direction) index(i, n int) int {
	if d == Right {
		return n - 1 - i
	}
	return i
}
