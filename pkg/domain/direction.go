package domain

import (
	"fmt"
	"strings"
)

// Direction is the head movement applied after a write.
type Direction int

const (
	Left  Direction = -1
	None  Direction = 0
	Right Direction = 1
)

// ParseDirection converts a single-character token ("l", "r", "n", any case).
// Any other token is a construction error; there is no default direction.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(token) {
	case "l":
		return Left, nil
	case "r":
		return Right, nil
	case "n":
		return None, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
	}
}

// Offset is the head displacement for this direction.
func (d Direction) Offset() int {
	return int(d)
}

// Token returns the canonical upper-case token ("L", "N", "R").
func (d Direction) Token() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return "N"
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}
