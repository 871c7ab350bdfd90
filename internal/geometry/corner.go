package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCorner is returned when a corner string cannot be parsed.
var ErrInvalidCorner = errors.New("invalid corner")

// Alignment is one side of an axis.
type Alignment int

const (
	Start Alignment = iota
	End
)

func (a Alignment) String() string {
	if a == End {
		return "END"
	}
	return "START"
}

// Corner pairs a block (vertical) and an inline (horizontal) alignment.
type Corner struct {
	Block  Alignment
	Inline Alignment
}

var (
	StartStart = Corner{Block: Start, Inline: Start}
	StartEnd   = Corner{Block: Start, Inline: End}
	EndStart   = Corner{Block: End, Inline: Start}
	EndEnd     = Corner{Block: End, Inline: End}
)

// String serialises the corner as BLOCK_INLINE, e.g. START_END.
func (c Corner) String() string {
	return c.Block.String() + "_" + c.Inline.String()
}

// ParseCorner accepts BLOCK_INLINE in any case, surrounded by whitespace.
func ParseCorner(s string) (Corner, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	block, inline, ok := strings.Cut(norm, "_")
	if !ok {
		return Corner{}, fmt.Errorf("%w: %q", ErrInvalidCorner, s)
	}
	b, err := parseAlignment(block)
	if err != nil {
		return Corner{}, fmt.Errorf("%w: %q", ErrInvalidCorner, s)
	}
	i, err := parseAlignment(inline)
	if err != nil {
		return Corner{}, fmt.Errorf("%w: %q", ErrInvalidCorner, s)
	}
	return Corner{Block: b, Inline: i}, nil
}

func parseAlignment(s string) (Alignment, error) {
	switch s {
	case "START":
		return Start, nil
	case "END":
		return End, nil
	default:
		return Start, ErrInvalidCorner
	}
}

// Direction is the inline writing direction.
type Direction int

const (
	LTR Direction = iota
	RTL
)

func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}
