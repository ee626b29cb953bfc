package pattern

import (
	"github.com/pkg/errors"

	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
)

// Mode selects how a base palette is expanded into a sequence.
type Mode string

const (
	// ModeRepeat cycles the base colours in order: ABCDABCD...
	ModeRepeat Mode = "repeat"
	// ModeMirror bounces the base colours: ABCDDCBA...
	ModeMirror Mode = "mirror"
	// ModeRotate selects elements exactly like ModeRepeat; the animated
	// rotation comes from the tracker pre-rotating the base palette between
	// polls, not from this mode. Callers rely on the equivalence.
	ModeRotate Mode = "rotate"
)

// ErrInvalidInput indicates a malformed palette, length or mode.
var ErrInvalidInput = errors.New("invalid pattern input")

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRepeat, ModeMirror, ModeRotate:
		return Mode(s), nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "unknown mode: %s", s)
}

// Generate expands a 4 colour palette into a sequence of exactly length
// colours using the given mode. The output is fully determined by its
// inputs.
func Generate(p palette.Palette, length int, mode Mode) ([]palette.ColourHex, error) {
	if len(p) != palette.Size {
		return nil, errors.Wrapf(ErrInvalidInput, "palette must hold exactly %d colours, got %d", palette.Size, len(p))
	}
	if length < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "length must not be negative, got %d", length)
	}

	var cycle []palette.ColourHex
	switch mode {
	case ModeRepeat, ModeRotate:
		cycle = p
	case ModeMirror:
		cycle = make([]palette.ColourHex, 0, len(p)*2)
		cycle = append(cycle, p...)
		for i := len(p) - 1; i >= 0; i-- {
			cycle = append(cycle, p[i])
		}
	default:
		return nil, errors.Wrapf(ErrInvalidInput, "unknown mode: %s", mode)
	}

	sequence := make([]palette.ColourHex, length)
	for i := range sequence {
		sequence[i] = cycle[i%len(cycle)]
	}
	return sequence, nil
}
