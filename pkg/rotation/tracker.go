package rotation

import "github.com/wamphlett/spotify-pattern-controller/pkg/palette"

// Extractor supplies a palette for a source identifier.
type Extractor interface {
	Extract(sourceIdentifier string) (palette.Palette, error)
}

// Tracker advances the animation phase across successive observations of the
// same artwork. Re-extracting colours from unchanged artwork on every poll
// is wasted work and produces a static pattern; rotating the already known
// colours gives the appearance of motion at zero extraction cost.
//
// A Tracker is owned by a single polling loop and must not be shared between
// goroutines.
type Tracker struct {
	extractor Extractor

	previousID string
	base       palette.Palette
	phase      int
}

// New returns a Tracker with no prior artwork.
func New(extractor Extractor) *Tracker {
	return &Tracker{extractor: extractor}
}

// Observe feeds the identifier seen on this poll into the tracker and
// returns the rotated base palette along with whether there is anything to
// display. An empty identifier means nothing is playing: the tracker is left
// untouched and nothing is emitted. A changed identifier triggers a fresh
// extraction and resets the phase; a repeated identifier advances the phase
// without re-extracting. Extraction failures propagate unchanged and leave
// the tracker state as it was.
func (t *Tracker) Observe(sourceIdentifier string) (palette.Palette, bool, error) {
	if sourceIdentifier == "" {
		return nil, false, nil
	}

	if sourceIdentifier != t.previousID || t.base == nil {
		base, err := t.extractor.Extract(sourceIdentifier)
		if err != nil {
			return nil, false, err
		}
		t.base = base
		t.phase = 0
		t.previousID = sourceIdentifier
	} else {
		t.phase = (t.phase + 1) % palette.Size
	}

	return t.base.Rotate(t.phase), true, nil
}

// Phase returns the current animation phase.
func (t *Tracker) Phase() int {
	return t.phase
}

// Base returns the last extracted palette, or nil before the first
// successful extraction.
func (t *Tracker) Base() palette.Palette {
	return t.base
}

// ArtworkID returns the last observed source identifier.
func (t *Tracker) ArtworkID() string {
	return t.previousID
}
