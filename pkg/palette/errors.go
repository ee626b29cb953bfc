package palette

import "errors"

var (
	// ErrRetrieval indicates the artwork bytes could not be fetched.
	ErrRetrieval = errors.New("artwork retrieval failed")
	// ErrDecode indicates the fetched bytes could not be decoded as an image.
	ErrDecode = errors.New("artwork could not be decoded")
	// ErrPaletteExhausted indicates fewer than 4 colours could be produced
	// even after the digest fallback.
	ErrPaletteExhausted = errors.New("too few colours in artwork")
)
