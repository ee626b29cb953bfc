package palette

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/soniakeys/quant/median"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/wamphlett/spotify-pattern-controller/config"
)

// whiteThreshold marks a colour as background noise when all three channels
// sit at or above it.
const whiteThreshold = 245

// Extractor turns a source identifier into a palette of the 4 dominant
// colours. URL identifiers are downloaded and processed as images; anything
// else is derived deterministically from a digest of the identifier itself.
type Extractor struct {
	client       *http.Client
	cacheDir     string
	maxDimension int
	quantizeSize int
}

// New returns a configured Extractor
func New(cfg *config.Extractor, opts ...Opt) *Extractor {
	e := &Extractor{
		client:       &http.Client{Timeout: cfg.FetchTimeout},
		cacheDir:     cfg.CacheDir,
		maxDimension: cfg.MaxDimension,
		quantizeSize: cfg.QuantizeColours,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract produces the top 4 colours for the given source identifier.
func (e *Extractor) Extract(sourceIdentifier string) (Palette, error) {
	if !isFetchable(sourceIdentifier) {
		return fromDigest([]byte(sourceIdentifier)), nil
	}

	file, err := e.download(sourceIdentifier)
	if err != nil {
		return nil, err
	}
	defer func() {
		// cleanup failures must never reach the caller
		if err := os.Remove(file); err != nil {
			log.WithError(err).WithField("file", file).Warn("failed to remove downloaded artwork")
		}
	}()

	return e.extractFromFile(file)
}

func isFetchable(sourceIdentifier string) bool {
	return strings.HasPrefix(sourceIdentifier, "http://") ||
		strings.HasPrefix(sourceIdentifier, "https://")
}

// download fetches the artwork into the cache directory and returns the path
// to the downloaded file. The caller owns the file and is responsible for
// removing it.
func (e *Extractor) download(url string) (string, error) {
	if err := os.MkdirAll(e.cacheDir, 0o755); err != nil {
		return "", errors.Wrap(ErrRetrieval, err.Error())
	}

	resp, err := e.client.Get(url)
	if err != nil {
		return "", errors.Wrap(ErrRetrieval, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Wrapf(ErrRetrieval, "unexpected status %d fetching %s", resp.StatusCode, url)
	}

	file, err := os.CreateTemp(e.cacheDir, "artwork-*"+extension(url))
	if err != nil {
		return "", errors.Wrap(ErrRetrieval, err.Error())
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		e.removePartial(file.Name())
		return "", errors.Wrap(ErrRetrieval, err.Error())
	}
	if err := file.Close(); err != nil {
		e.removePartial(file.Name())
		return "", errors.Wrap(ErrRetrieval, err.Error())
	}

	return file.Name(), nil
}

func (e *Extractor) removePartial(file string) {
	if err := os.Remove(file); err != nil {
		log.WithError(err).WithField("file", file).Warn("failed to remove partial download")
	}
}

func extension(url string) string {
	ext := path.Ext(url)
	if ext == "" || len(ext) > 6 || strings.ContainsAny(ext, "?&=") {
		return ".jpg"
	}
	return ext
}

func (e *Extractor) extractFromFile(file string) (Palette, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrap(ErrRetrieval, err.Error())
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}

	colours := e.dominantColours(e.downscale(compositeOnWhite(img)))

	// top up deterministically when the artwork itself does not yield 4
	// distinct usable colours
	if len(colours) < Size {
		for _, c := range fromDigest(content) {
			if len(colours) >= Size {
				break
			}
			if !colours.contains(c) {
				colours = append(colours, c)
			}
		}
	}

	if len(colours) < Size {
		return nil, errors.Wrapf(ErrPaletteExhausted, "found %d colours", len(colours))
	}

	return colours[:Size], nil
}

// compositeOnWhite flattens any transparency against a white background so
// alpha does not bias the dominant colours towards black.
func compositeOnWhite(img image.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// downscale resizes the image so its longest side fits within the configured
// maximum dimension, preserving aspect ratio. Purely a performance
// optimisation ahead of quantization.
func (e *Extractor) downscale(img *image.RGBA) *image.RGBA {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	longest := width
	if height > longest {
		longest = height
	}
	if longest <= e.maxDimension {
		return img
	}

	scale := float64(e.maxDimension) / float64(longest)
	scaledWidth := int(float64(width) * scale)
	if scaledWidth < 1 {
		scaledWidth = 1
	}
	scaledHeight := int(float64(height) * scale)
	if scaledHeight < 1 {
		scaledHeight = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, scaledWidth, scaledHeight))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return scaled
}

// dominantColours quantizes the image down to a small adaptive palette and
// returns up to 4 distinct colours ordered by pixel count, skipping anything
// near-white.
func (e *Extractor) dominantColours(img image.Image) Palette {
	quantized := median.Quantizer(e.quantizeSize).Paletted(img)

	counts := make(map[uint8]int)
	bounds := quantized.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			counts[quantized.ColorIndexAt(x, y)]++
		}
	}

	type entry struct {
		index uint8
		count int
	}
	entries := make([]entry, 0, len(counts))
	for index, count := range counts {
		entries = append(entries, entry{index, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].index < entries[j].index
	})

	colours := make(Palette, 0, Size)
	for _, entry := range entries {
		r, g, b, _ := quantized.Palette[entry.index].RGBA()
		r8, g8, b8 := byte(r>>8), byte(g>>8), byte(b>>8)
		if r8 >= whiteThreshold && g8 >= whiteThreshold && b8 >= whiteThreshold {
			continue
		}
		hex := rgbToHex(r8, g8, b8)
		if colours.contains(hex) {
			continue
		}
		colours = append(colours, hex)
		if len(colours) == Size {
			break
		}
	}
	return colours
}
