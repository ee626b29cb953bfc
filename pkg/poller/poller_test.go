package poller

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/wamphlett/spotify-pattern-controller/config"
	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
	"github.com/wamphlett/spotify-pattern-controller/pkg/rotation"
)

type stubPlayback struct {
	artwork string
	err     error
}

func (s *stubPlayback) CurrentArtworkURL(ctx context.Context) (string, error) {
	return s.artwork, s.err
}

type stubExtractor struct {
	calls int
}

func (s *stubExtractor) Extract(sourceIdentifier string) (palette.Palette, error) {
	s.calls++
	return palette.Palette{"#AA0000", "#00BB00", "#0000CC", "#DD00DD"}, nil
}

type memoryDriver struct {
	sent [][]palette.ColourHex
}

func (d *memoryDriver) Connect() error { return nil }

func (d *memoryDriver) Send(colours []palette.ColourHex) error {
	d.sent = append(d.sent, colours)
	return nil
}

func (d *memoryDriver) Close() error { return nil }

func testPollerConfig(t *testing.T) *config.Poller {
	t.Helper()
	return &config.Poller{
		Interval:      time.Second,
		PatternLength: 16,
		PatternMode:   "repeat",
		SnapshotFile:  filepath.Join(t.TempDir(), "current_palette.json"),
	}
}

func TestPollEmitsRotatedPatterns(t *testing.T) {
	playback := &stubPlayback{artwork: "https://example.com/artwork.jpg"}
	extractor := &stubExtractor{}
	driver := &memoryDriver{}

	p, err := New(testPollerConfig(t), playback, rotation.New(extractor), WithDriver(driver))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		p.poll()
	}

	require.Len(t, driver.sent, 5)
	require.Equal(t, 1, extractor.calls)

	// first poll: phase 0, pattern starts on the base palette
	require.Len(t, driver.sent[0], 16)
	require.Equal(t, palette.ColourHex("#AA0000"), driver.sent[0][0])
	// second poll: same artwork, base rotated one position
	require.Equal(t, palette.ColourHex("#00BB00"), driver.sent[1][0])
	// fifth poll: phase wrapped back to 0
	require.Equal(t, driver.sent[0], driver.sent[4])
}

func TestPollWritesSnapshot(t *testing.T) {
	cfg := testPollerConfig(t)
	playback := &stubPlayback{artwork: "https://example.com/artwork.jpg"}
	driver := &memoryDriver{}

	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	p, err := New(cfg, playback, rotation.New(&stubExtractor{}),
		WithDriver(driver), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	p.poll()
	p.poll()

	content, err := os.ReadFile(cfg.SnapshotFile)
	require.NoError(t, err)

	var snapshot Snapshot
	require.NoError(t, json.Unmarshal(content, &snapshot))
	require.Equal(t, "2024-05-01 12:30:00", snapshot.Timestamp)
	require.NotNil(t, snapshot.Artwork)
	require.Equal(t, "https://example.com/artwork.jpg", *snapshot.Artwork)
	require.Equal(t, 1, snapshot.Phase)
	require.Equal(t, []string{"#00BB00", "#0000CC", "#DD00DD", "#AA0000"}, snapshot.Base)
	require.Len(t, snapshot.Pattern, 16)
	require.Equal(t, "#00BB00", snapshot.Pattern[0])
}

func TestPollNothingPlaying(t *testing.T) {
	cfg := testPollerConfig(t)
	playback := &stubPlayback{artwork: ""}
	driver := &memoryDriver{}

	p, err := New(cfg, playback, rotation.New(&stubExtractor{}), WithDriver(driver))
	require.NoError(t, err)

	p.poll()

	require.Empty(t, driver.sent)
	_, err = os.Stat(cfg.SnapshotFile)
	require.True(t, os.IsNotExist(err))
}

func TestPollPlaybackFailure(t *testing.T) {
	playback := &stubPlayback{err: errors.New("boom")}
	driver := &memoryDriver{}

	p, err := New(testPollerConfig(t), playback, rotation.New(&stubExtractor{}), WithDriver(driver))
	require.NoError(t, err)

	p.poll()
	require.Empty(t, driver.sent)
}

func TestNewRejectsUnknownMode(t *testing.T) {
	cfg := testPollerConfig(t)
	cfg.PatternMode = "bogus"

	_, err := New(cfg, &stubPlayback{}, rotation.New(&stubExtractor{}))
	require.Error(t, err)
}

func TestStartHonoursMaxLoops(t *testing.T) {
	cfg := testPollerConfig(t)
	cfg.Interval = time.Millisecond * 10
	cfg.MaxLoops = 3

	playback := &stubPlayback{artwork: "https://example.com/artwork.jpg"}
	driver := &memoryDriver{}

	p, err := New(cfg, playback, rotation.New(&stubExtractor{}), WithDriver(driver))
	require.NoError(t, err)

	p.Start()
	select {
	case <-p.Done():
	case <-time.After(time.Second * 5):
		t.Fatal("poller did not stop after max loops")
	}
	p.Shutdown()

	require.Len(t, driver.sent, 3)
}
