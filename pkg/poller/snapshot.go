package poller

import (
	"encoding/json"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
)

// Snapshot is the persisted record of the most recent poll.
type Snapshot struct {
	Timestamp string   `json:"timestamp"`
	Artwork   *string  `json:"artwork"`
	Base      []string `json:"base"`
	Phase     int      `json:"phase"`
	Pattern   []string `json:"pattern"`
}

// writeSnapshot persists the current palette and pattern. A failed write
// must never break the polling cadence.
func (p *Poller) writeSnapshot(artwork string, base palette.Palette, sequence []palette.ColourHex) {
	if p.snapshotFile == "" {
		return
	}

	snapshot := Snapshot{
		Timestamp: p.now().Format("2006-01-02 15:04:05"),
		Base:      base.Strings(),
		Phase:     p.tracker.Phase(),
		Pattern:   palette.Palette(sequence).Strings(),
	}
	if artwork != "" {
		snapshot.Artwork = &artwork
	}

	content, err := json.Marshal(snapshot)
	if err != nil {
		log.WithError(err).Warn("failed to marshal snapshot")
		return
	}

	if err := os.MkdirAll(filepath.Dir(p.snapshotFile), 0o755); err != nil {
		log.WithError(err).Warn("failed to create snapshot directory")
		return
	}
	if err := os.WriteFile(p.snapshotFile, content, 0o644); err != nil {
		log.WithError(err).Warn("failed to write snapshot")
	}
}
