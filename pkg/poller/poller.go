package poller

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stianeikeland/go-rpio/v4"

	"github.com/wamphlett/spotify-pattern-controller/config"
	"github.com/wamphlett/spotify-pattern-controller/pkg/output"
	"github.com/wamphlett/spotify-pattern-controller/pkg/pattern"
	"github.com/wamphlett/spotify-pattern-controller/pkg/rotation"
)

// PlaybackSource supplies the identifier of the currently playing artwork.
// An empty identifier means nothing is playing.
type PlaybackSource interface {
	CurrentArtworkURL(ctx context.Context) (string, error)
}

type Poller struct {
	playback PlaybackSource
	tracker  *rotation.Tracker

	drivers []output.Driver

	interval      time.Duration
	patternLength int
	patternMode   pattern.Mode
	snapshotFile  string
	maxLoops      int

	now func() time.Time

	ledPin     rpio.Pin
	ledEnabled bool
	ledState   bool

	close chan (struct{})
	done  chan (struct{})
	loops int
}

func New(cfg *config.Poller, playback PlaybackSource, tracker *rotation.Tracker, opts ...Opt) (*Poller, error) {
	mode, err := pattern.ParseMode(cfg.PatternMode)
	if err != nil {
		return nil, err
	}

	p := &Poller{
		playback:      playback,
		tracker:       tracker,
		interval:      cfg.Interval,
		patternLength: cfg.PatternLength,
		patternMode:   mode,
		snapshotFile:  cfg.SnapshotFile,
		maxLoops:      cfg.MaxLoops,
		now:           time.Now,
		close:         make(chan struct{}),
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	// activity LED
	if cfg.LEDPin > 0 {
		if err := rpio.Open(); err != nil {
			log.WithError(err).Warn("gpio unavailable, activity LED disabled")
		} else {
			p.ledPin = rpio.Pin(cfg.LEDPin)
			p.ledPin.Output()
			p.ledEnabled = true
		}
	}

	return p, nil
}

// Start begins polling at the configured interval. The first poll happens
// immediately.
func (p *Poller) Start() {
	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		defer close(p.done)
		for {
			p.poll()
			p.loops++
			if p.maxLoops > 0 && p.loops >= p.maxLoops {
				return
			}

			select {
			case <-ticker.C:
			case <-p.close:
				return
			}
		}
	}()
}

// Done is closed once the polling loop has stopped.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

// Shutdown stops the polling loop and releases the LED pin.
func (p *Poller) Shutdown() {
	close(p.close)
	<-p.done
	if p.ledEnabled {
		p.ledPin.Low()
		rpio.Close()
	}
}

func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	artwork, err := p.playback.CurrentArtworkURL(ctx)
	if err != nil {
		// leave retrying to the next cycle
		log.WithError(err).Error("failed to fetch playback state")
		return
	}

	base, ok, err := p.tracker.Observe(artwork)
	if err != nil {
		log.WithError(err).WithField("artwork", artwork).Error("failed to extract palette")
		return
	}
	if !ok {
		log.Debug("nothing playing")
		return
	}

	sequence, err := pattern.Generate(base, p.patternLength, p.patternMode)
	if err != nil {
		log.WithError(err).Error("failed to generate pattern")
		return
	}

	for _, driver := range p.drivers {
		if err := driver.Send(sequence); err != nil {
			log.WithError(err).Error("failed to send pattern to output")
		}
	}

	p.writeSnapshot(artwork, base, sequence)
	p.toggleLED()

	log.WithFields(log.Fields{
		"artwork": artwork,
		"phase":   p.tracker.Phase(),
	}).Info("pattern updated")
}

func (p *Poller) toggleLED() {
	if !p.ledEnabled {
		return
	}
	p.ledState = !p.ledState
	if p.ledState {
		p.ledPin.High()
	} else {
		p.ledPin.Low()
	}
}
