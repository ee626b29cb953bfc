package poller

import (
	"time"

	"github.com/wamphlett/spotify-pattern-controller/pkg/output"
)

// Opt defines a poller option
type Opt func(*Poller)

// WithDriver attaches an output driver to the poller
func WithDriver(d output.Driver) Opt {
	return func(p *Poller) {
		p.drivers = append(p.drivers, d)
	}
}

// WithClock overrides the clock used for snapshot timestamps
func WithClock(now func() time.Time) Opt {
	return func(p *Poller) {
		p.now = now
	}
}
