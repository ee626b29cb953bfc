package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wamphlett/spotify-pattern-controller/config"
	"github.com/wamphlett/spotify-pattern-controller/pkg/output"
	"github.com/wamphlett/spotify-pattern-controller/pkg/output/mqtt"
	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
	"github.com/wamphlett/spotify-pattern-controller/pkg/poller"
	"github.com/wamphlett/spotify-pattern-controller/pkg/rotation"
	"github.com/wamphlett/spotify-pattern-controller/pkg/spotify"
)

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "continuously poll playback and emit colour patterns",
	Run: func(c *cobra.Command, args []string) {
		cfg := config.New()

		client, err := spotify.New(context.Background(), cfg.Spotify)
		if err != nil {
			log.WithError(err).Fatal("failed to create spotify client")
		}

		drivers := []output.Driver{output.NewConsole()}
		if cfg.MQTT.Enabled {
			drivers = append(drivers, mqtt.New(cfg.MQTT))
		}

		opts := make([]poller.Opt, 0, len(drivers))
		for _, driver := range drivers {
			if err := driver.Connect(); err != nil {
				log.WithError(err).Fatal("failed to connect output driver")
			}
			opts = append(opts, poller.WithDriver(driver))
		}

		tracker := rotation.New(palette.New(cfg.Extractor))
		p, err := poller.New(cfg.Poller, client, tracker, opts...)
		if err != nil {
			log.WithError(err).Fatal("invalid poller configuration")
		}

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)

		p.Start()

		// wait for shutdown or for a configured max loop count to be hit
		select {
		case <-signals:
		case <-p.Done():
		}
		p.Shutdown()

		for _, driver := range drivers {
			if err := driver.Close(); err != nil {
				log.WithError(err).Warn("failed to close output driver")
			}
		}
	},
}
