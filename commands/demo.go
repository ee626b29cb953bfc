package commands

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wamphlett/spotify-pattern-controller/config"
	"github.com/wamphlett/spotify-pattern-controller/pkg/output"
	"github.com/wamphlett/spotify-pattern-controller/pkg/palette"
	"github.com/wamphlett/spotify-pattern-controller/pkg/pattern"
)

var demoCmd = &cobra.Command{
	Use:   "demo [identifier]",
	Short: "extract a palette from a single identifier and print a pattern",
	Long: "demo runs one extraction and prints the expanded pattern through the " +
		"console driver. The identifier may be an artwork URL or any opaque " +
		"string; opaque strings produce a deterministic digest-derived palette.",
	Args: cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		identifier := "demo-artwork"
		if len(args) > 0 {
			identifier = args[0]
		}

		cfg := config.New()

		colours, err := palette.New(cfg.Extractor).Extract(identifier)
		if err != nil {
			log.WithError(err).Fatal("failed to extract palette")
		}

		sequence, err := pattern.Generate(colours, cfg.Poller.PatternLength, pattern.ModeRepeat)
		if err != nil {
			log.WithError(err).Fatal("failed to generate pattern")
		}

		driver := output.NewConsole()
		if err := driver.Connect(); err != nil {
			log.WithError(err).Fatal("failed to connect console driver")
		}
		if err := driver.Send(sequence); err != nil {
			log.WithError(err).Fatal("failed to send pattern")
		}
		if err := driver.Close(); err != nil {
			log.WithError(err).Fatal("failed to close console driver")
		}
	},
}
