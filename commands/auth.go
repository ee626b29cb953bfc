package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wamphlett/spotify-pattern-controller/config"
	"github.com/wamphlett/spotify-pattern-controller/pkg/spotify"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "authorize with spotify and cache the token",
	Run: func(c *cobra.Command, args []string) {
		cfg := config.New()

		oauthCfg, err := spotify.OAuthConfig(cfg.Spotify)
		if err != nil {
			log.WithError(err).Fatal("invalid spotify configuration")
		}

		fmt.Println("Visit this URL to authorize:")
		fmt.Println(oauthCfg.AuthCodeURL("state"))
		fmt.Print("After authorizing, paste the full redirect URL here: ")

		redirected, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			log.WithError(err).Fatal("failed to read redirect URL")
		}

		token, err := spotify.ExchangeRedirect(context.Background(), oauthCfg, strings.TrimSpace(redirected))
		if err != nil {
			log.WithError(err).Fatal("failed to exchange authorization code")
		}

		if err := spotify.SaveToken(cfg.Spotify.CachePath, token); err != nil {
			log.WithError(err).Fatal("failed to cache token")
		}

		fmt.Printf("Token cached to %s\n", cfg.Spotify.CachePath)
	},
}
