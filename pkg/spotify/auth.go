package spotify

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/wamphlett/spotify-pattern-controller/config"
)

// Endpoint is Spotify's OAuth2 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// OAuthConfig builds the oauth2 config for the configured application
// credentials.
func OAuthConfig(cfg *config.Spotify) (*oauth2.Config, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("spotify client id and secret must be configured")
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       strings.Split(cfg.Scope, " "),
		Endpoint:     Endpoint,
	}, nil
}

// ExchangeRedirect parses the authorization code out of a pasted redirect
// URL and exchanges it for a token.
func ExchangeRedirect(ctx context.Context, cfg *oauth2.Config, redirectURL string) (*oauth2.Token, error) {
	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redirect URL")
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return nil, errors.New("redirect URL does not contain an authorization code")
	}
	return cfg.Exchange(ctx, code)
}

// LoadCachedToken reads a previously cached token.
func LoadCachedToken(file string) (*oauth2.Token, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "no cached token at %s, run the auth command first", file)
	}
	var token oauth2.Token
	if err := json.Unmarshal(content, &token); err != nil {
		return nil, errors.Wrapf(err, "failed to parse cached token at %s", file)
	}
	return &token, nil
}

// SaveToken caches a token for later sessions. The cache file holds
// credentials so it is written user-only.
func SaveToken(file string, token *oauth2.Token) error {
	content, err := json.Marshal(token)
	if err != nil {
		return errors.Wrap(err, "failed to marshal token")
	}
	return errors.Wrapf(os.WriteFile(file, content, 0o600), "failed to write token cache at %s", file)
}

// cachingTokenSource persists refreshed tokens back to the cache file so the
// next session does not need to reauthorize.
type cachingTokenSource struct {
	source    oauth2.TokenSource
	cacheFile string
	last      *oauth2.Token
}

func (s *cachingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || token.AccessToken != s.last.AccessToken {
		if err := SaveToken(s.cacheFile, token); err != nil {
			log.WithError(err).Warn("failed to cache refreshed token")
		}
		s.last = token
	}
	return token, nil
}
