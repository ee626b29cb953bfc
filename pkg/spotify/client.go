package spotify

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"

	"github.com/wamphlett/spotify-pattern-controller/config"
)

const playbackURL = "https://api.spotify.com/v1/me/player"

type playback struct {
	Item struct {
		Album struct {
			Images []struct {
				URL string `json:"url"`
			} `json:"images"`
		} `json:"album"`
	} `json:"item"`
}

// Client polls the Spotify player API for the currently playing artwork.
type Client struct {
	client      *http.Client
	playbackURL string
}

// New creates a Client from a cached token, refreshing it as needed.
func New(ctx context.Context, cfg *config.Spotify) (*Client, error) {
	oauthCfg, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadCachedToken(cfg.CachePath)
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, &cachingTokenSource{
		source:    oauthCfg.TokenSource(ctx, token),
		cacheFile: cfg.CachePath,
		last:      token,
	})
	client.Timeout = cfg.Timeout

	return &Client{
		client:      client,
		playbackURL: playbackURL,
	}, nil
}

// CurrentArtworkURL returns the URL of the largest album image for the
// currently playing track. An empty string with no error means nothing is
// playing.
func (c *Client) CurrentArtworkURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.playbackURL, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to build playback request")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch playback state")
	}
	defer resp.Body.Close()

	// 204 means no active playback
	if resp.StatusCode == http.StatusNoContent {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected playback status: %d", resp.StatusCode)
	}

	var state playback
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return "", errors.Wrap(err, "failed to decode playback state")
	}

	// Spotify returns images sorted largest first
	if len(state.Item.Album.Images) == 0 {
		return "", nil
	}
	return state.Item.Album.Images[0].URL, nil
}
