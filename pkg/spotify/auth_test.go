package spotify

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/wamphlett/spotify-pattern-controller/config"
)

func testSpotifyConfig(t *testing.T) *config.Spotify {
	t.Helper()
	return &config.Spotify{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:8080",
		Scope:        "user-read-playback-state",
		CachePath:    filepath.Join(t.TempDir(), ".cache-spotify"),
		Timeout:      time.Second,
	}
}

func TestOAuthConfig(t *testing.T) {
	cfg, err := OAuthConfig(testSpotifyConfig(t))
	require.NoError(t, err)
	require.Equal(t, "client-id", cfg.ClientID)
	require.Equal(t, Endpoint.AuthURL, cfg.Endpoint.AuthURL)
	require.Equal(t, []string{"user-read-playback-state"}, cfg.Scopes)
}

func TestOAuthConfigMissingCredentials(t *testing.T) {
	cfg := testSpotifyConfig(t)
	cfg.ClientSecret = ""

	_, err := OAuthConfig(cfg)
	require.Error(t, err)
}

func TestTokenCacheRoundTrip(t *testing.T) {
	cfg := testSpotifyConfig(t)
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}

	require.NoError(t, SaveToken(cfg.CachePath, token))

	loaded, err := LoadCachedToken(cfg.CachePath)
	require.NoError(t, err)
	require.Equal(t, token.AccessToken, loaded.AccessToken)
	require.Equal(t, token.RefreshToken, loaded.RefreshToken)
	require.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestLoadCachedTokenMissing(t *testing.T) {
	_, err := LoadCachedToken(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestExchangeRedirectWithoutCode(t *testing.T) {
	oauthCfg, err := OAuthConfig(testSpotifyConfig(t))
	require.NoError(t, err)

	_, err = ExchangeRedirect(context.Background(), oauthCfg, "http://localhost:8080/callback?state=state")
	require.Error(t, err)
}

func TestCachingTokenSourcePersistsRefreshedTokens(t *testing.T) {
	cfg := testSpotifyConfig(t)
	refreshed := &oauth2.Token{AccessToken: "new-access", RefreshToken: "refresh"}

	source := &cachingTokenSource{
		source:    oauth2.StaticTokenSource(refreshed),
		cacheFile: cfg.CachePath,
		last:      &oauth2.Token{AccessToken: "old-access", RefreshToken: "refresh"},
	}

	token, err := source.Token()
	require.NoError(t, err)
	require.Equal(t, "new-access", token.AccessToken)

	cached, err := LoadCachedToken(cfg.CachePath)
	require.NoError(t, err)
	require.Equal(t, "new-access", cached.AccessToken)
}
