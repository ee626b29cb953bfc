package config

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

func New() *Config {
	// load a local .env if present; real environment variables win
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic("failed to extract default config: " + err.Error())
	}
	return &cfg
}

func DefaultExtractorConfig() *Extractor {
	var cfg Extractor
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic("failed to extract default config: " + err.Error())
	}
	return &cfg
}

type Config struct {
	Poller    *Poller
	Spotify   *Spotify
	Extractor *Extractor
	MQTT      *MQTTPublisher
}

type Poller struct {
	Interval      time.Duration `env:"POLLER_INTERVAL,default=60s"`
	PatternLength int           `env:"POLLER_PATTERN_LENGTH,default=16"`
	PatternMode   string        `env:"POLLER_PATTERN_MODE,default=repeat"`
	SnapshotFile  string        `env:"POLLER_SNAPSHOT_FILE,default=cache/current_palette.json"`
	MaxLoops      int           `env:"POLLER_MAX_LOOPS,default=0"`

	LEDPin int `env:"POLLER_LED_PIN,default=0"`
}

type Spotify struct {
	ClientID     string        `env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string        `env:"SPOTIFY_CLIENT_SECRET"`
	RedirectURI  string        `env:"SPOTIFY_REDIRECT_URI,default=http://localhost:8080"`
	Scope        string        `env:"SPOTIFY_SCOPE,default=user-read-playback-state"`
	CachePath    string        `env:"SPOTIFY_TOKEN_CACHE,default=.cache-spotify"`
	Timeout      time.Duration `env:"SPOTIFY_TIMEOUT,default=10s"`
}

type Extractor struct {
	FetchTimeout    time.Duration `env:"EXTRACTOR_FETCH_TIMEOUT,default=15s"`
	MaxDimension    int           `env:"EXTRACTOR_MAX_DIMENSION,default=200"`
	QuantizeColours int           `env:"EXTRACTOR_QUANTIZE_COLOURS,default=8"`
	CacheDir        string        `env:"EXTRACTOR_CACHE_DIR,default=cache/images"`
}

type MQTTPublisher struct {
	Enabled bool   `env:"MQTT_ENABLED,default=false"`
	Scheme  string `env:"MQTT_SCHEME,default=tcp"`
	Host    string `env:"MQTT_HOST,default=localhost:1883"`
	Topic   string `env:"MQTT_TOPIC,default=ARTWORK/PATTERN"`
}
