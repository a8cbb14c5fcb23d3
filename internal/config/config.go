package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all outbound HTTP requests.
const DefaultUserAgent = "anistream/1.0 (+https://github.com/animeku/anistream)"

type Config struct {
	ClientTimeout string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent     string `mapstructure:"user_agent"`
	LogLevel      string `mapstructure:"log_level"`
	SentryDSN     string `mapstructure:"sentry_dsn"`
	Server        struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Jikan struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"jikan"`
	Scraper struct {
		Endpoint string `mapstructure:"endpoint"`
		Timeout  string `mapstructure:"timeout"` // per-call timeout, Go duration string
	} `mapstructure:"scraper"`
	Aggregator struct {
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"aggregator"`
	VideoSearch struct {
		Providers       []string `mapstructure:"providers"`        // redundant search-provider base URLs
		AllowedChannels []string `mapstructure:"allowed_channels"` // known-official channel name substrings
		SubtitleMarkers []string `mapstructure:"subtitle_markers"` // accepted "subtitled" title markers
		AttemptTimeout  string   `mapstructure:"attempt_timeout"`  // per-provider-call timeout
		QueryDelay      string   `mapstructure:"query_delay"`      // politeness delay between failed queries
	} `mapstructure:"video_search"`
	Cache struct {
		Provider      string `mapstructure:"provider"` // "memory" or "redis"
		Size          int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL           string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		RedisAddress  string `mapstructure:"redis_address"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
	} `mapstructure:"cache"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
	logger.Info().Str("level", level.String()).Msg("Configuration loaded")
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	// Set defaults
	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.address", "0.0.0.0")
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("client_timeout", "30s")
	viper.SetDefault("jikan.base_url", "https://api.jikan.moe/v4")
	viper.SetDefault("scraper.endpoint", "https://apidatav2-ck1u.vercel.app/api/scrape")
	viper.SetDefault("scraper.timeout", "15s")
	viper.SetDefault("aggregator.base_url", "https://wajik-anime-api.vercel.app/samehadaku")
	viper.SetDefault("video_search.providers", []string{
		"https://inv.nadeko.net",
		"https://invidious.nerdvpn.de",
		"https://yewtu.be",
	})
	viper.SetDefault("video_search.allowed_channels", []string{
		"muse indonesia",
		"muse asia",
		"ani-one",
		"bstation",
	})
	viper.SetDefault("video_search.subtitle_markers", []string{
		"sub indo",
		"indo sub",
		"subtitle indonesia",
		"takarir indonesia",
	})
	viper.SetDefault("video_search.attempt_timeout", "4s")
	viper.SetDefault("video_search.query_delay", "500ms")
	viper.SetDefault("cache.provider", "memory")
	viper.SetDefault("cache.size", 512)
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("cache.redis_address", "")
	viper.SetDefault("cache.redis_password", "")
	viper.SetDefault("cache.redis_db", 0)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
