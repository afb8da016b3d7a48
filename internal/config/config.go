package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Pixabay PixabayConfig `mapstructure:"pixabay"`
	Gallery GalleryConfig `mapstructure:"gallery"`
	Session SessionConfig `mapstructure:"session"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

type PixabayConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ImageType   string        `mapstructure:"image_type"`
	Orientation string        `mapstructure:"orientation"`
}

type GalleryConfig struct {
	LoadMoreInterval time.Duration `mapstructure:"load_more_interval"`
	ScrollCards      int           `mapstructure:"scroll_cards"`
}

type SessionConfig struct {
	IdleTTL    time.Duration `mapstructure:"idle_ttl"`
	CookieName string        `mapstructure:"cookie_name"`
}

func Load(configPath string) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", false)
	v.SetDefault("server.cors.allowed_origins", []string{})
	v.SetDefault("pixabay.base_url", "https://pixabay.com/api/")
	v.SetDefault("pixabay.timeout", "15s")
	v.SetDefault("pixabay.image_type", "photo")
	v.SetDefault("pixabay.orientation", "horizontal")
	v.SetDefault("gallery.load_more_interval", "500ms")
	v.SetDefault("gallery.scroll_cards", 2)
	v.SetDefault("session.idle_ttl", "30m")
	v.SetDefault("session.cookie_name", "pixgallery_session")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Secrets come from the environment
	v.BindEnv("pixabay.api_key", "PIXABAY_API_KEY")
	v.BindEnv("pixabay.base_url", "PIXABAY_BASE_URL")
	v.BindEnv("server.port", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that have no safe fallback.
func (c *Config) Validate() error {
	if c.Pixabay.APIKey == "" {
		return fmt.Errorf("pixabay.api_key is required (set PIXABAY_API_KEY)")
	}
	return nil
}
