package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// VoiceConfig selects the synthesized voice. Defaults match the on-air voice
// the station has always used.
type VoiceConfig struct {
	LanguageCode string  `yaml:"language_code"`
	Name         string  `yaml:"name"`
	SpeakingRate float64 `yaml:"speaking_rate"`

	// Pointers so an explicit zero in the YAML is distinguishable from
	// the key being absent.
	VolumeGainDB *float64 `yaml:"volume_gain_db"`
	Pitch        *float64 `yaml:"pitch"`
}

// AppConfig is the process-wide configuration, read once at startup and
// immutable afterwards.
type AppConfig struct {
	GoogleOAuthCreds string  `yaml:"google_oauth_creds" validate:"required"`
	MetOfficeAPIKey  string  `yaml:"metoffice_api_key" validate:"required"`
	Lat              float64 `yaml:"lat" validate:"gte=-90,lte=90"`
	Long             float64 `yaml:"long" validate:"gte=-180,lte=180"`
	OutputFile       string  `yaml:"output_file" validate:"required"`

	// LocationName is spoken in the bulletin; when empty the name reported
	// by the forecast provider is used.
	LocationName string `yaml:"location_name"`

	// Timesteps selects the Met Office endpoint granularity.
	Timesteps string `yaml:"timesteps" validate:"oneof=hourly three-hourly"`

	Voice VoiceConfig `yaml:"voice"`

	// RefreshInterval controls how often the bulletin is regenerated.
	RefreshInterval time.Duration `yaml:"-"`
	RefreshRaw      string        `yaml:"refresh_interval"`

	// Bulletin history retention.
	StoreMaxHistory int           `yaml:"store_max_history"`
	StoreMaxAge     time.Duration `yaml:"-"`
	StoreMaxAgeRaw  string        `yaml:"store_max_age"`

	HTTPTimeout    time.Duration `yaml:"-"`
	HTTPTimeoutRaw string        `yaml:"http_timeout"`

	Port string `yaml:"port"`
}

// Load reads the YAML config file, applies environment overrides, fills
// defaults and validates the result. The path defaults to config.yaml and can
// be overridden with CONFIG_FILE.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	if path == "" {
		path = getenvDefault("CONFIG_FILE", "config.yaml")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	// Environment overrides for the secrets, so the YAML file can stay in
	// version control without them.
	if v := os.Getenv("METOFFICE_API_KEY"); v != "" {
		cfg.MetOfficeAPIKey = v
	}
	if v := os.Getenv("GOOGLE_OAUTH_CREDS"); v != "" {
		cfg.GoogleOAuthCreds = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	applyDefaults(cfg)

	cfg.RefreshInterval, err = parseDuration("refresh_interval", cfg.RefreshRaw, time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.StoreMaxAge, err = parseDuration("store_max_age", cfg.StoreMaxAgeRaw, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout, err = parseDuration("http_timeout", cfg.HTTPTimeoutRaw, 10*time.Second)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Timesteps == "" {
		cfg.Timesteps = "three-hourly"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StoreMaxHistory == 0 {
		cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48)
	}
	if cfg.Voice.LanguageCode == "" {
		cfg.Voice.LanguageCode = "en-GB"
	}
	if cfg.Voice.Name == "" {
		cfg.Voice.Name = "en-GB-Neural2-F"
	}
	if cfg.Voice.SpeakingRate == 0 {
		cfg.Voice.SpeakingRate = 1.0
	}
	if cfg.Voice.VolumeGainDB == nil {
		cfg.Voice.VolumeGainDB = floatPtr(6.0)
	}
	if cfg.Voice.Pitch == nil {
		cfg.Voice.Pitch = floatPtr(-4)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func parseDuration(key, raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
