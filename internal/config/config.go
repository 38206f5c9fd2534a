package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/terraincognita07/selene/internal/logger"
)

const minSecretKeyLength = 32

var insecureSecretKeys = []string{
	"change_me_in_production",
	"replace_with_at_least_32_random_characters",
}

type Config struct {
	Port               string   `mapstructure:"port"`
	DBPath             string   `mapstructure:"db_path"`
	Timezone           string   `mapstructure:"tz"`
	SecretKey          string   `mapstructure:"secret_key"`
	LogLevel           string   `mapstructure:"log_level"`
	Environment        string   `mapstructure:"environment"`
	DefaultLanguage    string   `mapstructure:"default_language"`
	TelegramBotToken   string   `mapstructure:"telegram_bot_token"`
	ReminderCron       string   `mapstructure:"reminder_cron"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`

	Location *time.Location `mapstructure:"-"`

	v *viper.Viper
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("selene")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Log.WithField("path", v.ConfigFileUsed()).Info("config: file loaded")
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.v = v
	return cfg, nil
}

// Watch calls apply with the re-read configuration whenever the config file
// changes. It reports false when no file is in use.
func (cfg *Config) Watch(apply func(Config)) bool {
	if cfg.v == nil || cfg.v.ConfigFileUsed() == "" {
		return false
	}

	cfg.v.OnConfigChange(func(event fsnotify.Event) {
		updated, err := decode(cfg.v)
		if err != nil {
			logger.Log.WithError(err).WithField("path", event.Name).Warn("config: reload rejected")
			return
		}
		logger.Log.WithField("path", event.Name).Info("config: file changed")
		apply(*updated)
	})
	cfg.v.WatchConfig()
	return true
}

func (cfg Config) IsProduction() bool {
	switch strings.ToLower(cfg.Environment) {
	case "production", "staging":
		return true
	default:
		return false
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", filepath.Join("data", "selene.db"))
	v.SetDefault("tz", "UTC")
	v.SetDefault("secret_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "development")
	v.SetDefault("default_language", "en")
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("reminder_cron", "0 9 * * *")
	v.SetDefault("cors_allowed_origins", []string{})
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	secretKey, err := resolveSecretKey(cfg.SecretKey)
	if err != nil {
		return nil, err
	}
	cfg.SecretKey = secretKey

	port, err := resolvePort(cfg.Port)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.Location = loadLocation(cfg.Timezone)
	cfg.CORSAllowedOrigins = splitOrigins(cfg.CORSAllowedOrigins)
	return &cfg, nil
}

func resolveSecretKey(raw string) (string, error) {
	secretKey := strings.TrimSpace(raw)
	if secretKey == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	for _, placeholder := range insecureSecretKeys {
		if strings.EqualFold(secretKey, placeholder) {
			return "", errors.New("SECRET_KEY uses an insecure placeholder value")
		}
	}
	if len(secretKey) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secretKey, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return port, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		logger.Log.WithField("tz", name).Warn("config: invalid TZ, falling back to UTC")
		return time.UTC
	}
	return location
}

// splitOrigins accepts both a YAML list and a comma separated env value.
func splitOrigins(values []string) []string {
	origins := make([]string, 0, len(values))
	for _, value := range values {
		for _, origin := range strings.Split(value, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	return origins
}
