package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	DiscordToken   string
	AuctionAPIURL  string
	SecretKeyFile  string
	RequestTimeout time.Duration
	SortMemory     time.Duration
	CommandPrefix  string
	LogLevel       string
	MetricsAddr    string
}

func Load() (*Config, error) {
	requestTimeout, err := durationEnvOrDefault("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	sortMemory := 30 * time.Minute
	if m := os.Getenv("SORT_MEMORY_MINUTES"); m != "" {
		minutes, err := strconv.Atoi(m)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid SORT_MEMORY_MINUTES %q", m)
		}
		sortMemory = time.Duration(minutes) * time.Minute
	}

	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		AuctionAPIURL:  strings.TrimSpace(os.Getenv("AUCTION_API_URL")),
		SecretKeyFile:  getEnvOrDefault("SECRET_KEY_FILE", "./data/secret.env"),
		RequestTimeout: requestTimeout,
		SortMemory:     sortMemory,
		CommandPrefix:  getEnvOrDefault("COMMAND_PREFIX", "!"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DiscordToken == "" {
		errs = append(errs, errors.New("DISCORD_TOKEN is required"))
	}
	if c.AuctionAPIURL == "" {
		errs = append(errs, errors.New("AUCTION_API_URL is required"))
	}
	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// durationEnvOrDefault accepts Go durations ("15s") or a bare number of seconds
func durationEnvOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, value)
	}
	return d, nil
}
