package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"gopkg.in/yaml.v3"
)

// DefaultForecastURL is the SWPC 3-day forecast text product.
const DefaultForecastURL = "https://services.swpc.noaa.gov/text/3-day-forecast.txt"

const (
	defaultKpThreshold = 5
	defaultCheckTime   = "20:30"
	defaultSender      = "northernlights.notify@gmail.com"
	defaultRecipient   = "user@example.com"
)

// Config holds all service settings, populated from environment variables
// with an optional YAML watch file override (WATCH_CONFIG).
type Config struct {
	ForecastURL     string
	KpThreshold     float64
	CheckTime       string
	CheckHour       int
	CheckMinute     int
	NotifySender    string
	NotifyRecipient string
	FetchTimeout    time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Kafka notification transport, enabled when a topic is configured.
	KafkaBrokers     []string
	KafkaNotifyTopic string
	KafkaEnabled     bool
}

// watchFile is the YAML shape of the optional watch settings file. Only
// fields present in the file override the environment.
type watchFile struct {
	ForecastURL string   `yaml:"forecast_url"`
	KpThreshold *float64 `yaml:"kp_threshold"`
	CheckTime   string   `yaml:"check_time"`
	Sender      string   `yaml:"sender"`
	Recipient   string   `yaml:"recipient"`
}

// Load reads configuration from environment variables, applying defaults
// where unset. A malformed check time or threshold fails startup: those
// are static configuration bugs, not runtime conditions.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeoutStr := sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "30s")
	fetchTimeout, err := time.ParseDuration(fetchTimeoutStr)
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	threshold, err := parseThreshold()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ForecastURL:     sharedcfg.EnvOrDefault("FORECAST_URL", DefaultForecastURL),
		KpThreshold:     threshold,
		CheckTime:       sharedcfg.EnvOrDefault("CHECK_TIME", defaultCheckTime),
		NotifySender:    sharedcfg.EnvOrDefault("NOTIFY_SENDER", defaultSender),
		NotifyRecipient: sharedcfg.EnvOrDefault("NOTIFY_RECIPIENT", defaultRecipient),
		FetchTimeout:    fetchTimeout,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaNotifyTopic: os.Getenv("KAFKA_NOTIFY_TOPIC"),
	}

	cfg.KafkaEnabled = cfg.KafkaNotifyTopic != ""
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		cfg.KafkaEnabled = v == "true"
	}

	if path := os.Getenv("WATCH_CONFIG"); path != "" {
		if err := applyWatchFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if cfg.ForecastURL == "" {
		return nil, errors.New("FORECAST_URL is required")
	}
	if cfg.NotifyRecipient == "" {
		return nil, errors.New("NOTIFY_RECIPIENT is required")
	}
	if cfg.KpThreshold < 0 || cfg.KpThreshold > 9 {
		return nil, errors.New("KP_THRESHOLD must be within the Kp scale 0-9")
	}
	if cfg.KafkaEnabled && cfg.KafkaNotifyTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_NOTIFY_TOPIC is not set")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when the Kafka transport is enabled")
	}

	hour, minute, err := ParseCheckTime(cfg.CheckTime)
	if err != nil {
		return nil, err
	}
	cfg.CheckHour, cfg.CheckMinute = hour, minute

	return cfg, nil
}

// ParseCheckTime validates a 24-hour HH:MM time of day.
func ParseCheckTime(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid CHECK_TIME %q: want HH:MM", s)
	}
	hour, errH := strconv.Atoi(parts[0])
	minute, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid CHECK_TIME %q: want HH:MM", s)
	}
	return hour, minute, nil
}

func parseThreshold() (float64, error) {
	s := os.Getenv("KP_THRESHOLD")
	if s == "" {
		return defaultKpThreshold, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.New("invalid KP_THRESHOLD")
	}
	return v, nil
}

// applyWatchFile overlays the watch settings from a YAML file onto cfg.
func applyWatchFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read watch config: %w", err)
	}
	var wf watchFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return fmt.Errorf("parse watch config: %w", err)
	}

	if wf.ForecastURL != "" {
		cfg.ForecastURL = wf.ForecastURL
	}
	if wf.KpThreshold != nil {
		cfg.KpThreshold = *wf.KpThreshold
	}
	if wf.CheckTime != "" {
		cfg.CheckTime = wf.CheckTime
	}
	if wf.Sender != "" {
		cfg.NotifySender = wf.Sender
	}
	if wf.Recipient != "" {
		cfg.NotifyRecipient = wf.Recipient
	}
	return nil
}
