package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"sjsage522/contactscraper/internal/crawler"
	scrapererrors "sjsage522/contactscraper/pkg/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Directory source
	DirectoryURL string `yaml:"directory_url"`
	TotalPages   int    `yaml:"total_pages"`

	// Fetch policy
	MaxAttempts     int      `yaml:"max_attempts"`
	AttemptDelayMin Duration `yaml:"attempt_delay_min"`
	AttemptDelayMax Duration `yaml:"attempt_delay_max"`
	RequestTimeout  Duration `yaml:"request_timeout"`

	// Pause between pages
	PageDelayMin Duration `yaml:"page_delay_min"`
	PageDelayMax Duration `yaml:"page_delay_max"`

	// Output files
	CSVPath  string `yaml:"csv_path"`
	XLSXPath string `yaml:"xlsx_path"`

	// Optional Redis stream export, disabled when RedisAddr is empty
	RedisAddr            string `yaml:"redis_addr"`
	RedisDB              int    `yaml:"redis_db"`
	RedisStream          string `yaml:"redis_stream"`
	RedisStreamCount     int    `yaml:"redis_stream_count"`
	RedisStreamMaxLength int    `yaml:"redis_stream_max_length"`

	// Environment
	Environment string `yaml:"environment"`
}

// Default returns the configuration of the full institutpf.org export
func Default() *Config {
	return &Config{
		DirectoryURL:         crawler.DefaultDirectoryURL,
		TotalPages:           469,
		MaxAttempts:          5,
		AttemptDelayMin:      DurationFrom(1 * time.Second),
		AttemptDelayMax:      DurationFrom(3 * time.Second),
		RequestTimeout:       DurationFrom(10 * time.Second),
		PageDelayMin:         DurationFrom(1500 * time.Millisecond),
		PageDelayMax:         DurationFrom(3500 * time.Millisecond),
		CSVPath:              "contacts.csv",
		XLSXPath:             "contacts.xlsx",
		RedisDB:              0,
		RedisStream:          "contacts",
		RedisStreamCount:     1,
		RedisStreamMaxLength: 10000,
		Environment:          "development",
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file named
// by SCRAPER_CONFIG_FILE, and finally environment variables
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("SCRAPER_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, scrapererrors.NewConfiguration("invalid environment variable", err)
	}

	return cfg, nil
}

// loadFile overlays values present in a YAML file
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return scrapererrors.NewConfiguration("failed to read config file "+path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return scrapererrors.NewConfiguration("failed to parse config file "+path, err)
	}
	return nil
}

// loadEnv overlays values present in the environment
func (c *Config) loadEnv() error {
	var errs []error

	c.DirectoryURL = getEnv("DIRECTORY_URL", c.DirectoryURL)
	c.CSVPath = getEnv("CSV_PATH", c.CSVPath)
	c.XLSXPath = getEnv("XLSX_PATH", c.XLSXPath)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisStream = getEnv("REDIS_STREAM", c.RedisStream)
	c.Environment = getEnv("SCRAPER_ENVIRONMENT", c.Environment)

	for key, target := range map[string]*int{
		"TOTAL_PAGES":             &c.TotalPages,
		"MAX_ATTEMPTS":            &c.MaxAttempts,
		"REDIS_DB":                &c.RedisDB,
		"REDIS_STREAM_COUNT":      &c.RedisStreamCount,
		"REDIS_STREAM_MAX_LENGTH": &c.RedisStreamMaxLength,
	} {
		if err := getEnvInt(key, target); err != nil {
			errs = append(errs, err)
		}
	}

	for key, target := range map[string]*Duration{
		"ATTEMPT_DELAY_MIN": &c.AttemptDelayMin,
		"ATTEMPT_DELAY_MAX": &c.AttemptDelayMax,
		"REQUEST_TIMEOUT":   &c.RequestTimeout,
		"PAGE_DELAY_MIN":    &c.PageDelayMin,
		"PAGE_DELAY_MAX":    &c.PageDelayMax,
	} {
		if value := os.Getenv(key); value != "" {
			if err := target.UnmarshalText([]byte(value)); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	}

	return errors.Join(errs...)
}

// Validate checks the configuration for values the job cannot run with
func (c *Config) Validate() error {
	if u, err := url.Parse(c.DirectoryURL); err != nil || u.Scheme == "" || u.Host == "" {
		return scrapererrors.NewConfiguration(fmt.Sprintf("invalid directory URL %q", c.DirectoryURL), err)
	}
	if c.TotalPages < 1 {
		return scrapererrors.NewConfiguration(fmt.Sprintf("total pages must be positive, got %d", c.TotalPages), nil)
	}
	if c.MaxAttempts < 1 {
		return scrapererrors.NewConfiguration(fmt.Sprintf("max attempts must be positive, got %d", c.MaxAttempts), nil)
	}
	if c.RequestTimeout.Duration <= 0 {
		return scrapererrors.NewConfiguration("request timeout must be positive", nil)
	}
	if err := validateRange("attempt delay", c.AttemptDelayMin, c.AttemptDelayMax); err != nil {
		return err
	}
	if err := validateRange("page delay", c.PageDelayMin, c.PageDelayMax); err != nil {
		return err
	}
	if c.CSVPath == "" || c.XLSXPath == "" {
		return scrapererrors.NewConfiguration("output paths must not be empty", nil)
	}
	if c.RedisAddr != "" && c.RedisStream == "" {
		return scrapererrors.NewConfiguration("redis stream must be set when redis is enabled", nil)
	}
	return nil
}

func validateRange(name string, min, max Duration) error {
	if min.Duration < 0 || max.Duration < min.Duration {
		return scrapererrors.NewConfiguration(fmt.Sprintf("invalid %s range [%s, %s]", name, min, max), nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt parses an integer environment variable into target when it is set
func getEnvInt(key string, target *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*target = n
	return nil
}
