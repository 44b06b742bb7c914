package config

import (
	"errors"
	"fmt"
	"github.com/BurntSushi/toml"
	"github.com/bytedance/sonic"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const PathDefault = "config.json"

var ErrConfiguration = errors.New("invalid configuration")

type Config struct {
	ServerUrl           string        `json:"server_url" toml:"server_url" yaml:"server_url" envconfig:"CLEANER_SERVER_URL"`
	AccessToken         string        `json:"access_token" toml:"access_token" yaml:"access_token" envconfig:"CLEANER_ACCESS_TOKEN"`
	DeleteOlderThanDays int           `json:"delete_older_than_days" toml:"delete_older_than_days" yaml:"delete_older_than_days" envconfig:"CLEANER_DELETE_OLDER_THAN_DAYS"`
	Dryrun              bool          `json:"dryrun" toml:"dryrun" yaml:"dryrun" envconfig:"CLEANER_DRYRUN"`
	Language            string        `json:"language" toml:"language" yaml:"language" envconfig:"CLEANER_LANGUAGE"`
	UserAgent           string        `json:"user_agent" toml:"user_agent" yaml:"user_agent" envconfig:"CLEANER_USER_AGENT"`
	Schedule            string        `json:"schedule" toml:"schedule" yaml:"schedule" envconfig:"CLEANER_SCHEDULE"`
	Http                HttpConfig    `json:"http" toml:"http" yaml:"http"`
	Retry               RetryConfig   `json:"retry" toml:"retry" yaml:"retry"`
	Locale              LocaleConfig  `json:"locale" toml:"locale" yaml:"locale"`
	Metrics             MetricsConfig `json:"metrics" toml:"metrics" yaml:"metrics"`
	Log                 LogConfig     `json:"log" toml:"log" yaml:"log"`
}

type HttpConfig struct {
	Timeout Duration `json:"timeout" toml:"timeout" yaml:"timeout" envconfig:"CLEANER_HTTP_TIMEOUT"`
}

type RetryConfig struct {
	// Max is the count of additional attempts after a transient failure. Zero disables retries.
	Max     uint32   `json:"max" toml:"max" yaml:"max" envconfig:"CLEANER_RETRY_MAX"`
	Backoff Duration `json:"backoff" toml:"backoff" yaml:"backoff" envconfig:"CLEANER_RETRY_BACKOFF"`
}

type LocaleConfig struct {
	// Dir overrides the built in message tables with <lang>.yaml files from a directory.
	Dir string `json:"dir" toml:"dir" yaml:"dir" envconfig:"CLEANER_LOCALE_DIR"`
}

type MetricsConfig struct {
	// Textfile is the output path for the node exporter textfile collector. Empty disables it.
	Textfile string `json:"textfile" toml:"textfile" yaml:"textfile" envconfig:"CLEANER_METRICS_TEXTFILE"`
}

type LogConfig struct {
	Level int `json:"level" toml:"level" yaml:"level" envconfig:"LOG_LEVEL"`
}

// Duration accepts Go duration strings like "30s" in every supported file format and in the env.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func newConfigDefault() Config {
	return Config{
		DeleteOlderThanDays: -1,
		Dryrun:              true,
		Language:            "en",
		UserAgent:           "mastodon-cleaner",
		Http: HttpConfig{
			Timeout: Duration{30 * time.Second},
		},
		Retry: RetryConfig{
			Max:     3,
			Backoff: Duration{time.Second},
		},
	}
}

// NewConfigFromFile reads the file at path (JSON, TOML or YAML, by extension), applies the env overrides and
// validates the result. Every failure is reported as ErrConfiguration.
func NewConfigFromFile(path string) (cfg Config, err error) {
	cfg = newConfigDefault()
	var data []byte
	data, err = os.ReadFile(path)
	if err == nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			err = toml.Unmarshal(data, &cfg)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		default:
			err = sonic.Unmarshal(data, &cfg)
		}
	}
	if err == nil {
		err = envconfig.Process("", &cfg)
	}
	if err == nil {
		cfg.ServerUrl = strings.TrimRight(cfg.ServerUrl, "/")
		err = cfg.Validate()
	}
	if err != nil && !errors.Is(err, ErrConfiguration) {
		err = fmt.Errorf("%w: %s: %s", ErrConfiguration, path, err)
	}
	return
}

func (cfg Config) Validate() (err error) {
	if cfg.ServerUrl == "" {
		err = errors.Join(err, errors.New("server_url is required"))
	} else if u, errParse := url.Parse(cfg.ServerUrl); errParse != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		err = errors.Join(err, fmt.Errorf("server_url %q is not an absolute http(s) url", cfg.ServerUrl))
	}
	if cfg.AccessToken == "" {
		err = errors.Join(err, errors.New("access_token is required"))
	}
	if cfg.DeleteOlderThanDays < 0 {
		err = errors.Join(err, errors.New("delete_older_than_days is required and must not be negative"))
	}
	if cfg.Http.Timeout.Duration < 0 {
		err = errors.Join(err, errors.New("http.timeout must not be negative"))
	}
	if cfg.Schedule != "" {
		if _, errSched := cron.ParseStandard(cfg.Schedule); errSched != nil {
			err = errors.Join(err, fmt.Errorf("schedule %q: %s", cfg.Schedule, errSched))
		}
	}
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return
}
