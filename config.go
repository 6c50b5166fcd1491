package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"math"
	"net"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hjson/hjson-go"
)

const (
	DefaultListen            = "127.0.0.1:8000"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10
	DefaultCacheTTL          = time.Hour

	DefaultCircuitBreakerOpenThreshold   = 5
	DefaultCircuitBreakerHalfOpenTimeout = time.Minute
	DefaultCircuitBreakerResetTimeout    = 5 * time.Minute
)

var errNoFallbackDistance = errors.New("max_fallback_distance_km is required")

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	return d.UnmarshalText([]byte(vv))
}

func (d *duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen                string          `json:"listen" toml:"listen"`
	MaxFallbackDistanceKm *float64        `json:"max_fallback_distance_km" toml:"max_fallback_distance_km"`
	WorkerPoolSize        uint            `json:"worker_pool_size" toml:"worker_pool_size"`
	Cache                 configCache     `json:"cache" toml:"cache"`
	Dataset               configDataset   `json:"dataset" toml:"dataset"`
	BasicAuth             configBasicAuth `json:"basic_auth" toml:"basic_auth"`
}

func (c config) GetListen() string {
	if c.Listen != "" {
		return c.Listen
	}

	return DefaultListen
}

func (c config) GetMaxFallbackDistance() float64 {
	if c.MaxFallbackDistanceKm == nil {
		return 0
	}

	return *c.MaxFallbackDistanceKm
}

func (c config) GetWorkerPoolSize() int {
	return int(c.WorkerPoolSize)
}

type configCache struct {
	Size uint     `json:"size" toml:"size"`
	TTL  duration `json:"ttl" toml:"ttl"`
}

func (c configCache) GetSize() uint {
	return c.Size
}

func (c configCache) GetTTL() time.Duration {
	if c.TTL.Duration == 0 {
		return DefaultCacheTTL
	}

	return c.TTL.Duration
}

type configDataset struct {
	Path              string   `json:"path" toml:"path"`
	URL               string   `json:"url" toml:"url"`
	HTTPTimeout       duration `json:"http_timeout" toml:"http_timeout"`
	RateLimitInterval duration `json:"rate_limit_interval" toml:"rate_limit_interval"`
	RateLimitBurst    uint     `json:"rate_limit_burst" toml:"rate_limit_burst"`
}

func (c configDataset) GetPath() string {
	return c.Path
}

func (c configDataset) GetURL() string {
	return c.URL
}

func (c configDataset) GetHTTPTimeout() time.Duration {
	if c.HTTPTimeout.Duration == 0 {
		return DefaultHTTPTimeout
	}

	return c.HTTPTimeout.Duration
}

func (c configDataset) GetRateLimitInterval() time.Duration {
	if c.RateLimitInterval.Duration == 0 {
		return DefaultRateLimitInterval
	}

	return c.RateLimitInterval.Duration
}

func (c configDataset) GetRateLimitBurst() int {
	if c.RateLimitBurst == 0 {
		return DefaultRateLimitBurst
	}

	return int(c.RateLimitBurst)
}

type configBasicAuth struct {
	User     string `json:"user" toml:"user"`
	Password string `json:"password" toml:"password"`
}

func (c configBasicAuth) Enabled() bool {
	return c.User != ""
}

func (c configBasicAuth) GetUser() string {
	return c.User
}

func (c configBasicAuth) GetPassword() string {
	return c.Password
}

// parseConfig reads hjson config. Files with .toml extension are read as
// TOML.
func parseConfig(path string) (*config, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	conf := config{}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(content), &conf); err != nil {
			return nil, fmt.Errorf("cannot parse toml: %w", err)
		}
	} else {
		rawMap := map[string]interface{}{}

		if err := hjson.Unmarshal(content, &rawMap); err != nil {
			return nil, fmt.Errorf("cannot parse json: %w", err)
		}

		rawBytes, _ := json.Marshal(rawMap)

		if err := json.Unmarshal(rawBytes, &conf); err != nil {
			return nil, fmt.Errorf("incorrect config structure: %w", err)
		}
	}

	if err := validateConfig(&conf, filepath.Dir(path)); err != nil {
		return nil, err
	}

	return &conf, nil
}

func validateConfig(conf *config, baseDir string) error {
	if _, _, err := net.SplitHostPort(conf.GetListen()); err != nil {
		return fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	if conf.MaxFallbackDistanceKm == nil {
		return errNoFallbackDistance
	}

	if value := conf.GetMaxFallbackDistance(); value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return fmt.Errorf("max_fallback_distance_km should be positive, got %v", value)
	}

	switch {
	case conf.Dataset.Path != "" && conf.Dataset.URL != "":
		return errors.New("dataset should have either path or url, not both")
	case conf.Dataset.Path == "" && conf.Dataset.URL == "":
		return errors.New("dataset path or url is required")
	case conf.Dataset.URL != "":
		parsed, err := url.Parse(conf.Dataset.URL)
		if err != nil {
			return fmt.Errorf("incorrect dataset url: %w", err)
		}

		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("unsupported scheme of dataset url: %s", parsed.Scheme)
		}
	case !filepath.IsAbs(conf.Dataset.Path):
		// relative paths are relative to the config file
		conf.Dataset.Path = filepath.Join(baseDir, conf.Dataset.Path)
	}

	if conf.BasicAuth.Password != "" && conf.BasicAuth.User == "" {
		return errors.New("basic_auth has password but no user")
	}

	return nil
}
