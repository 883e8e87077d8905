package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	mises "Mises/internal/calc/mises"
	slider "Mises/internal/calc/slider"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all server settings.
type Config struct {
	Addr       string        `yaml:"addr"`
	TLSCert    string        `yaml:"tls_cert"`
	TLSKey     string        `yaml:"tls_key"`
	CORSOrigin string        `yaml:"cors_origin"`
	PlotlyURL  string        `yaml:"plotly_url"`
	ZRange     float64       `yaml:"z_range"`
	Resolution int           `yaml:"resolution"`
	Slider     slider.Slider `yaml:"slider"`
	RateLimit  RateLimit     `yaml:"rate_limit"`
	Logging    Logging       `yaml:"logging"`
	Shutdown   time.Duration `yaml:"shutdown_timeout"`
}

// RateLimit configures the per-IP token bucket on /api.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type Logging struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

func Default() Config {
	return Config{
		Addr:       ":8080",
		ZRange:     mises.DefaultZRange,
		Resolution: mises.DefaultResolution,
		Slider:     slider.Default(),
		RateLimit:  RateLimit{RPS: 10, Burst: 20},
		Logging:    Logging{Level: "info"},
		Shutdown:   5 * time.Second,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// any), then .env, then process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("MISES_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("MISES_TLS_CERT"); v != "" {
		c.TLSCert = v
	}
	if v := os.Getenv("MISES_TLS_KEY"); v != "" {
		c.TLSKey = v
	}
	if v := os.Getenv("MISES_CORS_ORIGIN"); v != "" {
		c.CORSOrigin = v
	}
	if v := os.Getenv("MISES_PLOTLY_URL"); v != "" {
		c.PlotlyURL = v
	}
	if v := os.Getenv("MISES_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	floats := map[string]*float64{
		"MISES_Z_RANGE":        &c.ZRange,
		"MISES_RATE_LIMIT_RPS": &c.RateLimit.RPS,
		"MISES_SLIDER_MIN":     &c.Slider.Min,
		"MISES_SLIDER_MAX":     &c.Slider.Max,
		"MISES_SLIDER_DEFAULT": &c.Slider.Default,
		"MISES_SLIDER_STEP":    &c.Slider.Step,
	}
	for key, dst := range floats {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = f
		}
	}
	ints := map[string]*int{
		"MISES_RESOLUTION":       &c.Resolution,
		"MISES_RATE_LIMIT_BURST": &c.RateLimit.Burst,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = n
		}
	}
	if v := os.Getenv("MISES_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MISES_SHUTDOWN_TIMEOUT: %w", err)
		}
		c.Shutdown = d
	}
	return nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls_cert and tls_key must be set together")
	}
	if err := c.Slider.Validate(); err != nil {
		return err
	}
	if _, err := mises.Normalize(mises.Input{SigmaY: c.Slider.Default, ZRange: c.ZRange, Resolution: c.Resolution}); err != nil {
		return err
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v rps burst %d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}

func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}
