package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tanujaya/user-directory/internal/platform/envutil"
)

type Duration struct {
	Duration time.Duration
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	s := strings.TrimSpace(node.Value)
	if s == "" {
		d.Duration = 0
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration must look like \"5s\": %w", err)
	}
	d.Duration = dd
	return nil
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
}

type Config struct {
	Env         string     `yaml:"env"`
	ServiceName string     `yaml:"service_name"`
	HTTP        HTTPConfig `yaml:"http"`
	CORSOrigins []string   `yaml:"cors_origins"`
}

func defaultConfig() *Config {
	return &Config{
		Env:         "development",
		ServiceName: "user-directory",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
		},
	}
}

// LoadConfig layers defaults, an optional YAML file and env overrides.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("USERDIR_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("LOG_MODE")); v != "" {
		cfg.Env = v
	}
	cfg.HTTP.Addr = envutil.String("USERDIR_HTTP_ADDR", cfg.HTTP.Addr)
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	if origins := strings.TrimSpace(os.Getenv("USERDIR_CORS_ORIGINS")); origins != "" {
		cfg.CORSOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	return cfg, nil
}
