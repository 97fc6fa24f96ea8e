package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	APIKey      string `yaml:"api_key"`
	AdminToken  string `yaml:"admin_token"`
	RateLimit   int    `yaml:"rate_limit_per_minute"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	ScreeningWeights ScreeningWeights `yaml:"screening_weights"`
	MoveOutWeights   MoveOutWeights   `yaml:"move_out_weights"`
}

type ScreeningWeights struct {
	Financial     float64 `yaml:"financial"`
	RentalHistory float64 `yaml:"rental_history"`
	Employment    float64 `yaml:"employment"`
	Communication float64 `yaml:"communication"`
	Documents     float64 `yaml:"documents"`
}

type MoveOutWeights struct {
	LeaseHorizon float64 `yaml:"lease_horizon"`
	PaymentTrend float64 `yaml:"payment_trend"`
	RentDelta    float64 `yaml:"rent_delta"`
	Complaints   float64 `yaml:"complaints"`
	Sentiment    float64 `yaml:"sentiment"`
	Tenure       float64 `yaml:"tenure"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
			RateLimit:   120,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Scoring: ScoringConfig{
			ScreeningWeights: ScreeningWeights{
				Financial:     0.35,
				RentalHistory: 0.25,
				Employment:    0.20,
				Communication: 0.10,
				Documents:     0.10,
			},
			MoveOutWeights: MoveOutWeights{
				LeaseHorizon: 0.25,
				PaymentTrend: 0.20,
				RentDelta:    0.15,
				Complaints:   0.15,
				Sentiment:    0.15,
				Tenure:       0.10,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FORESIGHT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("FORESIGHT_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("FORESIGHT_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("FORESIGHT_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("FORESIGHT_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("FORESIGHT_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("FORESIGHT_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("FORESIGHT_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
