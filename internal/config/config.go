package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Face detector
	DetectorType string `envconfig:"DETECTOR_TYPE" default:"pigo"`
	CascadePath  string `envconfig:"CASCADE_PATH" default:"models/facefinder"`
	AWSRegion    string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Emotion model
	ModelPath         string `envconfig:"MODEL_PATH" default:"models/emotion.onnx"`
	ModelMetadataPath string `envconfig:"MODEL_METADATA_PATH" default:"models/emotion_metadata.json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
