// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server configuration.
type Config struct {
	Port           int      `mapstructure:"port"`
	LogFile        string   `mapstructure:"log_file"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	OpenAIAPIKey  string `mapstructure:"openai_api_key"`
	OpenAIModel   string `mapstructure:"openai_model"`
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	Queue QueueConfig `mapstructure:"queue"`
}

// QueueConfig holds the admission queue tunables.
type QueueConfig struct {
	MinIntervalMS int `mapstructure:"min_interval_ms"`
	BaseDelayMS   int `mapstructure:"base_delay_ms"`
	RetryCeiling  int `mapstructure:"retry_ceiling"`
}

// Load reads configuration from an optional yaml file and the environment.
// Environment variables use the SKILLS_ prefix (e.g. SKILLS_PORT); the
// standard OPENAI_API_KEY variable is honored as well.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("port", 3001)
	v.SetDefault("log_file", "")
	v.SetDefault("allowed_origins", []string{
		"http://localhost:5173",
		"http://localhost:3000",
	})
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-3.5-turbo")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("queue.min_interval_ms", 1000)
	v.SetDefault("queue.base_delay_ms", 1000)
	v.SetDefault("queue.retry_ceiling", 3)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("SKILLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// The OpenAI key usually lives in the conventional variable rather than
	// a SKILLS_-prefixed one.
	if config.OpenAIAPIKey == "" {
		config.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if config.OpenAIAPIKey == "" {
		log.Printf("Load: warning: no OpenAI API key configured, completions will fail")
	}

	// PORT is the conventional hosting variable (Heroku/Render style).
	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			config.Port = port
		} else {
			log.Printf("Load: invalid PORT value '%s', keeping %d", portStr, config.Port)
		}
	}

	log.Printf("Load: port=%d model=%s origins=%d", config.Port, config.OpenAIModel, len(config.AllowedOrigins))
	return &config, nil
}
