package internal

import (
	"fmt"
	"time"
	"toni/ai"
)

type Config struct {
	BackendAIEndpoint string `env:"BACKEND_AI_ENDPOINT"`
	ModelAPIURL       string `env:"MODEL_API_URL,default=https://hnd1.aihub.zeabur.ai/"`
	ModelCode         string `env:"MODEL_CODE"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	SecretaryModel    string `env:"SECRETARY_MODEL,default=gpt-4o-mini"`
	ExpertModel       string `env:"EXPERT_MODEL,default=gpt-4o"`

	Host            string        `env:"HOST"`
	Port            int           `env:"PORT,default=3000"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES,default=52428800"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`

	DatabaseURL        string        `env:"DATABASE_URL"`
	RecorderBufferSize int           `env:"RECORDER_BUFFER_SIZE,default=256"`
	MetricInterval     time.Duration `env:"METRIC_INTERVAL,default=5s"`
	RestartDelay       time.Duration `env:"RESTART_DELAY,default=200ms"`
	RestartMaxDelay    time.Duration `env:"RESTART_MAX_DELAY,default=10s"`
	DebugAddr          string        `env:"DEBUG_ADDR"`
	LogLevel           string        `env:"LOG_LEVEL,default=INFO"`
}

// Validate catches values go-env accepts but the server cannot run with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	if c.RecorderBufferSize <= 0 {
		return fmt.Errorf("RECORDER_BUFFER_SIZE must be positive, got %d", c.RecorderBufferSize)
	}
	if c.MetricInterval <= 0 {
		return fmt.Errorf("METRIC_INTERVAL must be positive, got %s", c.MetricInterval)
	}
	if c.RestartDelay <= 0 || c.RestartMaxDelay < c.RestartDelay {
		return fmt.Errorf("RESTART_DELAY must be positive and at most RESTART_MAX_DELAY, got %s and %s", c.RestartDelay, c.RestartMaxDelay)
	}
	return nil
}

// AIDefaults is the process-wide part of endpoint and model resolution.
func (c Config) AIDefaults() ai.Defaults {
	return ai.Defaults{
		Endpoint:       c.BackendAIEndpoint,
		BaseURL:        c.ModelAPIURL,
		ModelCode:      c.ModelCode,
		SecretaryModel: c.SecretaryModel,
		ExpertModel:    c.ExpertModel,
	}
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
