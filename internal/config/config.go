package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGoal      = 10
	DefaultStart     = 5
	DefaultWinProb   = 0.5
	DefaultSteps     = 100.0
	DefaultChunk     = 10
	DefaultFrameRate = 10
)

type Config struct {
	Goal      int     `yaml:"goal"`
	Start     int     `yaml:"start"`
	WinProb   float64 `yaml:"win_prob"`
	Steps     float64 `yaml:"steps"`
	Chunk     int     `yaml:"chunk"`
	FrameRate int     `yaml:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Goal:      DefaultGoal,
		Start:     DefaultStart,
		WinProb:   DefaultWinProb,
		Steps:     DefaultSteps,
		Chunk:     DefaultChunk,
		FrameRate: DefaultFrameRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
