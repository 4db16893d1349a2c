package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Planner PlannerConfig `yaml:"planner"`
	Raster  MaskMeta      `yaml:"raster"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures HTTP mode
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	PlanFile string `yaml:"plan_file"`
}

// PlannerConfig holds pipeline defaults; requests may override them
type PlannerConfig struct {
	Connectivity  int          `yaml:"connectivity"`
	BridgeMaxDist float64      `yaml:"bridge_max_dist"`
	MinBranchLen  int          `yaml:"min_branch_len"`
	Tolerance     float64      `yaml:"tolerance"`
	Agents        int          `yaml:"agents"`
	Skeletonize   bool         `yaml:"skeletonize"`
	Metric        LengthMetric `yaml:"metric"`
}

// LogConfig sends logs to a rotating file when File is set
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

const configEnvVar = "LINEFOLLOW_CONFIG"

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, path, nil
}

// FindConfigPath returns the first config file that exists, or "".
//
// Config file locations (priority order):
//  1. $LINEFOLLOW_CONFIG
//  2. ./linefollow.yaml
//  3. ~/.config/linefollow/config.yaml
func FindConfigPath() string {
	if p := os.Getenv(configEnvVar); p != "" {
		return p
	}

	candidates := []string{"./linefollow.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "linefollow", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.PlanFile == "" {
		c.Server.PlanFile = "route_plan.json"
	}
	if c.Planner.Connectivity == 0 {
		c.Planner.Connectivity = int(Conn8)
	}
	if c.Planner.BridgeMaxDist == 0 {
		c.Planner.BridgeMaxDist = DefaultBridgeMaxDist
	}
	if c.Planner.MinBranchLen == 0 {
		c.Planner.MinBranchLen = DefaultMinBranchLen
	}
	if c.Planner.Agents == 0 {
		c.Planner.Agents = 3
	}
	if c.Planner.Metric == "" {
		c.Planner.Metric = MetricPlanar
	}
	if c.Raster.Resolution == 0 {
		c.Raster.Resolution = 1.0
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 100
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 30
	}
}

// Validate rejects settings the pipeline cannot run with
func (c *Config) Validate() error {
	if _, err := Connectivity(c.Planner.Connectivity).Offsets(); err != nil {
		return err
	}
	if !c.Planner.Metric.Valid() {
		return fmt.Errorf("%w: got %q", ErrInvalidMetric, c.Planner.Metric)
	}
	if c.Raster.Resolution < 0 {
		return fmt.Errorf("raster resolution must be positive, got %g", c.Raster.Resolution)
	}
	return nil
}

// PlanOptions converts the planner section into pipeline options
func (c *Config) PlanOptions() PlanOptions {
	return PlanOptions{
		Connectivity:  Connectivity(c.Planner.Connectivity),
		BridgeMaxDist: c.Planner.BridgeMaxDist,
		MinBranchLen:  c.Planner.MinBranchLen,
		Tolerance:     c.Planner.Tolerance,
		NumAgents:     c.Planner.Agents,
		Metric:        c.Planner.Metric,
		Skeletonize:   c.Planner.Skeletonize,
	}
}
