package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "linefollow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
planner:
  connectivity: 4
  agents: 5
  metric: geodesic
raster:
  min_x: 500000
  min_y: 5600000
  resolution: 0.25
`)

	cfg, source, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, source)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "route_plan.json", cfg.Server.PlanFile)
	assert.Equal(t, 4, cfg.Planner.Connectivity)
	assert.Equal(t, 5, cfg.Planner.Agents)
	assert.Equal(t, MetricGeodesic, cfg.Planner.Metric)
	assert.Equal(t, DefaultBridgeMaxDist, cfg.Planner.BridgeMaxDist)
	assert.Equal(t, DefaultMinBranchLen, cfg.Planner.MinBranchLen)
	assert.Equal(t, 500000.0, cfg.Raster.MinX)
	assert.Equal(t, 0.25, cfg.Raster.Resolution)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
}

func TestLoadFromPath_Invalid(t *testing.T) {
	_, _, err := LoadFromPath(writeConfig(t, "planner:\n  connectivity: 6\n"))
	assert.True(t, errors.Is(err, ErrInvalidConnectivity))

	_, _, err = LoadFromPath(writeConfig(t, "planner:\n  metric: manhattan\n"))
	assert.True(t, errors.Is(err, ErrInvalidMetric))

	_, _, err = LoadFromPath(writeConfig(t, "planner: [unclosed\n"))
	assert.Error(t, err)

	_, _, err = LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFindConfigPath_Env(t *testing.T) {
	path := writeConfig(t, "planner:\n  agents: 2\n")
	t.Setenv(configEnvVar, path)

	assert.Equal(t, path, FindConfigPath())

	cfg, source, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, 2, cfg.Planner.Agents)
}

func TestConfigPlanOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts := cfg.PlanOptions()

	assert.Equal(t, Conn8, opts.Connectivity)
	assert.Equal(t, DefaultBridgeMaxDist, opts.BridgeMaxDist)
	assert.Equal(t, DefaultMinBranchLen, opts.MinBranchLen)
	assert.Equal(t, 3, opts.NumAgents)
	assert.Equal(t, MetricPlanar, opts.Metric)
	assert.False(t, opts.Skeletonize)
	assert.NoError(t, cfg.Validate())
}
