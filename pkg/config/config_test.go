package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/awgnsim/pkg/randomizer"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, randomizer.NormalMethodZiggurat, cfg.NormalMethod())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"scalar ebn0", func(c *Config) { c.EbN0 = []float64{6} }, false},
		{"empty ebn0", func(c *Config) { c.EbN0 = nil }, true},
		{"wrong ebn0 count", func(c *Config) { c.EbN0 = []float64{1, 2} }, true},
		{"infinite ebn0", func(c *Config) { c.EbN0 = []float64{math.Inf(1)} }, true},
		{"zero power", func(c *Config) { c.SignalPower = 0 }, true},
		{"zero channels", func(c *Config) { c.Channels = 0 }, true},
		{"zero steps", func(c *Config) { c.Steps = 0 }, true},
		{"bad method", func(c *Config) { c.Method = "uniform" }, true},
		{"polar", func(c *Config) { c.Method = "polar" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	p := NewParser()
	cfg, sim, err := p.Parse([]string{"--seed=42", "--ebn0=1,2,3", "--method=polar", "--scenario=qpsk", "--graph"})
	require.NoError(t, err)
	assert.Equal(t, uint32(42), cfg.Seed)
	assert.Equal(t, []float64{1, 2, 3}, cfg.EbN0)
	assert.Equal(t, randomizer.NormalMethodPolar, cfg.NormalMethod())
	assert.Equal(t, "qpsk", sim.Scenario)
	assert.True(t, sim.EnableGraphs)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, _, err := NewParser().Parse([]string{"--signal-power=-1"})
	assert.Error(t, err)

	_, _, err = NewParser().Parse([]string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"AWGNSIM_SEED":         "7",
		"AWGNSIM_EBN0":         "0, 5",
		"AWGNSIM_SIGNAL_POWER": "2.5",
		"AWGNSIM_METHOD":       "inversion",
		"AWGNSIM_CHANNELS":     "2",
		"AWGNSIM_LOG_LEVEL":    "debug",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	p := NewParser()
	require.NoError(t, p.applyEnv(lookup))
	assert.Equal(t, uint32(7), p.Config().Seed)
	assert.Equal(t, []float64{0, 5}, p.Config().EbN0)
	assert.Equal(t, 2.5, p.Config().SignalPower)
	assert.Equal(t, "inversion", p.Config().Method)
	assert.Equal(t, 2, p.Config().Channels)
	assert.Equal(t, "debug", p.SimulationConfig().LogLevel)
	require.NoError(t, p.Validate())

	env["AWGNSIM_SEED"] = "-3"
	assert.Error(t, NewParser().applyEnv(lookup))
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("AWGNSIM_SIGNAL_POWER=4\n"), 0644))
	t.Setenv("AWGNSIM_SIGNAL_POWER", "")
	os.Unsetenv("AWGNSIM_SIGNAL_POWER")

	p := NewParser()
	require.NoError(t, p.LoadEnv(path))
	assert.Equal(t, 4.0, p.Config().SignalPower)

	require.NoError(t, NewParser().LoadEnv(filepath.Join(dir, "missing.env")))
}

func TestParseFloatList(t *testing.T) {
	v, err := ParseFloatList(" 1.5, -2 ,3e1 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2, 30}, v)

	_, err = ParseFloatList(" , ")
	assert.Error(t, err)
	_, err = ParseFloatList("1,x")
	assert.Error(t, err)
}

func TestShowDetailedHelp(t *testing.T) {
	var buf bytes.Buffer
	NewParser().ShowDetailedHelp(&buf)
	assert.Contains(t, buf.String(), "awgnsim sweep")
	assert.Contains(t, buf.String(), "AWGNSIM_EBN0")
}
