package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianbland/awgnsim/pkg/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(config.NewParser())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level=error"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPrngDumpsReferenceVector(t *testing.T) {
	out, err := execute(t, "prng", "--seed=5489", "--count=3")
	require.NoError(t, err)
	assert.Equal(t, []string{"3499211612", "581869302", "3890346734"}, strings.Fields(out))
}

func TestPrngUniform(t *testing.T) {
	out, err := execute(t, "prng", "--seed=0", "--count=1", "--uniform")
	require.NoError(t, err)
	assert.Equal(t, "0.81472368639317894", strings.TrimSpace(out))
}

func TestSimulateSingleScenario(t *testing.T) {
	out, err := execute(t, "simulate", "--scenario=qpsk", "--steps=100", "--ebn0=6")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Simulation: QPSK Random Data ===")
	assert.Contains(t, out, "AWGN CHANNEL ANALYSIS SUMMARY")
}

func TestSimulateRejectsBadConfig(t *testing.T) {
	_, err := execute(t, "simulate", "--signal-power=-1")
	assert.Error(t, err)

	_, err = execute(t, "simulate", "--scenario=nope")
	assert.Error(t, err)

	_, err = execute(t, "simulate", "--ebn0=1,2")
	assert.Error(t, err)
}

func TestDetailedHelp(t *testing.T) {
	out, err := execute(t, "--help-detailed")
	require.NoError(t, err)
	assert.Contains(t, out, "AWGN Channel Simulator - Complete CLI Reference")
}

func TestSweepWritesCharts(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "sweep", "--from=0", "--to=2", "--step=1", "--steps=200",
		"--workers=2", "--graph", "--output-dir="+dir)
	require.NoError(t, err)
	assert.Contains(t, out, "QPSK Bit Error Rate")

	for _, name := range []string{"ber.png", "ber.html"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestRecordThenVerify(t *testing.T) {
	file := filepath.Join(t.TempDir(), "golden.json")

	out, err := execute(t, "record", file, "--scenario=bpsk", "--steps=16")
	require.NoError(t, err)
	assert.Contains(t, out, "saved to "+file)

	out, err = execute(t, "verify", file)
	require.NoError(t, err)
	assert.Contains(t, out, "16 frames match")
}
